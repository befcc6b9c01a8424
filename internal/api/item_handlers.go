package api

import (
	"encoding/json"
	"net/http"

	"github.com/ncastellanos/casita/internal/items"
	"github.com/ncastellanos/casita/internal/models"
)

type CreateItemRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	RoomID      string `json:"room_id"`
}

// listItems returns the home's items, optionally narrowed by ?room= or
// ?search=. A selected room takes precedence over the search term.
func (s *Server) listItems(w http.ResponseWriter, r *http.Request) {
	homeID, ok := s.pathID(w, r)
	if !ok {
		return
	}

	svc := items.NewService(s.storeFor(r))
	list, err := svc.List(homeID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	roomID := r.URL.Query().Get("room")
	term := r.URL.Query().Get("search")
	if roomID != "" || term != "" {
		list = items.Filter(list, roomID, term)
	}

	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) createItem(w http.ResponseWriter, r *http.Request) {
	homeID, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, NewBadRequestError(""))
		return
	}

	svc := items.NewService(s.storeFor(r))
	item, err := svc.Create(homeID, items.CreateParams{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		RoomID:      req.RoomID,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, item)
}

func (s *Server) updateItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var update models.ItemUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		s.writeError(w, NewBadRequestError(""))
		return
	}

	svc := items.NewService(s.storeFor(r))
	item, err := svc.Update(itemID, update)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, item)
}

func (s *Server) deleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := s.pathID(w, r)
	if !ok {
		return
	}

	svc := items.NewService(s.storeFor(r))
	item, err := svc.Delete(itemID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, item)
}
