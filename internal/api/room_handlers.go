package api

import (
	"encoding/json"
	"net/http"

	"github.com/ncastellanos/casita/internal/rooms"
)

type CreateRoomRequest struct {
	Name string `json:"name"`
}

func (s *Server) listRooms(w http.ResponseWriter, r *http.Request) {
	homeID, ok := s.pathID(w, r)
	if !ok {
		return
	}

	svc := rooms.NewService(s.storeFor(r))
	list, err := svc.List(homeID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) createRoom(w http.ResponseWriter, r *http.Request) {
	homeID, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, NewBadRequestError(""))
		return
	}

	svc := rooms.NewService(s.storeFor(r))
	room, err := svc.Create(homeID, req.Name)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, room)
}
