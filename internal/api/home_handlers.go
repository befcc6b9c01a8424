package api

import (
	"encoding/json"
	"net/http"

	"github.com/ncastellanos/casita/internal/auth"
	"github.com/ncastellanos/casita/internal/homes"
)

type CreateHomeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type InviteMemberRequest struct {
	Email string `json:"email"`
}

func (s *Server) listHomes(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		s.writeError(w, NewUnauthorizedError())
		return
	}

	svc := homes.NewService(s.storeFor(r))
	list, err := svc.List(user.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) createHome(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		s.writeError(w, NewUnauthorizedError())
		return
	}

	var req CreateHomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, NewBadRequestError(""))
		return
	}

	svc := homes.NewService(s.storeFor(r))
	home, err := svc.Create(user, req.Name, req.Description)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, home)
}

func (s *Server) inviteMember(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFrom(r.Context())
	if !ok {
		s.writeError(w, NewUnauthorizedError())
		return
	}

	homeID, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req InviteMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, NewBadRequestError(""))
		return
	}

	svc := homes.NewService(s.storeFor(r))
	invitation, err := svc.Invite(user.ID, homeID, req.Email)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, invitation)
}
