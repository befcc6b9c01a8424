package api

import (
	"encoding/json"
	"net/http"

	"github.com/ncastellanos/casita/internal/models"
)

type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Message string         `json:"message"`
	Session models.Session `json:"session"`
}

func (s *Server) signUp(w http.ResponseWriter, r *http.Request) {
	var req AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, NewBadRequestError(""))
		return
	}

	sess, err := s.sessions.SignUp(req.Email, req.Password)
	if err != nil {
		if models.IsValidation(err) {
			s.writeError(w, err)
			return
		}
		s.writeError(w, NewUnprocessableError(err))
		return
	}

	s.writeJSON(w, http.StatusCreated, AuthResponse{
		Message: "signup successful",
		Session: *sess,
	})
}

func (s *Server) signIn(w http.ResponseWriter, r *http.Request) {
	var req AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, NewBadRequestError(""))
		return
	}

	sess, err := s.sessions.SignIn(req.Email, req.Password)
	if err != nil {
		s.writeError(w, NewUnauthorizedError())
		return
	}

	s.writeJSON(w, http.StatusOK, AuthResponse{
		Message: "signin successful",
		Session: *sess,
	})
}

func (s *Server) signOut(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.SignOut(); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "signout successful"})
}
