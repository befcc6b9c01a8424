package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/ncastellanos/casita/internal/auth"
	"github.com/ncastellanos/casita/internal/events"
	"github.com/ncastellanos/casita/internal/models"
	"github.com/ncastellanos/casita/internal/session"
	"github.com/ncastellanos/casita/internal/store"
)

// StoreFactory builds a store bound to a request's bearer token, so all
// queries run as the caller under row-level security.
type StoreFactory func(token string) store.Store

// Server holds the HTTP surface's collaborators. Everything is injected:
// no package-level state.
type Server struct {
	stores    StoreFactory
	sessions  *session.Manager
	validator auth.TokenValidator
	events    *events.Server
	logf      func(format string, v ...any)
}

func NewServer(stores StoreFactory, sessions *session.Manager, validator auth.TokenValidator, ev *events.Server) *Server {
	return &Server{
		stores:    stores,
		sessions:  sessions,
		validator: validator,
		events:    ev,
		logf:      log.Printf,
	}
}

func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "pong"}`))
	})

	mux.Handle("POST /auth/signup", corsMiddleware(http.HandlerFunc(s.signUp)))
	mux.Handle("POST /auth/signin", corsMiddleware(http.HandlerFunc(s.signIn)))
	mux.Handle("POST /auth/signout", corsMiddleware(http.HandlerFunc(s.signOut)))

	mux.Handle("GET /homes", s.protected(s.listHomes))
	mux.Handle("POST /homes", s.protected(s.createHome))
	mux.Handle("POST /homes/{id}/invitations", s.protected(s.inviteMember))

	mux.Handle("GET /homes/{id}/rooms", s.protected(s.listRooms))
	mux.Handle("POST /homes/{id}/rooms", s.protected(s.createRoom))

	mux.Handle("GET /homes/{id}/items", s.protected(s.listItems))
	mux.Handle("POST /homes/{id}/items", s.protected(s.createItem))
	mux.Handle("PATCH /items/{id}", s.protected(s.updateItem))
	mux.Handle("DELETE /items/{id}", s.protected(s.deleteItem))

	mux.Handle("GET /session/events", corsMiddleware(http.HandlerFunc(s.events.SubscribeHandler)))
}

func (s *Server) protected(h http.HandlerFunc) http.Handler {
	return corsMiddleware(auth.Middleware(s.validator, h))
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// storeFor binds a store to the request's bearer token.
func (s *Server) storeFor(r *http.Request) store.Store {
	return s.stores(auth.BearerToken(r))
}

func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logf("api: json encode: %v", err)
	}
}

// writeError maps the error taxonomy onto status codes: validation
// failures are 400, missing rows 404, anything else is a backend
// failure logged and reported as 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var ve *models.ValidationError
	var apiErr *Error

	switch {
	case errors.As(err, &apiErr):
	case errors.As(err, &ve):
		apiErr = NewBadRequestError(ve.Error())
	case errors.Is(err, store.ErrNotFound):
		apiErr = NewNotFoundError()
	default:
		s.logf("api: backend error: %v", err)
		apiErr = NewInternalServerError(err)
	}

	s.writeJSON(w, apiErr.StatusCode, apiErr)
}

// pathID returns the {id} path segment, which must be a UUID.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		s.writeError(w, NewBadRequestError("malformed id"))
		return "", false
	}
	return id, true
}
