package web

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Vadym-Teslytskyy/usermanager/internal/core"
)

// maxJSONBody bounds the create and update request bodies.
const maxJSONBody = 1 << 20

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.service.ListUsers(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, users)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	in, err := decodeUserInput(w, r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	if err := s.service.CreateUser(ctx, in); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, messageResponse{Message: "User added successfully"})
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	in, err := decodeUserInput(w, r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	if err := s.service.UpdateUser(ctx, id, in); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, messageResponse{Message: "User updated successfully"})
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	if err := s.service.DeleteUser(ctx, id); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, messageResponse{Message: fmt.Sprintf("User %d deleted successfully", id)})
}

func (s *Server) handleDeleteAllUsers(w http.ResponseWriter, r *http.Request) {
	ctx := WithRequestMetadata(r.Context(), r)
	if err := s.service.DeleteAllUsers(ctx); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, messageResponse{Message: "All users deleted successfully"})
}

// handleHealth reports whether the store is reachable.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Ping(r.Context()); err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

// decodeUserInput reads a {name, email} body. A malformed body is reported
// as a validation error so it maps to 400.
func decodeUserInput(w http.ResponseWriter, r *http.Request) (core.UserInput, error) {
	var in core.UserInput
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return core.UserInput{}, &core.ValidationError{Message: "invalid JSON body: " + err.Error()}
	}
	return in, nil
}
