package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Simplici0/tpp-registry/internal/registry"
	"github.com/Simplici0/tpp-registry/internal/users"
)

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, ok, err := s.users.Authenticate(r.Context(), req.Login, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !ok {
		s.logger.Warn("login rejected", zap.String("login", req.Login))
		writeJSONError(w, http.StatusUnauthorized, "invalid login or password")
		return
	}

	s.auth.setSessionCookie(w, u.Login)
	writeJSON(w, http.StatusOK, u)
}

func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleMe(w http.ResponseWriter, r *http.Request) {
	u, _ := currentUser(r.Context())
	writeJSON(w, http.StatusOK, u)
}

func (s *server) handleGetData(w http.ResponseWriter, r *http.Request) {
	app, err := s.service.AppData(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (s *server) handleReplaceData(w http.ResponseWriter, r *http.Request) {
	var app registry.AppData
	if !decodeJSON(w, r, &app) {
		return
	}
	if err := s.service.ReplaceAppData(r.Context(), app); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Data saved successfully"})
}

type userRequest struct {
	users.User
	Password string `json:"password"`
}

func (s *server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	list, err := s.users.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *server) handleSaveUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	status := http.StatusCreated
	if login := chi.URLParam(r, "login"); login != "" {
		req.Login = login
		status = http.StatusOK
	}

	if err := s.users.Save(r.Context(), req.User, req.Password); err != nil {
		s.writeError(w, r, err)
		return
	}
	u, err := s.users.Get(r.Context(), req.Login)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, status, u)
}

func (s *server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.users.Delete(r.Context(), chi.URLParam(r, "login")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
