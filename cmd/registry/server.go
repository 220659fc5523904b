package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Simplici0/tpp-registry/internal/registry"
	"github.com/Simplici0/tpp-registry/internal/report"
	"github.com/Simplici0/tpp-registry/internal/users"
)

const (
	maxBodyBytes    = 32 << 20
	requestIDHeader = "X-Request-Id"
)

type server struct {
	auth    *authService
	users   *users.Repository
	service *registry.Service
	logger  *zap.Logger
}

func newServer(auth *authService, accounts *users.Repository, service *registry.Service, logger *zap.Logger) *server {
	return &server{auth: auth, users: accounts, service: service, logger: logger}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(s.authMiddleware)

	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	r.Route("/api", func(r chi.Router) {
		r.Get("/me", s.handleMe)
		r.Get("/data", s.handleGetData)
		r.With(s.adminOnly).Post("/data", s.handleReplaceData)

		r.Route("/users", func(r chi.Router) {
			r.Use(s.adminOnly)
			r.Get("/", s.handleListUsers)
			r.Post("/", s.handleSaveUser)
			r.Put("/{login}", s.handleSaveUser)
			r.Delete("/{login}", s.handleDeleteUser)
		})

		r.Route("/{domain}", func(r chi.Router) {
			r.Use(s.domainCtx)

			r.Get("/records", s.handleListRecords)
			r.Get("/records/export", s.handleExportRecords)
			r.Post("/records", s.handleCreateRecord)
			r.Post("/records/bulk-delete", s.handleBulkDeleteRecords)
			r.Put("/records/{id}", s.handleUpdateRecord)
			r.Delete("/records/{id}", s.handleDeleteRecord)
			r.Get("/records/{id}/order", s.handleRecordOrder)
			r.Post("/cost", s.handleCost)

			r.Get("/stats", s.handleStats)
			r.Get("/report", s.handleReport)
			r.Get("/experts", s.handleExperts)

			r.Get("/settings", s.handleGetSettings)
			r.With(s.adminOnly).Put("/settings", s.handlePutSettings)
			r.Get("/tariffs", s.handleGetTariffs)
			r.With(s.adminOnly).Put("/tariffs", s.handlePutTariffs)

			r.Get("/plans", s.handleListPlans)
			r.Get("/plans/{month}", s.handleGetPlan)
			r.With(s.adminOnly).Put("/plans/{month}", s.handlePutPlan)

			r.Get("/firms", s.handleListFirms)
			r.Get("/firms/export", s.handleExportFirms)
			r.Post("/firms", s.handleCreateFirm)
			r.Put("/firms/{id}", s.handleUpdateFirm)
			r.Delete("/firms/{id}", s.handleDeleteFirm)
			r.Post("/firms/{id}/copy", s.handleCopyFirm)
		})
	})

	return r
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)))
	})
}

func (s *server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/login" {
			next.ServeHTTP(w, r)
			return
		}

		u, ok := s.auth.sessionUser(r)
		if !ok {
			writeJSONError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), u)))
	})
}

func (s *server) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := currentUser(r.Context())
		if !ok || !u.IsAdmin() {
			writeJSONError(w, http.StatusForbidden, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *server) domainCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d, err := registry.ParseDomain(chi.URLParam(r, "domain"))
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), domainKey, d)))
	})
}

func domainFrom(r *http.Request) registry.Domain {
	d, _ := r.Context().Value(domainKey).(registry.Domain)
	return d
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func writeWorkbook(w http.ResponseWriter, filename string, body *bytes.Buffer) {
	w.Header().Set("Content-Type", report.WorkbookContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = body.WriteTo(w)
}

// writeError maps domain errors to status codes; anything unexpected is
// logged and hidden behind a 500.
func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, registry.ErrUnknownDomain),
		errors.Is(err, registry.ErrInvalidMonth),
		errors.Is(err, users.ErrInvalidUser),
		errors.Is(err, users.ErrInvalidRole):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, registry.ErrRecordNotFound),
		errors.Is(err, registry.ErrFirmNotFound),
		errors.Is(err, users.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, registry.ErrFirmExists),
		errors.Is(err, users.ErrLastAdmin):
		writeJSONError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}
