package main

import (
	"bytes"
	"net/http"

	"github.com/Simplici0/tpp-registry/internal/registry"
	"github.com/Simplici0/tpp-registry/internal/report"
)

func (s *server) handleListFirms(w http.ResponseWriter, r *http.Request) {
	data, err := s.service.Data(r.Context(), domainFrom(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, data.Firms)
}

func (s *server) handleExportFirms(w http.ResponseWriter, r *http.Request) {
	d := domainFrom(r)
	data, err := s.service.Data(r.Context(), d)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := report.FirmsWorkbook(&buf, data.Firms); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeWorkbook(w, string(d)+"-firms.xlsx", &buf)
}

func (s *server) handleCreateFirm(w http.ResponseWriter, r *http.Request) {
	var firm registry.Firm
	if !decodeJSON(w, r, &firm) {
		return
	}

	var created registry.Firm
	_, err := s.service.Update(r.Context(), domainFrom(r), func(data *registry.DomainData) error {
		created = data.AddFirm(firm)
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *server) handleUpdateFirm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid firm id")
		return
	}
	var firm registry.Firm
	if !decodeJSON(w, r, &firm) {
		return
	}
	firm.ID = id

	_, err := s.service.Update(r.Context(), domainFrom(r), func(data *registry.DomainData) error {
		return data.UpdateFirm(firm)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, firm)
}

func (s *server) handleDeleteFirm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid firm id")
		return
	}

	_, err := s.service.Update(r.Context(), domainFrom(r), func(data *registry.DomainData) error {
		return data.DeleteFirm(id)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCopyFirm copies a firm into the other domain.
func (s *server) handleCopyFirm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid firm id")
		return
	}

	copied, err := s.service.CopyFirm(r.Context(), domainFrom(r), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, copied)
}
