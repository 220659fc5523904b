package main

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Simplici0/tpp-registry/internal/registry"
)

func (s *server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	data, err := s.service.Data(r.Context(), domainFrom(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, data.GeneralSettings)
}

func (s *server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	d := domainFrom(r)
	var settings registry.GeneralSettings
	if !decodeJSON(w, r, &settings) {
		return
	}

	data, err := s.service.Update(r.Context(), d, func(data *registry.DomainData) error {
		data.GeneralSettings = settings
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("settings updated", zap.String("domain", string(d)))
	writeJSON(w, http.StatusOK, data.GeneralSettings)
}

func (s *server) handleGetTariffs(w http.ResponseWriter, r *http.Request) {
	data, err := s.service.Data(r.Context(), domainFrom(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, data.CostModelTable)
}

// handlePutTariffs replaces the tier table. Rows without an id are numbered
// by position.
func (s *server) handlePutTariffs(w http.ResponseWriter, r *http.Request) {
	d := domainFrom(r)
	var rows []registry.CostModelRow
	if !decodeJSON(w, r, &rows) {
		return
	}
	for i := range rows {
		if rows[i].ID == 0 {
			rows[i].ID = int64(i + 1)
		}
	}

	data, err := s.service.Update(r.Context(), d, func(data *registry.DomainData) error {
		data.CostModelTable = rows
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("tariff table updated", zap.String("domain", string(d)), zap.Int("rows", len(rows)))
	writeJSON(w, http.StatusOK, data.CostModelTable)
}
