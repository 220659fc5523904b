package main

import (
	"bytes"
	"net/http"

	"github.com/Simplici0/tpp-registry/internal/registry"
	"github.com/Simplici0/tpp-registry/internal/report"
)

func (s *server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	d := domainFrom(r)
	data, err := s.service.Data(r.Context(), d)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	records := registry.FilterRecords(data.Records, q.Get("expert"), q.Get("month"))
	writeJSON(w, http.StatusOK, data.Tariffs(d).Price(records))
}

func (s *server) handleExportRecords(w http.ResponseWriter, r *http.Request) {
	d := domainFrom(r)
	data, err := s.service.Data(r.Context(), d)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	records := registry.FilterRecords(data.Records, q.Get("expert"), q.Get("month"))
	var buf bytes.Buffer
	if err := report.RecordsWorkbook(&buf, d, data.Tariffs(d).Price(records)); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeWorkbook(w, string(d)+"-records.xlsx", &buf)
}

func (s *server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	d := domainFrom(r)
	var rec registry.Record
	if !decodeJSON(w, r, &rec) {
		return
	}

	var created registry.Record
	data, err := s.service.Update(r.Context(), d, func(data *registry.DomainData) error {
		created = data.AddRecord(rec)
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, data.Tariffs(d).Price([]registry.Record{created})[0])
}

func (s *server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	d := domainFrom(r)
	id, ok := pathID(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid record id")
		return
	}
	var rec registry.Record
	if !decodeJSON(w, r, &rec) {
		return
	}
	rec.ID = id

	data, err := s.service.Update(r.Context(), d, func(data *registry.DomainData) error {
		return data.UpdateRecord(rec)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, data.Tariffs(d).Price([]registry.Record{rec})[0])
}

func (s *server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid record id")
		return
	}

	_, err := s.service.Update(r.Context(), domainFrom(r), func(data *registry.DomainData) error {
		return data.DeleteRecord(id)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type bulkDeleteRequest struct {
	IDs []int64 `json:"ids"`
}

func (s *server) handleBulkDeleteRecords(w http.ResponseWriter, r *http.Request) {
	var req bulkDeleteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var deleted int
	_, err := s.service.Update(r.Context(), domainFrom(r), func(data *registry.DomainData) error {
		deleted = data.DeleteRecords(req.IDs)
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}

// handleCost prices an unsaved record, for live previews while editing.
func (s *server) handleCost(w http.ResponseWriter, r *http.Request) {
	d := domainFrom(r)
	var rec registry.Record
	if !decodeJSON(w, r, &rec) {
		return
	}

	data, err := s.service.Data(r.Context(), d)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCostView(data.Tariffs(d).Cost(rec)))
}

func (s *server) handleRecordOrder(w http.ResponseWriter, r *http.Request) {
	d := domainFrom(r)
	id, ok := pathID(r)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "invalid record id")
		return
	}

	data, err := s.service.Data(r.Context(), d)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rec, err := data.Record(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	firm, found := data.FirmByName(rec.CompanyName)
	if !found {
		firm = registry.Firm{Name: rec.CompanyName}
	}
	writeText(w, report.Order(d, rec, firm, data.Tariffs(d).Cost(rec)))
}
