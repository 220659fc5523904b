package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/tpp-registry/internal/registry"
	"github.com/Simplici0/tpp-registry/internal/report"
)

func (s *server) handleStats(w http.ResponseWriter, r *http.Request) {
	d := domainFrom(r)
	data, err := s.service.Data(r.Context(), d)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	month := q.Get("month")
	plan := registry.MonthlyPlan{}
	if month != "" {
		if err := registry.ValidateMonth(month); err != nil {
			s.writeError(w, r, err)
			return
		}
		plan = data.Plan(month)
	}

	records := registry.FilterRecords(data.Records, q.Get("expert"), month)
	writeJSON(w, http.StatusOK, data.Tariffs(d).Stats(data.Records, records, plan))
}

func (s *server) handleReport(w http.ResponseWriter, r *http.Request) {
	d := domainFrom(r)
	data, err := s.service.Data(r.Context(), d)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	month := r.URL.Query().Get("month")
	m, err := report.Monthly(data.Tariffs(d), month, data.Records, data.Plan(month))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeText(w, m.Text())
}

func (s *server) handleExperts(w http.ResponseWriter, r *http.Request) {
	data, err := s.service.Data(r.Context(), domainFrom(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, data.Experts())
}

type plansResponse struct {
	Current string                          `json:"current"`
	Months  []string                        `json:"months"`
	Plans   map[string]registry.MonthlyPlan `json:"plans"`
}

func (s *server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	app, err := s.service.AppData(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data := app.Domain(domainFrom(r))
	writeJSON(w, http.StatusOK, plansResponse{
		Current: app.CurrentMonth(time.Now()),
		Months:  data.Months(),
		Plans:   data.MonthlyPlans,
	})
}

func (s *server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")
	if err := registry.ValidateMonth(month); err != nil {
		s.writeError(w, r, err)
		return
	}

	data, err := s.service.Data(r.Context(), domainFrom(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, data.Plan(month))
}

func (s *server) handlePutPlan(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")
	var plan registry.MonthlyPlan
	if !decodeJSON(w, r, &plan) {
		return
	}

	data, err := s.service.Update(r.Context(), domainFrom(r), func(data *registry.DomainData) error {
		return data.SetPlan(month, plan)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, data.Plan(month))
}
