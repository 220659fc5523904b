package registry

import "math"

// ExpertProgress is an expert's completed amount against their quota.
type ExpertProgress struct {
	Name      string  `json:"name"`
	Plan      float64 `json:"plan"`
	Completed float64 `json:"completed"`
	Percent   float64 `json:"percent"`
}

// Statistics summarizes a set of records against a monthly plan.
type Statistics struct {
	Total              int              `json:"total"`
	Done               int              `json:"done"`
	NotDone            int              `json:"notDone"`
	LastRegistration   string           `json:"lastRegistrationNumber"`
	SumWithoutDiscount float64          `json:"sumWithoutDiscount"`
	SumWithDiscount    float64          `json:"sumWithDiscount"`
	CompletedSum       float64          `json:"completedSum"`
	TotalPlan          float64          `json:"totalPlan"`
	PlanPercent        float64          `json:"planPercent"`
	Experts            []ExpertProgress `json:"experts"`
}

// Stats computes statistics over records (already filtered by the caller)
// against plan. Completed amounts count only done records, after discount.
// The registration number is taken from all records of the domain.
func (t Tariffs) Stats(all, records []Record, plan MonthlyPlan) Statistics {
	stats := Statistics{
		Total:            len(records),
		LastRegistration: LastRegistrationNumber(all),
		TotalPlan:        float64(plan.TotalPlan),
		Experts:          make([]ExpertProgress, 0, len(plan.ExpertPlans)),
	}

	completedBy := make(map[string]float64)
	for _, r := range records {
		result := t.Cost(r)
		stats.SumWithoutDiscount += result.Totals.WithoutDiscount
		stats.SumWithDiscount += result.Totals.WithDiscount

		switch r.Status {
		case StatusDone:
			stats.Done++
			stats.CompletedSum += result.Totals.WithDiscount
			completedBy[r.Expert] += result.Totals.WithDiscount
		case StatusNotDone:
			stats.NotDone++
		}
	}
	stats.PlanPercent = PlanPercent(stats.CompletedSum, stats.TotalPlan)

	for _, p := range plan.ExpertPlans {
		amount := float64(p.PlanAmount)
		stats.Experts = append(stats.Experts, ExpertProgress{
			Name:      p.Name,
			Plan:      amount,
			Completed: completedBy[p.Name],
			Percent:   PlanPercent(completedBy[p.Name], amount),
		})
	}
	return stats
}

// PlanPercent is completed/plan as a percentage capped at 100; zero without a
// plan.
func PlanPercent(completed, plan float64) float64 {
	if plan <= 0 {
		return 0
	}
	return math.Min(completed/plan*100, 100)
}
