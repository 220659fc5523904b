package registry

import (
	"math"
	"testing"
)

func certificateData() DomainData {
	return DomainData{
		GeneralSettings: GeneralSettings{
			Urgency:                                  150,
			AdditionalPageCost:                       245,
			FullyProducedUpTo20PagesCost:             600,
			FullyProducedAdditionalPositionCost:      75,
			SufficientProcessingFrom21To200PagesCost: 1050,
			SufficientProcessingAdditionalPosCost:    85,
		},
		Records: []Record{
			{
				ID: 101, RegistrationNumber: "C-101", Expert: "Дан Т.О.", Status: StatusDone,
				EndDate: "2025-11-06", Units: 2, Positions: 5, Pages: 18, AdditionalPages: 2,
				ProductionType: "fully_produced", CertificateServiceType: ServiceStandard,
			},
			{
				ID: 102, RegistrationNumber: "C-102", Expert: "Гомба Ю.В.", Status: StatusNotDone,
				EndDate: "2025-11-08", Units: 1, Positions: 12, Pages: 25, Urgency: true,
				ProductionType: "sufficient_processing",
			},
		},
	}
}

func TestStats(t *testing.T) {
	data := certificateData()
	plan := MonthlyPlan{
		TotalPlan: 4130,
		ExpertPlans: []ExpertPlan{
			{Name: "Дан Т.О.", PlanAmount: 1000},
			{Name: "Гомба Ю.В.", PlanAmount: 25000},
			{Name: "Палчей Я.В."},
		},
	}

	stats := data.Tariffs(Certificates).Stats(data.Records, data.Records, plan)

	if stats.Total != 2 || stats.Done != 1 || stats.NotDone != 1 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.LastRegistration != "C-102" {
		t.Fatalf("last registration = %q", stats.LastRegistration)
	}

	urgent := (1050 + 12*85) * 2.5
	if math.Abs(stats.SumWithoutDiscount-(2065+urgent)) > 1e-9 {
		t.Fatalf("sumWithoutDiscount = %v", stats.SumWithoutDiscount)
	}
	if stats.SumWithDiscount != stats.SumWithoutDiscount {
		t.Fatalf("certificate sums must match: %+v", stats)
	}
	if stats.CompletedSum != 2065 {
		t.Fatalf("completedSum = %v, want 2065", stats.CompletedSum)
	}
	if math.Abs(stats.PlanPercent-50) > 1e-9 {
		t.Fatalf("planPercent = %v, want 50", stats.PlanPercent)
	}

	if len(stats.Experts) != 3 {
		t.Fatalf("expected 3 expert lines, got %+v", stats.Experts)
	}
	if stats.Experts[0].Percent != 100 {
		t.Fatalf("expert progress should cap at 100, got %v", stats.Experts[0].Percent)
	}
	if stats.Experts[1].Completed != 0 || stats.Experts[1].Percent != 0 {
		t.Fatalf("not-done records must not count: %+v", stats.Experts[1])
	}
	if stats.Experts[2].Percent != 0 {
		t.Fatalf("zero plan should report 0%%, got %v", stats.Experts[2].Percent)
	}
}

func TestStats_TariffEditAppliesRetroactively(t *testing.T) {
	data := certificateData()
	before := data.Tariffs(Certificates).Stats(data.Records, data.Records, MonthlyPlan{})

	data.GeneralSettings.FullyProducedUpTo20PagesCost = 700
	after := data.Tariffs(Certificates).Stats(data.Records, data.Records, MonthlyPlan{})

	if after.CompletedSum-before.CompletedSum != 200 {
		t.Fatalf("expected completed sum to grow by 200, got %v -> %v", before.CompletedSum, after.CompletedSum)
	}
}
