package report

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/tpp-registry/internal/registry"
)

func conclusionTariffs() registry.Tariffs {
	data := registry.DomainData{
		CostModelTable: []registry.CostModelRow{
			{ID: 3, Models: 3, UpTo10: 1340, UpTo20: 1400, UpTo50: 1460, Plus51: 1490},
		},
		GeneralSettings: registry.GeneralSettings{
			Urgency:             100,
			CodeCost:            180,
			Discount:            10,
			Complexity:          30,
			ContractualPageCost: 1560,
		},
	}
	return data.Tariffs(registry.Conclusions)
}

func certificateTariffs() registry.Tariffs {
	data := registry.DomainData{
		GeneralSettings: registry.GeneralSettings{
			Urgency:                             150,
			AdditionalPageCost:                  245,
			FullyProducedUpTo20PagesCost:        600,
			FullyProducedFrom21To200PagesCost:   950,
			FullyProducedPlus201PagesCost:       1400,
			FullyProducedAdditionalPositionCost: 75,
		},
	}
	return data.Tariffs(registry.Certificates)
}

func testFirm() registry.Firm {
	return registry.Firm{
		ID:           1,
		Name:         "ТОВ \"Флоріан Шуз\"",
		Address:      "м. Київ, вул. Січових Стрільців, 4",
		DirectorName: "Петренко О.",
		EDRPOU:       "12345678",
		TaxNumber:    "123456789012",
		ProductName:  "Взуття",
	}
}

func wantMoney(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if got.StringFixed(2) != want {
		t.Fatalf("%s = %s, want %s", name, got.StringFixed(2), want)
	}
}

func TestMoneyRoundsHalfAwayFromZero(t *testing.T) {
	wantMoney(t, "0.125", Money(0.125), "0.13")
	wantMoney(t, "-0.125", Money(-0.125), "-0.13")
	wantMoney(t, "4399.2", Money(4399.2), "4399.20")
}

func TestVAT(t *testing.T) {
	vat, total := VAT(decimal.RequireFromString("4399.20"))
	wantMoney(t, "vat", vat, "879.84")
	wantMoney(t, "total", total, "5279.04")
}

func TestFormatMoneyLocal(t *testing.T) {
	cases := map[string]string{
		"0":        "0,00",
		"999.5":    "999,50",
		"4399.2":   "4 399,20",
		"1234567":  "1 234 567,00",
		"-2065.01": "-2 065,01",
	}
	for in, want := range cases {
		if got := formatMoneyLocal(decimal.RequireFromString(in)); got != want {
			t.Fatalf("formatMoneyLocal(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestNewOrder_ConclusionUsesDiscountedVATBase(t *testing.T) {
	tariffs := conclusionTariffs()
	r := registry.Record{
		RegistrationNumber: "864",
		Expert:             "Коваленко",
		StartDate:          "2025-06-03",
		Units:              1,
		Models:             3,
		Positions:          10,
		Codes:              3,
		Complexity:         true,
		Urgency:            true,
		Discount:           registry.DiscountSelected,
	}

	doc := NewOrder(registry.Conclusions, r, testFirm(), tariffs.Cost(r))

	if doc.Number != "Д-864" {
		t.Fatalf("number = %q, want Д-864", doc.Number)
	}
	if doc.Date != "03.06.2025" {
		t.Fatalf("date = %q, want 03.06.2025", doc.Date)
	}
	wantMoney(t, "without", doc.Without, "4888.00")
	wantMoney(t, "with", doc.With, "4399.20")
	wantMoney(t, "vatBase", doc.VATBase, "4399.20")
	wantMoney(t, "vat", doc.VAT, "879.84")
	wantMoney(t, "total", doc.Total, "5279.04")

	if len(doc.Lines) != 4 {
		t.Fatalf("expected model, codes, complexity and urgency lines, got %+v", doc.Lines)
	}
	wantMoney(t, "model line", doc.Lines[0].WithoutDiscount, "1340.00")
	wantMoney(t, "model line discounted", doc.Lines[0].WithDiscount, "1206.00")
	wantMoney(t, "codes line", doc.Lines[1].WithoutDiscount, "540.00")
	wantMoney(t, "complexity line", doc.Lines[2].WithoutDiscount, "564.00")
	wantMoney(t, "urgency line", doc.Lines[3].WithoutDiscount, "2444.00")

	text := doc.Text()
	for _, want := range []string{"НАРЯД №Д-864", "12345678", "ПДВ, 20%", "5279.04", "Петренко О."} {
		if !strings.Contains(text, want) {
			t.Fatalf("order text missing %q:\n%s", want, text)
		}
	}
}

func TestNewOrder_ContractualLines(t *testing.T) {
	tariffs := conclusionTariffs()
	r := registry.Record{RegistrationNumber: "870", ConclusionType: registry.ConclusionContractual, Pages: 2, Codes: 1}

	doc := NewOrder(registry.Conclusions, r, testFirm(), tariffs.Cost(r))

	if len(doc.Lines) != 2 {
		t.Fatalf("expected page and code lines, got %+v", doc.Lines)
	}
	wantMoney(t, "pages", doc.Lines[0].WithoutDiscount, "3120.00")
	wantMoney(t, "codes", doc.Lines[1].WithoutDiscount, "180.00")
	wantMoney(t, "vat", doc.VAT, "660.00")
}

func TestNewOrder_CertificateUsesFullVATBase(t *testing.T) {
	tariffs := certificateTariffs()
	r := registry.Record{
		RegistrationNumber: "C-101",
		StartDate:          "2025-06-10",
		CertificateForm:    "СТ-1",
		ProductionType:     "fully_produced",
		Pages:              18,
		Units:              2,
		Positions:          5,
		AdditionalPages:    2,
	}

	doc := NewOrder(registry.Certificates, r, testFirm(), tariffs.Cost(r))

	if doc.Number != "C-101" {
		t.Fatalf("number = %q, want C-101", doc.Number)
	}
	wantMoney(t, "without", doc.Without, "2065.00")
	wantMoney(t, "vatBase", doc.VATBase, "2065.00")
	wantMoney(t, "vat", doc.VAT, "413.00")
	wantMoney(t, "total", doc.Total, "2478.00")
	if len(doc.Lines) != 3 {
		t.Fatalf("expected main, positions and pages lines, got %+v", doc.Lines)
	}

	text := Order(registry.Certificates, r, testFirm(), tariffs.Cost(r))
	if !strings.Contains(text, "Форма: СТ-1") || !strings.Contains(text, "2478.00") {
		t.Fatalf("unexpected certificate order:\n%s", text)
	}
}

func TestMonthly_GroupsByExpertAndFirm(t *testing.T) {
	tariffs := conclusionTariffs()
	base := registry.Record{Models: 3, Positions: 10, Status: registry.StatusDone}
	rec := func(id int64, expert, company, end string, discounted bool) registry.Record {
		r := base
		r.ID = id
		r.RegistrationNumber = "Д-" + string(rune('0'+id))
		r.Expert = expert
		r.CompanyName = company
		r.EndDate = end
		if discounted {
			r.Discount = registry.DiscountSelected
		}
		return r
	}
	records := []registry.Record{
		rec(1, "Шевченко", "Бета", "2025-06-20", false),
		rec(2, "Коваленко", "Альфа", "2025-06-05", true),
		rec(3, "Коваленко", "Альфа", "2025-06-01", false),
		rec(4, "Коваленко", "Гама", "2025-07-01", false),
	}
	plan := registry.MonthlyPlan{
		TotalPlan:   5000,
		ExpertPlans: []registry.ExpertPlan{{ID: 1, Name: "Коваленко", PlanAmount: 2000}},
	}

	m, err := Monthly(tariffs, "2025-06", records, plan)
	if err != nil {
		t.Fatalf("Monthly: %v", err)
	}

	if m.Title != "ЗВІТ ЕКСПЕРТИЗИ ЗА ЧЕРВЕНЬ 2025 РІК" {
		t.Fatalf("title = %q", m.Title)
	}
	if len(m.Experts) != 2 || m.Experts[0].Name != "Коваленко" || m.Experts[1].Name != "Шевченко" {
		t.Fatalf("unexpected expert grouping: %+v", m.Experts)
	}

	k := m.Experts[0]
	if len(k.Firms) != 1 || len(k.Firms[0].Entries) != 2 {
		t.Fatalf("july record must be excluded and june ones grouped: %+v", k.Firms)
	}
	if k.Firms[0].Entries[0].EndDate != "01.06.2025" || k.Firms[0].Entries[0].Number != "3" {
		t.Fatalf("entries should be sorted by end date: %+v", k.Firms[0].Entries)
	}
	wantMoney(t, "expert sum", k.Sum, "2546.00")
	if k.Units != 2 {
		t.Fatalf("conclusions count one unit per record, got %d", k.Units)
	}
	if k.Percent != 100 {
		t.Fatalf("percent = %v, want capped 100", k.Percent)
	}
	if m.Experts[1].Percent != 0 {
		t.Fatalf("expert without plan should have 0%%, got %v", m.Experts[1].Percent)
	}
	wantMoney(t, "grand total", m.Sum, "3886.00")
	if m.Units != 3 {
		t.Fatalf("units = %d, want 3", m.Units)
	}

	text := m.Text()
	for _, want := range []string{"Всього: Коваленко", "2 546,00", "РАЗОМ", "3 886,00"} {
		if !strings.Contains(text, want) {
			t.Fatalf("report text missing %q:\n%s", want, text)
		}
	}
}

func TestMonthly_CertificatesCountUnits(t *testing.T) {
	tariffs := certificateTariffs()
	records := []registry.Record{{
		ID:                 1,
		RegistrationNumber: "C-101",
		Expert:             "Мельник",
		CompanyName:        "Альфа",
		EndDate:            "2025-06-10",
		ProductionType:     "fully_produced",
		Pages:              18,
		Units:              2,
		Positions:          5,
		AdditionalPages:    2,
	}}

	m, err := Monthly(tariffs, "2025-06", records, registry.MonthlyPlan{})
	if err != nil {
		t.Fatalf("Monthly: %v", err)
	}
	if m.Title != "ЗВІТ СЕРТИФІКАТІВ ЗА ЧЕРВЕНЬ 2025 РІК" {
		t.Fatalf("title = %q", m.Title)
	}
	if m.Units != 2 {
		t.Fatalf("units = %d, want 2", m.Units)
	}
	wantMoney(t, "sum", m.Sum, "2065.00")
}

func TestMonthly_RejectsInvalidMonth(t *testing.T) {
	if _, err := Monthly(conclusionTariffs(), "June", nil, registry.MonthlyPlan{}); err == nil {
		t.Fatalf("expected error for invalid month")
	}
}
