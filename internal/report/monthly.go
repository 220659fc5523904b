package report

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/tpp-registry/internal/registry"
)

var monthNames = [...]string{
	"СІЧЕНЬ", "ЛЮТИЙ", "БЕРЕЗЕНЬ", "КВІТЕНЬ", "ТРАВЕНЬ", "ЧЕРВЕНЬ",
	"ЛИПЕНЬ", "СЕРПЕНЬ", "ВЕРЕСЕНЬ", "ЖОВТЕНЬ", "ЛИСТОПАД", "ГРУДЕНЬ",
}

// Entry is one record of a monthly report.
type Entry struct {
	Number  string
	Units   int
	EndDate string
	Sum     decimal.Decimal
}

// FirmGroup collects an expert's records for one company.
type FirmGroup struct {
	Name    string
	Entries []Entry
	Units   int
	Sum     decimal.Decimal
}

// ExpertGroup collects the records of one expert.
type ExpertGroup struct {
	Name    string
	Firms   []FirmGroup
	Units   int
	Sum     decimal.Decimal
	Plan    decimal.Decimal
	Percent float64
}

// MonthlyReport is the per-expert breakdown of one month.
type MonthlyReport struct {
	Title   string
	Month   string
	Experts []ExpertGroup
	Units   int
	Sum     decimal.Decimal
}

// Monthly builds the report of month from all records of a domain. Conclusions
// are reported after discount and count one unit per record; certificates
// are reported at full price and count their units.
func Monthly(t registry.Tariffs, month string, records []registry.Record, plan registry.MonthlyPlan) (MonthlyReport, error) {
	if err := registry.ValidateMonth(month); err != nil {
		return MonthlyReport{}, err
	}
	m, _ := time.Parse("2006-01", month)

	kind := "ЕКСПЕРТИЗИ"
	if t.Domain == registry.Certificates {
		kind = "СЕРТИФІКАТІВ"
	}
	report := MonthlyReport{
		Title: fmt.Sprintf("ЗВІТ %s ЗА %s %d РІК", kind, monthNames[m.Month()-1], m.Year()),
		Month: month,
		Sum:   decimal.Zero,
	}

	selected := registry.FilterRecords(records, registry.AllExperts, month)
	slices.SortStableFunc(selected, func(a, b registry.Record) int {
		return cmp.Or(
			cmp.Compare(a.Expert, b.Expert),
			cmp.Compare(a.CompanyName, b.CompanyName),
			cmp.Compare(a.EndDate, b.EndDate),
		)
	})

	planned := make(map[string]float64, len(plan.ExpertPlans))
	for _, p := range plan.ExpertPlans {
		planned[p.Name] += float64(p.PlanAmount)
	}

	for _, r := range selected {
		totals := t.Cost(r).Totals
		sum := Money(totals.WithDiscount)
		units := 1
		if t.Domain == registry.Certificates {
			sum = Money(totals.WithoutDiscount)
			units = r.Units
		}

		if n := len(report.Experts); n == 0 || report.Experts[n-1].Name != r.Expert {
			report.Experts = append(report.Experts, ExpertGroup{
				Name: r.Expert,
				Sum:  decimal.Zero,
				Plan: Money(planned[r.Expert]),
			})
		}
		expert := &report.Experts[len(report.Experts)-1]

		if n := len(expert.Firms); n == 0 || expert.Firms[n-1].Name != r.CompanyName {
			expert.Firms = append(expert.Firms, FirmGroup{Name: r.CompanyName, Sum: decimal.Zero})
		}
		firm := &expert.Firms[len(expert.Firms)-1]

		firm.Entries = append(firm.Entries, Entry{
			Number:  registry.RegistrationDigits(r.RegistrationNumber),
			Units:   units,
			EndDate: formatDate(r.EndDate),
			Sum:     sum,
		})
		firm.Units += units
		firm.Sum = firm.Sum.Add(sum)
		expert.Units += units
		expert.Sum = expert.Sum.Add(sum)
		report.Units += units
		report.Sum = report.Sum.Add(sum)
	}

	for i := range report.Experts {
		e := &report.Experts[i]
		e.Percent = registry.PlanPercent(e.Sum.InexactFloat64(), e.Plan.InexactFloat64())
	}
	return report, nil
}

// Text renders the report.
func (m MonthlyReport) Text() string {
	var b strings.Builder
	b.WriteString(m.Title)
	b.WriteString("\n\n")

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Фірма\tНомер\tКількість\tДата\tСума\t")
	for _, e := range m.Experts {
		for _, f := range e.Firms {
			for i, entry := range f.Entries {
				name := ""
				if i == 0 {
					name = f.Name
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t\n",
					name, entry.Number, entry.Units, entry.EndDate, formatMoneyLocal(entry.Sum))
			}
			if len(f.Entries) > 1 {
				fmt.Fprintf(tw, "  разом\t\t%d\t\t%s\t\n", f.Units, formatMoneyLocal(f.Sum))
			}
		}
		fmt.Fprintf(tw, "Всього: %s\t\t%d\t\t%s\t\n", e.Name, e.Units, formatMoneyLocal(e.Sum))
		if e.Plan.IsPositive() {
			fmt.Fprintf(tw, "  план\t\t\t\t%s (%.1f%%)\t\n", formatMoneyLocal(e.Plan), e.Percent)
		}
	}
	fmt.Fprintf(tw, "РАЗОМ\t\t%d\t\t%s\t\n", m.Units, formatMoneyLocal(m.Sum))
	_ = tw.Flush()
	return b.String()
}
