package registry

import (
	"sort"
	"time"
)

const monthLayout = "2006-01"

// ValidateMonth checks a YYYY-MM month key.
func ValidateMonth(month string) error {
	if _, err := time.Parse(monthLayout, month); err != nil {
		return ErrInvalidMonth
	}
	return nil
}

// Plan returns the plan of month, or an empty plan when none is set.
func (d DomainData) Plan(month string) MonthlyPlan {
	plan, ok := d.MonthlyPlans[month]
	if !ok {
		return MonthlyPlan{ExpertPlans: []ExpertPlan{}}
	}
	return plan
}

// SetPlan stores the plan of month.
func (d *DomainData) SetPlan(month string, plan MonthlyPlan) error {
	if err := ValidateMonth(month); err != nil {
		return err
	}
	if d.MonthlyPlans == nil {
		d.MonthlyPlans = make(map[string]MonthlyPlan)
	}
	if plan.ExpertPlans == nil {
		plan.ExpertPlans = []ExpertPlan{}
	}
	d.MonthlyPlans[month] = plan
	return nil
}

// Months lists months with a plan, newest first.
func (d DomainData) Months() []string {
	months := make([]string, 0, len(d.MonthlyPlans))
	for month := range d.MonthlyPlans {
		months = append(months, month)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

// CurrentMonth picks the month to show by default: the newest planned month
// across both domains, or the month of now when nothing is planned.
func (a AppData) CurrentMonth(now time.Time) string {
	months := append(a.Conclusions.Months(), a.Certificates.Months()...)
	if len(months) == 0 {
		return now.Format(monthLayout)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months[0]
}
