// Package report renders plain-text order documents and monthly reports.
// Money is rounded half away from zero to kopecks.
package report

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// VATPercent is the value added tax charged on top of every order.
	VATPercent = 20

	dateLayout  = "2006-01-02"
	printLayout = "02.01.2006"
)

var vatRate = decimal.New(VATPercent, -2)

// Money rounds an amount to two decimals.
func Money(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(2)
}

// VAT returns the tax charged on base and the total including it.
func VAT(base decimal.Decimal) (vat, total decimal.Decimal) {
	base = base.Round(2)
	vat = base.Mul(vatRate).Round(2)
	return vat, base.Add(vat)
}

// formatMoney prints an amount with a dot separator, as on orders.
func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// formatMoneyLocal prints an amount the Ukrainian way: space grouped
// thousands and a decimal comma.
func formatMoneyLocal(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "," + frac
}

// formatDate turns a YYYY-MM-DD date into DD.MM.YYYY; other input is
// returned unchanged.
func formatDate(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(printLayout)
}
