package report

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/tpp-registry/internal/pricing"
	"github.com/Simplici0/tpp-registry/internal/registry"
)

// Line is one billed service of an order.
type Line struct {
	Label           string
	WithoutDiscount decimal.Decimal
	WithDiscount    decimal.Decimal
}

// OrderDocument is a printable work order for one record.
type OrderDocument struct {
	Domain  registry.Domain
	Number  string
	Date    string
	Expert  string
	Firm    registry.Firm
	Units   int
	Form    string
	Urgent  bool
	Lines   []Line
	Without decimal.Decimal
	With    decimal.Decimal
	// VATBase is the discounted sum for conclusions and the full sum for
	// certificates, which carry no discount.
	VATBase decimal.Decimal
	VAT     decimal.Decimal
	Total   decimal.Decimal
}

// NewOrder builds the order of r priced as res.
func NewOrder(d registry.Domain, r registry.Record, firm registry.Firm, res pricing.Result) OrderDocument {
	doc := OrderDocument{
		Domain:  d,
		Number:  r.RegistrationNumber,
		Date:    formatDate(r.StartDate),
		Expert:  r.Expert,
		Firm:    firm,
		Units:   r.Units,
		Form:    r.CertificateForm,
		Urgent:  r.Urgency,
		Without: Money(res.Totals.WithoutDiscount),
		With:    Money(res.Totals.WithDiscount),
	}

	if d == registry.Certificates {
		doc.Lines = certificateLines(r, res.Certificate)
		doc.VATBase = doc.Without
	} else {
		doc.Number = "Д-" + r.RegistrationNumber
		doc.Lines = conclusionLines(r, res)
		doc.VATBase = doc.With
	}
	doc.VAT, doc.Total = VAT(doc.VATBase)
	return doc
}

// Order renders the order of r as plain text.
func Order(d registry.Domain, r registry.Record, firm registry.Firm, res pricing.Result) string {
	return NewOrder(d, r, firm, res).Text()
}

func conclusionLines(r registry.Record, res pricing.Result) []Line {
	b := res.Conclusion
	line := func(label string, amount float64) Line {
		return Line{
			Label:           label,
			WithoutDiscount: Money(amount),
			WithDiscount:    Money(amount * b.DiscountMultiplier),
		}
	}

	switch r.ConclusionType {
	case registry.ConclusionCustomCost:
		return []Line{line("Експертиза за індивідуальною вартістю", res.Totals.WithoutDiscount)}
	case registry.ConclusionContractual:
		return []Line{
			line(fmt.Sprintf("Експертиза за договором, %d стор.", r.Pages), b.PageCost),
			line(fmt.Sprintf("Підтвердження кодів згідно УКТЗЕД, %d код", r.Codes), b.CodeCost),
		}
	}

	lines := []Line{
		line(fmt.Sprintf("Експертиза товару, %d мод, %d поз", r.Models, r.Positions), b.ModelCost),
		line(fmt.Sprintf("Підтвердження кодів згідно УКТЗЕД, %d код", r.Codes), b.CodeCost),
	}
	if b.ComplexityCost > 0 {
		lines = append(lines, line("Складність", b.ComplexityCost))
	}
	if b.UrgencyCost > 0 {
		lines = append(lines, line("Терміновість", b.UrgencyCost))
	}
	return lines
}

func certificateLines(r registry.Record, b pricing.CertificateBreakdown) []Line {
	line := func(label string, amount float64) Line {
		m := Money(amount)
		return Line{Label: label, WithoutDiscount: m, WithDiscount: m}
	}

	units := r.Units
	if units == 0 {
		units = 1
	}
	lines := []Line{line(fmt.Sprintf("Сертифікат, %d од.", units), b.UrgentMainCertCost)}
	if r.Positions > 0 {
		lines = append(lines, line(fmt.Sprintf("Додаткові позиції, %d поз", r.Positions), b.UrgentPositionsCost))
	}
	if r.AdditionalPages > 0 {
		lines = append(lines, line(fmt.Sprintf("Додаткові аркуші, %d арк.", r.AdditionalPages), b.UrgentAdditionalPagesCost))
	}
	return lines
}

// Text renders the document.
func (o OrderDocument) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "НАРЯД №%s\n", o.Number)
	fmt.Fprintf(&b, "Дата видачі: %s\n", o.Date)
	fmt.Fprintf(&b, "Експерт: %s\n", o.Expert)
	fmt.Fprintf(&b, "Замовник: %s, %s\n", o.Firm.Name, o.Firm.Address)
	fmt.Fprintf(&b, "ЄДРПОУ: %s\n", o.Firm.EDRPOU)
	fmt.Fprintf(&b, "ІПН: %s\n", o.Firm.TaxNumber)
	fmt.Fprintf(&b, "Продукція: %s\n", o.Firm.ProductName)
	if o.Domain == registry.Certificates {
		fmt.Fprintf(&b, "Форма: %s\n", o.Form)
		if o.Urgent {
			b.WriteString("Тариф: терміновий\n")
		} else {
			b.WriteString("Тариф: звичайний\n")
		}
	}
	fmt.Fprintf(&b, "Кількість: %d\n\n", o.Units)

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
	if o.Domain == registry.Certificates {
		fmt.Fprintln(tw, "Послуга\tВартість\t")
		for _, l := range o.Lines {
			fmt.Fprintf(tw, "%s\t%s\t\n", l.Label, formatMoney(l.WithoutDiscount))
		}
		fmt.Fprintf(tw, "Вартість, без ПДВ\t%s\t\n", formatMoney(o.Without))
		fmt.Fprintf(tw, "ПДВ, %d%%\t%s\t\n", VATPercent, formatMoney(o.VAT))
		fmt.Fprintf(tw, "До сплати\t%s\t\n", formatMoney(o.Total))
	} else {
		fmt.Fprintln(tw, "Послуга\tБез знижки\tЗі знижкою\t")
		for _, l := range o.Lines {
			fmt.Fprintf(tw, "%s\t%s\t%s\t\n", l.Label, formatMoney(l.WithoutDiscount), formatMoney(l.WithDiscount))
		}
		fmt.Fprintf(tw, "Вартість, без ПДВ\t%s\t%s\t\n", formatMoney(o.Without), formatMoney(o.With))
		fmt.Fprintf(tw, "ПДВ, %d%%\t\t%s\t\n", VATPercent, formatMoney(o.VAT))
		fmt.Fprintf(tw, "Всього з ПДВ\t\t%s\t\n", formatMoney(o.Total))
	}
	_ = tw.Flush()

	fmt.Fprintf(&b, "\nЕксперт ____________ %s\n", o.Expert)
	fmt.Fprintf(&b, "Замовник ____________ %s\n", o.Firm.DirectorName)
	return b.String()
}
