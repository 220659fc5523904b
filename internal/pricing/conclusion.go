package pricing

// ConclusionSettings are the general settings of the conclusions domain.
// Percentages are expressed as 0-100.
type ConclusionSettings struct {
	UrgencyPercent      float64
	DiscountPercent     float64
	ComplexityPercent   float64
	CodeCost            float64
	ContractualPageCost float64
}

// ConclusionTariff is the active tariff branch of a conclusion: one of
// StandardConclusion, ContractualConclusion or CustomCostConclusion.
type ConclusionTariff interface {
	conclusionTariff()
}

// StandardConclusion is priced from the tariff table.
type StandardConclusion struct {
	Models    int
	Positions int
	Codes     int
	Complex   bool
}

// ContractualConclusion is priced per page plus per code.
type ContractualConclusion struct {
	Pages int
	Codes int
}

// CustomCostConclusion carries a manually agreed amount.
type CustomCostConclusion struct {
	Cost float64
}

func (StandardConclusion) conclusionTariff()    {}
func (ContractualConclusion) conclusionTariff() {}
func (CustomCostConclusion) conclusionTariff()  {}

// ConclusionCase is the billing view of an expert conclusion.
type ConclusionCase struct {
	QuickRegistration bool
	Urgent            bool
	Discounted        bool
	Tariff            ConclusionTariff
}

func (c ConclusionCase) quick() bool { return c.QuickRegistration }

// CalculateConclusion prices a conclusion. A nil tariff is priced as an
// empty standard conclusion.
func CalculateConclusion(c ConclusionCase, table TierTable, s ConclusionSettings) Result {
	if c.QuickRegistration {
		return zeroResult()
	}

	result := zeroResult()
	discount := 1.0
	if c.Discounted {
		discount = 1.0 - percent(s.DiscountPercent)
	}
	result.Conclusion.DiscountMultiplier = discount

	switch t := c.Tariff.(type) {
	case CustomCostConclusion:
		result.Totals.WithoutDiscount = t.Cost

	case ContractualConclusion:
		pageCost := float64(t.Pages) * s.ContractualPageCost
		codeCost := float64(t.Codes) * s.CodeCost
		result.Conclusion.PageCost = pageCost
		result.Conclusion.CodeCost = codeCost
		result.Totals.WithoutDiscount = pageCost + codeCost

	default:
		std, _ := c.Tariff.(StandardConclusion)
		row, ok := table.Lookup(std.Models)
		if !ok {
			return zeroResult()
		}

		modelCost := row.PriceFor(std.Positions)
		codeCost := float64(std.Codes) * s.CodeCost
		base := modelCost + codeCost

		total := base
		var complexityCost, urgencyCost float64
		if std.Complex {
			complexityCost = base * percent(s.ComplexityPercent)
			total += complexityCost
		}
		// Urgency compounds on the complexity-adjusted subtotal.
		if c.Urgent {
			urgencyCost = total * percent(s.UrgencyPercent)
			total += urgencyCost
		}

		result.Conclusion.ModelCost = modelCost
		result.Conclusion.CodeCost = codeCost
		result.Conclusion.ComplexityCost = complexityCost
		result.Conclusion.UrgencyCost = urgencyCost
		result.Totals.WithoutDiscount = total
	}

	result.Totals.WithDiscount = result.Totals.WithoutDiscount * discount
	return result
}
