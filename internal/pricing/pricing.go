// Package pricing computes service fees for expert conclusions and
// certificates of origin from tariff tables and per-domain settings.
//
// Every function here is pure: nothing is cached, nothing is logged and no
// input is ever mutated, so callers recompute amounts on every render.
package pricing

// Case is a billable unit normalized into its tariff branch. It is
// implemented by ConclusionCase and CertificateCase only.
type Case interface {
	quick() bool
}

// Settings holds the general settings of both domains. Each domain keeps its
// own instance; they are never merged.
type Settings struct {
	Conclusions  ConclusionSettings
	Certificates CertificateSettings
}

// Totals contains the roll-up values of a calculation.
type Totals struct {
	WithoutDiscount float64
	WithDiscount    float64
}

// ConclusionBreakdown contains the line items of a conclusion calculation.
type ConclusionBreakdown struct {
	ModelCost          float64
	CodeCost           float64
	ComplexityCost     float64
	UrgencyCost        float64
	PageCost           float64
	DiscountMultiplier float64
}

// CertificateBreakdown contains the line items of a certificate calculation.
type CertificateBreakdown struct {
	MainCertCost              float64
	PositionsCost             float64
	AdditionalPagesCost       float64
	UrgentMainCertCost        float64
	UrgentPositionsCost       float64
	UrgentAdditionalPagesCost float64
	UrgencyMultiplier         float64
}

// Result groups the full pricing output. Only the breakdown of the case's
// domain is populated; the other keeps neutral multipliers.
type Result struct {
	Conclusion  ConclusionBreakdown
	Certificate CertificateBreakdown
	Totals      Totals
}

func zeroResult() Result {
	return Result{
		Conclusion:  ConclusionBreakdown{DiscountMultiplier: 1},
		Certificate: CertificateBreakdown{UrgencyMultiplier: 1},
	}
}

// Calculate dispatches c to the calculation of its domain.
func Calculate(c Case, table TierTable, settings Settings) Result {
	switch v := c.(type) {
	case ConclusionCase:
		return CalculateConclusion(v, table, settings.Conclusions)
	case CertificateCase:
		return CalculateCertificate(v, settings.Certificates)
	default:
		return zeroResult()
	}
}

func percent(p float64) float64 {
	return p / 100.0
}
