package pricing

// ProductionType classifies the origin of goods on a certificate.
type ProductionType string

const (
	FullyProduced        ProductionType = "fully_produced"
	SufficientProcessing ProductionType = "sufficient_processing"
)

// PageBandCosts are the certificate prices of one production type.
type PageBandCosts struct {
	UpTo20Pages        float64
	From21To200Pages   float64
	Plus201Pages       float64
	AdditionalPosition float64
}

// CertificateSettings are the general settings of the certificates domain.
type CertificateSettings struct {
	UrgencyPercent       float64
	AdditionalPageCost   float64
	ReplacementCost      float64
	ReissuanceCost       float64
	DuplicateCost        float64
	FullyProduced        PageBandCosts
	SufficientProcessing PageBandCosts
}

// Bands returns the page band costs for a production type. Anything other
// than fully produced goods uses the sufficient processing prices.
func (s CertificateSettings) Bands(p ProductionType) PageBandCosts {
	if p == FullyProduced {
		return s.FullyProduced
	}
	return s.SufficientProcessing
}

// CertificateService is the service sub-type of a certificate: one of
// StandardCertificate, Replacement, Reissuance or Duplicate.
type CertificateService interface {
	certificateService()
}

// StandardCertificate is priced by page count and production type.
type StandardCertificate struct {
	Pages int
}

type (
	Replacement struct{}
	Reissuance  struct{}
	Duplicate   struct{}
)

func (StandardCertificate) certificateService() {}
func (Replacement) certificateService()         {}
func (Reissuance) certificateService()          {}
func (Duplicate) certificateService()           {}

// CertificateCase is the billing view of a certificate of origin.
type CertificateCase struct {
	QuickRegistration bool
	Urgent            bool
	Production        ProductionType
	Service           CertificateService
	// Units of zero are billed as one.
	Units           int
	Positions       int
	AdditionalPages int
}

func (c CertificateCase) quick() bool { return c.QuickRegistration }

// CalculateCertificate prices a certificate. Certificates have no discount,
// so both totals are always equal.
func CalculateCertificate(c CertificateCase, s CertificateSettings) Result {
	if c.QuickRegistration {
		return zeroResult()
	}

	urgency := 1.0
	if c.Urgent {
		urgency = 1.0 + percent(s.UrgencyPercent)
	}
	bands := s.Bands(c.Production)

	var mainCost float64
	switch svc := c.Service.(type) {
	case Replacement:
		mainCost = s.ReplacementCost
	case Reissuance:
		mainCost = s.ReissuanceCost
	case Duplicate:
		mainCost = s.DuplicateCost
	case StandardCertificate:
		mainCost = bands.mainCost(svc.Pages)
	}

	units := c.Units
	if units == 0 {
		units = 1
	}

	positionsCost := float64(c.Positions) * bands.AdditionalPosition
	pagesCost := float64(c.AdditionalPages) * s.AdditionalPageCost

	result := zeroResult()
	result.Certificate = CertificateBreakdown{
		MainCertCost:              mainCost,
		PositionsCost:             positionsCost,
		AdditionalPagesCost:       pagesCost,
		UrgentMainCertCost:        mainCost * float64(units) * urgency,
		UrgentPositionsCost:       positionsCost * urgency,
		UrgentAdditionalPagesCost: pagesCost * urgency,
		UrgencyMultiplier:         urgency,
	}

	total := result.Certificate.UrgentMainCertCost +
		result.Certificate.UrgentPositionsCost +
		result.Certificate.UrgentAdditionalPagesCost
	result.Totals = Totals{WithoutDiscount: total, WithDiscount: total}
	return result
}

// mainCost returns the band price for a page count; no band matches zero or
// negative pages.
func (b PageBandCosts) mainCost(pages int) float64 {
	switch {
	case pages <= 0:
		return 0
	case pages <= 20:
		return b.UpTo20Pages
	case pages <= 200:
		return b.From21To200Pages
	default:
		return b.Plus201Pages
	}
}
