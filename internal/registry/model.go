package registry

import "github.com/Simplici0/tpp-registry/internal/pricing"

const (
	StatusDone    = "Виконано"
	StatusNotDone = "Не виконано"

	// DiscountSelected is the discount selector value that applies the
	// conclusion discount.
	DiscountSelected = "Зі знижкою"
)

// Conclusion tariff branches.
const (
	ConclusionStandard    = "standard"
	ConclusionContractual = "contractual"
	ConclusionCustomCost  = "custom_cost"
)

// Certificate service sub-types.
const (
	ServiceStandard    = "standard"
	ServiceReplacement = "replacement"
	ServiceReissuance  = "reissuance"
	ServiceDuplicate   = "duplicate"
)

// Record is a registered case as persisted. Billing fields of inactive
// branches are expected to be zero.
type Record struct {
	ID                     int64  `json:"id"`
	RegistrationNumber     string `json:"registrationNumber"`
	Expert                 string `json:"expert"`
	Status                 string `json:"status"`
	StartDate              string `json:"startDate"`
	EndDate                string `json:"endDate"`
	CompanyName            string `json:"companyName"`
	Comment                string `json:"comment"`
	ActNumber              string `json:"actNumber,omitempty"`
	IsQuickRegistration    bool   `json:"isQuickRegistration,omitempty"`
	Units                  int    `json:"units"`
	Positions              int    `json:"positions"`
	Urgency                bool   `json:"urgency"`
	Models                 int    `json:"models,omitempty"`
	Codes                  int    `json:"codes,omitempty"`
	Complexity             bool   `json:"complexity,omitempty"`
	Discount               string `json:"discount,omitempty"`
	ConclusionType         string `json:"conclusionType,omitempty"`
	CustomCost             Amount `json:"customCost,omitempty"`
	CertificateForm        string `json:"certificateForm,omitempty"`
	Pages                  int    `json:"pages,omitempty"`
	AdditionalPages        int    `json:"additionalPages,omitempty"`
	ProductionType         string `json:"productionType,omitempty"`
	CertificateServiceType string `json:"certificateServiceType,omitempty"`
}

// Done reports whether the case is completed.
func (r Record) Done() bool {
	return r.Status == StatusDone
}

// Month returns the YYYY-MM month the record is reported in, taken from its
// end date.
func (r Record) Month() string {
	if len(r.EndDate) < 7 {
		return r.EndDate
	}
	return r.EndDate[:7]
}

// CostCase normalizes the record into the pricing branch of its domain.
// Unknown branch names are priced as the standard branch.
func (r Record) CostCase(d Domain) pricing.Case {
	if d == Certificates {
		c := pricing.CertificateCase{
			QuickRegistration: r.IsQuickRegistration,
			Urgent:            r.Urgency,
			Production:        pricing.ProductionType(r.ProductionType),
			Units:             r.Units,
			Positions:         r.Positions,
			AdditionalPages:   r.AdditionalPages,
		}
		switch r.CertificateServiceType {
		case ServiceReplacement:
			c.Service = pricing.Replacement{}
		case ServiceReissuance:
			c.Service = pricing.Reissuance{}
		case ServiceDuplicate:
			c.Service = pricing.Duplicate{}
		default:
			c.Service = pricing.StandardCertificate{Pages: r.Pages}
		}
		return c
	}

	c := pricing.ConclusionCase{
		QuickRegistration: r.IsQuickRegistration,
		Urgent:            r.Urgency,
		Discounted:        r.Discount == DiscountSelected,
	}
	switch r.ConclusionType {
	case ConclusionCustomCost:
		c.Tariff = pricing.CustomCostConclusion{Cost: float64(r.CustomCost)}
	case ConclusionContractual:
		c.Tariff = pricing.ContractualConclusion{Pages: r.Pages, Codes: r.Codes}
	default:
		c.Tariff = pricing.StandardConclusion{
			Models:    r.Models,
			Positions: r.Positions,
			Codes:     r.Codes,
			Complex:   r.Complexity,
		}
	}
	return c
}

// CostModelRow is a persisted conclusion tariff row.
type CostModelRow struct {
	ID     int64  `json:"id"`
	Models int    `json:"models"`
	UpTo10 Amount `json:"upTo10"`
	UpTo20 Amount `json:"upTo20"`
	UpTo50 Amount `json:"upTo50"`
	Plus51 Amount `json:"plus51"`
}

// GeneralSettings is the persisted settings record of one domain. Fields of
// the other domain stay zero.
type GeneralSettings struct {
	Urgency Amount `json:"urgency"`

	CodeCost            Amount `json:"codeCost,omitempty"`
	Discount            Amount `json:"discount,omitempty"`
	Complexity          Amount `json:"complexity,omitempty"`
	ContractualPageCost Amount `json:"contractualPageCost,omitempty"`

	AdditionalPageCost                       Amount `json:"additionalPageCost,omitempty"`
	ReplacementCost                          Amount `json:"replacementCost,omitempty"`
	ReissuanceCost                           Amount `json:"reissuanceCost,omitempty"`
	DuplicateCost                            Amount `json:"duplicateCost,omitempty"`
	FullyProducedUpTo20PagesCost             Amount `json:"fullyProduced_upTo20PagesCost,omitempty"`
	FullyProducedFrom21To200PagesCost        Amount `json:"fullyProduced_from21To200PagesCost,omitempty"`
	FullyProducedPlus201PagesCost            Amount `json:"fullyProduced_plus201PagesCost,omitempty"`
	FullyProducedAdditionalPositionCost      Amount `json:"fullyProduced_additionalPositionCost,omitempty"`
	SufficientProcessingUpTo20PagesCost      Amount `json:"sufficientProcessing_upTo20PagesCost,omitempty"`
	SufficientProcessingFrom21To200PagesCost Amount `json:"sufficientProcessing_from21To200PagesCost,omitempty"`
	SufficientProcessingPlus201PagesCost     Amount `json:"sufficientProcessing_plus201PagesCost,omitempty"`
	SufficientProcessingAdditionalPosCost    Amount `json:"sufficientProcessing_additionalPositionCost,omitempty"`
}

// Firm is a client company.
type Firm struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	DirectorName string `json:"directorName"`
	EDRPOU       string `json:"edrpou"`
	TaxNumber    string `json:"taxNumber"`
	ProductName  string `json:"productName"`
}

// ExpertPlan is one expert's monthly quota.
type ExpertPlan struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	PlanAmount Amount `json:"planAmount"`
}

// MonthlyPlan is the quota of a month.
type MonthlyPlan struct {
	TotalPlan   Amount       `json:"totalPlan"`
	ExpertPlans []ExpertPlan `json:"expertPlans"`
}

// DomainData is everything persisted for one domain.
type DomainData struct {
	Records         []Record               `json:"records"`
	CostModelTable  []CostModelRow         `json:"costModelTable"`
	GeneralSettings GeneralSettings        `json:"generalSettings"`
	MonthlyPlans    map[string]MonthlyPlan `json:"monthlyPlans"`
	Firms           []Firm                 `json:"firms"`
}

// Normalize replaces nil collections with empty ones so the data encodes as
// empty JSON arrays and objects.
func (d *DomainData) Normalize() {
	if d.Records == nil {
		d.Records = []Record{}
	}
	if d.CostModelTable == nil {
		d.CostModelTable = []CostModelRow{}
	}
	if d.MonthlyPlans == nil {
		d.MonthlyPlans = map[string]MonthlyPlan{}
	}
	if d.Firms == nil {
		d.Firms = []Firm{}
	}
}

// Empty reports whether nothing has been configured or registered yet.
func (d DomainData) Empty() bool {
	return len(d.Records) == 0 &&
		len(d.CostModelTable) == 0 &&
		len(d.MonthlyPlans) == 0 &&
		len(d.Firms) == 0 &&
		d.GeneralSettings == GeneralSettings{}
}

// AppData is the whole application state of both domains.
type AppData struct {
	Conclusions  DomainData `json:"conclusions"`
	Certificates DomainData `json:"certificates"`
}

// Domain returns the data of d.
func (a *AppData) Domain(d Domain) *DomainData {
	if d == Certificates {
		return &a.Certificates
	}
	return &a.Conclusions
}
