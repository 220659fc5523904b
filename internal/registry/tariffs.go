package registry

import "github.com/Simplici0/tpp-registry/internal/pricing"

// Tariffs is the pricing configuration of one domain at the moment it was
// read. It is rebuilt on every request so tariff edits apply retroactively.
type Tariffs struct {
	Domain   Domain
	Table    pricing.TierTable
	Settings pricing.Settings
}

// Tariffs builds the pricing configuration of the data of domain d.
func (d DomainData) Tariffs(domain Domain) Tariffs {
	return Tariffs{
		Domain:   domain,
		Table:    TierTable(d.CostModelTable),
		Settings: d.GeneralSettings.Pricing(domain),
	}
}

// Cost prices a single record.
func (t Tariffs) Cost(r Record) pricing.Result {
	return pricing.Calculate(r.CostCase(t.Domain), t.Table, t.Settings)
}

// PricedRecord is a record with its freshly computed totals.
type PricedRecord struct {
	Record
	SumWithoutDiscount float64 `json:"sumWithoutDiscount"`
	SumWithDiscount    float64 `json:"sumWithDiscount"`
}

// Price computes totals for every record, preserving order.
func (t Tariffs) Price(records []Record) []PricedRecord {
	priced := make([]PricedRecord, 0, len(records))
	for _, r := range records {
		result := t.Cost(r)
		priced = append(priced, PricedRecord{
			Record:             r,
			SumWithoutDiscount: result.Totals.WithoutDiscount,
			SumWithDiscount:    result.Totals.WithDiscount,
		})
	}
	return priced
}

// TierTable converts persisted rows into the pricing tariff table.
func TierTable(rows []CostModelRow) pricing.TierTable {
	table := make(pricing.TierTable, 0, len(rows))
	for _, row := range rows {
		table = append(table, pricing.TierRow{
			Models: row.Models,
			UpTo10: float64(row.UpTo10),
			UpTo20: float64(row.UpTo20),
			UpTo50: float64(row.UpTo50),
			Plus51: float64(row.Plus51),
		})
	}
	return table
}

// Pricing converts the settings of domain d. Only the sub-settings of d are
// filled.
func (g GeneralSettings) Pricing(d Domain) pricing.Settings {
	if d == Certificates {
		return pricing.Settings{Certificates: pricing.CertificateSettings{
			UrgencyPercent:     float64(g.Urgency),
			AdditionalPageCost: float64(g.AdditionalPageCost),
			ReplacementCost:    float64(g.ReplacementCost),
			ReissuanceCost:     float64(g.ReissuanceCost),
			DuplicateCost:      float64(g.DuplicateCost),
			FullyProduced: pricing.PageBandCosts{
				UpTo20Pages:        float64(g.FullyProducedUpTo20PagesCost),
				From21To200Pages:   float64(g.FullyProducedFrom21To200PagesCost),
				Plus201Pages:       float64(g.FullyProducedPlus201PagesCost),
				AdditionalPosition: float64(g.FullyProducedAdditionalPositionCost),
			},
			SufficientProcessing: pricing.PageBandCosts{
				UpTo20Pages:        float64(g.SufficientProcessingUpTo20PagesCost),
				From21To200Pages:   float64(g.SufficientProcessingFrom21To200PagesCost),
				Plus201Pages:       float64(g.SufficientProcessingPlus201PagesCost),
				AdditionalPosition: float64(g.SufficientProcessingAdditionalPosCost),
			},
		}}
	}

	return pricing.Settings{Conclusions: pricing.ConclusionSettings{
		UrgencyPercent:      float64(g.Urgency),
		DiscountPercent:     float64(g.Discount),
		ComplexityPercent:   float64(g.Complexity),
		CodeCost:            float64(g.CodeCost),
		ContractualPageCost: float64(g.ContractualPageCost),
	}}
}
