package pricing

// TierRow is one row of the conclusion tariff table. Models is the lowest
// model count the row applies to; the four prices are banded by position
// count.
type TierRow struct {
	Models int
	UpTo10 float64
	UpTo20 float64
	UpTo50 float64
	Plus51 float64
}

// TierTable is the conclusion tariff table. Rows may be in any order and
// thresholds need not be contiguous.
type TierTable []TierRow

// Lookup returns the row for the given model count: the exact match if one
// exists, otherwise the row with the greatest threshold not above models,
// otherwise the row with the smallest threshold. It reports false only for
// an empty table.
func (t TierTable) Lookup(models int) (TierRow, bool) {
	if len(t) == 0 {
		return TierRow{}, false
	}

	for _, row := range t {
		if row.Models == models {
			return row, true
		}
	}

	var (
		below    TierRow
		hasBelow bool
		smallest = t[0]
	)
	for _, row := range t {
		if row.Models <= models && (!hasBelow || row.Models > below.Models) {
			below = row
			hasBelow = true
		}
		if row.Models < smallest.Models {
			smallest = row
		}
	}
	if hasBelow {
		return below, true
	}
	return smallest, true
}

// PriceFor selects the price column for a position count. Band edges are
// inclusive: 10, 20 and 50 stay in the lower band.
func (r TierRow) PriceFor(positions int) float64 {
	switch {
	case positions <= 10:
		return r.UpTo10
	case positions <= 20:
		return r.UpTo20
	case positions <= 50:
		return r.UpTo50
	default:
		return r.Plus51
	}
}
