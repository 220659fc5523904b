package registry

import (
	"regexp"
	"strconv"
)

// AllExperts is the expert filter value that matches every expert.
const AllExperts = "all"

// AddRecord stores r as the newest record and returns it with its assigned id.
func (d *DomainData) AddRecord(r Record) Record {
	r.ID = d.nextRecordID()
	d.Records = append([]Record{r}, d.Records...)
	return r
}

// UpdateRecord replaces the record with the same id.
func (d *DomainData) UpdateRecord(r Record) error {
	for i := range d.Records {
		if d.Records[i].ID == r.ID {
			d.Records[i] = r
			return nil
		}
	}
	return ErrRecordNotFound
}

// DeleteRecord removes the record with the given id.
func (d *DomainData) DeleteRecord(id int64) error {
	if d.DeleteRecords([]int64{id}) == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// DeleteRecords removes every record whose id is listed and reports how many
// were removed.
func (d *DomainData) DeleteRecords(ids []int64) int {
	drop := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	kept := d.Records[:0]
	for _, r := range d.Records {
		if _, ok := drop[r.ID]; ok {
			continue
		}
		kept = append(kept, r)
	}
	removed := len(d.Records) - len(kept)
	d.Records = kept
	return removed
}

// Record returns the record with the given id.
func (d DomainData) Record(id int64) (Record, error) {
	for _, r := range d.Records {
		if r.ID == id {
			return r, nil
		}
	}
	return Record{}, ErrRecordNotFound
}

func (d DomainData) nextRecordID() int64 {
	var maxID int64
	for _, r := range d.Records {
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	return maxID + 1
}

// FilterRecords keeps the records of an expert (AllExperts or "" for any)
// reported in month (YYYY-MM, "" for any).
func FilterRecords(records []Record, expert, month string) []Record {
	filtered := make([]Record, 0, len(records))
	for _, r := range records {
		if expert != "" && expert != AllExperts && r.Expert != expert {
			continue
		}
		if month != "" && r.Month() != month {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

var firstNumber = regexp.MustCompile(`\d+`)

// RegistrationDigits returns the first run of digits of a registration
// number, or the number itself when it has none.
func RegistrationDigits(number string) string {
	if digits := firstNumber.FindString(number); digits != "" {
		return digits
	}
	return number
}

func registrationSeq(number string) int {
	n, err := strconv.Atoi(firstNumber.FindString(number))
	if err != nil {
		return 0
	}
	return n
}

// LastRegistrationNumber returns the registration number with the largest
// numeric part; the first one wins ties. It is "N/A" without records.
func LastRegistrationNumber(records []Record) string {
	if len(records) == 0 {
		return "N/A"
	}

	last := records[0]
	maxSeq := registrationSeq(last.RegistrationNumber)
	for _, r := range records[1:] {
		if seq := registrationSeq(r.RegistrationNumber); seq > maxSeq {
			maxSeq = seq
			last = r
		}
	}
	return last.RegistrationNumber
}

// Experts lists the distinct expert names of the records and of every
// monthly plan, in order of first appearance.
func (d DomainData) Experts() []string {
	seen := make(map[string]struct{})
	experts := make([]string, 0)
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		experts = append(experts, name)
	}

	for _, r := range d.Records {
		add(r.Expert)
	}
	for _, month := range d.Months() {
		for _, p := range d.MonthlyPlans[month].ExpertPlans {
			add(p.Name)
		}
	}
	return experts
}
