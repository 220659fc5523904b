package registry

import "strings"

// AddFirm stores f as the newest firm and returns it with its assigned id.
func (d *DomainData) AddFirm(f Firm) Firm {
	var maxID int64
	for _, existing := range d.Firms {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	f.ID = maxID + 1
	d.Firms = append([]Firm{f}, d.Firms...)
	return f
}

// UpdateFirm replaces the firm with the same id.
func (d *DomainData) UpdateFirm(f Firm) error {
	for i := range d.Firms {
		if d.Firms[i].ID == f.ID {
			d.Firms[i] = f
			return nil
		}
	}
	return ErrFirmNotFound
}

// DeleteFirm removes the firm with the given id.
func (d *DomainData) DeleteFirm(id int64) error {
	for i := range d.Firms {
		if d.Firms[i].ID == id {
			d.Firms = append(d.Firms[:i], d.Firms[i+1:]...)
			return nil
		}
	}
	return ErrFirmNotFound
}

// Firm returns the firm with the given id.
func (d DomainData) Firm(id int64) (Firm, error) {
	for _, f := range d.Firms {
		if f.ID == id {
			return f, nil
		}
	}
	return Firm{}, ErrFirmNotFound
}

// FirmByName finds a firm by name, ignoring case.
func (d DomainData) FirmByName(name string) (Firm, bool) {
	for _, f := range d.Firms {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return Firm{}, false
}

// CopyFirm adds a copy of f to d under a new id unless a firm with the same
// name already exists there.
func (d *DomainData) CopyFirm(f Firm) (Firm, error) {
	if _, exists := d.FirmByName(f.Name); exists {
		return Firm{}, ErrFirmExists
	}
	return d.AddFirm(f), nil
}
