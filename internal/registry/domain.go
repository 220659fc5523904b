// Package registry holds the persisted data of both document domains and
// the operations users perform on it. Amounts are never stored: they are
// recomputed through the pricing package from the domain's current tariffs.
package registry

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Domain selects one of the two independent document registries.
type Domain string

const (
	Conclusions  Domain = "conclusions"
	Certificates Domain = "certificates"
)

var (
	ErrUnknownDomain  = errors.New("unknown domain")
	ErrRecordNotFound = errors.New("record not found")
	ErrFirmNotFound   = errors.New("firm not found")
	ErrFirmExists     = errors.New("firm already exists")
	ErrInvalidMonth   = errors.New("month must be formatted as YYYY-MM")
)

// ParseDomain validates a domain name coming from outside the process.
func ParseDomain(s string) (Domain, error) {
	switch d := Domain(strings.TrimSpace(s)); d {
	case Conclusions, Certificates:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDomain, s)
	}
}

// Domains lists every domain in display order.
func Domains() []Domain {
	return []Domain{Conclusions, Certificates}
}

// Other returns the opposite domain.
func (d Domain) Other() Domain {
	if d == Conclusions {
		return Certificates
	}
	return Conclusions
}

// Title is the document name used in printed output.
func (d Domain) Title() string {
	if d == Certificates {
		return "Сертифікат"
	}
	return "Експертний висновок"
}

// Amount is a money value that tolerates the legacy encodings: JSON numbers,
// numeric strings with either decimal separator, empty strings and null.
// Anything unparsable reads as 0.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	*a = parseAmount(string(b))
	return nil
}

func parseAmount(raw string) Amount {
	s := strings.TrimSpace(raw)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return Amount(v)
}
