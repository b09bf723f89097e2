package phone

import (
	"errors"
	"strings"
)

// ErrInvalidNumber is returned when the input cannot be normalized to a
// valid national number for the configured country.
var ErrInvalidNumber = errors.New("phone: invalid phone number")

// Normalizer converts locally written phone numbers to E.164.
// It is pure and deterministic: the same input always yields the same
// output, and no I/O is involved.
type Normalizer struct {
	countryCode    string // digits only, e.g. "30"
	nationalLength int    // significant digits of a national number, e.g. 10
}

// NewNormalizer creates a normalizer for one country.
func NewNormalizer(countryCode string, nationalLength int) *Normalizer {
	return &Normalizer{
		countryCode:    countryCode,
		nationalLength: nationalLength,
	}
}

// Normalize converts raw input ("+30 697 462 8335", "00306974628335",
// "6974628335", "06974628335", "697-462-8335", ...) to "+306974628335".
//
// Algorithm: keep digits only, strip one recognized country prefix
// ("00"+cc, full-length cc, or a single trunk "0"), then require exactly
// the national significant length.
func (n *Normalizer) Normalize(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return "", ErrInvalidNumber
	}

	switch {
	case strings.HasPrefix(digits, "00"+n.countryCode):
		digits = digits[2+len(n.countryCode):]
	case strings.HasPrefix(digits, n.countryCode) && len(digits) == len(n.countryCode)+n.nationalLength:
		// Only a full-length match counts: a national number may itself
		// start with the country code digits.
		digits = digits[len(n.countryCode):]
	case strings.HasPrefix(digits, "0"):
		digits = digits[1:]
	}

	if len(digits) != n.nationalLength {
		return "", ErrInvalidNumber
	}

	return "+" + n.countryCode + digits, nil
}
