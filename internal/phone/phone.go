// Package phone normalizes customer phone numbers to an E.164-like form.
package phone

import (
	"fmt"
	"regexp"
	"strings"
)

var phoneRegEx = regexp.MustCompile(`^\+?[0-9\s\-()]{6,20}$`)

// DefaultCountryCode is prefixed to national numbers without a +.
const DefaultCountryCode = "54"

// Normalize parses the raw value and returns the canonical +<digits> form.
// A number without country code receives DefaultCountryCode.
func Normalize(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if !phoneRegEx.MatchString(trimmed) {
		return "", fmt.Errorf("invalid phone %q", raw)
	}

	hasPlus := strings.HasPrefix(trimmed, "+")

	var b strings.Builder
	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) < 6 {
		return "", fmt.Errorf("invalid phone %q", raw)
	}

	if hasPlus {
		return "+" + digits, nil
	}

	// "0" national trunk prefix is dropped before the country code
	digits = strings.TrimPrefix(digits, "0")
	if strings.HasPrefix(digits, DefaultCountryCode) {
		return "+" + digits, nil
	}
	return "+" + DefaultCountryCode + digits, nil
}

// MustNormalize panics on invalid input. Test helper.
func MustNormalize(raw string) string {
	p, err := Normalize(raw)
	if err != nil {
		panic(err)
	}
	return p
}
