// AngelaMos | 2026
// phone.go

package contact

import (
	"fmt"

	"github.com/nyaruka/phonenumbers"

	"github.com/gborh1/CRM-real-estate/internal/core"
)

const phoneRegion = "US"

// NormalizePhone validates a US number and formats it nationally,
// e.g. "(775) 555-0134".
func NormalizePhone(raw string) (string, error) {
	num, err := phonenumbers.Parse(raw, phoneRegion)
	if err != nil {
		return "", fmt.Errorf("parse phone %q: %w", raw, core.ErrInvalidInput)
	}

	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("invalid phone %q: %w", raw, core.ErrInvalidInput)
	}

	return phonenumbers.Format(num, phonenumbers.NATIONAL), nil
}
