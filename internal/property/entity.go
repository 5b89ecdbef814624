// AngelaMos | 2026
// entity.go

package property

import (
	"strings"
	"time"
)

type Property struct {
	ID        string    `db:"id"`
	Address   string    `db:"address"`
	Suite     *string   `db:"suite"`
	City      string    `db:"city"`
	State     string    `db:"state"`
	ZipCode   string    `db:"zip_code"`
	CreatedAt time.Time `db:"created_at"`
}

// Complete reports whether every required address component is present.
// Suite is optional.
func Complete(address, city, state, zip string) bool {
	return strings.TrimSpace(address) != "" &&
		strings.TrimSpace(city) != "" &&
		strings.TrimSpace(state) != "" &&
		strings.TrimSpace(zip) != ""
}

// Format renders "address[, suite], city, state zip".
func (p *Property) Format() string {
	var b strings.Builder
	b.WriteString(p.Address)
	if p.Suite != nil && *p.Suite != "" {
		b.WriteString(", ")
		b.WriteString(*p.Suite)
	}
	b.WriteString(", ")
	b.WriteString(p.City)
	b.WriteString(", ")
	b.WriteString(p.State)
	b.WriteString(" ")
	b.WriteString(p.ZipCode)
	return b.String()
}
