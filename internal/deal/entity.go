// AngelaMos | 2026
// entity.go

package deal

import (
	"strings"
	"time"
)

type Type string

const (
	TypeSeller Type = "seller"
	TypeBuyer  Type = "buyer"
)

type Status string

const (
	StatusOpened     Status = "opened"
	StatusClosed     Status = "closed"
	StatusIncomplete Status = "incomplete"
)

var typeLabels = map[Type]string{
	TypeSeller: "Seller",
	TypeBuyer:  "Buyer",
}

var statusLabels = map[Status]string{
	StatusOpened:     "Open",
	StatusClosed:     "Closed",
	StatusIncomplete: "Incomplete",
}

func (t Type) Label() string { return typeLabels[t] }

func (s Status) Label() string { return statusLabels[s] }

func ParseType(s string) (Type, bool) {
	for k, label := range typeLabels {
		if strings.EqualFold(s, string(k)) || strings.EqualFold(s, label) {
			return k, true
		}
	}
	return "", false
}

func ParseStatus(s string) (Status, bool) {
	for k, label := range statusLabels {
		if strings.EqualFold(s, string(k)) || strings.EqualFold(s, label) {
			return k, true
		}
	}
	return "", false
}

// Transaction is one listing or purchase an agent runs for a contact.
type Transaction struct {
	ID           string     `db:"id"`
	UserID       string     `db:"user_id"`
	Name         string     `db:"name"`
	Type         Type       `db:"trans_type"`
	ContactID    string     `db:"contact_id"`
	PropertyID   *string    `db:"property_id"`
	ListingPrice *float64   `db:"listing_price"`
	SoldPrice    *float64   `db:"sold_price"`
	ClosingDate  *time.Time `db:"closing_date"`
	Status       Status     `db:"status"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

type Stage struct {
	ID            string `db:"id"`
	TransactionID string `db:"transaction_id"`
	StageNumber   int    `db:"stage_number"`
	Tasks         []Task `db:"-"`
}

type Task struct {
	ID      string  `db:"id"`
	StageID string  `db:"stage_id"`
	Name    string  `db:"name"`
	Notes   *string `db:"notes"`
	IsDone  bool    `db:"is_done"`
}
