// AngelaMos | 2026
// enum.go

package contact

import (
	"strings"
)

type Status string

const (
	StatusInactive Status = "inactive"
	StatusSeller   Status = "seller"
	StatusBuyer    Status = "buyer"
	StatusBoth     Status = "both"
)

var statusLabels = map[Status]string{
	StatusInactive: "Inactive",
	StatusSeller:   "Seller",
	StatusBuyer:    "Buyer",
	StatusBoth:     "Buyer & Seller",
}

func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// ParseStatus accepts a stored key or a display label, case-insensitively.
// ok is false for anything else, including the empty string.
func ParseStatus(s string) (Status, bool) {
	return parseEnum(s, statusLabels)
}

type MailPreference string

const (
	MailAll     MailPreference = "all"
	MailNone    MailPreference = "none"
	MailHoliday MailPreference = "holiday"
)

var mailLabels = map[MailPreference]string{
	MailAll:     "All",
	MailNone:    "None",
	MailHoliday: "Holiday only",
}

func (m MailPreference) Label() string {
	if l, ok := mailLabels[m]; ok {
		return l
	}
	return string(m)
}

func ParseMailPreference(s string) (MailPreference, bool) {
	return parseEnum(s, mailLabels)
}

func parseEnum[T ~string](s string, labels map[T]string) (T, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		var zero T
		return zero, false
	}

	for key, label := range labels {
		if strings.EqualFold(s, string(key)) || strings.EqualFold(s, label) {
			return key, true
		}
	}

	var zero T
	return zero, false
}
