// AngelaMos | 2026
// record.go

package contact

import (
	"strconv"
	"strings"
	"time"
)

// Placeholder stands in for any empty or absent display value.
const Placeholder = "None"

const dateLayout = "2006-01-02"

// ContactRecord is the flat display form returned by directory search.
// Every field is always present.
type ContactRecord struct {
	ID                 string   `json:"id"`
	PrimaryFirstName   string   `json:"primary_first_name"`
	PrimaryLastName    string   `json:"primary_last_name"`
	SecondaryFirstName string   `json:"secondary_first_name"`
	SecondaryLastName  string   `json:"secondary_last_name"`
	PrimaryEmail       string   `json:"primary_email"`
	SecondaryEmail     string   `json:"secondary_email"`
	PrimaryPhone       string   `json:"primary_phone"`
	SecondaryPhone     string   `json:"secondary_phone"`
	PrimaryDOB         string   `json:"primary_DOB"`
	SecondaryDOB       string   `json:"secondary_DOB"`
	Status             string   `json:"status"`
	MailPreference     string   `json:"mail_preference"`
	PastClient         string   `json:"past_client"`
	Notes              string   `json:"notes"`
	ImageURL           string   `json:"image_url"`
	Address            string   `json:"address"`
	Suite              string   `json:"suite"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	ZipCode            string   `json:"zip_code"`
	Tags               []string `json:"tags"`
	FullAddress        string   `json:"get_address"`
	PrimaryName        string   `json:"get_primary_name"`
	SecondaryName      string   `json:"get_secondary_name"`
}

func ToRecord(row *Row) ContactRecord {
	c := &row.Contact

	tags := row.Tags
	if tags == nil {
		tags = []string{}
	}

	return ContactRecord{
		ID:                 c.ID,
		PrimaryFirstName:   display(c.PrimaryFirstName),
		PrimaryLastName:    display(c.PrimaryLastName),
		SecondaryFirstName: displayPtr(c.SecondaryFirstName),
		SecondaryLastName:  displayPtr(c.SecondaryLastName),
		PrimaryEmail:       displayPtr(c.PrimaryEmail),
		SecondaryEmail:     displayPtr(c.SecondaryEmail),
		PrimaryPhone:       displayPtr(c.PrimaryPhone),
		SecondaryPhone:     displayPtr(c.SecondaryPhone),
		PrimaryDOB:         displayDate(c.PrimaryDOB),
		SecondaryDOB:       displayDate(c.SecondaryDOB),
		Status:             display(c.Status.Label()),
		MailPreference:     display(c.MailPreference.Label()),
		PastClient:         strconv.FormatBool(c.PastClient),
		Notes:              displayPtr(c.Notes),
		ImageURL:           display(c.ImageURL),
		Address:            displayPtr(row.Address),
		Suite:              displayPtr(row.Suite),
		City:               displayPtr(row.City),
		State:              displayPtr(row.State),
		ZipCode:            displayPtr(row.ZipCode),
		Tags:               tags,
		FullAddress:        FormatAddress(row),
		PrimaryName:        PrimaryName(c),
		SecondaryName:      SecondaryName(c),
	}
}

func ToRecords(rows []Row) []ContactRecord {
	out := make([]ContactRecord, 0, len(rows))
	for i := range rows {
		out = append(out, ToRecord(&rows[i]))
	}
	return out
}

// FormatAddress renders the linked property, or the placeholder when the
// contact has no address.
func FormatAddress(row *Row) string {
	address := deref(row.Address)
	if address == "" {
		return Placeholder
	}

	parts := []string{address}
	if suite := deref(row.Suite); suite != "" {
		parts = append(parts, suite)
	}
	parts = append(parts, deref(row.City))

	return strings.Join(parts, ", ") + ", " +
		strings.TrimSpace(deref(row.State)+" "+deref(row.ZipCode))
}

func PrimaryName(c *Contact) string {
	return joinName(c.PrimaryFirstName, c.PrimaryLastName)
}

func SecondaryName(c *Contact) string {
	return joinName(deref(c.SecondaryFirstName), deref(c.SecondaryLastName))
}

func joinName(first, last string) string {
	first, last = strings.TrimSpace(first), strings.TrimSpace(last)
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	case last != "":
		return last
	default:
		return Placeholder
	}
}

func display(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

func displayPtr(s *string) string {
	return display(deref(s))
}

func displayDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return Placeholder
	}
	return t.Format(dateLayout)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
