// AngelaMos | 2026
// record_test.go

package contact

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestRecordFillsPlaceholders(t *testing.T) {
	row := &Row{Contact: Contact{
		ID:               "c1",
		PrimaryFirstName: "Amy",
		PrimaryLastName:  "Lee",
		Status:           StatusInactive,
		MailPreference:   MailAll,
	}}

	raw, err := json.Marshal(ToRecord(row))
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))

	for _, key := range []string{
		"secondary_first_name", "secondary_last_name",
		"primary_email", "secondary_email",
		"primary_phone", "secondary_phone",
		"primary_DOB", "secondary_DOB",
		"notes", "address", "suite", "city", "state", "zip_code",
		"get_address", "get_secondary_name",
	} {
		assert.Equal(t, Placeholder, fields[key], key)
	}

	assert.Equal(t, "Amy Lee", fields["get_primary_name"])
	assert.Equal(t, "false", fields["past_client"])
	assert.Equal(t, "Inactive", fields["status"])
	assert.Equal(t, "All", fields["mail_preference"])
	assert.Equal(t, []any{}, fields["tags"])
}

func TestRecordPopulated(t *testing.T) {
	dob := time.Date(1980, 4, 2, 0, 0, 0, 0, time.UTC)
	row := &Row{
		Contact: Contact{
			ID:                 "c2",
			PrimaryFirstName:   "John",
			PrimaryLastName:    "Smith",
			SecondaryFirstName: strp("Mary"),
			PrimaryDOB:         &dob,
			Status:             StatusBoth,
			MailPreference:     MailHoliday,
			PastClient:         true,
		},
		Address: strp("1 Main St"),
		Suite:   strp("Apt 4"),
		City:    strp("Reno"),
		State:   strp("NV"),
		ZipCode: strp("89501"),
		Tags:    []string{"vip"},
	}

	rec := ToRecord(row)
	assert.Equal(t, "1980-04-02", rec.PrimaryDOB)
	assert.Equal(t, "Buyer & Seller", rec.Status)
	assert.Equal(t, "Holiday only", rec.MailPreference)
	assert.Equal(t, "true", rec.PastClient)
	assert.Equal(t, "1 Main St, Apt 4, Reno, NV 89501", rec.FullAddress)
	assert.Equal(t, "Mary", rec.SecondaryName)
	assert.Equal(t, []string{"vip"}, rec.Tags)
}

func TestNameFallbacks(t *testing.T) {
	tests := []struct {
		first, last string
		want        string
	}{
		{"Ann", "Ross", "Ann Ross"},
		{"Ann", "", "Ann"},
		{"", "Ross", "Ross"},
		{"", "", Placeholder},
		{"  ", " ", Placeholder},
	}

	for _, tt := range tests {
		c := &Contact{SecondaryFirstName: strp(tt.first), SecondaryLastName: strp(tt.last)}
		assert.Equal(t, tt.want, SecondaryName(c), "%q %q", tt.first, tt.last)
	}

	assert.Equal(t, Placeholder, SecondaryName(&Contact{}))
}

func TestFormatAddressWithoutSuite(t *testing.T) {
	row := &Row{
		Address: strp("9 Elm Rd"),
		City:    strp("Sparks"),
		State:   strp("NV"),
		ZipCode: strp("89431"),
	}
	assert.Equal(t, "9 Elm Rd, Sparks, NV 89431", FormatAddress(row))
}
