// AngelaMos | 2026
// enum_test.go

package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gborh1/CRM-real-estate/internal/core"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
		ok   bool
	}{
		{"buyer", StatusBuyer, true},
		{"Seller", StatusSeller, true},
		{"Buyer & Seller", StatusBoth, true},
		{" BOTH ", StatusBoth, true},
		{"", "", false},
		{"landlord", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseStatus(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseMailPreference(t *testing.T) {
	got, ok := ParseMailPreference("holiday only")
	assert.True(t, ok)
	assert.Equal(t, MailHoliday, got)

	got, ok = ParseMailPreference("None")
	assert.True(t, ok)
	assert.Equal(t, MailNone, got)

	_, ok = ParseMailPreference("weekly")
	assert.False(t, ok)
}

func TestNormalizePhone(t *testing.T) {
	got, err := NormalizePhone("775-322-0134")
	require.NoError(t, err)
	assert.Equal(t, "(775) 322-0134", got)

	got, err = NormalizePhone("+1 (775) 322 0134")
	require.NoError(t, err)
	assert.Equal(t, "(775) 322-0134", got)

	_, err = NormalizePhone("12")
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = NormalizePhone("call me")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestContactRequestAddressRules(t *testing.T) {
	req := ContactRequest{
		PrimaryFirstName: "Amy",
		PrimaryLastName:  "Lee",
		Address:          "1 Main St",
		City:             "Reno",
		State:            "NV",
		ZipCode:          "89501",
	}
	c, prop, err := req.toContact()
	require.NoError(t, err)
	require.NotNil(t, prop)
	assert.Equal(t, "Reno", prop.City)
	assert.Equal(t, StatusInactive, c.Status)
	assert.Equal(t, MailAll, c.MailPreference)

	req.ZipCode = ""
	_, _, err = req.toContact()
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, prop, err = ContactRequest{PrimaryFirstName: "Amy", PrimaryLastName: "Lee"}.toContact()
	require.NoError(t, err)
	assert.Nil(t, prop)
}

func TestContactRequestRejectsUnknownStatus(t *testing.T) {
	_, _, err := ContactRequest{
		PrimaryFirstName: "Amy",
		PrimaryLastName:  "Lee",
		Status:           "landlord",
	}.toContact()
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}
