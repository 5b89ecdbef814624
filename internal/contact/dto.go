// AngelaMos | 2026
// dto.go

package contact

import (
	"fmt"
	"strings"
	"time"

	"github.com/gborh1/CRM-real-estate/internal/core"
	"github.com/gborh1/CRM-real-estate/internal/property"
)

// ContactRequest is the full contact form, used for both create and edit.
type ContactRequest struct {
	PrimaryFirstName   string `json:"primary_first_name"   validate:"required,max=100"`
	PrimaryLastName    string `json:"primary_last_name"    validate:"required,max=100"`
	SecondaryFirstName string `json:"secondary_first_name" validate:"omitempty,max=100"`
	SecondaryLastName  string `json:"secondary_last_name"  validate:"omitempty,max=100"`
	PrimaryEmail       string `json:"primary_email"        validate:"omitempty,email,max=255"`
	SecondaryEmail     string `json:"secondary_email"      validate:"omitempty,email,max=255"`
	PrimaryPhone       string `json:"primary_phone"        validate:"omitempty,max=50"`
	SecondaryPhone     string `json:"secondary_phone"      validate:"omitempty,max=50"`
	PrimaryDOB         string `json:"primary_DOB"          validate:"omitempty,datetime=2006-01-02"`
	SecondaryDOB       string `json:"secondary_DOB"        validate:"omitempty,datetime=2006-01-02"`
	Status             string `json:"status"               validate:"omitempty,max=50"`
	MailPreference     string `json:"mail_preference"      validate:"omitempty,max=50"`
	PastClient         bool   `json:"past_client"`
	Notes              string `json:"notes"                validate:"omitempty,max=5000"`
	Address            string `json:"address"              validate:"omitempty,max=255"`
	Suite              string `json:"suite"                validate:"omitempty,max=50"`
	City               string `json:"city"                 validate:"omitempty,max=100"`
	State              string `json:"state"                validate:"omitempty,max=50"`
	ZipCode            string `json:"zip_code"             validate:"omitempty,max=20"`
}

type AddTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

type SearchResponse struct {
	Contacts []ContactRecord `json:"contacts"`
}

// toContact builds the contact and its optional property from the form.
// IDs, image and visibility are left for the caller.
func (req ContactRequest) toContact() (*Contact, *property.Property, error) {
	c := &Contact{
		PrimaryFirstName:   strings.TrimSpace(req.PrimaryFirstName),
		PrimaryLastName:    strings.TrimSpace(req.PrimaryLastName),
		SecondaryFirstName: Optional(req.SecondaryFirstName),
		SecondaryLastName:  Optional(req.SecondaryLastName),
		PrimaryEmail:       Optional(req.PrimaryEmail),
		SecondaryEmail:     Optional(req.SecondaryEmail),
		PastClient:         req.PastClient,
		Notes:              Optional(req.Notes),
		Status:             StatusInactive,
		MailPreference:     MailAll,
	}

	var err error
	if c.PrimaryPhone, err = optionalPhone(req.PrimaryPhone); err != nil {
		return nil, nil, err
	}
	if c.SecondaryPhone, err = optionalPhone(req.SecondaryPhone); err != nil {
		return nil, nil, err
	}
	if c.PrimaryDOB, err = optionalDate(req.PrimaryDOB); err != nil {
		return nil, nil, err
	}
	if c.SecondaryDOB, err = optionalDate(req.SecondaryDOB); err != nil {
		return nil, nil, err
	}

	if strings.TrimSpace(req.Status) != "" {
		status, ok := ParseStatus(req.Status)
		if !ok {
			return nil, nil, fmt.Errorf("status %q: %w", req.Status, core.ErrInvalidInput)
		}
		c.Status = status
	}

	if strings.TrimSpace(req.MailPreference) != "" {
		pref, ok := ParseMailPreference(req.MailPreference)
		if !ok {
			return nil, nil, fmt.Errorf(
				"mail preference %q: %w", req.MailPreference, core.ErrInvalidInput,
			)
		}
		c.MailPreference = pref
	}

	prop, err := req.property()
	if err != nil {
		return nil, nil, err
	}

	return c, prop, nil
}

func (req ContactRequest) property() (*property.Property, error) {
	if property.Complete(req.Address, req.City, req.State, req.ZipCode) {
		return &property.Property{
			Address: strings.TrimSpace(req.Address),
			Suite:   Optional(req.Suite),
			City:    strings.TrimSpace(req.City),
			State:   strings.TrimSpace(req.State),
			ZipCode: strings.TrimSpace(req.ZipCode),
		}, nil
	}

	for _, part := range []string{req.Address, req.Suite, req.City, req.State, req.ZipCode} {
		if strings.TrimSpace(part) != "" {
			return nil, fmt.Errorf(
				"address needs address, city, state and zip_code: %w",
				core.ErrInvalidInput,
			)
		}
	}

	return nil, nil
}

// Optional returns nil for blank input.
func Optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func optionalPhone(raw string) (*string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	phone, err := NormalizePhone(raw)
	if err != nil {
		return nil, err
	}
	return &phone, nil
}

func optionalDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("date %q: %w", raw, core.ErrInvalidInput)
	}
	return &t, nil
}
