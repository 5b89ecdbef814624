// AngelaMos | 2026
// entity.go

package contact

import (
	"time"

	"github.com/gborh1/CRM-real-estate/internal/avatar"
)

type Contact struct {
	ID                 string         `db:"id"`
	PrimaryFirstName   string         `db:"primary_first_name"`
	PrimaryLastName    string         `db:"primary_last_name"`
	SecondaryFirstName *string        `db:"secondary_first_name"`
	SecondaryLastName  *string        `db:"secondary_last_name"`
	PrimaryEmail       *string        `db:"primary_email"`
	SecondaryEmail     *string        `db:"secondary_email"`
	PrimaryPhone       *string        `db:"primary_phone"`
	SecondaryPhone     *string        `db:"secondary_phone"`
	PrimaryDOB         *time.Time     `db:"primary_dob"`
	SecondaryDOB       *time.Time     `db:"secondary_dob"`
	Status             Status         `db:"status"`
	MailPreference     MailPreference `db:"mail_preference"`
	PastClient         bool           `db:"past_client"`
	Notes              *string        `db:"notes"`
	ImageURL           string         `db:"image_url"`
	PropertyID         *string        `db:"property_id"`
	IsVisible          bool           `db:"is_visible"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

// Row is a contact joined with its optional property address.
type Row struct {
	Contact
	Address *string  `db:"address"`
	Suite   *string  `db:"suite"`
	City    *string  `db:"city"`
	State   *string  `db:"state"`
	ZipCode *string  `db:"zip_code"`
	Tags    []string `db:"-"`
}

type Tag struct {
	ID   string `db:"id"   json:"id"`
	Name string `db:"name" json:"name"`
}

const DefaultImageURL = "/avatar/andy/1"

// ImageFor picks a stock avatar for a new contact. A nil picker yields
// DefaultImageURL.
func ImageFor(p *avatar.Picker, firstName string) string {
	if p == nil {
		return DefaultImageURL
	}
	return p.ForName(firstName)
}
