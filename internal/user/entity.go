// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID           string `db:"id"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	FirstName    string `db:"first_name"`
	LastName     string `db:"last_name"`
	ImageURL     string `db:"image_url"`
	IsAdmin      bool   `db:"is_admin"`
	IsOnboarded  bool   `db:"is_onboarded"`
	HasPaid      bool   `db:"has_paid"`
	TokenVersion int    `db:"token_version"`
	Profile
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Profile holds the agent details collected by the onboarding form.
type Profile struct {
	Designation     string `db:"designation"       json:"designation"`
	Certifications  string `db:"certifications"    json:"certifications"`
	DRENum          string `db:"dre_num"           json:"dre_num"`
	PhoneNum        string `db:"phone_num"         json:"phone_num"`
	AgentEmail      string `db:"agent_email"       json:"agent_email"`
	OfficeAddress   string `db:"office_address"    json:"office_address"`
	MLSInfo         string `db:"mls_info"          json:"mls_info"`
	BrokerInfo      string `db:"broker_info"       json:"broker_info"`
	Tagline         string `db:"tagline"           json:"tagline"`
	WebsiteInfo     string `db:"website_info"      json:"website_info"`
	ZillowInfo      string `db:"zillow_info"       json:"zillow_info"`
	FBInfo          string `db:"fb_info"           json:"fb_info"`
	InstaInfo       string `db:"insta_info"        json:"insta_info"`
	AddressBookInfo string `db:"address_book_info" json:"address_book_info"`
	EmailAcctInfo   string `db:"email_acct_info"   json:"email_acct_info"`
}

// ProfileFields lists the form refs that map onto Profile, in column order.
var ProfileFields = []string{
	"designation",
	"certifications",
	"dre_num",
	"phone_num",
	"agent_email",
	"office_address",
	"mls_info",
	"broker_info",
	"tagline",
	"website_info",
	"zillow_info",
	"fb_info",
	"insta_info",
	"address_book_info",
	"email_acct_info",
}

// Set assigns value to the field named by ref and reports whether ref is a
// profile field.
func (p *Profile) Set(ref, value string) bool {
	if f := p.field(ref); f != nil {
		*f = value
		return true
	}
	return false
}

func (p *Profile) field(ref string) *string {
	switch ref {
	case "designation":
		return &p.Designation
	case "certifications":
		return &p.Certifications
	case "dre_num":
		return &p.DRENum
	case "phone_num":
		return &p.PhoneNum
	case "agent_email":
		return &p.AgentEmail
	case "office_address":
		return &p.OfficeAddress
	case "mls_info":
		return &p.MLSInfo
	case "broker_info":
		return &p.BrokerInfo
	case "tagline":
		return &p.Tagline
	case "website_info":
		return &p.WebsiteInfo
	case "zillow_info":
		return &p.ZillowInfo
	case "fb_info":
		return &p.FBInfo
	case "insta_info":
		return &p.InstaInfo
	case "address_book_info":
		return &p.AddressBookInfo
	case "email_acct_info":
		return &p.EmailAcctInfo
	}
	return nil
}

type AttachmentKind string

const (
	AttachmentBrokerLogoOne AttachmentKind = "broker_logo_one"
	AttachmentBrokerLogoTwo AttachmentKind = "broker_logo_two"
	AttachmentLogo          AttachmentKind = "logo"
	AttachmentHeadshot      AttachmentKind = "headshot"
	AttachmentSignature     AttachmentKind = "signature"
	AttachmentDatabase      AttachmentKind = "database"
	AttachmentListingDocs   AttachmentKind = "listing_docs"
	AttachmentBuyersDocs    AttachmentKind = "buyers_docs"
	AttachmentBio           AttachmentKind = "bio"
)

var attachmentKinds = map[AttachmentKind]struct{}{
	AttachmentBrokerLogoOne: {},
	AttachmentBrokerLogoTwo: {},
	AttachmentLogo:          {},
	AttachmentHeadshot:      {},
	AttachmentSignature:     {},
	AttachmentDatabase:      {},
	AttachmentListingDocs:   {},
	AttachmentBuyersDocs:    {},
	AttachmentBio:           {},
}

func ParseAttachmentKind(s string) (AttachmentKind, bool) {
	k := AttachmentKind(s)
	_, ok := attachmentKinds[k]
	return k, ok
}

// Attachment is a binary file stored against a user, one per kind.
type Attachment struct {
	UserID      string         `db:"user_id"`
	Kind        AttachmentKind `db:"kind"`
	Content     []byte         `db:"content"`
	ContentType string         `db:"content_type"`
	Size        int64          `db:"size"`
	UpdatedAt   time.Time      `db:"updated_at"`
}
