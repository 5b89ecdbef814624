// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type UpdateProfileRequest struct {
	ImageURL        *string `json:"image_url,omitempty"         validate:"omitempty,max=500"`
	Designation     *string `json:"designation,omitempty"       validate:"omitempty,max=255"`
	Certifications  *string `json:"certifications,omitempty"    validate:"omitempty,max=1000"`
	DRENum          *string `json:"dre_num,omitempty"           validate:"omitempty,max=50"`
	PhoneNum        *string `json:"phone_num,omitempty"         validate:"omitempty,max=50"`
	AgentEmail      *string `json:"agent_email,omitempty"       validate:"omitempty,email,max=255"`
	OfficeAddress   *string `json:"office_address,omitempty"    validate:"omitempty,max=500"`
	MLSInfo         *string `json:"mls_info,omitempty"          validate:"omitempty,max=1000"`
	BrokerInfo      *string `json:"broker_info,omitempty"       validate:"omitempty,max=1000"`
	Tagline         *string `json:"tagline,omitempty"           validate:"omitempty,max=500"`
	WebsiteInfo     *string `json:"website_info,omitempty"      validate:"omitempty,max=1000"`
	ZillowInfo      *string `json:"zillow_info,omitempty"       validate:"omitempty,max=1000"`
	FBInfo          *string `json:"fb_info,omitempty"           validate:"omitempty,max=1000"`
	InstaInfo       *string `json:"insta_info,omitempty"        validate:"omitempty,max=1000"`
	AddressBookInfo *string `json:"address_book_info,omitempty" validate:"omitempty,max=1000"`
	EmailAcctInfo   *string `json:"email_acct_info,omitempty"   validate:"omitempty,max=1000"`
	IsOnboarded     *bool   `json:"is_onboarded,omitempty"`
}

func (req UpdateProfileRequest) apply(u *User) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	set(&u.ImageURL, req.ImageURL)
	set(&u.Designation, req.Designation)
	set(&u.Certifications, req.Certifications)
	set(&u.DRENum, req.DRENum)
	set(&u.PhoneNum, req.PhoneNum)
	set(&u.AgentEmail, req.AgentEmail)
	set(&u.OfficeAddress, req.OfficeAddress)
	set(&u.MLSInfo, req.MLSInfo)
	set(&u.BrokerInfo, req.BrokerInfo)
	set(&u.Tagline, req.Tagline)
	set(&u.WebsiteInfo, req.WebsiteInfo)
	set(&u.ZillowInfo, req.ZillowInfo)
	set(&u.FBInfo, req.FBInfo)
	set(&u.InstaInfo, req.InstaInfo)
	set(&u.AddressBookInfo, req.AddressBookInfo)
	set(&u.EmailAcctInfo, req.EmailAcctInfo)
	if req.IsOnboarded != nil {
		u.IsOnboarded = *req.IsOnboarded
	}
}

type UpdateAccessRequest struct {
	IsAdmin *bool `json:"is_admin,omitempty"`
	HasPaid *bool `json:"has_paid,omitempty"`
}

type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	ImageURL    string    `json:"image_url"`
	IsAdmin     bool      `json:"is_admin"`
	IsOnboarded bool      `json:"is_onboarded"`
	HasPaid     bool      `json:"has_paid"`
	Profile     Profile   `json:"profile"`
	Attachments []string  `json:"attachments,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ListUsersParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search"`
}

func (p *ListUsersParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListUsersParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		ImageURL:    u.ImageURL,
		IsAdmin:     u.IsAdmin,
		IsOnboarded: u.IsOnboarded,
		HasPaid:     u.HasPaid,
		Profile:     u.Profile,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(&u))
	}
	return responses
}
