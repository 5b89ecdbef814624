// AngelaMos | 2026
// payload.go

package importer

import (
	"strconv"
	"time"
)

// Delivery is one webhook request from the form host.
type Delivery struct {
	EventID      string       `json:"event_id"`
	EventType    string       `json:"event_type"`
	FormResponse FormResponse `json:"form_response"`
}

type FormResponse struct {
	FormID      string    `json:"form_id"`
	Token       string    `json:"token"`
	SubmittedAt time.Time `json:"submitted_at"`
	Answers     []Answer  `json:"answers"`
}

type Field struct {
	ID   string `json:"id"`
	Ref  string `json:"ref"`
	Type string `json:"type"`
}

// Answer holds one form answer. Exactly one value field is set, named by
// Type.
type Answer struct {
	Field       Field    `json:"field"`
	Type        string   `json:"type"`
	Text        string   `json:"text,omitempty"`
	Email       string   `json:"email,omitempty"`
	PhoneNumber string   `json:"phone_number,omitempty"`
	URL         string   `json:"url,omitempty"`
	FileURL     string   `json:"file_url,omitempty"`
	Number      *float64 `json:"number,omitempty"`
	Boolean     *bool    `json:"boolean,omitempty"`
}

// Value returns the answer as text whatever its type.
func (a Answer) Value() string {
	switch a.Type {
	case "email":
		return a.Email
	case "phone_number":
		return a.PhoneNumber
	case "url":
		return a.URL
	case "file_url":
		return a.FileURL
	case "number":
		if a.Number != nil {
			return strconv.FormatFloat(*a.Number, 'f', -1, 64)
		}
	case "boolean":
		if a.Boolean != nil {
			return strconv.FormatBool(*a.Boolean)
		}
	}

	for _, v := range []string{a.Text, a.Email, a.PhoneNumber, a.URL, a.FileURL} {
		if v != "" {
			return v
		}
	}
	return ""
}

// Ref is shorthand for a.Field.Ref.
func (a Answer) Ref() string {
	return a.Field.Ref
}
