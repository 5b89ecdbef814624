// AngelaMos | 2026
// entity.go

package auth

import (
	"time"
)

// UserInfo is the slice of an account that authentication needs.
type UserInfo struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	IsAdmin      bool
	HasPaid      bool
	TokenVersion int
	CreatedAt    time.Time
}

// RevokedToken marks an access token that must be refused before it expires.
type RevokedToken struct {
	JTI       string
	ExpiresAt time.Time
}

func (t RevokedToken) TTL() time.Duration {
	return time.Until(t.ExpiresAt)
}
