// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/gborh1/CRM-real-estate/internal/auth"
	"github.com/gborh1/CRM-real-estate/internal/core"
)

const DefaultImageURL = "/static/images/default-pic.png"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

// Create registers an agent. Names are lowercased so that onboarding form
// answers can be matched back to the account.
func (s *Service) Create(
	ctx context.Context,
	email, passwordHash, firstName, lastName string,
) (*auth.UserInfo, error) {
	user := &User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		FirstName:    NormalizeName(firstName),
		LastName:     NormalizeName(lastName),
		ImageURL:     DefaultImageURL,
		HasPaid:      true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (s *Service) IncrementTokenVersion(
	ctx context.Context,
	userID string,
) error {
	return s.repo.IncrementTokenVersion(ctx, userID)
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

func (s *Service) GetMe(ctx context.Context, userID string) (*UserResponse, error) {
	if userID == "" {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	kinds, err := s.repo.ListAttachmentKinds(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	resp.Attachments = kinds
	return &resp, nil
}

func (s *Service) UpdateMe(
	ctx context.Context,
	userID string,
	req UpdateProfileRequest,
) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("update me: %w", core.ErrUnauthorized)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	req.apply(user)

	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) GetAttachment(
	ctx context.Context,
	userID, kind string,
) (*Attachment, error) {
	k, ok := ParseAttachmentKind(kind)
	if !ok {
		return nil, fmt.Errorf(
			"get attachment: unknown kind %q: %w",
			kind,
			core.ErrInvalidInput,
		)
	}

	return s.repo.GetAttachment(ctx, userID, k)
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListUsers(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	return s.repo.List(ctx, params)
}

// UpdateAccess changes admin and payment flags. Outstanding tokens carry the
// old flags, so the token version is bumped with them.
func (s *Service) UpdateAccess(
	ctx context.Context,
	id string,
	req UpdateAccessRequest,
) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}
	if req.HasPaid != nil {
		user.HasPaid = *req.HasPaid
	}

	if err := s.repo.UpdateAccess(ctx, id, user.IsAdmin, user.HasPaid); err != nil {
		return nil, err
	}

	return user, nil
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		PasswordHash: u.PasswordHash,
		IsAdmin:      u.IsAdmin,
		HasPaid:      u.HasPaid,
		TokenVersion: u.TokenVersion,
		CreatedAt:    u.CreatedAt,
	}
}

var _ auth.UserProvider = (*Service)(nil)
