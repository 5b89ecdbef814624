// AngelaMos | 2026
// service.go

package contact

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/gborh1/CRM-real-estate/internal/avatar"
	"github.com/gborh1/CRM-real-estate/internal/core"
	"github.com/gborh1/CRM-real-estate/internal/property"
)

type Service struct {
	db      *sqlx.DB
	repo    Repository
	avatars *avatar.Picker
}

// NewService reads through repo. Writes that touch more than one table run
// in a transaction on db.
func NewService(db *sqlx.DB, repo Repository, avatars *avatar.Picker) *Service {
	return &Service{
		db:      db,
		repo:    repo,
		avatars: avatars,
	}
}

// Search lists the user's visible contacts matching query, ordered by
// primary last name. An empty query lists them all.
func (s *Service) Search(
	ctx context.Context,
	userID, query string,
) ([]ContactRecord, error) {
	ctx, span := core.StartSpan(ctx, "contact.search",
		attribute.String("user.id", userID),
		attribute.Bool("search.filtered", strings.TrimSpace(query) != ""),
	)
	defer span.End()

	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("search contacts: %w", core.ErrNotFound)
	}

	rows, err := s.repo.Search(ctx, userID, strings.TrimSpace(query))
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("search.results", len(rows)))
	return ToRecords(rows), nil
}

func (s *Service) Get(
	ctx context.Context,
	userID, contactID string,
) (*ContactRecord, error) {
	if err := s.authorize(ctx, userID, contactID); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(ctx, contactID)
	if err != nil {
		return nil, err
	}

	rec := ToRecord(row)
	return &rec, nil
}

func (s *Service) Create(
	ctx context.Context,
	userID string,
	req ContactRequest,
) (*ContactRecord, error) {
	c, prop, err := req.toContact()
	if err != nil {
		return nil, err
	}

	c.ID = uuid.NewString()
	c.ImageURL = ImageFor(s.avatars, c.PrimaryFirstName)
	c.IsVisible = true

	err = core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if prop != nil {
			prop.ID = uuid.NewString()
			if err := property.NewRepository(tx).Create(ctx, prop); err != nil {
				return err
			}
			c.PropertyID = &prop.ID
		}

		repo := NewRepository(tx)
		if err := repo.Create(ctx, c); err != nil {
			return err
		}
		return repo.LinkUser(ctx, userID, c.ID)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, userID, c.ID)
}

// Update replaces the contact's editable fields. A complete address updates
// the linked property in place or creates one; a blank address unlinks it.
func (s *Service) Update(
	ctx context.Context,
	userID, contactID string,
	req ContactRequest,
) (*ContactRecord, error) {
	if err := s.authorize(ctx, userID, contactID); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, contactID)
	if err != nil {
		return nil, err
	}

	c, prop, err := req.toContact()
	if err != nil {
		return nil, err
	}
	c.ID = contactID
	c.ImageURL = existing.ImageURL
	c.IsVisible = true

	err = core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if prop != nil {
			props := property.NewRepository(tx)
			if existing.PropertyID != nil {
				prop.ID = *existing.PropertyID
				if err := props.Update(ctx, prop); err != nil {
					return err
				}
			} else {
				prop.ID = uuid.NewString()
				if err := props.Create(ctx, prop); err != nil {
					return err
				}
			}
			c.PropertyID = &prop.ID
		}

		return NewRepository(tx).Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, userID, contactID)
}

// Delete hides the contact from every listing.
func (s *Service) Delete(ctx context.Context, userID, contactID string) error {
	if err := s.authorize(ctx, userID, contactID); err != nil {
		return err
	}
	return s.repo.Hide(ctx, contactID)
}

func (s *Service) ListTags(ctx context.Context) ([]Tag, error) {
	tags, err := s.repo.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []Tag{}
	}
	return tags, nil
}

func (s *Service) AddTag(
	ctx context.Context,
	userID, contactID, name string,
) (*Tag, error) {
	if err := s.authorize(ctx, userID, contactID); err != nil {
		return nil, err
	}
	return s.repo.AddTag(ctx, contactID, strings.ToLower(strings.TrimSpace(name)))
}

func (s *Service) RemoveTag(
	ctx context.Context,
	userID, contactID, tagID string,
) error {
	if err := s.authorize(ctx, userID, contactID); err != nil {
		return err
	}
	return s.repo.RemoveTag(ctx, contactID, tagID)
}

// Owns reports whether contactID is in the user's contact set.
func (s *Service) Owns(ctx context.Context, userID, contactID string) (bool, error) {
	return s.repo.IsOwner(ctx, userID, contactID)
}

func (s *Service) authorize(ctx context.Context, userID, contactID string) error {
	ok, err := s.repo.IsOwner(ctx, userID, contactID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("contact %s: %w", contactID, core.ErrForbidden)
	}
	return nil
}
