// AngelaMos | 2026
// store.go

package importer

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/gborh1/CRM-real-estate/internal/contact"
	"github.com/gborh1/CRM-real-estate/internal/core"
	"github.com/gborh1/CRM-real-estate/internal/property"
	"github.com/gborh1/CRM-real-estate/internal/user"
)

// Store is the persistence the pipeline needs. Writes happen only inside
// WithinTx; an error from fn discards all of them.
type Store interface {
	FindUsersByName(ctx context.Context, firstName, lastName string) ([]user.User, error)
	GetUser(ctx context.Context, id string) (*user.User, error)
	WithinTx(ctx context.Context, fn func(w Writer) error) error
}

type Writer interface {
	UpdateProfile(ctx context.Context, u *user.User) error
	SaveAttachment(ctx context.Context, a *user.Attachment) error
	CreateProperty(ctx context.Context, p *property.Property) error
	CreateContact(ctx context.Context, c *contact.Contact) error
	LinkContact(ctx context.Context, userID, contactID string) error
}

type SQLStore struct {
	db *sqlx.DB
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) FindUsersByName(
	ctx context.Context,
	firstName, lastName string,
) ([]user.User, error) {
	return user.NewRepository(s.db).FindByName(ctx, firstName, lastName)
}

func (s *SQLStore) GetUser(ctx context.Context, id string) (*user.User, error) {
	return user.NewRepository(s.db).GetByID(ctx, id)
}

func (s *SQLStore) WithinTx(ctx context.Context, fn func(w Writer) error) error {
	return core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		return fn(&txWriter{
			users:      user.NewRepository(tx),
			properties: property.NewRepository(tx),
			contacts:   contact.NewRepository(tx),
		})
	})
}

type txWriter struct {
	users      user.Repository
	properties property.Repository
	contacts   contact.Repository
}

func (w *txWriter) UpdateProfile(ctx context.Context, u *user.User) error {
	return w.users.UpdateProfile(ctx, u)
}

func (w *txWriter) SaveAttachment(ctx context.Context, a *user.Attachment) error {
	return w.users.SaveAttachment(ctx, a)
}

func (w *txWriter) CreateProperty(ctx context.Context, p *property.Property) error {
	return w.properties.Create(ctx, p)
}

func (w *txWriter) CreateContact(ctx context.Context, c *contact.Contact) error {
	return w.contacts.Create(ctx, c)
}

func (w *txWriter) LinkContact(ctx context.Context, userID, contactID string) error {
	return w.contacts.LinkUser(ctx, userID, contactID)
}

var _ Store = (*SQLStore)(nil)
