// AngelaMos | 2026
// repository.go

package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/gborh1/CRM-real-estate/internal/core"
)

type Repository interface {
	Create(ctx context.Context, c *Contact) error
	GetByID(ctx context.Context, id string) (*Row, error)
	Update(ctx context.Context, c *Contact) error
	Hide(ctx context.Context, id string) error
	LinkUser(ctx context.Context, userID, contactID string) error
	IsOwner(ctx context.Context, userID, contactID string) (bool, error)
	UserExists(ctx context.Context, userID string) (bool, error)
	Search(ctx context.Context, userID, query string) ([]Row, error)
	AddTag(ctx context.Context, contactID, name string) (*Tag, error)
	RemoveTag(ctx context.Context, contactID, tagID string) error
	ListTags(ctx context.Context) ([]Tag, error)
	CountForUser(ctx context.Context, userID string) (int, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const contactColumns = `
	c.id, c.primary_first_name, c.primary_last_name,
	c.secondary_first_name, c.secondary_last_name,
	c.primary_email, c.secondary_email, c.primary_phone, c.secondary_phone,
	c.primary_dob, c.secondary_dob, c.status, c.mail_preference,
	c.past_client, c.notes, c.image_url, c.property_id, c.is_visible,
	c.created_at, c.updated_at,
	p.address, p.suite, p.city, p.state, p.zip_code`

// searchableColumns are matched case-insensitively by directory search.
var searchableColumns = []string{
	"c.primary_first_name",
	"c.primary_last_name",
	"c.secondary_first_name",
	"c.secondary_last_name",
	"c.primary_email",
	"c.secondary_email",
	"c.primary_phone",
	"c.secondary_phone",
	"c.notes",
	"p.address",
	"p.suite",
	"p.city",
	"p.state",
	"p.zip_code",
}

func (r *repository) Create(ctx context.Context, c *Contact) error {
	query := `
		INSERT INTO contacts (
			id, primary_first_name, primary_last_name,
			secondary_first_name, secondary_last_name,
			primary_email, secondary_email, primary_phone, secondary_phone,
			primary_dob, secondary_dob, status, mail_preference,
			past_client, notes, image_url, property_id, is_visible
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9,
			$10, $11, $12, $13, $14, $15, $16, $17, $18
		)
		RETURNING created_at, updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		c.ID,
		c.PrimaryFirstName,
		c.PrimaryLastName,
		c.SecondaryFirstName,
		c.SecondaryLastName,
		c.PrimaryEmail,
		c.SecondaryEmail,
		c.PrimaryPhone,
		c.SecondaryPhone,
		c.PrimaryDOB,
		c.SecondaryDOB,
		string(c.Status),
		string(c.MailPreference),
		c.PastClient,
		c.Notes,
		c.ImageURL,
		c.PropertyID,
		c.IsVisible,
	)
	if err := row.Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		if core.IsForeignKeyError(err) {
			return fmt.Errorf("create contact: %w", core.ErrNotFound)
		}
		return fmt.Errorf("create contact: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Row, error) {
	query := `SELECT ` + contactColumns + `
		FROM contacts c
		LEFT JOIN properties p ON p.id = c.property_id
		WHERE c.id = $1 AND c.is_visible`

	var row Row
	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get contact: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}

	tags, err := r.tagsFor(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	row.Tags = tags[id]

	return &row, nil
}

func (r *repository) Update(ctx context.Context, c *Contact) error {
	query := `
		UPDATE contacts
		SET primary_first_name = $2, primary_last_name = $3,
		    secondary_first_name = $4, secondary_last_name = $5,
		    primary_email = $6, secondary_email = $7,
		    primary_phone = $8, secondary_phone = $9,
		    primary_dob = $10, secondary_dob = $11,
		    status = $12, mail_preference = $13, past_client = $14,
		    notes = $15, property_id = $16, updated_at = NOW()
		WHERE id = $1 AND is_visible
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &c.UpdatedAt, query,
		c.ID,
		c.PrimaryFirstName,
		c.PrimaryLastName,
		c.SecondaryFirstName,
		c.SecondaryLastName,
		c.PrimaryEmail,
		c.SecondaryEmail,
		c.PrimaryPhone,
		c.SecondaryPhone,
		c.PrimaryDOB,
		c.SecondaryDOB,
		string(c.Status),
		string(c.MailPreference),
		c.PastClient,
		c.Notes,
		c.PropertyID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update contact: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}

	return nil
}

// Hide soft-deletes a contact. The row stays for transactions that
// reference it.
func (r *repository) Hide(ctx context.Context, id string) error {
	query := `
		UPDATE contacts
		SET is_visible = false, updated_at = NOW()
		WHERE id = $1 AND is_visible`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("hide contact: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("hide contact: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("hide contact: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) LinkUser(ctx context.Context, userID, contactID string) error {
	query := `
		INSERT INTO users_contacts (user_id, contact_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, userID, contactID); err != nil {
		if core.IsForeignKeyError(err) {
			return fmt.Errorf("link contact: %w", core.ErrNotFound)
		}
		return fmt.Errorf("link contact: %w", err)
	}

	return nil
}

func (r *repository) IsOwner(
	ctx context.Context,
	userID, contactID string,
) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM users_contacts
			WHERE user_id = $1 AND contact_id = $2
		)`

	var ok bool
	if err := r.db.GetContext(ctx, &ok, query, userID, contactID); err != nil {
		return false, fmt.Errorf("check contact owner: %w", err)
	}

	return ok, nil
}

func (r *repository) UserExists(ctx context.Context, userID string) (bool, error) {
	var ok bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`
	if err := r.db.GetContext(ctx, &ok, query, userID); err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return ok, nil
}

// Search returns the user's visible contacts, optionally filtered by a
// case-insensitive substring over names, emails, phones, notes and address.
// Membership and visibility are applied in the query.
func (r *repository) Search(
	ctx context.Context,
	userID, query string,
) ([]Row, error) {
	sqlQuery := `SELECT ` + contactColumns + `
		FROM contacts c
		JOIN users_contacts uc ON uc.contact_id = c.id
		LEFT JOIN properties p ON p.id = c.property_id
		WHERE uc.user_id = $1 AND c.is_visible`

	args := []any{userID}

	if query != "" {
		sqlQuery += ` AND (` + ilikeAny(searchableColumns, "$2") + `)`
		args = append(args, "%"+core.EscapeLike(query)+"%")
	}

	sqlQuery += `
		ORDER BY c.primary_last_name, c.primary_first_name, c.id`

	var rows []Row
	if err := r.db.SelectContext(ctx, &rows, sqlQuery, args...); err != nil {
		return nil, fmt.Errorf("search contacts: %w", err)
	}

	if len(rows) == 0 {
		return rows, nil
	}

	ids := make([]string, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}

	tags, err := r.tagsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Tags = tags[rows[i].ID]
	}

	return rows, nil
}

func ilikeAny(columns []string, placeholder string) string {
	var clause string
	for i, col := range columns {
		if i > 0 {
			clause += " OR "
		}
		clause += col + " ILIKE " + placeholder
	}
	return clause
}

func (r *repository) tagsFor(
	ctx context.Context,
	contactIDs []string,
) (map[string][]string, error) {
	query, args, err := sqlx.In(`
		SELECT ct.contact_id, t.name
		FROM contacts_tags ct
		JOIN tags t ON t.id = ct.tag_id
		WHERE ct.contact_id IN (?)
		ORDER BY t.name`, contactIDs)
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}

	var pairs []struct {
		ContactID string `db:"contact_id"`
		Name      string `db:"name"`
	}
	if err := r.db.SelectContext(ctx, &pairs, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}

	out := make(map[string][]string, len(contactIDs))
	for _, p := range pairs {
		out[p.ContactID] = append(out[p.ContactID], p.Name)
	}
	return out, nil
}

// AddTag attaches a tag by name, creating the tag on first use.
func (r *repository) AddTag(
	ctx context.Context,
	contactID, name string,
) (*Tag, error) {
	upsert := `
		INSERT INTO tags (id, name) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name`

	var tag Tag
	if err := r.db.GetContext(ctx, &tag, upsert, uuid.NewString(), name); err != nil {
		return nil, fmt.Errorf("upsert tag: %w", err)
	}

	link := `
		INSERT INTO contacts_tags (contact_id, tag_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`

	if _, err := r.db.ExecContext(ctx, link, contactID, tag.ID); err != nil {
		if core.IsForeignKeyError(err) {
			return nil, fmt.Errorf("tag contact: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("tag contact: %w", err)
	}

	return &tag, nil
}

func (r *repository) RemoveTag(ctx context.Context, contactID, tagID string) error {
	query := `DELETE FROM contacts_tags WHERE contact_id = $1 AND tag_id = $2`

	result, err := r.db.ExecContext(ctx, query, contactID, tagID)
	if err != nil {
		return fmt.Errorf("untag contact: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("untag contact: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("untag contact: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListTags(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	if err := r.db.SelectContext(ctx, &tags, `SELECT id, name FROM tags ORDER BY name`); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

func (r *repository) CountForUser(ctx context.Context, userID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM contacts c
		JOIN users_contacts uc ON uc.contact_id = c.id
		WHERE uc.user_id = $1 AND c.is_visible`

	var n int
	if err := r.db.GetContext(ctx, &n, query, userID); err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return n, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM contacts WHERE is_visible`); err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return n, nil
}
