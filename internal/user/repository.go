// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gborh1/CRM-real-estate/internal/core"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	FindByName(ctx context.Context, firstName, lastName string) ([]User, error)
	UpdateProfile(ctx context.Context, user *User) error
	UpdateAccess(ctx context.Context, id string, isAdmin, hasPaid bool) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	IncrementTokenVersion(ctx context.Context, id string) error
	List(ctx context.Context, params ListUsersParams) ([]User, int, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	SaveAttachment(ctx context.Context, a *Attachment) error
	GetAttachment(
		ctx context.Context,
		userID string,
		kind AttachmentKind,
	) (*Attachment, error)
	ListAttachmentKinds(ctx context.Context, userID string) ([]string, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const userColumns = `
	id, email, password_hash, first_name, last_name, image_url,
	is_admin, is_onboarded, has_paid, token_version,
	designation, certifications, dre_num, phone_num, agent_email,
	office_address, mls_info, broker_info, tagline, website_info,
	zillow_info, fb_info, insta_info, address_book_info, email_acct_info,
	created_at, updated_at`

func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (
			id, email, password_hash, first_name, last_name, image_url,
			is_admin, has_paid
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at, token_version`

	row := r.db.QueryRowxContext(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.ImageURL,
		user.IsAdmin,
		user.HasPaid,
	)
	err := row.Scan(&user.CreatedAt, &user.UpdatedAt, &user.TokenVersion)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

// FindByName returns every user whose stored names match exactly. Names are
// stored lowercased at registration.
func (r *repository) FindByName(
	ctx context.Context,
	firstName, lastName string,
) ([]User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE first_name = $1 AND last_name = $2
		ORDER BY created_at`

	var users []User
	if err := r.db.SelectContext(ctx, &users, query, firstName, lastName); err != nil {
		return nil, fmt.Errorf("find user by name: %w", err)
	}

	return users, nil
}

func (r *repository) UpdateProfile(ctx context.Context, user *User) error {
	query := `
		UPDATE users
		SET image_url = $2, is_onboarded = $3,
		    designation = $4, certifications = $5, dre_num = $6,
		    phone_num = $7, agent_email = $8, office_address = $9,
		    mls_info = $10, broker_info = $11, tagline = $12,
		    website_info = $13, zillow_info = $14, fb_info = $15,
		    insta_info = $16, address_book_info = $17, email_acct_info = $18,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	p := user.Profile
	err := r.db.GetContext(ctx, &user.UpdatedAt, query,
		user.ID,
		user.ImageURL,
		user.IsOnboarded,
		p.Designation,
		p.Certifications,
		p.DRENum,
		p.PhoneNum,
		p.AgentEmail,
		p.OfficeAddress,
		p.MLSInfo,
		p.BrokerInfo,
		p.Tagline,
		p.WebsiteInfo,
		p.ZillowInfo,
		p.FBInfo,
		p.InstaInfo,
		p.AddressBookInfo,
		p.EmailAcctInfo,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	return nil
}

func (r *repository) UpdateAccess(
	ctx context.Context,
	id string,
	isAdmin, hasPaid bool,
) error {
	query := `
		UPDATE users
		SET is_admin = $2, has_paid = $3,
		    token_version = token_version + 1, updated_at = NOW()
		WHERE id = $1`

	return r.execOne(ctx, "update access", query, id, isAdmin, hasPaid)
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1`

	return r.execOne(ctx, "update password", query, id, passwordHash)
}

func (r *repository) IncrementTokenVersion(
	ctx context.Context,
	id string,
) error {
	query := `
		UPDATE users
		SET token_version = token_version + 1, updated_at = NOW()
		WHERE id = $1`

	return r.execOne(ctx, "increment token version", query, id)
}

func (r *repository) execOne(
	ctx context.Context,
	op, query string,
	args ...any,
) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	params.Normalize()

	where := "TRUE"
	var args []any

	if params.Search != "" {
		where = `(email ILIKE $1 OR first_name ILIKE $1 OR last_name ILIKE $1)`
		args = append(args, "%"+core.EscapeLike(params.Search)+"%")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM users WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s
		FROM users
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		userColumns, where, len(args)+1, len(args)+2)

	args = append(args, params.PageSize, params.Offset())

	var users []User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	return users, total, nil
}

func (r *repository) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}

	return exists, nil
}

// SaveAttachment replaces any earlier file of the same kind.
func (r *repository) SaveAttachment(ctx context.Context, a *Attachment) error {
	query := `
		INSERT INTO user_attachments (user_id, kind, content, content_type, size)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, kind) DO UPDATE
		SET content = EXCLUDED.content,
		    content_type = EXCLUDED.content_type,
		    size = EXCLUDED.size,
		    updated_at = NOW()
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &a.UpdatedAt, query,
		a.UserID,
		string(a.Kind),
		a.Content,
		a.ContentType,
		a.Size,
	)
	if err != nil {
		if core.IsForeignKeyError(err) {
			return fmt.Errorf("save attachment: %w", core.ErrNotFound)
		}
		return fmt.Errorf("save attachment: %w", err)
	}

	return nil
}

func (r *repository) GetAttachment(
	ctx context.Context,
	userID string,
	kind AttachmentKind,
) (*Attachment, error) {
	query := `
		SELECT user_id, kind, content, content_type, size, updated_at
		FROM user_attachments
		WHERE user_id = $1 AND kind = $2`

	var a Attachment
	err := r.db.GetContext(ctx, &a, query, userID, string(kind))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get attachment: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get attachment: %w", err)
	}

	return &a, nil
}

func (r *repository) ListAttachmentKinds(
	ctx context.Context,
	userID string,
) ([]string, error) {
	query := `
		SELECT kind FROM user_attachments
		WHERE user_id = $1
		ORDER BY kind`

	var kinds []string
	if err := r.db.SelectContext(ctx, &kinds, query, userID); err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}

	return kinds, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
