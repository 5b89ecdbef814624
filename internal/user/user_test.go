// AngelaMos | 2026
// user_test.go

package user

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gborh1/CRM-real-estate/internal/core"
)

func TestProfileSetCoversEveryField(t *testing.T) {
	var p Profile
	for _, ref := range ProfileFields {
		assert.True(t, p.Set(ref, "v-"+ref), ref)
		assert.Equal(t, "v-"+ref, *p.field(ref), ref)
	}

	assert.False(t, p.Set("first_name", "Jane"))
	assert.False(t, p.Set("headshot", "x"))
}

func TestParseAttachmentKind(t *testing.T) {
	k, ok := ParseAttachmentKind("database")
	assert.True(t, ok)
	assert.Equal(t, AttachmentDatabase, k)

	_, ok = ParseAttachmentKind("resume")
	assert.False(t, ok)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "jane", NormalizeName("  Jane "))
}

type memRepo struct {
	Repository
	users  map[string]*User
	access map[string]int
}

func (m *memRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (m *memRepo) UpdateProfile(_ context.Context, u *User) error {
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memRepo) UpdateAccess(_ context.Context, id string, isAdmin, hasPaid bool) error {
	m.users[id].IsAdmin = isAdmin
	m.users[id].HasPaid = hasPaid
	m.access[id]++
	return nil
}

func newMemRepo(users ...*User) *memRepo {
	m := &memRepo{users: map[string]*User{}, access: map[string]int{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func TestUpdateMeAppliesOnlyProvidedFields(t *testing.T) {
	repo := newMemRepo(&User{
		ID:      "u-1",
		Profile: Profile{Tagline: "Homes first", Designation: "Agent"},
	})
	svc := NewService(repo)

	broker := "Broker"
	done := true
	_, err := svc.UpdateMe(context.Background(), "u-1", UpdateProfileRequest{
		Designation: &broker,
		IsOnboarded: &done,
	})
	require.NoError(t, err)

	got := repo.users["u-1"]
	assert.Equal(t, "Broker", got.Designation)
	assert.Equal(t, "Homes first", got.Tagline)
	assert.True(t, got.IsOnboarded)
}

func TestUpdateMeRequiresUser(t *testing.T) {
	_, err := NewService(newMemRepo()).UpdateMe(context.Background(), "", UpdateProfileRequest{})
	assert.ErrorIs(t, err, core.ErrUnauthorized)
}

func TestUpdateAccessKeepsUnsetFlag(t *testing.T) {
	repo := newMemRepo(&User{ID: "u-1", HasPaid: true})
	svc := NewService(repo)

	yes := true
	u, err := svc.UpdateAccess(context.Background(), "u-1", UpdateAccessRequest{IsAdmin: &yes})
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)
	assert.True(t, u.HasPaid)
	assert.Equal(t, 1, repo.access["u-1"])
}

func TestGetAttachmentRejectsUnknownKind(t *testing.T) {
	_, err := NewService(newMemRepo()).GetAttachment(context.Background(), "u-1", "resume")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestFindByNameQuery(t *testing.T) {
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer raw.Close()

	mock.ExpectQuery(`FROM users\s+WHERE first_name = \$1 AND last_name = \$2`).
		WithArgs("jane", "doe").
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name"}).
			AddRow("u-1", "jane", "doe"))

	repo := NewRepository(sqlx.NewDb(raw, "pgx"))
	users, err := repo.FindByName(context.Background(), "jane", "doe")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "u-1", users[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCount(t *testing.T) {
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer raw.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := NewRepository(sqlx.NewDb(raw, "pgx")).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}
