// AngelaMos | 2026
// repository_test.go

package contact

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gborh1/CRM-real-estate/internal/core"
)

var rowColumns = []string{
	"id", "primary_first_name", "primary_last_name",
	"secondary_first_name", "secondary_last_name",
	"primary_email", "secondary_email", "primary_phone", "secondary_phone",
	"primary_dob", "secondary_dob", "status", "mail_preference",
	"past_client", "notes", "image_url", "property_id", "is_visible",
	"created_at", "updated_at",
	"address", "suite", "city", "state", "zip_code",
}

func newMock(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(sqlx.NewDb(db, "pgx")), mock
}

func addContactRow(rows *sqlmock.Rows, id, first, last string) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(
		id, first, last,
		nil, nil,
		nil, nil, nil, nil,
		nil, nil, "buyer", "all",
		false, nil, "/avatar/andy/1", nil, true,
		now, now,
		nil, nil, nil, nil, nil,
	)
}

func TestSearchPushesFiltersIntoQuery(t *testing.T) {
	repo, mock := newMock(t)

	rows := addContactRow(sqlmock.NewRows(rowColumns), "c1", "John", "Smith")

	mock.ExpectQuery(
		regexp.QuoteMeta("JOIN users_contacts uc ON uc.contact_id = c.id") +
			".*" + regexp.QuoteMeta("WHERE uc.user_id = $1 AND c.is_visible") +
			".*" + regexp.QuoteMeta("c.primary_last_name ILIKE $2") +
			".*" + regexp.QuoteMeta("p.zip_code ILIKE $2") +
			".*" + regexp.QuoteMeta("ORDER BY c.primary_last_name, c.primary_first_name, c.id"),
	).
		WithArgs("u1", "%smith%").
		WillReturnRows(rows)

	mock.ExpectQuery(regexp.QuoteMeta("FROM contacts_tags ct")).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"contact_id", "name"}).
			AddRow("c1", "vip"))

	got, err := repo.Search(context.Background(), "u1", "smith")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Smith", got[0].PrimaryLastName)
	assert.Equal(t, StatusBuyer, got[0].Status)
	assert.Equal(t, []string{"vip"}, got[0].Tags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchWithoutQueryHasNoFilter(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE uc.user_id = $1 AND c.is_visible\n")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(rowColumns))

	got, err := repo.Search(context.Background(), "u1", "")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchEscapesLikeMetacharacters(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery("ILIKE").
		WithArgs("u1", `%50\%%`).
		WillReturnRows(sqlmock.NewRows(rowColumns))

	_, err := repo.Search(context.Background(), "u1", "50%")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHideMissingContact(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("UPDATE contacts").
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Hide(context.Background(), "gone")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestGetByIDOnlyVisible(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.id = $1 AND c.is_visible")).
		WithArgs("hidden").
		WillReturnRows(sqlmock.NewRows(rowColumns))

	_, err := repo.GetByID(context.Background(), "hidden")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
