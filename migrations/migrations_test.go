// AngelaMos | 2026
// migrations_test.go

package migrations

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedInOrder(t *testing.T) {
	all, err := Load()
	require.NoError(t, err)
	require.Len(t, all, 3)

	assert.Equal(t, "0001", all[0].Version)
	assert.Equal(t, "users", all[0].Name)
	assert.Equal(t, "contacts", all[1].Name)
	assert.Equal(t, "deals", all[2].Name)
	assert.Contains(t, all[1].SQL, "CREATE TABLE IF NOT EXISTS users_contacts")
}

func TestLoadRejectsBadNames(t *testing.T) {
	fsys := fstest.MapFS{"sql/init.sql": {Data: []byte("SELECT 1")}}
	_, err := load(fsys, "sql")
	assert.Error(t, err)
}

func TestUpSkipsAppliedVersions(t *testing.T) {
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer raw.Close()
	db := sqlx.NewDb(raw, "pgx")

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT version FROM schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow("0001").AddRow("0002"))

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS transactions").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schema_migrations").
		WithArgs("0003", "deals").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	done, err := Up(context.Background(), db, logger)
	require.NoError(t, err)
	assert.Equal(t, []string{"0003"}, done)
	assert.NoError(t, mock.ExpectationsWereMet())
}
