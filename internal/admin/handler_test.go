// AngelaMos | 2026
// handler_test.go

package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gborh1/CRM-real-estate/internal/middleware"
)

type fixedCount struct {
	n   int
	err error
}

func (c fixedCount) Count(context.Context) (int, error) { return c.n, c.err }

func claimsFor(isAdmin bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := middleware.WithClaims(r.Context(), &middleware.AccessTokenClaims{
				UserID:  "u-1",
				IsAdmin: isAdmin,
				HasPaid: true,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newRouter(h *Handler, isAdmin bool) chi.Router {
	r := chi.NewRouter()
	h.RegisterRoutes(r, claimsFor(isAdmin), middleware.RequireAdmin)
	return r
}

func TestSystemStatsIncludesRecordCounts(t *testing.T) {
	h := NewHandler(HandlerConfig{
		DBStats: func() sql.DBStats { return sql.DBStats{OpenConnections: 3} },
		DBPing:  func(context.Context) error { return nil },
		RedisPing: func(context.Context) error {
			return errors.New("connection refused")
		},
		Counters: []NamedCounter{
			{Name: "contacts", Counter: fixedCount{n: 12}},
			{Name: "transactions", Counter: fixedCount{err: errors.New("boom")}},
		},
	})

	rec := httptest.NewRecorder()
	newRouter(h, true).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data SystemStatsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.True(t, body.Data.Database.Healthy)
	assert.Equal(t, 3, body.Data.Database.Stats.OpenConnections)
	assert.False(t, body.Data.Redis.Healthy)
	assert.Nil(t, body.Data.Redis.Stats)
	assert.Equal(t, 12, body.Data.Records["contacts"])
	assert.Equal(t, -1, body.Data.Records["transactions"])
}

func TestStatsRequireAdmin(t *testing.T) {
	h := NewHandler(HandlerConfig{})

	rec := httptest.NewRecorder()
	newRouter(h, false).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/stats/records", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
