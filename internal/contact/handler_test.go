// AngelaMos | 2026
// handler_test.go

package contact

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gborh1/CRM-real-estate/internal/avatar"
	"github.com/gborh1/CRM-real-estate/internal/core"
	"github.com/gborh1/CRM-real-estate/internal/middleware"
)

// memRepo serves reads for handler tests. Writes that need a transaction
// are covered by the repository tests.
type memRepo struct {
	Repository
	users    map[string]bool
	contacts map[string]Row
	owners   map[string]string
}

func (m *memRepo) UserExists(_ context.Context, userID string) (bool, error) {
	return m.users[userID], nil
}

func (m *memRepo) IsOwner(_ context.Context, userID, contactID string) (bool, error) {
	return m.owners[contactID] == userID, nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*Row, error) {
	row, ok := m.contacts[id]
	if !ok || !row.IsVisible {
		return nil, core.ErrNotFound
	}
	return &row, nil
}

func (m *memRepo) Hide(_ context.Context, id string) error {
	row := m.contacts[id]
	row.IsVisible = false
	m.contacts[id] = row
	return nil
}

func (m *memRepo) Search(_ context.Context, userID, query string) ([]Row, error) {
	var out []Row
	for id, row := range m.contacts {
		if m.owners[id] != userID || !row.IsVisible {
			continue
		}
		if query != "" && !strings.Contains(
			strings.ToLower(row.PrimaryFirstName+" "+row.PrimaryLastName),
			strings.ToLower(query),
		) {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func newTestRouter(claims *middleware.AccessTokenClaims) (http.Handler, *memRepo) {
	repo := &memRepo{
		users: map[string]bool{"u1": true, "u2": true},
		contacts: map[string]Row{
			"c1": {Contact: Contact{ID: "c1", PrimaryFirstName: "John", PrimaryLastName: "Smith", IsVisible: true}},
			"c2": {Contact: Contact{ID: "c2", PrimaryFirstName: "Amy", PrimaryLastName: "Lee", IsVisible: true}},
			"c3": {Contact: Contact{ID: "c3", PrimaryFirstName: "Zed", PrimaryLastName: "Smithers", IsVisible: false}},
		},
		owners: map[string]string{"c1": "u1", "c2": "u1", "c3": "u1"},
	}

	h := NewHandler(NewService(nil, repo, avatar.New()))

	authenticate := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithClaims(r.Context(), claims)))
		})
	}

	r := chi.NewRouter()
	h.RegisterRoutes(r, authenticate)
	return r, repo
}

type searchEnvelope struct {
	Success bool           `json:"success"`
	Data    SearchResponse `json:"data"`
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestSearchMatchesAndHidesInvisible(t *testing.T) {
	h, _ := newTestRouter(&middleware.AccessTokenClaims{UserID: "u1", HasPaid: true})

	rec := get(t, h, "/contacts/search?search=smith")
	require.Equal(t, http.StatusOK, rec.Code)

	var body searchEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data.Contacts, 1)
	assert.Equal(t, "Smith", body.Data.Contacts[0].PrimaryLastName)
	assert.Equal(t, Placeholder, body.Data.Contacts[0].FullAddress)
}

func TestSearchOtherUserRequiresAdmin(t *testing.T) {
	h, _ := newTestRouter(&middleware.AccessTokenClaims{UserID: "u2", HasPaid: true})
	assert.Equal(t, http.StatusForbidden, get(t, h, "/contacts/search?contact_id=u1").Code)

	h, _ = newTestRouter(&middleware.AccessTokenClaims{UserID: "u2", IsAdmin: true})
	rec := get(t, h, "/contacts/search?contact_id=u1")
	require.Equal(t, http.StatusOK, rec.Code)

	var body searchEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data.Contacts, 2)
}

func TestSearchUnknownUser(t *testing.T) {
	h, _ := newTestRouter(&middleware.AccessTokenClaims{UserID: "ghost", HasPaid: true})
	assert.Equal(t, http.StatusNotFound, get(t, h, "/contacts/search").Code)
}

func TestUnpaidAccountIsGated(t *testing.T) {
	h, _ := newTestRouter(&middleware.AccessTokenClaims{UserID: "u1"})
	assert.Equal(t, http.StatusPaymentRequired, get(t, h, "/contacts/search").Code)
}

func TestGetChecksOwnership(t *testing.T) {
	h, _ := newTestRouter(&middleware.AccessTokenClaims{UserID: "u2", HasPaid: true})
	assert.Equal(t, http.StatusForbidden, get(t, h, "/contacts/c1").Code)

	h, _ = newTestRouter(&middleware.AccessTokenClaims{UserID: "u1", HasPaid: true})
	assert.Equal(t, http.StatusOK, get(t, h, "/contacts/c1").Code)
}

func TestDeleteHidesContact(t *testing.T) {
	h, repo := newTestRouter(&middleware.AccessTokenClaims{UserID: "u1", HasPaid: true})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/contacts/c2", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, repo.contacts["c2"].IsVisible)

	assert.Equal(t, http.StatusNotFound, get(t, h, "/contacts/c2").Code)
}
