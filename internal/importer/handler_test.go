// AngelaMos | 2026
// handler_test.go

package importer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gborh1/CRM-real-estate/internal/config"
	"github.com/gborh1/CRM-real-estate/internal/core"
)

const janePayload = `{
  "event_id": "01HX",
  "event_type": "form_response",
  "form_response": {
    "answers": [
      {"field": {"ref": "first_name"}, "type": "text", "text": "Jane"},
      {"field": {"ref": "last_name"}, "type": "text", "text": "Doe"},
      {"field": {"ref": "designation"}, "type": "text", "text": "Broker"},
      {"field": {"ref": "agent_email"}, "type": "email", "email": "jane@realty.test"}
    ]
  }
}`

func passthrough(next http.Handler) http.Handler { return next }

func serveWebhook(h *Handler, body string, header map[string]string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	h.RegisterRoutes(r, passthrough)

	req := httptest.NewRequest(http.MethodPost, "/webhooks", strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestWebhookAppliesAnswers(t *testing.T) {
	store := newMemStore(jane())
	h := NewHandler(newPipeline(store, fakeFetcher{}), "", nil)

	rec := serveWebhook(h, janePayload, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"received":true`)

	u := store.users["u-jane"]
	assert.Equal(t, "Broker", u.Designation)
	assert.Equal(t, "jane@realty.test", u.AgentEmail)
}

func TestWebhookAcknowledgesPipelineFailure(t *testing.T) {
	twin := jane()
	twin.ID = "u-jane-2"
	h := NewHandler(newPipeline(newMemStore(jane(), twin), fakeFetcher{}), "", nil)

	assert.Equal(t, http.StatusOK, serveWebhook(h, janePayload, nil).Code)
}

func TestWebhookMalformedJSON(t *testing.T) {
	h := NewHandler(newPipeline(newMemStore(), fakeFetcher{}), "", nil)
	assert.Equal(t, http.StatusBadRequest, serveWebhook(h, `{"form_response":`, nil).Code)
}

func TestWebhookSignature(t *testing.T) {
	store := newMemStore(jane())
	h := NewHandler(newPipeline(store, fakeFetcher{}), "s3cret", nil)

	rec := serveWebhook(h, janePayload, map[string]string{SignatureHeader: "sha256=bogus"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, store.users["u-jane"].Designation)

	rec = serveWebhook(h, janePayload, map[string]string{
		SignatureHeader: core.SignPayload([]byte(janePayload), "s3cret"),
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Broker", store.users["u-jane"].Designation)
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("png-bytes"))
		case "/big":
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		case "/slow":
			time.Sleep(200 * time.Millisecond)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewHTTPFetcher(config.ImportConfig{
		FetchTimeout: 50 * time.Millisecond,
		MaxFileBytes: 32,
		FileToken:    "tok",
	})
	ctx := context.Background()

	file, err := f.Fetch(ctx, srv.URL+"/ok")
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(file.Content))
	assert.Equal(t, "image/png", file.ContentType)

	for _, path := range []string{"/missing", "/big", "/slow"} {
		_, err := f.Fetch(ctx, srv.URL+path)
		assert.ErrorIs(t, err, ErrFetch, path)
	}
}
