// AngelaMos | 2026
// fetch.go

package importer

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gborh1/CRM-real-estate/internal/config"
)

// File is a downloaded answer attachment.
type File struct {
	Content     []byte
	ContentType string
}

type Fetcher interface {
	Fetch(ctx context.Context, url string) (*File, error)
}

// HTTPFetcher downloads attachment URLs with a per-request timeout and a
// size cap. Every failure wraps ErrFetch.
type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
	token    string
}

func NewHTTPFetcher(cfg config.ImportConfig) *HTTPFetcher {
	return &HTTPFetcher{
		client:   &http.Client{Timeout: cfg.FetchTimeout},
		maxBytes: cfg.MaxFileBytes,
		token:    cfg.FileToken,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*File, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrFetch, err)
	}
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %d", ErrFetch, url, resp.StatusCode)
	}

	if f.maxBytes > 0 && resp.ContentLength > f.maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrFetch, url, f.maxBytes)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrFetch, err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrFetch, url, f.maxBytes)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}

	return &File{Content: body, ContentType: contentType}, nil
}

var _ Fetcher = (*HTTPFetcher)(nil)
