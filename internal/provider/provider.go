// Package provider holds one adapter per upstream news API. Every adapter
// builds its own query, parses its own response shape, and normalizes into
// the shared Article schema, so the aggregation layer never branches on
// provider identity.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/MuradEyvazli/vizyon-haber/internal/model"
)

// Adapter fetches a page of normalized articles from one upstream source.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, pageSize, page int) ([]model.Article, error)
}

// Adapter-local failure modes. All of them are caught at the aggregation
// layer and converted to an empty result.
var (
	ErrMissingKey    = errors.New("api key not configured")
	ErrQuotaExceeded = errors.New("daily quota exhausted")
	ErrEmptyResult   = errors.New("no articles returned")
)

// StatusError reports a non-success upstream HTTP status.
type StatusError struct {
	Provider string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: upstream status %d", e.Provider, e.Code)
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}

// getJSON issues a GET with query params and decodes the JSON body into v.
func getJSON(ctx context.Context, client *http.Client, provider, endpoint string, params url.Values, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &StatusError{Provider: provider, Code: resp.StatusCode}
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// makeID builds a batch-unique article ID. IDs are not stable across
// requests.
func makeID(provider string, index int) string {
	return fmt.Sprintf("%s-%d-%d", provider, time.Now().UnixMilli(), index)
}

// first returns the first element of a slice-valued field, or empty.
func first(ss []string) string {
	if len(ss) > 0 {
		return ss[0]
	}
	return ""
}
