// internal/dict/remote.go
//
// Remote dictionary oracle backed by an HTTP word-lookup API
// (dictionaryapi.dev style: GET <base>/<word>, 200 = known, 404 = unknown).
// Every failure path returns an error so the machine can fail closed.

package dict

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const defaultAPIBase = "https://api.dictionaryapi.dev/api/v2/entries/en"

// Remote looks words up against an HTTP dictionary API.
type Remote struct {
	base   string
	client *http.Client
}

// NewRemote constructs a Remote oracle. The base URL comes from the
// DICT_API_URL env var when set, or the public dictionaryapi.dev endpoint.
func NewRemote() *Remote {
	base := os.Getenv("DICT_API_URL")
	if base == "" {
		base = defaultAPIBase
	}
	return &Remote{
		base:   strings.TrimRight(base, "/"),
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

// NewRemoteWith constructs a Remote against an explicit base URL and client;
// used by tests with httptest servers.
func NewRemoteWith(base string, client *http.Client) *Remote {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &Remote{base: strings.TrimRight(base, "/"), client: client}
}

// CheckWord issues the lookup. 200 means the word exists, 404 means it
// doesn't; anything else (transport error, 5xx, timeout) is an error and the
// caller must reject the word.
func (r *Remote) CheckWord(ctx context.Context, word string) (bool, error) {
	u := r.base + "/" + url.PathEscape(strings.ToLower(word))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("dict lookup: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("dict lookup: unexpected status %d", resp.StatusCode)
	}
}
