// Package timeline is an in-memory notifications timeline used by tests. It
// honors min_id, since_id, max_id and limit the way the notifications API
// does and can be served over HTTP with Link headers.
package timeline

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/ncobase/pagewalk/paging"
)

// Entry is one timeline item.
type Entry struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// GetID returns the entry id.
func (e Entry) GetID() string { return e.ID }

// GetCreatedAt returns the entry creation time.
func (e Entry) GetCreatedAt() time.Time { return e.CreatedAt }

// Timeline holds entries with ids 1..n, entry i created at start + i*step.
type Timeline struct {
	mu       sync.Mutex
	entries  []Entry // newest first
	calls    []paging.CursorOptions
	queries  []url.Values
	failures []int
	token    string
}

// New creates a timeline of n entries.
func New(n int, start time.Time, step time.Duration) *Timeline {
	t := &Timeline{entries: make([]Entry, 0, n)}
	for i := n; i >= 1; i-- {
		t.entries = append(t.entries, Entry{
			ID:        strconv.Itoa(i),
			Type:      "mention",
			CreatedAt: start.Add(time.Duration(i) * step),
		})
	}
	return t
}

// RequireToken makes the HTTP handler reject requests without this bearer token.
func (t *Timeline) RequireToken(token string) { t.token = token }

// FailWith queues HTTP status codes returned by the next requests.
func (t *Timeline) FailWith(statuses ...int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failures = append(t.failures, statuses...)
}

// Calls returns the cursor options of every page served so far.
func (t *Timeline) Calls() []paging.CursorOptions {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]paging.CursorOptions(nil), t.calls...)
}

// Queries returns the raw query of every HTTP request received so far.
func (t *Timeline) Queries() []url.Values {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]url.Values(nil), t.queries...)
}

// Page returns the entries matching opts, newest first. NextMaxID is set
// only when older matching entries remain.
func (t *Timeline) Page(opts paging.CursorOptions) (*paging.Page[Entry], error) {
	lower, err := bound(opts.MinID, opts.SinceID)
	if err != nil {
		return nil, err
	}
	upper, err := parse(opts.MaxID)
	if err != nil {
		return nil, err
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = paging.DefaultLimit
	}

	t.mu.Lock()
	t.calls = append(t.calls, opts)
	t.mu.Unlock()

	matched := make([]Entry, 0, limit)
	for _, e := range t.entries {
		id, _ := strconv.ParseUint(e.ID, 10, 64)
		if id <= lower || (upper != 0 && id >= upper) {
			continue
		}
		matched = append(matched, e)
	}

	page := &paging.Page[Entry]{Items: matched[:min(limit, len(matched))]}
	if len(matched) > limit {
		page.NextMaxID = page.Items[len(page.Items)-1].ID
	}
	return page, nil
}

// Fetcher returns a fetcher reading the timeline directly.
func (t *Timeline) Fetcher() paging.Fetcher[Entry] {
	return paging.FetchFunc[Entry](func(_ context.Context, opts paging.CursorOptions) (*paging.Page[Entry], error) {
		return t.Page(opts)
	})
}

// ServeHTTP serves the timeline as a JSON array with a rel="next" Link header.
func (t *Timeline) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	t.mu.Lock()
	t.queries = append(t.queries, q)
	var status int
	if len(t.failures) > 0 {
		status, t.failures = t.failures[0], t.failures[1:]
	}
	t.mu.Unlock()

	if status != 0 {
		http.Error(w, `{"error":"injected failure"}`, status)
		return
	}
	if t.token != "" && r.Header.Get("Authorization") != "Bearer "+t.token {
		http.Error(w, `{"error":"The access token is invalid"}`, http.StatusUnauthorized)
		return
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	page, err := t.Page(paging.CursorOptions{
		MinID:   q.Get("min_id"),
		SinceID: q.Get("since_id"),
		MaxID:   q.Get("max_id"),
		Limit:   limit,
	})
	if err != nil {
		http.Error(w, `{"error":"bad cursor"}`, http.StatusBadRequest)
		return
	}

	if page.NextMaxID != "" {
		next := url.URL{Scheme: "http", Host: r.Host, Path: r.URL.Path, RawQuery: "max_id=" + page.NextMaxID}
		prev := url.URL{Scheme: "http", Host: r.Host, Path: r.URL.Path, RawQuery: "min_id=" + page.Items[0].ID}
		w.Header().Set("Link", fmt.Sprintf(`<%s>; rel="next", <%s>; rel="prev"`, next.String(), prev.String()))
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(page.Items)
}

func bound(minID, sinceID string) (uint64, error) {
	a, err := parse(minID)
	if err != nil {
		return 0, err
	}
	b, err := parse(sinceID)
	if err != nil {
		return 0, err
	}
	return max(a, b), nil
}

func parse(id string) (uint64, error) {
	if id == "" {
		return 0, nil
	}
	return strconv.ParseUint(id, 10, 64)
}
