package paging

import (
	"context"
	"strconv"
	"time"

	"github.com/ncobase/pagewalk/ecode"
)

const (
	// DefaultLimit is the page size sent when the request does not set one.
	DefaultLimit = 40
	// MaxLimit is the largest page size the server accepts.
	MaxLimit = 80
)

// Item is a record with a string-encoded unique identifier.
type Item interface {
	GetID() string
}

// Timestamped is an Item with a creation time.
type Timestamped interface {
	Item
	GetCreatedAt() time.Time
}

// CursorOptions holds the cursor parameters of a single page request
type CursorOptions struct {
	MinID   string `url:"min_id,omitempty" json:"min_id,omitempty"`
	SinceID string `url:"since_id,omitempty" json:"since_id,omitempty"`
	MaxID   string `url:"max_id,omitempty" json:"max_id,omitempty"`
	Limit   int    `url:"limit,omitempty" json:"limit,omitempty"`
}

// WithMaxID returns a copy of o with MaxID set.
func (o CursorOptions) WithMaxID(maxID string) CursorOptions {
	o.MaxID = maxID
	return o
}

// Page is one batch of items plus the cursor for the next batch.
type Page[T any] struct {
	Items     []T    `json:"items"`
	NextMaxID string `json:"next_max_id,omitempty"`
}

// Exhausted reports whether the server signalled there are no more pages.
func (p *Page[T]) Exhausted() bool {
	return p == nil || p.NextMaxID == ""
}

// Fetcher performs one page request
type Fetcher[T any] interface {
	Fetch(ctx context.Context, opts CursorOptions) (*Page[T], error)
}

// FetchFunc is a function type that implements Fetcher
type FetchFunc[T any] func(ctx context.Context, opts CursorOptions) (*Page[T], error)

// Fetch calls f(ctx, opts).
func (f FetchFunc[T]) Fetch(ctx context.Context, opts CursorOptions) (*Page[T], error) {
	return f(ctx, opts)
}

// Request holds the traversal parameters
type Request struct {
	LowerBound uint64 `json:"lower_bound"`
	Mode       Mode   `json:"mode"`
	MaxPages   int    `json:"max_pages"`
	Limit      int    `json:"limit,omitempty"`
	StartMaxID string `json:"start_max_id,omitempty"`
}

// NormalizeRequest ensures that Limit is within an acceptable range
func NormalizeRequest(req Request) Request {
	if req.Limit <= 0 || req.Limit > MaxLimit {
		req.Limit = DefaultLimit
	}
	return req
}

// Validate checks the request before any page is fetched.
func (r Request) Validate() error {
	if r.MaxPages <= 0 {
		return ecode.InvalidArgument(ecode.FieldIsInvalid("max_pages") + ": must be positive, got " + strconv.Itoa(r.MaxPages))
	}
	if !r.Mode.Valid() {
		return ecode.InvalidArgument(ecode.FieldIsInvalid("mode"))
	}
	return nil
}

// Options builds the cursor options for a page request.
func (r Request) Options(maxID string) CursorOptions {
	opts := CursorOptions{MaxID: maxID, Limit: r.Limit}
	if r.LowerBound == 0 {
		return opts
	}
	bound := strconv.FormatUint(r.LowerBound, 10)
	switch r.Mode {
	case ModeMinID:
		opts.MinID = bound
	case ModeSinceID:
		opts.SinceID = bound
	}
	return opts
}

// Result holds the traversal result
type Result[T any] struct {
	Items      []T    `json:"items"`
	Iterations int    `json:"iterations"`
	NextMaxID  string `json:"next_max_id,omitempty"`
	Exhausted  bool   `json:"exhausted"`
}

// Cursor returns the position to resume a capped traversal from.
func (r *Result[T]) Cursor(req Request) (Cursor, bool) {
	if r.Exhausted || r.NextMaxID == "" {
		return Cursor{}, false
	}
	return Cursor{Mode: req.Mode, LowerBound: req.LowerBound, MaxID: r.NextMaxID}, true
}
