package paging

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/ncobase/pagewalk/ctxutil"
	"github.com/ncobase/pagewalk/ecode"
)

// Logger is the logging surface used by the paginator.
type Logger interface {
	Debugf(ctx context.Context, format string, args ...any)
	Infof(ctx context.Context, format string, args ...any)
}

// PageEvent describes one processed page.
type PageEvent struct {
	Iteration int
	Fetched   int
	Added     int
	Total     int
	NextMaxID string
	Duration  time.Duration
}

// Duplicates returns the number of fetched items already seen on earlier pages.
func (e PageEvent) Duplicates() int {
	return e.Fetched - e.Added
}

// PageHook is called after every page has been merged.
type PageHook func(ctx context.Context, e PageEvent)

type settings struct {
	logger Logger
	hooks  []PageHook
}

// Option configures a traversal
type Option func(*settings)

// WithLogger sets the traversal logger.
func WithLogger(l Logger) Option {
	return func(s *settings) {
		s.logger = l
	}
}

// WithPageHook adds a hook called after each page.
func WithPageHook(h PageHook) Option {
	return func(s *settings) {
		if h != nil {
			s.hooks = append(s.hooks, h)
		}
	}
}

func newSettings(opts []Option) *settings {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *settings) debugf(ctx context.Context, format string, args ...any) {
	if s.logger != nil {
		s.logger.Debugf(ctx, format, args...)
	}
}

func (s *settings) infof(ctx context.Context, format string, args ...any) {
	if s.logger != nil {
		s.logger.Infof(ctx, format, args...)
	}
}

// traversal is the mutable state of one walk.
type traversal struct {
	iterations int
	total      int
	nextMaxID  string
	exhausted  bool
}

// Paginate walks the fetcher page by page until the server reports no next
// page or MaxPages fetches have been made, and returns the items with
// duplicate IDs removed. The first occurrence of an ID wins.
func Paginate[T Item](ctx context.Context, f Fetcher[T], req Request, opts ...Option) (*Result[T], error) {
	ctx, _ = ctxutil.EnsureTraceID(ctx)
	s := newSettings(opts)

	items := make([]T, 0)
	t, err := walk(ctx, f, req, s, func(item T) bool {
		items = append(items, item)
		return true
	})
	if err != nil {
		return nil, err
	}

	s.infof(ctx, "traversal done: mode=%s lower_bound=%d items=%d iterations=%d exhausted=%t",
		req.Mode, req.LowerBound, len(items), t.iterations, t.exhausted)

	return &Result[T]{
		Items:      items,
		Iterations: t.iterations,
		NextMaxID:  t.nextMaxID,
		Exhausted:  t.exhausted,
	}, nil
}

// All returns an iterator over the deduplicated items of a traversal. Pages
// are fetched lazily; an error is yielded once and ends the sequence.
func All[T Item](ctx context.Context, f Fetcher[T], req Request, opts ...Option) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		ctx, _ := ctxutil.EnsureTraceID(ctx)
		s := newSettings(opts)
		if _, err := walk(ctx, f, req, s, func(item T) bool {
			return yield(item, nil)
		}); err != nil {
			var zero T
			yield(zero, err)
		}
	}
}

// walk runs the fetch loop, handing every unseen item to emit. It returns
// early without error when emit returns false.
func walk[T Item](ctx context.Context, f Fetcher[T], req Request, s *settings, emit func(T) bool) (traversal, error) {
	t := traversal{nextMaxID: req.StartMaxID}
	if f == nil {
		return t, ecode.InvalidArgument(ecode.FieldIsRequired("fetcher"))
	}
	if err := req.Validate(); err != nil {
		return t, err
	}
	req = NormalizeRequest(req)

	seen := make(map[string]struct{})
	for {
		if err := ctx.Err(); err != nil {
			return t, err
		}

		opts := req.Options(t.nextMaxID)
		start := time.Now()
		page, err := f.Fetch(ctx, opts)
		if err != nil {
			return t, fmt.Errorf("fetch page %d: %w", t.iterations+1, err)
		}
		if page == nil {
			page = &Page[T]{}
		}

		fetched, added := len(page.Items), 0
		stopped := false
		for _, item := range page.Items {
			id := item.GetID()
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			added++
			if !emit(item) {
				stopped = true
				break
			}
		}

		t.iterations++
		t.total += added
		t.nextMaxID = page.NextMaxID
		t.exhausted = page.Exhausted()

		e := PageEvent{
			Iteration: t.iterations,
			Fetched:   fetched,
			Added:     added,
			Total:     t.total,
			NextMaxID: page.NextMaxID,
			Duration:  time.Since(start),
		}
		s.debugf(ctx, "page %d: min_id=%q since_id=%q max_id=%q fetched=%d added=%d next_max_id=%q",
			e.Iteration, opts.MinID, opts.SinceID, opts.MaxID, e.Fetched, e.Added, e.NextMaxID)
		for _, h := range s.hooks {
			h(ctx, e)
		}

		if stopped || t.exhausted || t.iterations >= req.MaxPages {
			return t, nil
		}
	}
}
