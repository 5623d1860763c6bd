package verify

import (
	"context"
	"fmt"

	"github.com/ncobase/pagewalk/paging"
)

// Check names
const (
	CheckUnbounded    = "unbounded_reaches_cap"
	CheckNonEmpty     = "bounded_non_empty"
	CheckSubset       = "bounded_strict_subset"
	CheckFewerPages   = "bounded_fewer_iterations"
	CheckNoDuplicates = "no_duplicate_ids"
)

// minUnboundedResults is the smallest unbounded result worth splitting.
const minUnboundedResults = 3

// Run summarizes one traversal.
type Run struct {
	Mode       string `json:"mode"`
	LowerBound uint64 `json:"lower_bound"`
	Items      int    `json:"items"`
	Iterations int    `json:"iterations"`
	Exhausted  bool   `json:"exhausted"`
}

// Check is one verified property.
type Check struct {
	Name   string `json:"name"`
	Mode   string `json:"mode,omitempty"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// Report is the outcome of Verify.
type Report struct {
	MaxPages int     `json:"max_pages"`
	MiddleID uint64  `json:"middle_id"`
	Runs     []Run   `json:"runs"`
	Checks   []Check `json:"checks"`
}

// OK reports whether every check passed.
func (r *Report) OK() bool {
	return len(r.Failures()) == 0
}

// Failures returns the checks that did not pass.
func (r *Report) Failures() []Check {
	var failed []Check
	for _, c := range r.Checks {
		if !c.Passed {
			failed = append(failed, c)
		}
	}
	return failed
}

func (r *Report) add(name, mode string, passed bool, format string, args ...any) {
	r.Checks = append(r.Checks, Check{Name: name, Mode: mode, Passed: passed, Detail: fmt.Sprintf(format, args...)})
}

// Verify checks that the server honors lower-bound cursors. It runs an
// unbounded traversal, picks the item closest to the middle of its time
// span, then runs one traversal per mode bounded by that item. Every bounded
// traversal must return a strict, non-empty subset of the unbounded one in
// fewer iterations. Fetch errors abort the verification.
func Verify[T paging.Timestamped](ctx context.Context, f paging.Fetcher[T], maxPages int, opts ...paging.Option) (*Report, error) {
	report := &Report{MaxPages: maxPages}

	full, err := paging.Paginate(ctx, f, paging.Request{Mode: paging.ModeMinID, MaxPages: maxPages}, opts...)
	if err != nil {
		return nil, fmt.Errorf("unbounded traversal: %w", err)
	}
	report.Runs = append(report.Runs, summarize("none", 0, full))
	report.add(CheckUnbounded, "", len(full.Items) >= minUnboundedResults && full.Iterations == maxPages,
		"items=%d iterations=%d max_pages=%d", len(full.Items), full.Iterations, maxPages)
	report.add(CheckNoDuplicates, "", unique(full.Items), "items=%d", len(full.Items))

	mid, err := paging.MiddleID(full.Items)
	if err != nil {
		return nil, fmt.Errorf("middle id: %w", err)
	}
	report.MiddleID = mid

	ids := make(map[string]struct{}, len(full.Items))
	for _, item := range full.Items {
		ids[item.GetID()] = struct{}{}
	}

	for _, mode := range []paging.Mode{paging.ModeMinID, paging.ModeSinceID} {
		bounded, err := paging.Paginate(ctx, f, paging.Request{LowerBound: mid, Mode: mode, MaxPages: maxPages}, opts...)
		if err != nil {
			return nil, fmt.Errorf("%s traversal: %w", mode, err)
		}
		report.Runs = append(report.Runs, summarize(mode.String(), mid, bounded))

		outside := 0
		for _, item := range bounded.Items {
			if _, ok := ids[item.GetID()]; !ok {
				outside++
			}
		}

		report.add(CheckNonEmpty, mode.String(), len(bounded.Items) > 0, "items=%d", len(bounded.Items))
		report.add(CheckSubset, mode.String(), len(bounded.Items) < len(full.Items) && outside == 0,
			"items=%d unbounded=%d not_in_unbounded=%d", len(bounded.Items), len(full.Items), outside)
		report.add(CheckFewerPages, mode.String(), bounded.Iterations < full.Iterations,
			"iterations=%d unbounded=%d", bounded.Iterations, full.Iterations)
		report.add(CheckNoDuplicates, mode.String(), unique(bounded.Items), "items=%d", len(bounded.Items))
	}

	return report, nil
}

func summarize[T any](mode string, bound uint64, res *paging.Result[T]) Run {
	return Run{
		Mode:       mode,
		LowerBound: bound,
		Items:      len(res.Items),
		Iterations: res.Iterations,
		Exhausted:  res.Exhausted,
	}
}

func unique[T paging.Item](items []T) bool {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.GetID()]; ok {
			return false
		}
		seen[item.GetID()] = struct{}{}
	}
	return true
}
