// Package paging walks cursor-paginated HTTP resources such as Mastodon
// timelines and notifications.
//
// A traversal repeatedly asks a Fetcher for a page, merges the items into an
// ordered result with duplicate IDs removed, and follows the server's next
// max_id cursor towards older items. It stops when the server reports no next
// page or when MaxPages fetches have been made.
//
// # Basic Usage
//
//	res, err := paging.Paginate(ctx, fetcher, paging.Request{
//	    LowerBound: 0,
//	    Mode:       paging.ModeMinID,
//	    MaxPages:   4,
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(len(res.Items), res.Iterations)
//
// # Lower Bounds
//
// A non-zero LowerBound is sent as min_id or since_id depending on Mode. The
// server then reports exhaustion as soon as it reaches the bound, so bounded
// traversals return a subset of the unbounded one in no more iterations.
//
//	mid, err := paging.MiddleID(res.Items)
//	half, err := paging.Paginate(ctx, fetcher, paging.Request{
//	    LowerBound: mid,
//	    Mode:       paging.ModeSinceID,
//	    MaxPages:   4,
//	})
//
// # Resuming
//
// A traversal stopped by MaxPages carries the next max_id. Encode it to hand
// out an opaque cursor and resume later:
//
//	if c, ok := res.Cursor(req); ok {
//	    token := paging.EncodeCursor(c)
//	    ...
//	    c, err := paging.DecodeCursor(token)
//	    next, err := paging.Paginate(ctx, fetcher, c.Request(4, 0))
//	}
//
// # Custom Fetchers
//
// Any function with the right shape can serve as a Fetcher:
//
//	f := paging.FetchFunc[Status](func(ctx context.Context, o paging.CursorOptions) (*paging.Page[Status], error) {
//	    return api.Statuses(ctx, o)
//	})
//
// Retries, rate limits and circuit breaking belong to the fetcher, not to the
// paginator. A fetcher error aborts the traversal.
package paging
