// Package client implements page fetchers over HTTP.
//
// A Client sends authenticated GET requests, optionally behind a rate
// limiter and a circuit breaker, and FetchPage turns one JSON array response
// into a paging.Page by reading the next max_id from the Link header:
//
//	c, err := client.New(client.Options{
//	    BaseURL:   "mastodon.social",
//	    Token:     token,
//	    RateLimit: 5,
//	    Breaker:   &client.BreakerOptions{Timeout: 30 * time.Second},
//	})
//	f := client.WithRetry(client.PageFetcher[Status](c, "/api/v1/timelines/home", nil), client.DefaultRetryConfig())
//	res, err := paging.Paginate(ctx, f, req)
//
// Non-2xx responses are returned as *StatusError, which matches
// ecode.ErrTransport. An open circuit yields ecode.ErrCircuitOpen.
package client
