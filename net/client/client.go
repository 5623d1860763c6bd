package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/ncobase/pagewalk/ecode"
	"github.com/ncobase/pagewalk/logging/observes"
	"github.com/ncobase/pagewalk/paging"
	"github.com/ncobase/pagewalk/version"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 4 << 10
	maxPageBody    = 16 << 20
)

// Logger is the logging surface used by the client.
type Logger interface {
	Debugf(ctx context.Context, format string, args ...any)
}

// BreakerOptions configures the circuit breaker in front of the API.
type BreakerOptions struct {
	Name         string
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
}

// Options configures a Client
type Options struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	UserAgent  string
	RateLimit  float64 // requests per second, 0 disables limiting
	Burst      int
	Breaker    *BreakerOptions
	HTTPClient *http.Client
	Logger     Logger
}

// Client performs authenticated GET requests against a REST API.
// It is safe for concurrent use.
type Client struct {
	baseURL   *url.URL
	token     string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker
	logger    Logger
}

// New creates a client
func New(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, ecode.InvalidArgument(ecode.FieldIsRequired("base_url"))
	}
	raw := opts.BaseURL
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, ecode.InvalidArgument(ecode.FieldIsInvalid("base_url") + ": " + opts.BaseURL)
	}

	c := &Client{
		baseURL:   u,
		token:     opts.Token,
		userAgent: opts.UserAgent,
		http:      opts.HTTPClient,
		logger:    opts.Logger,
	}
	if c.userAgent == "" {
		c.userAgent = version.UserAgent()
	}
	if c.http == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		c.http = &http.Client{Timeout: timeout}
	}
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	if opts.Breaker != nil {
		c.breaker = newBreaker(u.Host, opts.Breaker)
	}
	return c, nil
}

func newBreaker(host string, o *BreakerOptions) *gobreaker.CircuitBreaker {
	name := o.Name
	if name == "" {
		name = host
	}
	minRequests := o.MinRequests
	if minRequests == 0 {
		minRequests = 3
	}
	ratio := o.FailureRatio
	if ratio <= 0 {
		ratio = 0.6
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: o.MaxRequests,
		Interval:    o.Interval,
		Timeout:     o.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= minRequests && failureRatio >= ratio
		},
	})
}

// outcome carries a response through the breaker for errors that must not trip it.
type outcome struct {
	resp *http.Response
	err  error
}

// Get performs a GET request on path with query q. Non-2xx responses are
// returned as *StatusError; the caller must close the body of a returned response.
func (c *Client) Get(ctx context.Context, path string, q url.Values) (*http.Response, error) {
	u := c.baseURL.JoinPath(path)
	u.RawQuery = q.Encode()

	ctx, span := observes.StartSpan(ctx, "GET "+path,
		attribute.String("http.method", http.MethodGet),
		attribute.String("http.url", u.String()),
	)

	resp, err := c.get(ctx, path, u)
	if resp != nil {
		span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	}
	var se *StatusError
	if errors.As(err, &se) {
		span.SetAttributes(attribute.Int("http.status_code", se.StatusCode))
	}
	observes.EndSpan(span, err)
	return resp, err
}

func (c *Client) get(ctx context.Context, path string, u *url.URL) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, ecode.Transport("rate limiter", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, ecode.Transport("build request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	if c.logger != nil {
		c.logger.Debugf(ctx, "GET %s", u.String())
	}

	if c.breaker == nil {
		return c.do(req, path)
	}

	v, err := c.breaker.Execute(func() (any, error) {
		resp, err := c.do(req, path)
		if err != nil && tripsBreaker(err) {
			return nil, err
		}
		return outcome{resp: resp, err: err}, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, ecode.CircuitOpen(c.breaker.Name(), err)
	}
	if err != nil {
		return nil, err
	}
	o := v.(outcome)
	return o.resp, o.err
}

func (c *Client) do(req *http.Request, path string) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, ecode.Transport(req.Method+" "+path, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return nil, &StatusError{
		Method:     req.Method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}

// tripsBreaker reports whether err counts as an upstream failure.
func tripsBreaker(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	return true
}

// FetchPage performs one page request: opts and extra are encoded into the
// query string, the body is decoded as a JSON array of T and the next cursor
// is read from the Link header.
func FetchPage[T any](ctx context.Context, c *Client, path string, opts paging.CursorOptions, extra any) (*paging.Page[T], error) {
	q, err := query.Values(opts)
	if err != nil {
		return nil, ecode.InvalidArgument("encode cursor options: " + err.Error())
	}
	if extra != nil {
		ev, err := query.Values(extra)
		if err != nil {
			return nil, ecode.InvalidArgument("encode query: " + err.Error())
		}
		for k, vs := range ev {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
	}

	resp, err := c.Get(ctx, path, q)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	items := make([]T, 0)
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxPageBody)).Decode(&items); err != nil {
		return nil, ecode.Transport(fmt.Sprintf("decode %s", path), err)
	}

	return &paging.Page[T]{
		Items:     items,
		NextMaxID: NextMaxID(resp.Header),
	}, nil
}

// PageFetcher returns a paging.Fetcher for the JSON array resource at path.
func PageFetcher[T any](c *Client, path string, extra any) paging.Fetcher[T] {
	return paging.FetchFunc[T](func(ctx context.Context, opts paging.CursorOptions) (*paging.Page[T], error) {
		return FetchPage[T](ctx, c, path, opts, extra)
	})
}
