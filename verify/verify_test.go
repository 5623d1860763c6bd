package verify

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ncobase/pagewalk/ecode"
	"github.com/ncobase/pagewalk/internal/timeline"
	"github.com/ncobase/pagewalk/mastodon"
	"github.com/ncobase/pagewalk/net/client"
	"github.com/ncobase/pagewalk/paging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestVerifyPasses(t *testing.T) {
	tl := timeline.New(200, epoch, time.Minute)

	report, err := Verify(context.Background(), tl.Fetcher(), 4)
	require.NoError(t, err)
	assert.True(t, report.OK(), "failures: %+v", report.Failures())

	assert.Equal(t, 4, report.MaxPages)
	assert.Equal(t, uint64(120), report.MiddleID)
	require.Len(t, report.Runs, 3)
	assert.Equal(t, Run{Mode: "none", Items: 160, Iterations: 4}, report.Runs[0])
	assert.Equal(t, Run{Mode: "min_id", LowerBound: 120, Items: 80, Iterations: 2, Exhausted: true}, report.Runs[1])
	assert.Equal(t, Run{Mode: "since_id", LowerBound: 120, Items: 80, Iterations: 2, Exhausted: true}, report.Runs[2])
	assert.Len(t, report.Checks, 10)

	calls := tl.Calls()
	require.Len(t, calls, 8)
	assert.Equal(t, "120", calls[4].MinID)
	assert.Empty(t, calls[4].SinceID)
	assert.Equal(t, "120", calls[6].SinceID)
	assert.Empty(t, calls[6].MinID)
}

func TestVerifyDetectsIgnoredBounds(t *testing.T) {
	tl := timeline.New(200, epoch, time.Minute)
	ignoring := paging.FetchFunc[timeline.Entry](func(ctx context.Context, opts paging.CursorOptions) (*paging.Page[timeline.Entry], error) {
		opts.MinID, opts.SinceID = "", ""
		return tl.Page(opts)
	})

	report, err := Verify(context.Background(), ignoring, 4)
	require.NoError(t, err)
	assert.False(t, report.OK())

	failed := map[string]int{}
	for _, c := range report.Failures() {
		failed[c.Name]++
	}
	assert.Equal(t, map[string]int{CheckSubset: 2, CheckFewerPages: 2}, failed)
}

func TestVerifyDetectsShortTimeline(t *testing.T) {
	tl := timeline.New(10, epoch, time.Minute)

	report, err := Verify(context.Background(), tl.Fetcher(), 4)
	require.NoError(t, err)
	require.NotEmpty(t, report.Failures())
	assert.Equal(t, CheckUnbounded, report.Failures()[0].Name)
}

func TestVerifyErrors(t *testing.T) {
	t.Run("empty timeline", func(t *testing.T) {
		_, err := Verify(context.Background(), timeline.New(0, epoch, time.Minute).Fetcher(), 4)
		assert.ErrorIs(t, err, ecode.ErrInvalidArgument)
	})

	t.Run("fetch failure", func(t *testing.T) {
		boom := errors.New("boom")
		f := paging.FetchFunc[timeline.Entry](func(context.Context, paging.CursorOptions) (*paging.Page[timeline.Entry], error) {
			return nil, boom
		})
		_, err := Verify(context.Background(), f, 4)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "unbounded traversal")
	})

	t.Run("invalid page cap", func(t *testing.T) {
		_, err := Verify(context.Background(), timeline.New(5, epoch, time.Minute).Fetcher(), 0)
		assert.ErrorIs(t, err, ecode.ErrInvalidArgument)
	})
}

func TestVerifyOverHTTP(t *testing.T) {
	tl := timeline.New(100, epoch, time.Second)
	tl.RequireToken("tok")
	srv := httptest.NewServer(tl)
	defer srv.Close()

	c, err := client.New(client.Options{BaseURL: srv.URL, Token: "tok"})
	require.NoError(t, err)

	report, err := Verify(context.Background(), mastodon.Notifications(c, nil), 2)
	require.NoError(t, err)
	assert.True(t, report.OK(), "failures: %+v", report.Failures())
	assert.Equal(t, uint64(60), report.MiddleID)
	assert.Len(t, tl.Queries(), 4)
}
