package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ncobase/pagewalk/paging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorPageHook(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(DefaultConfig(), reg)
	require.NoError(t, err)

	hook := c.PageHook()
	hook(context.Background(), paging.PageEvent{Iteration: 1, Fetched: 40, Added: 40, Total: 40, Duration: 20 * time.Millisecond})
	hook(context.Background(), paging.PageEvent{Iteration: 2, Fetched: 40, Added: 38, Total: 78, Duration: 30 * time.Millisecond})

	assert.Equal(t, float64(2), testutil.ToFloat64(c.pagesFetched))
	assert.Equal(t, float64(78), testutil.ToFloat64(c.itemsCollected))
	assert.Equal(t, float64(2), testutil.ToFloat64(c.itemsDuplicate))
	assert.Equal(t, 1, testutil.CollectAndCount(c.fetchDuration))

	n, err := testutil.GatherAndCount(reg, "pagewalk_pages_fetched_total", "pagewalk_fetch_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestObserveTraversal(t *testing.T) {
	c, err := NewCollector(DefaultConfig(), prometheus.NewRegistry())
	require.NoError(t, err)

	c.ObserveTraversal(true, nil)
	c.ObserveTraversal(false, nil)
	c.ObserveTraversal(false, nil)
	c.ObserveTraversal(false, errors.New("boom"))

	assert.Equal(t, float64(1), testutil.ToFloat64(c.traversals.WithLabelValues(StopExhausted)))
	assert.Equal(t, float64(2), testutil.ToFloat64(c.traversals.WithLabelValues(StopMaxPages)))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.traversals.WithLabelValues(StopError)))
}

func TestStopReason(t *testing.T) {
	assert.Equal(t, StopError, StopReason(true, errors.New("x")))
	assert.Equal(t, StopExhausted, StopReason(true, nil))
	assert.Equal(t, StopMaxPages, StopReason(false, nil))
}

func TestDisabledCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(&Config{Enabled: false}, reg)
	require.NoError(t, err)

	c.PageHook()(context.Background(), paging.PageEvent{Fetched: 10, Added: 10})
	c.ObserveTraversal(true, nil)
	assert.Equal(t, float64(0), testutil.ToFloat64(c.pagesFetched))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.Empty(t, mfs)
}

func TestNewCollectorErrors(t *testing.T) {
	_, err := NewCollector(&Config{Enabled: true}, prometheus.NewRegistry())
	assert.Error(t, err)

	reg := prometheus.NewRegistry()
	_, err = NewCollector(nil, reg)
	require.NoError(t, err)
	_, err = NewCollector(nil, reg)
	assert.Error(t, err, "registering twice on one registry must fail")
}
