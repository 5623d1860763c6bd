package metrics

import (
	"context"
	"fmt"

	"github.com/ncobase/pagewalk/paging"
	"github.com/prometheus/client_golang/prometheus"
)

// Stop reasons reported by traversals_total.
const (
	StopExhausted = "exhausted"
	StopMaxPages  = "max_pages"
	StopError     = "error"
)

// Config represents metrics configuration
type Config struct {
	Enabled   bool   // Enable metrics collection
	Namespace string // Prefix for all metric names
}

// DefaultConfig returns the default metrics configuration
func DefaultConfig() *Config {
	return &Config{
		Enabled:   true,
		Namespace: "pagewalk",
	}
}

// Validate validates the metrics configuration
func (c *Config) Validate() error {
	if c.Enabled && c.Namespace == "" {
		return fmt.Errorf("metrics namespace must not be empty")
	}
	return nil
}

// Collector records traversal metrics
type Collector struct {
	config *Config

	pagesFetched   prometheus.Counter
	itemsCollected prometheus.Counter
	itemsDuplicate prometheus.Counter
	traversals     *prometheus.CounterVec
	fetchDuration  prometheus.Histogram
}

// NewCollector creates a collector and registers it on reg
func NewCollector(cfg *Config, reg prometheus.Registerer) (*Collector, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Collector{
		config: cfg,
		pagesFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "pages_fetched_total",
			Help:      "Total number of pages fetched",
		}),
		itemsCollected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "items_collected_total",
			Help:      "Total number of unique items collected",
		}),
		itemsDuplicate: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "items_duplicate_total",
			Help:      "Total number of items dropped as duplicates of earlier pages",
		}),
		traversals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "traversals_total",
			Help:      "Total number of traversals by stop reason",
		}, []string{"stop"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of page fetches in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}

	if !cfg.Enabled || reg == nil {
		return c, nil
	}
	for _, m := range []prometheus.Collector{c.pagesFetched, c.itemsCollected, c.itemsDuplicate, c.traversals, c.fetchDuration} {
		if err := reg.Register(m); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}
	return c, nil
}

// PageHook returns a paging hook recording per-page metrics
func (c *Collector) PageHook() paging.PageHook {
	return func(_ context.Context, e paging.PageEvent) {
		if !c.config.Enabled {
			return
		}
		c.pagesFetched.Inc()
		c.itemsCollected.Add(float64(e.Added))
		c.itemsDuplicate.Add(float64(e.Duplicates()))
		c.fetchDuration.Observe(e.Duration.Seconds())
	}
}

// ObserveTraversal records how a traversal ended
func (c *Collector) ObserveTraversal(exhausted bool, err error) {
	if !c.config.Enabled {
		return
	}
	c.traversals.WithLabelValues(StopReason(exhausted, err)).Inc()
}

// StopReason maps a traversal outcome to its label value
func StopReason(exhausted bool, err error) string {
	switch {
	case err != nil:
		return StopError
	case exhausted:
		return StopExhausted
	default:
		return StopMaxPages
	}
}
