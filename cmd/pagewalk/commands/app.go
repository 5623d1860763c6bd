package commands

import (
	"context"
	"fmt"

	"github.com/ncobase/pagewalk/config"
	"github.com/ncobase/pagewalk/logging/logger"
	"github.com/ncobase/pagewalk/logging/observes"
	"github.com/ncobase/pagewalk/mastodon"
	"github.com/ncobase/pagewalk/metrics"
	"github.com/ncobase/pagewalk/net/client"
	"github.com/ncobase/pagewalk/paging"
	"github.com/ncobase/pagewalk/version"
	"github.com/prometheus/client_golang/prometheus"
)

// app bundles everything a command needs to walk the API.
type app struct {
	conf     *config.Config
	log      *logger.Logger
	client   *client.Client
	registry *prometheus.Registry
	metrics  *metrics.Collector
	cleanup  []func()
}

func newApp(configFile string) (*app, error) {
	conf, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	a := &app{conf: conf, log: logger.StdLogger()}
	a.log.SetVersion(version.GetVersionInfo().Version)
	cleanLogger, err := a.log.Init(conf.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	a.cleanup = append(a.cleanup, cleanLogger)

	if t := conf.Observes.Tracer; t.Endpoint != "" {
		shutdown, err := observes.NewTracer(&observes.TracerOption{
			URL:                t.Endpoint,
			Name:               t.ServiceName,
			Version:            version.GetVersionInfo().Version,
			Environment:        t.Environment,
			SamplingRate:       t.SamplingRate,
			BatchTimeout:       t.BatchTimeout,
			ExportTimeout:      t.ExportTimeout,
			MaxExportBatchSize: t.MaxExportBatchSize,
		})
		if err != nil {
			a.close()
			return nil, err
		}
		a.cleanup = append(a.cleanup, func() {
			ctx, cancel := context.WithTimeout(context.Background(), t.ExportTimeout)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				a.log.Warnf(ctx, "tracer shutdown: %v", err)
			}
		})
	}

	a.registry = prometheus.NewRegistry()
	a.metrics, err = metrics.NewCollector(&metrics.Config{
		Enabled:   conf.Metrics.Enabled,
		Namespace: conf.Metrics.Namespace,
	}, a.registry)
	if err != nil {
		a.close()
		return nil, err
	}

	opts := client.Options{
		BaseURL:   conf.API.Host,
		Token:     conf.API.Token,
		Timeout:   conf.API.Timeout,
		UserAgent: conf.API.UserAgent,
		RateLimit: conf.RateLimit.RPS,
		Burst:     conf.RateLimit.Burst,
		Logger:    a.log,
	}
	if b := conf.Breaker; b.Enabled {
		opts.Breaker = &client.BreakerOptions{
			MaxRequests:  b.MaxRequests,
			Interval:     b.Interval,
			Timeout:      b.Timeout,
			MinRequests:  b.MinRequests,
			FailureRatio: b.FailureRatio,
		}
	}
	a.client, err = client.New(opts)
	if err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

// notifications returns the notifications fetcher, retried when enabled.
func (a *app) notifications(filter *mastodon.NotificationFilter) paging.Fetcher[mastodon.Notification] {
	f := mastodon.Notifications(a.client, filter)
	r := a.conf.Retry
	if !r.Enabled {
		return f
	}
	return client.WithRetry(f, client.RetryConfig{
		MaxRetries:      r.MaxRetries,
		InitialInterval: r.InitialInterval,
		MaxInterval:     r.MaxInterval,
		Multiplier:      r.Multiplier,
		MaxElapsedTime:  r.MaxElapsedTime,
	})
}

func (a *app) pagingOptions() []paging.Option {
	return []paging.Option{
		paging.WithLogger(a.log),
		paging.WithPageHook(a.metrics.PageHook()),
	}
}

func (a *app) close() {
	if path := a.conf.Metrics.Textfile; path != "" && a.conf.Metrics.Enabled && a.registry != nil {
		if err := prometheus.WriteToTextfile(path, a.registry); err != nil {
			a.log.Warnf(context.Background(), "write metrics: %v", err)
		}
	}
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		a.cleanup[i]()
	}
}
