package config

import (
	"time"

	"github.com/spf13/viper"
)

// Retry holds the page request retry settings
type Retry struct {
	Enabled         bool          `json:"enabled" yaml:"enabled"`
	MaxRetries      int           `json:"max_retries" yaml:"max_retries" validate:"gte=0"`
	InitialInterval time.Duration `json:"initial_interval" yaml:"initial_interval"`
	MaxInterval     time.Duration `json:"max_interval" yaml:"max_interval"`
	Multiplier      float64       `json:"multiplier" yaml:"multiplier" validate:"gte=1"`
	MaxElapsedTime  time.Duration `json:"max_elapsed_time" yaml:"max_elapsed_time"`
}

func getRetryConfig(v *viper.Viper) *Retry {
	return &Retry{
		Enabled:         getBoolOrDefault(v, "retry.enabled", true),
		MaxRetries:      getIntOrDefault(v, "retry.max_retries", 3),
		InitialInterval: getDurationOrDefault(v, "retry.initial_interval", 250*time.Millisecond),
		MaxInterval:     getDurationOrDefault(v, "retry.max_interval", 5*time.Second),
		Multiplier:      getFloat64OrDefault(v, "retry.multiplier", 2.0),
		MaxElapsedTime:  getDurationOrDefault(v, "retry.max_elapsed_time", 30*time.Second),
	}
}

// Breaker holds the circuit breaker settings
type Breaker struct {
	Enabled      bool          `json:"enabled" yaml:"enabled"`
	MaxRequests  uint32        `json:"max_requests" yaml:"max_requests"`
	Interval     time.Duration `json:"interval" yaml:"interval"`
	Timeout      time.Duration `json:"timeout" yaml:"timeout"`
	MinRequests  uint32        `json:"min_requests" yaml:"min_requests"`
	FailureRatio float64       `json:"failure_ratio" yaml:"failure_ratio" validate:"gte=0,lte=1"`
}

func getBreakerConfig(v *viper.Viper) *Breaker {
	return &Breaker{
		Enabled:      getBoolOrDefault(v, "breaker.enabled", true),
		MaxRequests:  getUint32OrDefault(v, "breaker.max_requests", 1),
		Interval:     getDurationOrDefault(v, "breaker.interval", 60*time.Second),
		Timeout:      getDurationOrDefault(v, "breaker.timeout", 30*time.Second),
		MinRequests:  getUint32OrDefault(v, "breaker.min_requests", 3),
		FailureRatio: getFloat64OrDefault(v, "breaker.failure_ratio", 0.6),
	}
}

// RateLimit holds the client side request rate limit
type RateLimit struct {
	RPS   float64 `json:"rps" yaml:"rps" validate:"gte=0"`
	Burst int     `json:"burst" yaml:"burst" validate:"gte=0"`
}

func getRateLimitConfig(v *viper.Viper) *RateLimit {
	return &RateLimit{
		RPS:   getFloat64OrDefault(v, "rate_limit.rps", 5),
		Burst: getIntOrDefault(v, "rate_limit.burst", 1),
	}
}
