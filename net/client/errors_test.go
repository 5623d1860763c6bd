package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/ncobase/pagewalk/ecode"
	"github.com/stretchr/testify/assert"
)

func TestStatusError(t *testing.T) {
	err := &StatusError{Method: "GET", Path: "/api/v1/notifications", StatusCode: 503, Body: `{"error":"down"}`}
	assert.Equal(t, `GET /api/v1/notifications: 503 Service Unavailable: {"error":"down"}`, err.Error())
	assert.ErrorIs(t, err, ecode.ErrTransport)
	assert.Equal(t, "GET /x: 404 Not Found", (&StatusError{Method: "GET", Path: "/x", StatusCode: 404}).Error())
}

func TestRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("boom"), false},
		{"transport", ecode.Transport("GET /x", errors.New("connection reset")), true},
		{"too many requests", &StatusError{StatusCode: http.StatusTooManyRequests}, true},
		{"server error", fmt.Errorf("fetch page 2: %w", &StatusError{StatusCode: http.StatusBadGateway}), true},
		{"unauthorized", &StatusError{StatusCode: http.StatusUnauthorized}, false},
		{"not found", &StatusError{StatusCode: http.StatusNotFound}, false},
		{"circuit open", ecode.CircuitOpen("example.social", errors.New("open")), false},
		{"canceled", ecode.Transport("GET /x", context.Canceled), false},
		{"deadline", context.DeadlineExceeded, false},
		{"parse", ecode.Parse("id", nil), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Retryable(tc.err))
		})
	}
}
