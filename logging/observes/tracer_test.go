package observes

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	prev := otel.GetTracerProvider()
	rec := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return rec
}

func TestSpans(t *testing.T) {
	rec := withRecorder(t)

	_, span := StartSpan(context.Background(), "GET /api/v1/notifications", attribute.String("http.method", "GET"))
	EndSpan(span, nil)
	_, span = StartSpan(context.Background(), "GET /api/v1/notifications")
	EndSpan(span, errors.New("503 Service Unavailable"))

	spans := rec.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "GET /api/v1/notifications", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.String("http.method", "GET"))
	assert.Equal(t, TracerName, spans[0].InstrumentationScope().Name)

	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "503 Service Unavailable", spans[1].Status().Description)
	require.Len(t, spans[1].Events(), 1)
	assert.Equal(t, "exception", spans[1].Events()[0].Name)
}

func TestNewTracer(t *testing.T) {
	_, err := NewTracer(nil)
	assert.Error(t, err)

	prev := otel.GetTracerProvider()
	defer otel.SetTracerProvider(prev)

	shutdown, err := NewTracer(&TracerOption{
		URL:          "localhost:4317",
		Name:         "pagewalk",
		Version:      "test",
		SamplingRate: 0.5,
		BatchTimeout: time.Second,
	})
	require.NoError(t, err)
	_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.True(t, ok)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, shutdown(ctx))
}
