package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEnsureTraceID(t *testing.T) {
	ctx, id := EnsureTraceID(context.Background())
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, GetTraceID(ctx))

	again, same := EnsureTraceID(ctx)
	assert.Equal(t, id, same)
	assert.Equal(t, ctx, again)
}

func TestGetTraceID(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
	assert.Empty(t, GetTraceID(nil))
	assert.Equal(t, "abc", GetTraceID(SetTraceID(context.Background(), "abc")))
	assert.Empty(t, GetTraceID(context.WithValue(context.Background(), TraceIDKey, "plain-string-key")))
}
