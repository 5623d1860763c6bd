package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ncobase/pagewalk/ctxutil"
	"github.com/ncobase/pagewalk/logging/logger/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestLoggerContextFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetVersion("1.0.0")

	ctx := ctxutil.SetTraceID(context.Background(), "trace-123")
	l.Infof(ctx, "fetched %d pages", 3)

	m := decodeLine(t, &buf)
	assert.Equal(t, "fetched 3 pages", m["msg"])
	assert.Equal(t, "info", m["level"])
	assert.Equal(t, "trace-123", m[TraceIDKey])
	assert.Equal(t, "1.0.0", m[VersionKey])
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)
	l.SetLevel(logrus.InfoLevel)

	l.Debugf(context.Background(), "page %d", 1)
	assert.Zero(t, buf.Len())

	l.Warnf(context.Background(), "slow page")
	assert.Contains(t, buf.String(), "slow page")
}

func TestLoggerMasksCredentials(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)
	l.SetFormatter(&logrus.JSONFormatter{})

	l.WithContextFields(context.Background(), logrus.Fields{
		"access_token": "s3cr3t",
		"headers":      map[string]string{"Authorization": "Bearer s3cr3t", "Accept": "application/json"},
		"url":          "https://example.social/api/v1/notifications?access_token=s3cr3t&limit=40",
	}).Info("request with Authorization: Bearer s3cr3t")

	out := buf.String()
	assert.NotContains(t, out, "s3cr3t")

	m := decodeLine(t, &buf)
	assert.Equal(t, "******", m["access_token"])
	assert.Equal(t, "request with Authorization: Bearer ******", m["msg"])
	assert.Equal(t, "https://example.social/api/v1/notifications?access_token=******&limit=40", m["url"])
	headers := m["headers"].(map[string]any)
	assert.Equal(t, "******", headers["Authorization"])
	assert.Equal(t, "application/json", headers["Accept"])
}

func TestDesensitizerDisabled(t *testing.T) {
	d := NewDesensitizer(&config.Desensitization{Enabled: false})
	assert.Equal(t, "Bearer abc", d.DesensitizeString("Bearer abc"))
	fields := logrus.Fields{"token": "abc"}
	assert.Equal(t, fields, d.DesensitizeFields(fields))
}

func TestDesensitizerCustomPattern(t *testing.T) {
	cfg := config.DefaultDesensitization()
	cfg.CustomPatterns = []string{`\d{4}-\d{4}`, `(`}
	cfg.MaskChar = "#"
	cfg.FixedMaskLength = 3
	d := NewDesensitizer(cfg)

	assert.Equal(t, "code ###", d.DesensitizeString("code 1234-5678"))
	assert.Equal(t, []string{"Bearer ###"}, d.desensitizeValue("list", []string{"Bearer abc"}, 0))
}

func TestDesensitizerExactMatch(t *testing.T) {
	cfg := config.DefaultDesensitization()
	cfg.ExactFieldMatch = true
	d := NewDesensitizer(cfg)

	out := d.DesensitizeFields(logrus.Fields{"token": "abc", "token_type": "Bearer"})
	assert.Equal(t, "******", out["token"])
	assert.Equal(t, "Bearer", out["token_type"])
}

func TestInitWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pagewalk.log")
	l := NewLogger(&bytes.Buffer{})

	cleanup, err := l.Init(&config.Config{
		Level:      int(logrus.DebugLevel),
		Format:     "json",
		Output:     "file",
		OutputFile: path,
	})
	require.NoError(t, err)
	l.Debugf(context.Background(), "page %d done", 2)
	cleanup()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"page 2 done"`)
}

func TestInitRejectsFileWithoutPath(t *testing.T) {
	l := NewLogger(&bytes.Buffer{})
	_, err := l.Init(&config.Config{Output: "file"})
	assert.Error(t, err)
}
