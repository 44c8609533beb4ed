package openapi

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger := NewSlogAdapter(base).With("component", "catalog")

	logger.Debug("building", "issuer", "https://idp.example.org")
	logger.Info("built")
	logger.Warn("omitted", "path", "/connect/userinfo")
	logger.Error("failed")

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "issuer=https://idp.example.org")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "path=/connect/userinfo")
	assert.Contains(t, out, "level=ERROR")
	assert.Equal(t, 4, bytes.Count(buf.Bytes(), []byte("component=catalog")))
}

func TestNewSlogAdapterNil(t *testing.T) {
	assert.NotNil(t, NewSlogAdapter(nil))
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
	assert.Equal(t, NopLogger{}, l.With("k", "v"))
}
