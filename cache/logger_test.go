package cache

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Not parallel: the logger is package-wide.
func TestLogger_LifecycleAtDebug(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	p := NewStringPool(Options{})
	tbl := p.Acquire()
	tbl.InternString("quiet")
	tbl.Release()

	out := buf.String()
	assert.Contains(t, out, "string pool created")
	assert.Contains(t, out, "allocating string table")
	assert.NotContains(t, out, "quiet")
}

func TestLogger_DefaultIsSilent(t *testing.T) {
	SetLogger(nil)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}
