package logger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	log, err := New("art-notifier", Config{
		Level:    "debug",
		Filename: filepath.Join(t.TempDir(), "app.log"),
		MaxSize:  1,
		MaxAge:   1,
		Env:      "local",
	})
	require.NoError(t, err)
	log.Info("hello")
	_ = log.Sync()

	_, err = New("art-notifier", Config{Level: "loud"})
	assert.Error(t, err)
}

func TestCtx_AttachesRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core)

	ctx := SetRequestID(context.Background(), "req-1")
	Ctx(ctx, base).Info("with id")
	Ctx(context.Background(), base).Info("without id")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
	_, ok := entries[1].ContextMap()["request_id"]
	assert.False(t, ok)
	assert.Equal(t, "req-1", RequestID(ctx))
}
