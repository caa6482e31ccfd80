package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTracerAndShutdown(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tp, err := InitTracer(ctx, "telegram-scribe-bot", "localhost:4318")
	require.NoError(t, err)
	require.NotNil(t, tp)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	assert.NoError(t, Shutdown(shutdownCtx, tp))
}

func TestShutdownNilProvider(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Shutdown(context.Background(), nil))
}
