package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/seedling-labs/gratitude-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		want     slog.Level
	}{
		{name: "debug level", logLevel: "debug", want: slog.LevelDebug},
		{name: "info level", logLevel: "info", want: slog.LevelInfo},
		{name: "warn level", logLevel: "warn", want: slog.LevelWarn},
		{name: "error level", logLevel: "error", want: slog.LevelError},
		{name: "mixed case", logLevel: "DeBuG", want: slog.LevelDebug},
		{name: "unknown falls back to info", logLevel: "verbose", want: slog.LevelInfo},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			log, err := Setup(config.ServerConfig{Port: 8080, LogLevel: tc.logLevel})
			require.NoError(t, err)
			require.NotNil(t, log)

			assert.True(t, log.Enabled(context.Background(), tc.want))
			if tc.want > slog.LevelDebug {
				assert.False(t, log.Enabled(context.Background(), tc.want-1))
			}
		})
	}
}

func TestFromContext(t *testing.T) {
	base := slog.Default()
	scoped := base.With("component", "test")

	ctx := WithLogger(context.Background(), scoped)
	assert.Same(t, scoped, FromContext(ctx))

	// Without a stored logger, the default is returned.
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}

func TestFromContextOrDefault(t *testing.T) {
	def := slog.Default().With("component", "store")

	assert.Same(t, def, FromContextOrDefault(context.Background(), def))

	scoped := slog.Default().With("request_id", "abc")
	ctx := WithLogger(context.Background(), scoped)
	assert.Same(t, scoped, FromContextOrDefault(ctx, def))

	assert.Same(t, slog.Default(), FromContextOrDefault(context.Background(), nil))
}
