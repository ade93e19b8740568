package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ijas-muhmd/todo-app/internal/app/server/config"
	"github.com/ijas-muhmd/todo-app/internal/utils/logger/slogpretty"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		env           string
		expectedLevel slog.Level
	}{
		{
			name:          "local environment",
			env:           config.EnvLocal,
			expectedLevel: slog.LevelDebug,
		},
		{
			name:          "dev environment",
			env:           config.EnvDev,
			expectedLevel: slog.LevelDebug,
		},
		{
			name:          "prod environment",
			env:           config.EnvProd,
			expectedLevel: slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.env)
			require.NotNil(t, logger)
			ctx := context.Background()
			assert.Equal(t, tt.expectedLevel <= slog.LevelDebug, logger.Enabled(ctx, slog.LevelDebug))
			assert.True(t, logger.Enabled(ctx, slog.LevelInfo))
		})
	}
}

func TestNewWithLevel(t *testing.T) {
	ctx := context.Background()

	log := NewWithLevel(config.EnvProd, "debug")
	assert.True(t, log.Enabled(ctx, slog.LevelDebug))

	log = NewWithLevel(config.EnvDev, "warn")
	assert.False(t, log.Enabled(ctx, slog.LevelInfo))
	assert.True(t, log.Enabled(ctx, slog.LevelWarn))

	log = NewWithLevel(config.EnvProd, "loud")
	assert.False(t, log.Enabled(ctx, slog.LevelDebug))
	assert.True(t, log.Enabled(ctx, slog.LevelInfo))

	log = NewWithLevel(config.EnvLocal, "error")
	assert.True(t, log.Enabled(ctx, slog.LevelDebug))
}

func TestSetupPrettySlog(t *testing.T) {
	logger := setupPrettySlog()
	require.NotNil(t, logger)

	ctx := context.Background()
	assert.True(t, logger.Enabled(ctx, slog.LevelDebug))
}

func TestPrettyHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	opts := slogpretty.PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: slog.LevelDebug}}
	log := slog.New(opts.NewPrettyHandler(&buf)).With("component", "test")

	log.Info("todo created", slog.String("todo_id", "42"))

	out := buf.String()
	assert.Contains(t, out, "todo created")
	assert.Contains(t, out, `"todo_id": "42"`)
	assert.Contains(t, out, `"component": "test"`)
}

func TestPrettyHandler_Record(t *testing.T) {
	var buf bytes.Buffer
	h := slogpretty.PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{}}.NewPrettyHandler(&buf)

	r := slog.NewRecord(time.Now(), slog.LevelWarn, "upload slow", 0)
	require.NoError(t, h.Handle(context.Background(), r))
	assert.Contains(t, buf.String(), "upload slow")
}

func TestErr(t *testing.T) {
	assert.Equal(t, "boom", Err(errors.New("boom")).Value.String())
	assert.Equal(t, "", Err(nil).Value.String())
}
