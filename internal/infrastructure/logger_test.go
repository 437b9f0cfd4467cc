package infrastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerTagsServiceAndSession(t *testing.T) {
	for _, env := range []string{"development", "production"} {
		t.Run(env, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			logger, err := NewLogger(env, "studyhub-progress", zap.WrapCore(func(zapcore.Core) zapcore.Core { return core }))
			require.NoError(t, err)

			SessionLogger(ComponentLogger(logger, "progress"), "abc").Info("Practice problem solved")

			entries := logs.All()
			require.Len(t, entries, 1)
			fields := entries[0].ContextMap()
			assert.Equal(t, "studyhub-progress", fields["service"])
			assert.Equal(t, "progress", fields["component"])
			assert.Equal(t, "abc", fields["session_id"])
		})
	}
}
