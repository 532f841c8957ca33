package logger

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetLogger resets the global logger state between test cases.
func resetLogger() {
	baseLogger = nil
	initBaseLoggerOnce = sync.Once{}
}

func TestInit(t *testing.T) {
	t.Run("successful initialization with valid level", func(t *testing.T) {
		resetLogger()

		err := Init("info")

		require.NoError(t, err)
		assert.NotNil(t, baseLogger)
	})

	t.Run("supports all standard levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			resetLogger()

			err := Init(level)

			require.NoError(t, err, "level %q", level)
			assert.NotNil(t, baseLogger)
		}
	})

	t.Run("error with invalid level", func(t *testing.T) {
		resetLogger()

		err := Init("invalid")

		assert.Error(t, err)
		assert.Nil(t, baseLogger)
	})

	t.Run("second call is a no-op", func(t *testing.T) {
		resetLogger()

		require.NoError(t, Init("info"))
		first := baseLogger

		require.NoError(t, Init("debug"))

		assert.Same(t, first, baseLogger)
	})
}

func TestLogFunctions(t *testing.T) {
	resetLogger()
	require.NoError(t, Init("debug"))

	t.Run("logging with key/value context does not panic", func(t *testing.T) {
		ctx := t.Context()

		assert.NotPanics(t, func() {
			Debug(ctx, "debug message", "key", "value")
			Info(ctx, "info message", "count", 2)
			Warn(ctx, "warn message")
			Error(ctx, "error message", "error", assert.AnError)
		})
	})
}
