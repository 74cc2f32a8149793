// FILE: logger_test.go
package log4g

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggerFixture(t *testing.T) (*Runtime, *Logger, *recordingAppender) {
	t.Helper()
	r := newTestRuntime()
	app := &recordingAppender{}
	r.appenders.set("rec", app)
	r.categories.set(&Category{Name: DefaultCategory, AppenderNames: []string{"rec"}, Level: LevelTrace})
	return r, r.GetLogger("svc"), app
}

func TestLoggerLevels(t *testing.T) {
	_, logger, app := newLoggerFixture(t)

	logger.Trace("t")
	logger.Debug("d")
	logger.Info("i")
	logger.Warn("w")
	logger.Error("e")
	logger.Fatal("f")

	events := app.snapshot()
	require.Len(t, events, 6)

	levels := []int64{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal}
	for i, e := range events {
		assert.Equal(t, levels[i], e.Level)
		assert.Equal(t, "svc", e.Category)
		assert.False(t, e.Time.IsZero())
	}
}

func TestLoggerArgsPassThrough(t *testing.T) {
	_, logger, app := newLoggerFixture(t)

	logger.Info("msg", "hello", "count", 3)

	events := app.snapshot()
	require.Len(t, events, 1)
	assert.Equal(t, []any{"msg", "hello", "count", 3}, events[0].Args)
}

func TestLoggerTraceVariants(t *testing.T) {
	_, logger, app := newLoggerFixture(t)

	logger.InfoTrace(2, "with trace")
	logger.Info("without trace")

	events := app.snapshot()
	require.Len(t, events, 2)
	assert.NotEmpty(t, events[0].Trace)
	assert.Contains(t, events[0].Trace, "TestLoggerTraceVariants")
	assert.Empty(t, events[1].Trace)
}

func TestLoggerAfterShutdown(t *testing.T) {
	r, logger, app := newLoggerFixture(t)

	logger.Info("before")
	r.Shutdown(nil)
	logger.Info("after")

	assert.Equal(t, 1, app.count(), "logger calls after shutdown are silently dropped")
}

func TestLoggerIsLevelEnabled(t *testing.T) {
	r := newTestRuntime()
	r.categories.set(&Category{Name: DefaultCategory, AppenderNames: []string{"a"}, Level: LevelWarn})

	logger := r.GetLogger("svc")
	assert.False(t, logger.IsLevelEnabled(LevelInfo))
	assert.True(t, logger.IsLevelEnabled(LevelError))
}
