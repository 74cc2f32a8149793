// FILE: compat/compat_test.go
package compat

import (
	"testing"

	"github.com/LuoJinghua/log4g"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quietRuntime returns an enabled runtime whose appenders discard everything
func quietRuntime(t *testing.T) *log4g.Runtime {
	t.Helper()

	cfg := log4g.DefaultConfig()
	cfg.Appenders["console"] = log4g.AppenderConfig{Type: log4g.AppenderNoop}

	r := log4g.NewRuntime()
	require.NoError(t, r.ApplyConfig(cfg))
	return r
}

func TestGnetAdapter(t *testing.T) {
	r := quietRuntime(t)
	adapter := NewGnetAdapter(r.GetLogger("gnet"))

	require.NotPanics(t, func() {
		adapter.Debugf("debug %d", 1)
		adapter.Infof("info %s", "msg")
		adapter.Warnf("warn")
		adapter.Errorf("error: %v", "failed")
	})
}

func TestGnetAdapterFatalHandler(t *testing.T) {
	r := quietRuntime(t)

	var fatalMsg string
	adapter := NewGnetAdapter(r.GetLogger("gnet"),
		WithFatalHandler(func(msg string) { fatalMsg = msg }))

	adapter.Fatalf("fatal: %s", "oom")
	assert.Equal(t, "fatal: oom", fatalMsg)
}

func TestFastHTTPAdapter(t *testing.T) {
	r := quietRuntime(t)
	adapter := NewFastHTTPAdapter(r.GetLogger("fasthttp"))

	require.NotPanics(t, func() {
		adapter.Printf("serving on %s", ":8080")
		adapter.Printf("error: connection reset")
	})
}

func TestFastHTTPAdapterLevelDetection(t *testing.T) {
	tests := []struct {
		msg  string
		want int64
	}{
		{"connection error occurred", log4g.LevelError},
		{"request failed badly", log4g.LevelError},
		{"warning: slow response", log4g.LevelWarn},
		{"debug trace enabled", log4g.LevelDebug},
		{"plain message", levelUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLogLevel(tt.msg))
		})
	}
}

func TestFastHTTPAdapterCustomDetector(t *testing.T) {
	r := quietRuntime(t)

	detected := false
	adapter := NewFastHTTPAdapter(r.GetLogger("fasthttp"),
		WithDefaultLevel(log4g.LevelWarn),
		WithLevelDetector(func(string) int64 {
			detected = true
			return levelUnknown
		}))

	adapter.Printf("anything")
	assert.True(t, detected)
}

func TestBuilderWithRuntime(t *testing.T) {
	r := quietRuntime(t)

	gnetAdapter, err := NewBuilder().WithRuntime(r).BuildGnet()
	require.NoError(t, err)
	assert.NotNil(t, gnetAdapter)

	fastAdapter, err := NewBuilder().WithRuntime(r).BuildFastHTTP()
	require.NoError(t, err)
	assert.NotNil(t, fastAdapter)
}

func TestBuilderNilRuntime(t *testing.T) {
	_, err := NewBuilder().WithRuntime(nil).BuildGnet()
	assert.Error(t, err)
}

func TestBuilderWithConfig(t *testing.T) {
	cfg := log4g.DefaultConfig()
	cfg.Appenders["console"] = log4g.AppenderConfig{Type: log4g.AppenderNoop}

	b := NewBuilder().WithConfig(cfg)

	adapter, err := b.BuildFastHTTP()
	require.NoError(t, err)
	assert.NotNil(t, adapter)

	// The runtime is cached across builds
	r1, err := b.GetRuntime()
	require.NoError(t, err)
	r2, err := b.GetRuntime()
	require.NoError(t, err)
	assert.Same(t, r1, r2)

	r1.Shutdown(nil)
}
