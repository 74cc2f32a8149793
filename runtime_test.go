// FILE: runtime_test.go
package log4g

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingAppender captures every event it receives
type recordingAppender struct {
	mu     sync.Mutex
	events []*Event
}

func (a *recordingAppender) Append(e *Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, e)
}

func (a *recordingAppender) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.events)
}

func (a *recordingAppender) snapshot() []*Event {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]*Event(nil), a.events...)
}

// closableAppender completes its shutdown immediately with a fixed outcome
type closableAppender struct {
	recordingAppender
	shutdownErr   error
	shutdownCalls atomic.Int32
}

func (a *closableAppender) Shutdown(done func(err error)) {
	a.shutdownCalls.Add(1)
	done(a.shutdownErr)
}

// manualAppender captures completion funcs so tests control completion order
type manualAppender struct {
	recordingAppender
	doneMu sync.Mutex
	dones  []func(err error)
}

func (a *manualAppender) Shutdown(done func(err error)) {
	a.doneMu.Lock()
	defer a.doneMu.Unlock()
	a.dones = append(a.dones, done)
}

// waitDone blocks until the appender's shutdown capability has been invoked
func (a *manualAppender) waitDone(t *testing.T) func(err error) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		a.doneMu.Lock()
		if len(a.dones) > 0 {
			done := a.dones[0]
			a.doneMu.Unlock()
			return done
		}
		a.doneMu.Unlock()
		time.Sleep(time.Millisecond)
	}
	t.Fatal("shutdown capability was never invoked")
	return nil
}

// newTestRuntime returns an enabled runtime with an empty registry and
// category set; tests bind appenders and categories directly.
func newTestRuntime() *Runtime {
	r := NewRuntime()
	r.state.Lifecycle.Store(StateEnabled)
	return r
}

// bind registers an appender and returns its name binding for categories
func bind(r *Runtime, name string, a Appender) string {
	r.appenders.set(name, a)
	return name
}

// waitCallback receives the shutdown outcome or fails the test
func waitCallback(t *testing.T, ch <-chan error) error {
	t.Helper()
	select {
	case err := <-ch:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown callback never fired")
		return nil
	}
}

func TestNewRuntime(t *testing.T) {
	r := NewRuntime()

	assert.Equal(t, StateUnconfigured, r.LifecycleState())
	assert.Equal(t, 0, r.appenders.count())
	assert.Equal(t, 0, r.categories.count())
	assert.NotNil(t, r.GetConfig())
}

func TestApplyConfigEnablesGate(t *testing.T) {
	r := NewRuntime()

	err := r.ApplyConfig(DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, StateEnabled, r.LifecycleState())
	assert.True(t, r.HasCategory(DefaultCategory))
	assert.NotNil(t, r.GetAppender("console"))
}

func TestApplyConfigNil(t *testing.T) {
	r := NewRuntime()

	err := r.ApplyConfig(nil)
	require.Error(t, err)
	assert.Equal(t, StateUnconfigured, r.LifecycleState())
}

func TestApplyConfigInvalidKeepsGateClosed(t *testing.T) {
	r := NewRuntime()

	cfg := DefaultConfig()
	cfg.Categories["orphan"] = CategoryConfig{Appenders: []string{"missing"}, Level: "info"}

	err := r.ApplyConfig(cfg)
	require.Error(t, err)

	// No event must ever be dispatched against a half-applied configuration
	assert.NotEqual(t, StateEnabled, r.LifecycleState())
	assert.Equal(t, 0, r.appenders.count())
}

func TestApplyConfigReplacesAppenders(t *testing.T) {
	r := NewRuntime()
	require.NoError(t, r.ApplyConfig(DefaultConfig()))

	first := r.GetAppender("console")
	require.NotNil(t, first)

	cfg := DefaultConfig()
	cfg.Appenders["console"] = AppenderConfig{Type: AppenderNoop}
	require.NoError(t, r.ApplyConfig(cfg))

	second := r.GetAppender("console")
	require.NotNil(t, second)
	assert.NotSame(t, first, second)
	assert.Equal(t, StateEnabled, r.LifecycleState())
}

func TestGetLoggerDefaultsCategory(t *testing.T) {
	r := newTestRuntime()

	assert.Equal(t, DefaultCategory, r.GetLogger("").Category())
	assert.Equal(t, "db.query", r.GetLogger("db.query").Category())
}

func TestCategorySurface(t *testing.T) {
	r := newTestRuntime()
	r.categories.set(&Category{Name: "db", AppenderNames: []string{"a"}, Level: LevelInfo})

	assert.True(t, r.HasCategory("db"))
	assert.False(t, r.HasCategory("web"))

	cat := r.GetCategory("db")
	require.NotNil(t, cat)
	assert.Equal(t, []string{"a"}, cat.AppenderNames)
	assert.Nil(t, r.GetCategory("web"))

	assert.Len(t, r.Categories(), 1)
}

// quietConfig is the default configuration with the console appender muted
func quietConfig() *Config {
	cfg := DefaultConfig()
	cfg.Appenders["console"] = AppenderConfig{Type: AppenderNoop}
	return cfg
}

func TestConcurrentDispatchDuringReconfigure(t *testing.T) {
	r := NewRuntime()
	require.NoError(t, r.ApplyConfig(quietConfig()))

	logger := r.GetLogger("stress")

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					logger.Info("worker", n)
				}
			}
		}(i)
	}

	for i := 0; i < 20; i++ {
		cfg := quietConfig()
		cfg.Appenders[fmt.Sprintf("noop%d", i)] = AppenderConfig{Type: AppenderNoop}
		require.NoError(t, r.ApplyConfig(cfg))
	}

	close(stop)
	wg.Wait()

	assert.Equal(t, StateEnabled, r.LifecycleState())
}
