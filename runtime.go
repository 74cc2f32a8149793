// FILE: runtime.go
package log4g

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

// Runtime is the routing core of the logging facility: it owns the appender
// registry, the category set, and the lifecycle gate, and exposes event
// dispatch plus the shutdown coordinators. Multiple independent runtimes can
// coexist; package-level helpers in default.go delegate to a shared one.
type Runtime struct {
	currentConfig atomic.Value // stores *Config
	state         State

	// mu orders registry and category-set mutations against the shutdown
	// coordinators; the hot dispatch path never takes it.
	mu         sync.Mutex
	appenders  *appenderRegistry
	categories *categoryStore
}

// NewRuntime creates a runtime in the Unconfigured state. Dispatch is a
// no-op until ApplyConfig succeeds.
func NewRuntime() *Runtime {
	r := &Runtime{
		appenders:  newAppenderRegistry(),
		categories: newCategoryStore(),
	}
	r.currentConfig.Store(DefaultConfig())
	r.state.Lifecycle.Store(StateUnconfigured)
	return r
}

// ApplyConfig validates cfg, builds its appenders and categories, swaps them
// in, and enables the gate. On failure the previous configuration keeps
// running (or the runtime stays unconfigured) and the error is returned; the
// gate is never enabled against a half-applied configuration.
func (r *Runtime) ApplyConfig(cfg *Config) error {
	if cfg == nil {
		return fmtErrorf("configuration cannot be nil")
	}
	if err := cfg.validate(); err != nil {
		return fmtErrorf("invalid configuration: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.applyConfig(cfg)
}

// applyConfig is the internal implementation, assuming mu is held.
func (r *Runtime) applyConfig(cfg *Config) error {
	built := make(map[string]Appender, len(cfg.Appenders))
	for name, ac := range cfg.Appenders {
		a, err := buildAppender(name, ac, cfg)
		if err != nil {
			r.releaseAppenders(built)
			return fmtErrorf("failed to build appender '%s': %w", name, err)
		}
		built[name] = a
	}

	categories := make(map[string]*Category, len(cfg.Categories))
	for name, cc := range cfg.Categories {
		level, err := Level(cc.Level)
		if err != nil {
			r.releaseAppenders(built)
			return err
		}
		categories[name] = &Category{
			Name:          name,
			AppenderNames: append([]string(nil), cc.Appenders...),
			Level:         level,
		}
	}

	// Freeze dispatch for the swap window so no event observes a mix of the
	// old and new appender sets.
	r.state.Lifecycle.Store(StateDisabled)

	old := r.appenders.values()
	r.appenders.replace(built)
	r.categories.replace(categories)
	r.currentConfig.Store(cfg)

	r.state.Lifecycle.Store(StateEnabled)

	// Release appenders replaced by the new configuration in the background
	r.releaseAppenders(old)

	return nil
}

// releaseAppenders best-effort tears down appender instances that never made
// it into (or just left) the registry. Failures are reported through the
// internal diagnostics channel only; nothing waits on these.
func (r *Runtime) releaseAppenders(appenders map[string]Appender) {
	for name, a := range appenders {
		if sa, ok := a.(ShutdownAppender); ok {
			go sa.Shutdown(func(err error) {
				if err != nil {
					r.internalLog("release of appender '%s' failed: %v\n", name, err)
				}
			})
		}
	}
}

// GetConfig returns a copy of the current configuration.
func (r *Runtime) GetConfig() *Config {
	return r.getConfig().Clone()
}

// getConfig returns the current configuration (thread-safe).
func (r *Runtime) getConfig() *Config {
	return r.currentConfig.Load().(*Config)
}

// LifecycleState returns the current gate state.
func (r *Runtime) LifecycleState() int32 {
	return r.state.Lifecycle.Load()
}

// HasCategory reports whether name is a configured category.
func (r *Runtime) HasCategory(name string) bool {
	return r.categories.has(name)
}

// GetCategory returns the configured category for name, or nil.
func (r *Runtime) GetCategory(name string) *Category {
	if c, ok := r.categories.get(name); ok {
		return c
	}
	return nil
}

// Categories returns a snapshot of all configured categories.
func (r *Runtime) Categories() []*Category {
	return r.categories.values()
}

// GetAppender returns the registered appender instance for name, or nil.
func (r *Runtime) GetAppender(name string) Appender {
	if a, ok := r.appenders.get(name); ok {
		return a
	}
	return nil
}

// internalLog writes runtime diagnostics to stderr when enabled in config.
func (r *Runtime) internalLog(format string, args ...any) {
	cfg := r.getConfig()
	if !cfg.InternalErrorsToStderr {
		return
	}
	if !strings.HasPrefix(format, "log4g: ") {
		format = "log4g: " + format
	}
	fmt.Fprintf(os.Stderr, format, args...)
}
