// FILE: default.go
package log4g

import (
	"time"
)

// Global instance for package-level functions
var defaultRuntime = NewRuntime()

// Default package-level functions that delegate to the default runtime

// Configure applies a configuration to the default runtime and enables dispatch
func Configure(cfg *Config) error {
	return defaultRuntime.ApplyConfig(cfg)
}

// ConfigureFromFile loads a TOML configuration file into the default runtime
func ConfigureFromFile(path string) error {
	cfg, err := NewConfigFromFile(path)
	if err != nil {
		return err
	}
	return defaultRuntime.ApplyConfig(cfg)
}

// GetLogger returns a logger bound to category on the default runtime
func GetLogger(category string) *Logger {
	return defaultRuntime.GetLogger(category)
}

// Dispatch routes one event through the default runtime
func Dispatch(e *Event) {
	defaultRuntime.Dispatch(e)
}

// Shutdown tears down every appender of the default runtime
func Shutdown(cb func(err error), timeout ...time.Duration) {
	defaultRuntime.Shutdown(cb, timeout...)
}

// ShutdownCategory removes one category from the default runtime and tears
// down the appenders that become unreferenced
func ShutdownCategory(name string, cb func(err error), timeout ...time.Duration) {
	defaultRuntime.ShutdownCategory(name, cb, timeout...)
}

// HasCategory reports whether the default runtime has the category configured
func HasCategory(name string) bool {
	return defaultRuntime.HasCategory(name)
}

// ApplyOverride applies key=value overrides to the default runtime's configuration
func ApplyOverride(overrides ...string) error {
	return defaultRuntime.ApplyOverride(overrides...)
}
