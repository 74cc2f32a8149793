// FILE: builder.go
package log4g

// Builder provides a fluent API for assembling a runtime configuration.
// It wraps a Config instance and provides chainable methods for declaring
// appenders and categories.
type Builder struct {
	cfg *Config
	err error // Accumulate errors for deferred handling
}

// NewBuilder creates a new configuration builder with default values.
// The default console appender and default category stay in place until
// replaced by name.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates a new Runtime with the assembled configuration.
func (b *Builder) Build() (*Runtime, error) {
	if b.err != nil {
		return nil, b.err
	}

	runtime := NewRuntime()

	// ApplyConfig handles all validation and appender construction.
	if err := runtime.ApplyConfig(b.cfg); err != nil {
		return nil, err
	}

	return runtime, nil
}

// Config returns the assembled configuration without building a runtime.
func (b *Builder) Config() (*Config, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.cfg.validate(); err != nil {
		return nil, err
	}
	return b.cfg.Clone(), nil
}

// ConsoleAppender declares a console appender writing to stdout or stderr.
func (b *Builder) ConsoleAppender(name, target, layoutFormat string) *Builder {
	b.cfg.Appenders[name] = AppenderConfig{
		Type:   AppenderConsole,
		Target: target,
		Layout: layoutFormat,
	}
	return b
}

// FileAppender declares a file appender writing under directory.
func (b *Builder) FileAppender(name, directory, baseName, layoutFormat string) *Builder {
	b.cfg.Appenders[name] = AppenderConfig{
		Type:      AppenderFile,
		Directory: directory,
		Name:      baseName,
		Layout:    layoutFormat,
	}
	return b
}

// RotatingFileAppender declares a file appender with a size-based rotation threshold.
func (b *Builder) RotatingFileAppender(name, directory, baseName, layoutFormat string, maxSizeKB int64) *Builder {
	b.cfg.Appenders[name] = AppenderConfig{
		Type:      AppenderFile,
		Directory: directory,
		Name:      baseName,
		Layout:    layoutFormat,
		MaxSizeKB: maxSizeKB,
	}
	return b
}

// NoopAppender declares an appender that discards everything.
func (b *Builder) NoopAppender(name string) *Builder {
	b.cfg.Appenders[name] = AppenderConfig{
		Type: AppenderNoop,
	}
	return b
}

// Category binds a category to the named appenders at the given level.
func (b *Builder) Category(name, level string, appenders ...string) *Builder {
	if b.err != nil {
		return b
	}
	if _, err := Level(level); err != nil {
		b.err = err
		return b
	}
	b.cfg.Categories[name] = CategoryConfig{
		Appenders: appenders,
		Level:     level,
	}
	return b
}

// TimestampFormat sets the time format used by layouts.
func (b *Builder) TimestampFormat(format string) *Builder {
	b.cfg.TimestampFormat = format
	return b
}

// ShutdownTimeoutMs sets the default join timeout for the shutdown coordinators.
func (b *Builder) ShutdownTimeoutMs(ms int64) *Builder {
	b.cfg.ShutdownTimeoutMs = ms
	return b
}

// InternalErrorsToStderr enables runtime diagnostics on stderr.
func (b *Builder) InternalErrorsToStderr(enable bool) *Builder {
	b.cfg.InternalErrorsToStderr = enable
	return b
}

// Example usage:
//
//	runtime, err := log4g.NewBuilder().
//		FileAppender("app", "/var/log/app", "app", "json").
//		ConsoleAppender("console", "stderr", "txt").
//		Category("default", "info", "console").
//		Category("db", "debug", "app", "console").
//		Build()
//
//	if err == nil {
//		defer runtime.Shutdown(nil)
//		runtime.GetLogger("db").Info("runtime configured")
//	}
