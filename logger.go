// FILE: logger.go
package log4g

import (
	"time"
)

// Logger is the caller-facing handle applications construct per category.
// It is a thin event factory over the runtime: every method builds an Event
// and hands it to Dispatch. Loggers stay valid across reconfiguration and
// shutdown; once the gate is disabled their calls become no-ops.
type Logger struct {
	runtime  *Runtime
	category string
}

// GetLogger returns a logger bound to the given category. The category does
// not need to be configured; dispatch resolves it through the dotted
// hierarchy down to the default category.
func (r *Runtime) GetLogger(category string) *Logger {
	if category == "" {
		category = DefaultCategory
	}
	return &Logger{runtime: r, category: category}
}

// Category returns the category name this logger emits under.
func (l *Logger) Category() string {
	return l.category
}

// IsLevelEnabled reports whether an event at level would currently be delivered.
func (l *Logger) IsLevelEnabled(level int64) bool {
	return l.runtime.IsLevelEnabled(l.category, level)
}

// Trace logs a message at trace level
func (l *Logger) Trace(args ...any) {
	l.log(LevelTrace, 0, args...)
}

// Debug logs a message at debug level
func (l *Logger) Debug(args ...any) {
	l.log(LevelDebug, 0, args...)
}

// Info logs a message at info level
func (l *Logger) Info(args ...any) {
	l.log(LevelInfo, 0, args...)
}

// Warn logs a message at warning level
func (l *Logger) Warn(args ...any) {
	l.log(LevelWarn, 0, args...)
}

// Error logs a message at error level
func (l *Logger) Error(args ...any) {
	l.log(LevelError, 0, args...)
}

// Fatal logs a message at fatal level. Unlike the standard library the
// runtime does not exit the process; that decision belongs to the caller.
func (l *Logger) Fatal(args ...any) {
	l.log(LevelFatal, 0, args...)
}

// DebugTrace logs a debug message with function call trace
func (l *Logger) DebugTrace(depth int, args ...any) {
	l.log(LevelDebug, int64(depth), args...)
}

// InfoTrace logs an info message with function call trace
func (l *Logger) InfoTrace(depth int, args ...any) {
	l.log(LevelInfo, int64(depth), args...)
}

// WarnTrace logs a warning message with function call trace
func (l *Logger) WarnTrace(depth int, args ...any) {
	l.log(LevelWarn, int64(depth), args...)
}

// ErrorTrace logs an error message with function call trace
func (l *Logger) ErrorTrace(depth int, args ...any) {
	l.log(LevelError, int64(depth), args...)
}

// log builds the event and routes it through the runtime
func (l *Logger) log(level int64, depth int64, args ...any) {
	var trace string
	if depth > 0 {
		const skipTrace = 3 // Logger.Info -> log -> getTrace (adjust if call stack changes)
		trace = getTrace(depth, skipTrace)
	}

	l.runtime.Dispatch(&Event{
		Category: l.category,
		Level:    level,
		Time:     time.Now(),
		Trace:    trace,
		Args:     args,
	})
}
