// FILE: constant.go
package log4g

// Log level constants
const (
	LevelTrace int64 = -8
	LevelDebug int64 = -4
	LevelInfo  int64 = 0
	LevelWarn  int64 = 4
	LevelError int64 = 8
	LevelFatal int64 = 12
	LevelOff   int64 = 16
)

// Runtime lifecycle states
const (
	StateUnconfigured int32 = iota // no configuration applied yet, dispatch is a no-op
	StateEnabled                   // configured, events are distributed to appenders
	StateDisabled                  // shutdown started, dispatch is a no-op
)

// DefaultCategory is the root category unresolved category names fall back to.
const DefaultCategory = "default"

// Appender types accepted in configuration
const (
	AppenderConsole = "console"
	AppenderFile    = "file"
	AppenderNoop    = "noop"
)

// Size multiplier for KB
const sizeMultiplier = 1000
