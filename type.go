// FILE: type.go
package log4g

import (
	"sync/atomic"
	"time"
)

// Event represents a single log event routed through the runtime.
// Events are built by category loggers and consumed exactly once by Dispatch;
// appenders must treat them as read-only.
type Event struct {
	Category string
	Level    int64
	Time     time.Time
	Trace    string
	Args     []any
}

// Appender is a named output handler that consumes log events.
type Appender interface {
	Append(e *Event)
}

// ShutdownAppender is the optional capability an appender implements when it
// holds resources that need asynchronous release. Shutdown must invoke done
// exactly once when teardown finishes; the coordinator tolerates duplicate
// invocations but never waits for more than one per appender.
type ShutdownAppender interface {
	Appender
	Shutdown(done func(err error))
}

// State encapsulates the runtime lifecycle and counters
type State struct {
	Lifecycle atomic.Int32 // StateUnconfigured, StateEnabled, StateDisabled

	TotalDispatched atomic.Uint64 // events fanned out to at least one appender
	TotalDropped    atomic.Uint64 // events discarded by the gate or an unresolvable category
	TotalFiltered   atomic.Uint64 // events below the resolved category threshold
}
