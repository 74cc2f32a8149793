// FILE: console.go
package log4g

import (
	"io"
	"os"
	"sync"

	"github.com/LuoJinghua/log4g/layout"
)

// consoleAppender writes rendered events to stdout or stderr. It declares no
// shutdown capability: the process owns those streams and nothing needs
// flushing or closing on teardown.
type consoleAppender struct {
	name   string
	mu     sync.Mutex
	w      io.Writer
	layout *layout.Layout
}

func newConsoleAppender(name string, ac AppenderConfig, timestampFormat string) *consoleAppender {
	var w io.Writer = os.Stdout
	if ac.Target == "stderr" {
		w = os.Stderr
	}
	return &consoleAppender{
		name:   name,
		w:      w,
		layout: layout.New(ac.Layout, timestampFormat),
	}
}

func (a *consoleAppender) Append(e *Event) {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Write errors on console streams are unreportable, drop them
	_, _ = a.w.Write(a.layout.Render(&layout.Entry{
		Time:     e.Time,
		Level:    LevelName(e.Level),
		Category: e.Category,
		Trace:    e.Trace,
		Args:     e.Args,
	}))
}
