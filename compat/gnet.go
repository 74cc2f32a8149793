// FILE: compat/gnet.go

// Package compat bridges framework logger interfaces onto log4g category
// loggers, so servers built on gnet or fasthttp route their internal logs
// through the same appenders as the application.
package compat

import (
	"fmt"
	"os"

	"github.com/LuoJinghua/log4g"
	"github.com/panjf2000/gnet/v2/pkg/logging"
)

// GnetAdapter exposes a log4g category logger through gnet's logging.Logger interface
type GnetAdapter struct {
	logger       *log4g.Logger
	fatalHandler func(msg string) // Customizable fatal behavior
}

var _ logging.Logger = (*GnetAdapter)(nil)

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(logger *log4g.Logger, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		logger: logger,
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// Debugf logs at debug level with printf-style formatting
func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.logger.Debug("msg", fmt.Sprintf(format, args...), "source", "gnet")
}

// Infof logs at info level with printf-style formatting
func (a *GnetAdapter) Infof(format string, args ...any) {
	a.logger.Info("msg", fmt.Sprintf(format, args...), "source", "gnet")
}

// Warnf logs at warn level with printf-style formatting
func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.logger.Warn("msg", fmt.Sprintf(format, args...), "source", "gnet")
}

// Errorf logs at error level with printf-style formatting
func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.logger.Error("msg", fmt.Sprintf(format, args...), "source", "gnet")
}

// Fatalf logs at fatal level and triggers the fatal handler
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.logger.Fatal("msg", msg, "source", "gnet")
	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}
