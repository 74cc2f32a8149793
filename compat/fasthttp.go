// FILE: compat/fasthttp.go
package compat

import (
	"fmt"
	"strings"

	"github.com/LuoJinghua/log4g"
	"github.com/valyala/fasthttp"
)

// FastHTTPAdapter exposes a log4g category logger through fasthttp's Logger interface
type FastHTTPAdapter struct {
	logger        *log4g.Logger
	defaultLevel  int64
	levelDetector func(string) int64 // Function to detect log level from message
}

var _ fasthttp.Logger = (*FastHTTPAdapter)(nil)

// NewFastHTTPAdapter creates a new fasthttp-compatible logger adapter
func NewFastHTTPAdapter(logger *log4g.Logger, opts ...FastHTTPOption) *FastHTTPAdapter {
	adapter := &FastHTTPAdapter{
		logger:        logger,
		defaultLevel:  log4g.LevelInfo,
		levelDetector: DetectLogLevel, // Default level detection
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// FastHTTPOption allows customizing adapter behavior
type FastHTTPOption func(*FastHTTPAdapter)

// WithDefaultLevel sets the default log level for Printf calls
func WithDefaultLevel(level int64) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.defaultLevel = level
	}
}

// WithLevelDetector sets a custom function to detect log level from message content
func WithLevelDetector(detector func(string) int64) FastHTTPOption {
	return func(a *FastHTTPAdapter) {
		a.levelDetector = detector
	}
}

// Printf implements fasthttp's Logger interface
func (a *FastHTTPAdapter) Printf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	// Detect log level from message content
	level := a.defaultLevel
	if a.levelDetector != nil {
		if detected := a.levelDetector(msg); detected != levelUnknown {
			level = detected
		}
	}

	switch {
	case level <= log4g.LevelDebug:
		a.logger.Debug("msg", msg, "source", "fasthttp")
	case level <= log4g.LevelInfo:
		a.logger.Info("msg", msg, "source", "fasthttp")
	case level <= log4g.LevelWarn:
		a.logger.Warn("msg", msg, "source", "fasthttp")
	default:
		a.logger.Error("msg", msg, "source", "fasthttp")
	}
}

// levelUnknown signals that no level keyword was found in the message.
const levelUnknown int64 = -100

// DetectLogLevel infers a log level from common keywords in the message.
// Returns levelUnknown when nothing matches.
func DetectLogLevel(msg string) int64 {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "error") || strings.Contains(lower, "fail"):
		return log4g.LevelError
	case strings.Contains(lower, "warn"):
		return log4g.LevelWarn
	case strings.Contains(lower, "debug"):
		return log4g.LevelDebug
	default:
		return levelUnknown
	}
}
