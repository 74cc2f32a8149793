// FILE: utility.go
package log4g

import (
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"unicode"
)

// getTrace renders the call chain above the logging call as
// "caller -> callee" function names, up to depth frames. Depth outside
// 1..10 yields an empty trace.
func getTrace(depth int64, skip int) string {
	if depth <= 0 || depth > 10 {
		return ""
	}
	pc := make([]uintptr, int(depth)+skip)
	n := runtime.Callers(skip+1, pc) // +1 because Callers includes its own frame
	if n == 0 {
		return "(unknown)"
	}

	names := make([]string, 0, depth)
	frames := runtime.CallersFrames(pc[:n])
	for len(names) < int(depth) {
		frame, more := frames.Next()
		names = append(names, frameName(frame.Function))
		if !more {
			break
		}
	}
	if len(names) == 0 {
		return "(unknown)"
	}

	slices.Reverse(names)
	return strings.Join(names, " -> ")
}

// frameName strips the package path from a fully qualified function name and
// labels runtime-generated closure frames ("pkg.Parent.func1") with their
// enclosing function instead of the synthetic name.
func frameName(full string) string {
	qualified := filepath.Base(full)
	dot := strings.LastIndex(qualified, ".")
	if dot < 0 {
		return qualified
	}
	last := qualified[dot+1:]
	if ordinal, ok := strings.CutPrefix(last, "func"); ok && isDigits(ordinal) {
		return fmt.Sprintf("(anonymous in %s)", qualified[:dot])
	}
	return last
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "log4g: ") {
		format = "log4g: " + format
	}
	return fmt.Errorf(format, args...)
}

// combineErrors helper
func combineErrors(err1, err2 error) error {
	if err1 == nil {
		return err2
	}
	if err2 == nil {
		return err1
	}
	return fmt.Errorf("%v; %w", err1, err2)
}

// parseKeyValue splits a "key=value" string.
func parseKeyValue(arg string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(arg), "=", 2)
	if len(parts) != 2 {
		return "", "", fmtErrorf("invalid format in override string '%s', expected key=value", arg)
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", fmtErrorf("key cannot be empty in override string '%s'", arg)
	}
	return key, value, nil
}

// Level converts a level string to its numeric constant.
func Level(levelStr string) (int64, error) {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	case "off":
		return LevelOff, nil
	default:
		return 0, fmtErrorf("invalid level string: '%s' (use trace, debug, info, warn, error, fatal, off)", levelStr)
	}
}

// LevelName converts a numeric level to its canonical string form.
func LevelName(level int64) string {
	switch {
	case level <= LevelTrace:
		return "TRACE"
	case level <= LevelDebug:
		return "DEBUG"
	case level <= LevelInfo:
		return "INFO"
	case level <= LevelWarn:
		return "WARN"
	case level <= LevelError:
		return "ERROR"
	case level <= LevelFatal:
		return "FATAL"
	default:
		return "OFF"
	}
}
