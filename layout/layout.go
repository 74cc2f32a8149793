// FILE: layout/layout.go

// Package layout renders log events into their wire form. It supports a
// plain text rendition, a JSON rendition, and a raw passthrough, with
// configurable timestamp formatting and sanitization of non-printable input.
package layout

import (
	"encoding/hex"
	"encoding/json"
	"strconv"
	"time"

	"github.com/davecgh/go-spew/spew"
)

// Entry carries the event fields a layout renders. The producing package
// owns the values; layouts never retain them past Render.
type Entry struct {
	Time     time.Time
	Level    string
	Category string
	Trace    string
	Args     []any
}

// Layout converts entries to the configured format: "json", "raw", or
// (default) "txt". A Layout reuses an internal buffer and is not safe for
// concurrent use; callers serialize access.
type Layout struct {
	format          string
	timestampFormat string
	buf             []byte
}

// New creates a layout for the given format. An empty timestamp format
// defaults to RFC3339Nano.
func New(format, timestampFormat string) *Layout {
	if timestampFormat == "" {
		timestampFormat = time.RFC3339Nano
	}
	return &Layout{
		format:          format,
		timestampFormat: timestampFormat,
		buf:             make([]byte, 0, 4096),
	}
}

// Format returns the configured format name.
func (l *Layout) Format() string {
	if l.format == "json" || l.format == "raw" {
		return l.format
	}
	return "txt"
}

// Render converts one entry to bytes. The returned slice is valid until the
// next Render call on this layout.
func (l *Layout) Render(e *Entry) []byte {
	l.buf = l.buf[:0]

	switch l.format {
	case "raw":
		return l.renderRaw(e)
	case "json":
		return l.renderJSON(e)
	default:
		return l.renderTxt(e)
	}
}

// renderRaw writes args as space-separated values without metadata.
func (l *Layout) renderRaw(e *Entry) []byte {
	for i, arg := range e.Args {
		if i > 0 {
			l.buf = append(l.buf, ' ')
		}
		l.appendValue(arg)
	}
	l.buf = append(l.buf, '\n')
	return l.buf
}

// renderTxt writes "timestamp LEVEL [category] trace args...\n".
func (l *Layout) renderTxt(e *Entry) []byte {
	l.buf = e.Time.AppendFormat(l.buf, l.timestampFormat)
	l.buf = append(l.buf, ' ')
	l.buf = append(l.buf, e.Level...)
	l.buf = append(l.buf, " ["...)
	l.buf = append(l.buf, e.Category...)
	l.buf = append(l.buf, ']')
	if e.Trace != "" {
		l.buf = append(l.buf, ' ')
		l.buf = append(l.buf, e.Trace...)
	}
	for _, arg := range e.Args {
		l.buf = append(l.buf, ' ')
		l.appendValue(arg)
	}
	l.buf = append(l.buf, '\n')
	return l.buf
}

// renderJSON writes one JSON object per entry. Even-length args are treated
// as key-value pairs; anything else lands under a single "message" key.
func (l *Layout) renderJSON(e *Entry) []byte {
	l.buf = append(l.buf, `{"time":`...)
	l.appendJSONString(e.Time.Format(l.timestampFormat))
	l.buf = append(l.buf, `,"level":`...)
	l.appendJSONString(e.Level)
	l.buf = append(l.buf, `,"category":`...)
	l.appendJSONString(e.Category)
	if e.Trace != "" {
		l.buf = append(l.buf, `,"trace":`...)
		l.appendJSONString(e.Trace)
	}

	if pairs, ok := asPairs(e.Args); ok {
		for i := 0; i < len(pairs); i += 2 {
			l.buf = append(l.buf, ',')
			l.appendJSONString(pairs[i].(string))
			l.buf = append(l.buf, ':')
			l.appendJSONValue(pairs[i+1])
		}
	} else if len(e.Args) > 0 {
		l.buf = append(l.buf, `,"message":`...)
		if len(e.Args) == 1 {
			l.appendJSONValue(e.Args[0])
		} else {
			l.buf = append(l.buf, '[')
			for i, arg := range e.Args {
				if i > 0 {
					l.buf = append(l.buf, ',')
				}
				l.appendJSONValue(arg)
			}
			l.buf = append(l.buf, ']')
		}
	}

	l.buf = append(l.buf, "}\n"...)
	return l.buf
}

// asPairs reports whether args form "key", value, "key", value sequences.
func asPairs(args []any) ([]any, bool) {
	if len(args) == 0 || len(args)%2 != 0 {
		return nil, false
	}
	for i := 0; i < len(args); i += 2 {
		if _, ok := args[i].(string); !ok {
			return nil, false
		}
	}
	return args, true
}

// appendValue converts any value to its text representation. Types without
// an explicit fast path fall back to go-spew, which preserves structure
// information for debugging.
func (l *Layout) appendValue(v any) {
	switch val := v.(type) {
	case string:
		l.appendSanitized(val)
	case int:
		l.buf = strconv.AppendInt(l.buf, int64(val), 10)
	case int64:
		l.buf = strconv.AppendInt(l.buf, val, 10)
	case uint:
		l.buf = strconv.AppendUint(l.buf, uint64(val), 10)
	case uint64:
		l.buf = strconv.AppendUint(l.buf, val, 10)
	case float32:
		l.buf = strconv.AppendFloat(l.buf, float64(val), 'f', -1, 32)
	case float64:
		l.buf = strconv.AppendFloat(l.buf, val, 'f', -1, 64)
	case bool:
		l.buf = strconv.AppendBool(l.buf, val)
	case nil:
		l.buf = append(l.buf, "nil"...)
	case time.Time:
		l.buf = val.AppendFormat(l.buf, l.timestampFormat)
	case time.Duration:
		l.buf = append(l.buf, val.String()...)
	case error:
		l.appendSanitized(val.Error())
	case []byte:
		l.buf = append(l.buf, "0x"...)
		l.buf = hex.AppendEncode(l.buf, val)
	default:
		l.appendSanitized(spew.Sprintf("%#v", val))
	}
}

// appendJSONValue converts any value to its JSON representation, falling
// back to a spew string dump for values encoding/json rejects.
func (l *Layout) appendJSONValue(v any) {
	switch val := v.(type) {
	case error:
		l.appendJSONString(val.Error())
		return
	case time.Time:
		l.appendJSONString(val.Format(l.timestampFormat))
		return
	}

	encoded, err := json.Marshal(v)
	if err != nil {
		l.appendJSONString(spew.Sprintf("%#v", v))
		return
	}
	l.buf = append(l.buf, encoded...)
}

// appendJSONString writes a JSON-escaped string value.
func (l *Layout) appendJSONString(s string) {
	encoded, err := json.Marshal(s)
	if err != nil {
		l.buf = append(l.buf, `""`...)
		return
	}
	l.buf = append(l.buf, encoded...)
}

// appendSanitized writes s with non-printable runes hex-encoded as "<XXYY>"
// so control sequences in logged input cannot corrupt the output stream.
func (l *Layout) appendSanitized(s string) {
	clean := true
	for _, r := range s {
		if !strconv.IsPrint(r) && r != '\t' {
			clean = false
			break
		}
	}
	if clean {
		l.buf = append(l.buf, s...)
		return
	}

	for _, r := range s {
		if strconv.IsPrint(r) || r == '\t' {
			l.buf = append(l.buf, string(r)...)
			continue
		}
		l.buf = append(l.buf, '<')
		l.buf = hex.AppendEncode(l.buf, []byte(string(r)))
		l.buf = append(l.buf, '>')
	}
}
