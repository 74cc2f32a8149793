// FILE: file.go
package log4g

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/LuoJinghua/log4g/layout"
)

const defaultFileBufferSize = 4096

// fileAppender writes rendered events to a log file, rotating it when the
// configured size threshold is exceeded. It declares the shutdown capability:
// teardown flushes the write buffer, syncs, and closes the file.
type fileAppender struct {
	name      string
	directory string
	baseName  string
	extension string
	maxSize   int64 // bytes, 0=rotation disabled
	layout    *layout.Layout

	mu     sync.Mutex
	file   *os.File
	writer *bufio.Writer
	size   int64
	closed bool
	sdOnce sync.Once
	sdErr  error // first teardown outcome, replayed to later Shutdown calls
}

func newFileAppender(name string, ac AppenderConfig, timestampFormat string) (*fileAppender, error) {
	directory := ac.Directory
	if directory == "" {
		directory = "."
	}
	if err := os.MkdirAll(directory, 0755); err != nil {
		return nil, fmtErrorf("failed to create log directory '%s': %w", directory, err)
	}

	extension := ac.Extension
	if extension == "" {
		extension = "log"
	}

	a := &fileAppender{
		name:      name,
		directory: directory,
		baseName:  ac.Name,
		extension: extension,
		maxSize:   ac.MaxSizeKB * sizeMultiplier,
		layout:    layout.New(ac.Layout, timestampFormat),
	}

	if err := a.open(); err != nil {
		return nil, err
	}

	bufferSize := int(ac.BufferSize)
	if bufferSize <= 0 {
		bufferSize = defaultFileBufferSize
	}
	a.writer = bufio.NewWriterSize(a.file, bufferSize)

	return a, nil
}

// currentPath is the live log file; rotated files get a timestamp suffix.
func (a *fileAppender) currentPath() string {
	return filepath.Join(a.directory, a.baseName+"."+a.extension)
}

// open creates or appends to the current log file, assuming mu is held (or
// the appender is not yet shared).
func (a *fileAppender) open() error {
	f, err := os.OpenFile(a.currentPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmtErrorf("failed to open log file '%s': %w", a.currentPath(), err)
	}
	a.file = f
	a.size = 0
	if fi, errStat := f.Stat(); errStat == nil {
		a.size = fi.Size()
	}
	return nil
}

func (a *fileAppender) Append(e *Event) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed || a.file == nil {
		return
	}

	data := a.layout.Render(&layout.Entry{
		Time:     e.Time,
		Level:    LevelName(e.Level),
		Category: e.Category,
		Trace:    e.Trace,
		Args:     e.Args,
	})

	n, err := a.writer.Write(data)
	if err != nil {
		// Out of band failure, nothing to report it to; keep counting so
		// rotation still triggers on a recovered disk
		a.size += int64(n)
		return
	}
	a.size += int64(n)

	if a.maxSize > 0 && a.size >= a.maxSize {
		a.rotate()
	}
}

// rotate closes the current file, renames it with a timestamp suffix, and
// opens a fresh one. Assumes mu is held.
func (a *fileAppender) rotate() {
	_ = a.writer.Flush()
	_ = a.file.Sync()
	_ = a.file.Close()

	rotated := filepath.Join(a.directory, fmt.Sprintf("%s_%s.%s",
		a.baseName, time.Now().Format("20060102_150405.000000000"), a.extension))
	_ = os.Rename(a.currentPath(), rotated)

	if err := a.open(); err != nil {
		// Leave the appender writable against a nil-file guard in Append
		a.file = nil
		return
	}
	a.writer.Reset(a.file)
}

// Flush forces buffered data to the OS and syncs it to disk.
func (a *fileAppender) Flush() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed || a.file == nil {
		return fmtErrorf("file appender '%s' is closed", a.name)
	}
	if err := a.writer.Flush(); err != nil {
		return fmtErrorf("failed to flush log file '%s': %w", a.currentPath(), err)
	}
	if err := a.file.Sync(); err != nil {
		return fmtErrorf("failed to sync log file '%s': %w", a.currentPath(), err)
	}
	return nil
}

// Shutdown releases the file resources on the first call and reports the
// outcome through done. Later calls replay the first outcome, so every
// coordinator join waiting on this appender observes a completion. Later
// appends become no-ops.
func (a *fileAppender) Shutdown(done func(err error)) {
	a.sdOnce.Do(func() {
		a.mu.Lock()

		var finalErr error
		if a.file != nil {
			if err := a.writer.Flush(); err != nil {
				finalErr = combineErrors(finalErr,
					fmtErrorf("failed to flush log file '%s' during shutdown: %w", a.currentPath(), err))
			}
			if err := a.file.Sync(); err != nil {
				finalErr = combineErrors(finalErr,
					fmtErrorf("failed to sync log file '%s' during shutdown: %w", a.currentPath(), err))
			}
			if err := a.file.Close(); err != nil {
				finalErr = combineErrors(finalErr,
					fmtErrorf("failed to close log file '%s' during shutdown: %w", a.currentPath(), err))
			}
			a.file = nil
		}
		a.closed = true
		a.sdErr = finalErr
		a.mu.Unlock()
	})

	// Do blocks until the first teardown finishes, so sdErr is settled here
	if done != nil {
		done(a.sdErr)
	}
}
