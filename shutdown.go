// FILE: shutdown.go
package log4g

import (
	"errors"
	"sync"
	"time"
)

// Sentinel errors returned through shutdown callbacks
var (
	// ErrCategoryNotFound is reported by ShutdownCategory for an unknown category.
	ErrCategoryNotFound = errors.New("log4g: category not found")
	// ErrShutdownTimeout is reported when appenders fail to complete teardown in time.
	ErrShutdownTimeout = errors.New("log4g: shutdown timed out waiting for appenders")
)

// shutdownTally is the counting join for one coordinator invocation: it
// tracks how many completions are outstanding, keeps the first error, and
// fires the callback exactly once after the last completion or on timeout.
type shutdownTally struct {
	mu        sync.Mutex
	expected  int
	completed int
	firstErr  error
	fired     bool
	seen      map[string]struct{}
	timer     *time.Timer
	cb        func(error)
}

func newShutdownTally(expected int, cb func(error)) *shutdownTally {
	return &shutdownTally{
		expected: expected,
		seen:     make(map[string]struct{}, expected),
		cb:       cb,
	}
}

// arm bounds the join with a timeout. On expiry pending appenders are treated
// as failed and the callback fires with ErrShutdownTimeout unless an earlier
// appender error already claimed the first-error slot.
func (t *shutdownTally) arm(timeout time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fired {
		return
	}
	t.timer = time.AfterFunc(timeout, t.expire)
}

// complete records one appender's teardown outcome. Duplicate completions for
// the same appender are ignored so a misbehaving done func cannot skew the
// count or fire the callback early.
func (t *shutdownTally) complete(name string, err error) {
	t.mu.Lock()
	if t.fired {
		t.mu.Unlock()
		return
	}
	if _, dup := t.seen[name]; dup {
		t.mu.Unlock()
		return
	}
	t.seen[name] = struct{}{}
	if err != nil && t.firstErr == nil {
		t.firstErr = err
	}
	t.completed++
	if t.completed < t.expected {
		t.mu.Unlock()
		return
	}
	t.fired = true
	if t.timer != nil {
		t.timer.Stop()
	}
	cb, result := t.cb, t.firstErr
	t.mu.Unlock()

	// Invoke outside the lock, the callback may re-enter the runtime
	if cb != nil {
		cb(result)
	}
}

func (t *shutdownTally) expire() {
	t.mu.Lock()
	if t.fired {
		t.mu.Unlock()
		return
	}
	t.fired = true
	if t.firstErr == nil {
		t.firstErr = ErrShutdownTimeout
	}
	cb, result := t.cb, t.firstErr
	t.mu.Unlock()

	if cb != nil {
		cb(result)
	}
}

// Shutdown tears down every registered appender and reports completion
// through cb exactly once. The dispatch gate is disabled first,
// unconditionally, so no event admitted after this call reaches an appender
// whose teardown may already be underway. Appenders without the shutdown
// capability are dropped from the registry immediately; the rest are invoked
// in parallel and removed as their completions arrive. cb receives nil on
// success or the first teardown error. An optional timeout bounds the join.
func (r *Runtime) Shutdown(cb func(err error), timeout ...time.Duration) {
	r.state.Lifecycle.Store(StateDisabled)

	r.mu.Lock()
	targets := r.appenders.values()
	r.mu.Unlock()

	r.teardown(targets, true, cb, timeout...)
}

// ShutdownCategory removes one category and tears down only the appenders
// that become unreferenced by its removal. Appenders still bound to a
// surviving category are left running. Removing the default category when it
// is the last one standing degrades to a full Shutdown. cb always fires
// exactly once: with ErrCategoryNotFound for an unknown category, with nil
// when every appender the category used is still referenced elsewhere, and
// otherwise per the join protocol over the orphaned subset.
func (r *Runtime) ShutdownCategory(name string, cb func(err error), timeout ...time.Duration) {
	r.mu.Lock()

	target, ok := r.categories.get(name)
	if !ok {
		r.mu.Unlock()
		if cb != nil {
			cb(ErrCategoryNotFound)
		}
		return
	}

	// Removing the last remaining category is equivalent to full shutdown
	if name == DefaultCategory && r.categories.count() == 1 {
		r.mu.Unlock()
		r.Shutdown(cb, timeout...)
		return
	}

	// Logical deletion first: dispatch and later coordinator calls must see
	// the already-shrunk category set before any teardown begins.
	r.categories.delete(name)

	stillUsed := make(map[string]struct{})
	for _, survivor := range r.categories.values() {
		for _, an := range survivor.AppenderNames {
			stillUsed[an] = struct{}{}
		}
	}

	orphaned := make(map[string]Appender)
	for _, an := range target.AppenderNames {
		if _, shared := stillUsed[an]; shared {
			continue
		}
		if a, found := r.appenders.get(an); found {
			// Remove from the registry before physical teardown so no
			// concurrent dispatch can reach a draining appender.
			r.appenders.delete(an)
			orphaned[an] = a
		}
	}
	r.mu.Unlock()

	if len(orphaned) == 0 {
		if cb != nil {
			cb(nil)
		}
		return
	}

	r.teardown(orphaned, false, cb, timeout...)
}

// teardown runs the parallel-invoke/tally/first-error/exactly-once-callback
// protocol over the given appenders. When unregister is set the appenders are
// still present in the registry and are deleted here: immediately for those
// without the shutdown capability, on successful completion for the rest.
func (r *Runtime) teardown(targets map[string]Appender, unregister bool, cb func(err error), timeout ...time.Duration) {
	capable := make(map[string]ShutdownAppender, len(targets))
	for name, a := range targets {
		if sa, ok := a.(ShutdownAppender); ok {
			capable[name] = sa
			continue
		}
		if unregister {
			r.appenders.delete(name)
		}
	}

	if len(capable) == 0 {
		if cb != nil {
			cb(nil)
		}
		return
	}

	tally := newShutdownTally(len(capable), cb)
	if effective := r.effectiveTimeout(timeout); effective > 0 {
		tally.arm(effective)
	}

	for name, sa := range capable {
		go sa.Shutdown(func(err error) {
			if err == nil && unregister {
				r.appenders.delete(name)
			}
			tally.complete(name, err)
		})
	}
}

// effectiveTimeout resolves the join timeout: an explicit argument wins,
// otherwise the configured default applies, otherwise the join is unbounded.
func (r *Runtime) effectiveTimeout(timeout []time.Duration) time.Duration {
	if len(timeout) > 0 {
		return timeout[0]
	}
	cfg := r.getConfig()
	if cfg.ShutdownTimeoutMs > 0 {
		return time.Duration(cfg.ShutdownTimeoutMs) * time.Millisecond
	}
	return 0
}
