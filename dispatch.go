// FILE: dispatch.go
package log4g

// Dispatch distributes one resolved log event to every appender bound to its
// category, synchronously and in resolution order. While the runtime is not
// enabled this is a no-op: the gate is the sole mechanism keeping in-flight
// log calls away from appenders during and after teardown, and silent drops
// in that window are intended behavior, not an error.
func (r *Runtime) Dispatch(e *Event) {
	if r.state.Lifecycle.Load() != StateEnabled {
		r.state.TotalDropped.Add(1)
		return
	}

	cat := r.categories.resolve(e.Category)
	if cat == nil {
		r.state.TotalDropped.Add(1)
		return
	}
	if e.Level < cat.Level {
		r.state.TotalFiltered.Add(1)
		return
	}

	for _, name := range cat.AppenderNames {
		if a, ok := r.appenders.get(name); ok {
			a.Append(e)
		}
	}
	r.state.TotalDispatched.Add(1)
}

// IsLevelEnabled reports whether an event at level for category would pass
// the gate and the resolved category threshold.
func (r *Runtime) IsLevelEnabled(category string, level int64) bool {
	if r.state.Lifecycle.Load() != StateEnabled {
		return false
	}
	cat := r.categories.resolve(category)
	return cat != nil && level >= cat.Level
}
