// FILE: registry.go
package log4g

import (
	"sync"
)

// appenderRegistry maps appender names to live appender instances.
// Instances enter during configuration and leave only through the shutdown
// coordinators, which delete a name before or after physical teardown
// depending on the path (see shutdown.go).
type appenderRegistry struct {
	mu        sync.RWMutex
	appenders map[string]Appender
}

func newAppenderRegistry() *appenderRegistry {
	return &appenderRegistry{
		appenders: make(map[string]Appender),
	}
}

// get returns the appender registered under name.
func (r *appenderRegistry) get(name string) (Appender, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.appenders[name]
	return a, ok
}

// values returns a snapshot of the registry contents.
func (r *appenderRegistry) values() map[string]Appender {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snapshot := make(map[string]Appender, len(r.appenders))
	for name, a := range r.appenders {
		snapshot[name] = a
	}
	return snapshot
}

// set registers an appender under name, replacing any previous instance.
func (r *appenderRegistry) set(name string, a Appender) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appenders[name] = a
}

// delete removes a name from the registry. Removing a name that is not
// present is a no-op.
func (r *appenderRegistry) delete(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.appenders, name)
}

// replace swaps the full registry contents for the given set.
func (r *appenderRegistry) replace(appenders map[string]Appender) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appenders = make(map[string]Appender, len(appenders))
	for name, a := range appenders {
		r.appenders[name] = a
	}
}

// count returns the number of registered appenders.
func (r *appenderRegistry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.appenders)
}
