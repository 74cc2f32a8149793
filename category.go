// FILE: category.go
package log4g

import (
	"strings"
	"sync"
)

// Category is a named routing node binding an ordered list of appender names
// and a level threshold. Categories may share appender names; the scoped
// shutdown coordinator accounts for that when deciding what to tear down.
type Category struct {
	Name          string
	AppenderNames []string
	Level         int64
}

// categoryStore holds the configured category set and resolves dotted
// category names against it.
type categoryStore struct {
	mu         sync.RWMutex
	categories map[string]*Category
}

func newCategoryStore() *categoryStore {
	return &categoryStore{
		categories: make(map[string]*Category),
	}
}

// has reports whether name is a configured category.
func (s *categoryStore) has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.categories[name]
	return ok
}

// get returns the configured category for name, without hierarchy fallback.
func (s *categoryStore) get(name string) (*Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[name]
	return c, ok
}

// set registers a category, replacing any previous definition.
func (s *categoryStore) set(c *Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.Name] = c
}

// delete removes a category from the set.
func (s *categoryStore) delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.categories, name)
}

// values returns a snapshot of all configured categories.
func (s *categoryStore) values() []*Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	return out
}

// count returns the number of configured categories.
func (s *categoryStore) count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.categories)
}

// replace swaps the full category set for the given definitions.
func (s *categoryStore) replace(categories map[string]*Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = make(map[string]*Category, len(categories))
	for name, c := range categories {
		s.categories[name] = c
	}
}

// resolve maps a category name to its effective configured category.
// "a.b.c" walks up the dotted hierarchy to the nearest configured ancestor
// ("a.b", then "a") and finally falls back to the default category. Returns
// nil when nothing resolves, which only happens on an unconfigured store.
func (s *categoryStore) resolve(name string) *Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for current := name; current != ""; {
		if c, ok := s.categories[current]; ok {
			return c
		}
		idx := strings.LastIndex(current, ".")
		if idx < 0 {
			break
		}
		current = current[:idx]
	}
	return s.categories[DefaultCategory]
}
