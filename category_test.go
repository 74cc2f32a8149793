// FILE: category_test.go
package log4g

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryStoreBasics(t *testing.T) {
	s := newCategoryStore()

	assert.False(t, s.has("db"))
	assert.Equal(t, 0, s.count())

	s.set(&Category{Name: "db", AppenderNames: []string{"file"}, Level: LevelInfo})
	assert.True(t, s.has("db"))
	assert.Equal(t, 1, s.count())

	c, ok := s.get("db")
	require.True(t, ok)
	assert.Equal(t, "db", c.Name)

	s.delete("db")
	assert.False(t, s.has("db"))

	// Deleting a missing category is a no-op
	s.delete("db")
	assert.Equal(t, 0, s.count())
}

func TestCategoryStoreResolve(t *testing.T) {
	s := newCategoryStore()
	s.set(&Category{Name: DefaultCategory, Level: LevelInfo})
	s.set(&Category{Name: "db", Level: LevelDebug})
	s.set(&Category{Name: "db.pool", Level: LevelWarn})

	tests := []struct {
		name     string
		lookup   string
		resolved string
	}{
		{"exact match", "db", "db"},
		{"exact nested match", "db.pool", "db.pool"},
		{"walks to parent", "db.query", "db"},
		{"walks multiple levels", "db.query.slow.scan", "db"},
		{"nested exact wins over parent", "db.pool.checkout", "db.pool"},
		{"unknown falls back to default", "web.http", DefaultCategory},
		{"empty falls back to default", "", DefaultCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := s.resolve(tt.lookup)
			require.NotNil(t, c)
			assert.Equal(t, tt.resolved, c.Name)
		})
	}
}

func TestCategoryStoreResolveNoDefault(t *testing.T) {
	s := newCategoryStore()
	s.set(&Category{Name: "db", Level: LevelInfo})

	assert.Nil(t, s.resolve("web"), "nothing resolves without a default category")
	assert.NotNil(t, s.resolve("db.query"))
}

func TestCategoryStoreValuesSnapshot(t *testing.T) {
	s := newCategoryStore()
	s.set(&Category{Name: "a", Level: LevelInfo})
	s.set(&Category{Name: "b", Level: LevelInfo})

	values := s.values()
	assert.Len(t, values, 2)

	// Snapshot is detached from the store
	s.delete("a")
	assert.Len(t, values, 2)
}

func TestCategoryStoreReplace(t *testing.T) {
	s := newCategoryStore()
	s.set(&Category{Name: "old", Level: LevelInfo})

	s.replace(map[string]*Category{
		"new": {Name: "new", Level: LevelDebug},
	})

	assert.False(t, s.has("old"))
	assert.True(t, s.has("new"))
	assert.Equal(t, 1, s.count())
}

func TestAppenderRegistrySnapshot(t *testing.T) {
	r := newAppenderRegistry()
	r.set("a", &recordingAppender{})
	r.set("b", &recordingAppender{})

	snapshot := r.values()
	assert.Len(t, snapshot, 2)

	r.delete("a")
	assert.Len(t, snapshot, 2, "snapshot is detached from the registry")
	assert.Equal(t, 1, r.count())

	_, ok := r.get("a")
	assert.False(t, ok)
	_, ok = r.get("b")
	assert.True(t, ok)
}
