package client

import (
	"sync"

	"github.com/jaekwang-park/todo-lite/internal/model"
)

// Patch is a partial change to a todo. Nil fields are left alone.
type Patch struct {
	Text      *string
	Completed *bool
}

func (p Patch) apply(t model.Todo) model.Todo {
	if p.Text != nil {
		t.Text = *p.Text
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return t
}

// Cache is the client's local copy of the collection. Optimistic changes are
// applied here first and either committed with the server's echo or rolled
// back by identity.
type Cache struct {
	mu    sync.Mutex
	todos model.Todos
}

func NewCache() *Cache {
	return &Cache{todos: model.Todos{}}
}

// Snapshot returns a copy of the cached collection.
func (c *Cache) Snapshot() model.Todos {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyLocked()
}

func (c *Cache) Get(id string) (model.Todo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.todos.Index(id); i >= 0 {
		return c.todos[i], true
	}
	return model.Todo{}, false
}

// Replace commits a server result as the new cached collection.
func (c *Cache) Replace(todos []model.Todo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.todos = append(model.Todos{}, todos...)
}

func (c *Cache) Append(t model.Todo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.todos = append(c.todos, t)
}

// ApplyOptimistic patches the record with the given id in place. It returns
// the pre-patch record, the patched collection to send upstream, and false
// when no record has that id.
func (c *Cache) ApplyOptimistic(id string, p Patch) (model.Todo, model.Todos, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.todos.Index(id)
	if i < 0 {
		return model.Todo{}, nil, false
	}
	original := c.todos[i]
	c.todos[i] = p.apply(original)
	return original, c.copyLocked(), true
}

// RemoveOptimistic drops the record with the given id. It returns the removed
// record, its former position, and the remaining collection.
func (c *Cache) RemoveOptimistic(id string) (model.Todo, int, model.Todos, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.todos.Index(id)
	if i < 0 {
		return model.Todo{}, -1, nil, false
	}
	removed := c.todos[i]
	c.todos = append(c.todos[:i:i], c.todos[i+1:]...)
	return removed, i, c.copyLocked(), true
}

// Rollback restores original over the cached record with the same id.
// A record that has since disappeared stays gone.
func (c *Cache) Rollback(original model.Todo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.todos.Index(original.ID); i >= 0 {
		c.todos[i] = original
	}
}

// Restore re-inserts a removed record at index, clamped to the current length.
// It does nothing if a record with the same id is already cached.
func (c *Cache) Restore(removed model.Todo, index int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.todos.Index(removed.ID) >= 0 {
		return
	}
	if index < 0 || index > len(c.todos) {
		index = len(c.todos)
	}
	c.todos = append(c.todos[:index], append(model.Todos{removed}, c.todos[index:]...)...)
}

func (c *Cache) copyLocked() model.Todos {
	out := make(model.Todos, len(c.todos))
	copy(out, c.todos)
	return out
}
