package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jaekwang-park/todo-lite/internal/model"
)

// ErrInvalidInput is returned for edits rejected before any request is sent.
var ErrInvalidInput = errors.New("invalid input")

// Manager keeps the client-side cache in step with the server. Edits are
// applied to the cache optimistically and the full collection is then sent
// upstream; a failed request rolls the touched record back by id.
type Manager struct {
	api    API
	cache  *Cache
	logger *slog.Logger

	mu      sync.Mutex
	loading bool
	lastErr string
}

func NewManager(api API, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		api:    api,
		cache:  NewCache(),
		logger: logger,
	}
}

// Todos returns a copy of the cached collection.
func (m *Manager) Todos() model.Todos {
	return m.cache.Snapshot()
}

func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Err returns the message of the last failed operation. Each operation
// clears it when it starts.
func (m *Manager) Err() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// Load fetches the collection and replaces the cache with it. On failure the
// cache is left as it was.
func (m *Manager) Load(ctx context.Context) error {
	m.resetErr()
	m.setLoading(true)
	defer m.setLoading(false)

	todos, err := m.api.List(ctx)
	if err != nil {
		return m.fail("load", err)
	}
	m.cache.Replace(todos)
	return nil
}

// Refetch reloads from the server, discarding any local divergence.
func (m *Manager) Refetch(ctx context.Context) error {
	return m.Load(ctx)
}

// Add creates a todo on the server and appends the echoed record.
// Nothing is cached until the server accepts it.
func (m *Manager) Add(ctx context.Context, text string) (model.Todo, error) {
	m.resetErr()
	trimmed, err := model.NormalizeText(text)
	if err != nil {
		return model.Todo{}, m.fail("add", fmt.Errorf("%w: %w", ErrInvalidInput, err))
	}

	created, err := m.api.Create(ctx, trimmed)
	if err != nil {
		return model.Todo{}, m.fail("add", err)
	}
	m.cache.Append(created)
	return created, nil
}

// Update patches a single todo. An unknown id is a no-op and sends nothing.
func (m *Manager) Update(ctx context.Context, id string, patch Patch) error {
	m.resetErr()
	if patch.Text != nil {
		trimmed, err := model.NormalizeText(*patch.Text)
		if err != nil {
			return m.fail("update", fmt.Errorf("%w: %w", ErrInvalidInput, err))
		}
		patch.Text = &trimmed
	}

	original, next, ok := m.cache.ApplyOptimistic(id, patch)
	if !ok {
		m.logger.Debug("update skipped, unknown id", "id", id)
		return nil
	}

	saved, err := m.api.ReplaceAll(ctx, next)
	if err != nil {
		m.cache.Rollback(original)
		return m.fail("update", err)
	}
	m.cache.Replace(saved)
	return nil
}

// Toggle flips the completed flag of the todo with the given id.
func (m *Manager) Toggle(ctx context.Context, id string) error {
	m.resetErr()
	current, ok := m.cache.Get(id)
	if !ok {
		m.logger.Debug("toggle skipped, unknown id", "id", id)
		return nil
	}
	completed := !current.Completed
	return m.Update(ctx, id, Patch{Completed: &completed})
}

// Delete removes a todo. On failure it is restored at its former position.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.resetErr()
	removed, index, next, ok := m.cache.RemoveOptimistic(id)
	if !ok {
		m.logger.Debug("delete skipped, unknown id", "id", id)
		return nil
	}

	saved, err := m.api.ReplaceAll(ctx, next)
	if err != nil {
		m.cache.Restore(removed, index)
		return m.fail("delete", err)
	}
	m.cache.Replace(saved)
	return nil
}

// ClearCompleted keeps only pending todos. The cache changes only after the
// server accepts the new collection.
func (m *Manager) ClearCompleted(ctx context.Context) error {
	m.resetErr()
	next := m.cache.Snapshot().Active()

	saved, err := m.api.ReplaceAll(ctx, next)
	if err != nil {
		return m.fail("clear completed", err)
	}
	m.cache.Replace(saved)
	return nil
}

// ClearAll deletes every todo on the server and empties the cache.
func (m *Manager) ClearAll(ctx context.Context) error {
	m.resetErr()
	if err := m.api.ClearAll(ctx); err != nil {
		return m.fail("clear all", err)
	}
	m.cache.Replace(nil)
	return nil
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}

func (m *Manager) resetErr() {
	m.mu.Lock()
	m.lastErr = ""
	m.mu.Unlock()
}

func (m *Manager) fail(op string, err error) error {
	m.mu.Lock()
	m.lastErr = err.Error()
	m.mu.Unlock()

	m.logger.Warn("todo operation failed", "op", op, "error", err)
	return err
}
