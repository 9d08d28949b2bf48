package repository_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/jaekwang-park/todo-lite/internal/model"
	"github.com/jaekwang-park/todo-lite/internal/repository"
)

func sampleTodos() []model.Todo {
	return []model.Todo{
		{ID: "1", Text: "buy milk", Completed: false, CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "2", Text: "walk dog", Completed: true, CreatedAt: time.Date(2025, 1, 2, 8, 30, 0, 123_000_000, time.UTC)},
	}
}

func newFileRepo(t *testing.T) (*repository.FileTodoRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "todos.json")
	return repository.NewFileTodo(path), path
}

func TestFileTodo_ReadAll_MissingFile(t *testing.T) {
	repo, _ := newFileRepo(t)

	todos, err := repo.ReadAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, todos)
	assert.Empty(t, todos)
}

func TestFileTodo_ReadAll_IOErrorPropagates(t *testing.T) {
	// A directory in place of the document is an I/O failure, not "no file yet".
	dir := t.TempDir()
	repo := repository.NewFileTodo(dir)

	_, err := repo.ReadAll(context.Background())
	require.Error(t, err)
}

func TestFileTodo_ReadAll_MalformedDocument(t *testing.T) {
	repo, path := newFileRepo(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`{"not":"an array"}`), 0o644))

	_, err := repo.ReadAll(context.Background())
	require.Error(t, err)
}

func TestFileTodo_WriteThenRead(t *testing.T) {
	repo, path := newFileRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.WriteAll(ctx, sampleTodos()))

	got, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "buy milk", got[0].Text)
	assert.True(t, got[1].Completed)
	assert.True(t, got[1].CreatedAt.Equal(sampleTodos()[1].CreatedAt))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"createdAt": "2025-01-02T08:30:00.123Z"`)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileTodo_WriteAll_NilWritesEmptyArray(t *testing.T) {
	repo, path := newFileRepo(t)

	require.NoError(t, repo.WriteAll(context.Background(), nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(raw))
}

func TestFileTodo_WriteAll_Overwrites(t *testing.T) {
	repo, _ := newFileRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.WriteAll(ctx, sampleTodos()))
	require.NoError(t, repo.WriteAll(ctx, sampleTodos()[:1]))

	got, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestFileTodo_WriteAll_ErrorPropagates(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	repo := repository.NewFileTodo(filepath.Join(blocker, "todos.json"))

	err := repo.WriteAll(context.Background(), sampleTodos())
	require.Error(t, err)
}

func TestFileTodo_CanceledContext(t *testing.T) {
	repo, _ := newFileRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.ReadAll(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, repo.WriteAll(ctx, nil), context.Canceled)
}

// =============================================================================
// Property: WriteAll(ReadAll()) leaves the document byte-for-byte unchanged
// =============================================================================

func todosGenerator() *rapid.Generator[[]model.Todo] {
	return rapid.Custom(func(t *rapid.T) []model.Todo {
		n := rapid.IntRange(0, 20).Draw(t, "n")
		todos := make([]model.Todo, 0, n)
		for i := 0; i < n; i++ {
			millis := rapid.Int64Range(0, 4102444800000).Draw(t, fmt.Sprintf("createdAt%d", i))
			todos = append(todos, model.Todo{
				ID:        fmt.Sprintf("%d-%s", i, rapid.StringMatching(`[a-z0-9]{1,12}`).Draw(t, fmt.Sprintf("id%d", i))),
				Text:      rapid.StringMatching(`[A-Za-z0-9 .,!?"\\]{0,40}[A-Za-z0-9]`).Draw(t, fmt.Sprintf("text%d", i)),
				Completed: rapid.Bool().Draw(t, fmt.Sprintf("completed%d", i)),
				CreatedAt: time.UnixMilli(millis).UTC(),
			})
		}
		return todos
	})
}

func TestFileTodo_RoundTrip_Properties(t *testing.T) {
	dir := t.TempDir()
	var counter int

	rapid.Check(t, func(rt *rapid.T) {
		counter++
		path := filepath.Join(dir, fmt.Sprintf("todos-%d.json", counter))
		repo := repository.NewFileTodo(path)
		ctx := context.Background()

		if err := repo.WriteAll(ctx, todosGenerator().Draw(rt, "todos")); err != nil {
			rt.Fatalf("initial write: %v", err)
		}
		before, err := os.ReadFile(path)
		if err != nil {
			rt.Fatalf("read before: %v", err)
		}

		loaded, err := repo.ReadAll(ctx)
		if err != nil {
			rt.Fatalf("ReadAll: %v", err)
		}
		if err := repo.WriteAll(ctx, loaded); err != nil {
			rt.Fatalf("WriteAll: %v", err)
		}

		after, err := os.ReadFile(path)
		if err != nil {
			rt.Fatalf("read after: %v", err)
		}
		if string(before) != string(after) {
			rt.Fatalf("document changed on round trip:\nbefore: %s\nafter:  %s", before, after)
		}
	})
}

func TestDecodeDocument_Blank(t *testing.T) {
	for _, input := range []string{"", "  \n"} {
		todos, err := repository.DecodeDocument([]byte(input))
		require.NoError(t, err)
		assert.NotNil(t, todos)
		assert.Empty(t, todos)
	}
}
