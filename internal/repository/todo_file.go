package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jaekwang-park/todo-lite/internal/model"
)

// FileTodoRepository keeps the collection in a single JSON file.
// No locking: concurrent writers race and the last rename wins.
type FileTodoRepository struct {
	path string
}

func NewFileTodo(path string) *FileTodoRepository {
	return &FileTodoRepository{path: path}
}

func (r *FileTodoRepository) Path() string {
	return r.path
}

func (r *FileTodoRepository) ReadAll(ctx context.Context) ([]model.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Todo{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return DecodeDocument(data)
}

// WriteAll replaces the file via a temp file in the same directory followed
// by a rename, so readers never observe a truncated document.
func (r *FileTodoRepository) WriteAll(ctx context.Context, todos []model.Todo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := EncodeDocument(todos)
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
