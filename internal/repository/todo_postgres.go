package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jaekwang-park/todo-lite/internal/model"
)

// PostgresTodoRepository keeps the document as one jsonb row keyed by name.
type PostgresTodoRepository struct {
	db   *sql.DB
	name string
}

func NewPostgresTodo(db *sql.DB, name string) *PostgresTodoRepository {
	if name == "" {
		name = DefaultDocumentName
	}
	return &PostgresTodoRepository{db: db, name: name}
}

// EnsureSchema creates the documents table when it is missing.
func (r *PostgresTodoRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS todo_documents (
			name       TEXT PRIMARY KEY,
			body       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create todo_documents table: %w", err)
	}
	return nil
}

func (r *PostgresTodoRepository) ReadAll(ctx context.Context) ([]model.Todo, error) {
	query := `SELECT body FROM todo_documents WHERE name = $1`

	var body string
	err := r.db.QueryRowContext(ctx, query, r.name).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []model.Todo{}, nil
		}
		return nil, fmt.Errorf("failed to read todo document: %w", err)
	}

	return DecodeDocument([]byte(body))
}

func (r *PostgresTodoRepository) WriteAll(ctx context.Context, todos []model.Todo) error {
	data, err := EncodeDocument(todos)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO todo_documents (name, body, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET body = EXCLUDED.body, updated_at = now()`

	if _, err := r.db.ExecContext(ctx, query, r.name, string(data)); err != nil {
		return fmt.Errorf("failed to write todo document: %w", err)
	}
	return nil
}
