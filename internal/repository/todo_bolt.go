package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/jaekwang-park/todo-lite/internal/model"
)

const boltBucketTodos = "todos" // key: document name -> JSON document

// BoltTodoRepository stores the document under a single key of a bbolt bucket.
type BoltTodoRepository struct {
	db  *bbolt.DB
	key []byte
}

// OpenBolt opens (or creates) the bbolt file at path and ensures the todos bucket exists.
func OpenBolt(path string) (*bbolt.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create bolt directory: %w", err)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketTodos))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create bolt bucket: %w", err)
	}

	return db, nil
}

func NewBoltTodo(db *bbolt.DB, name string) *BoltTodoRepository {
	if name == "" {
		name = DefaultDocumentName
	}
	return &BoltTodoRepository{db: db, key: []byte(name)}
}

func (r *BoltTodoRepository) ReadAll(ctx context.Context) ([]model.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := r.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketTodos))
		if bucket == nil {
			return nil
		}
		if v := bucket.Get(r.key); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read bolt document: %w", err)
	}

	return DecodeDocument(data)
}

func (r *BoltTodoRepository) WriteAll(ctx context.Context, todos []model.Todo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := EncodeDocument(todos)
	if err != nil {
		return err
	}

	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(boltBucketTodos))
		if err != nil {
			return fmt.Errorf("failed to create bolt bucket: %w", err)
		}
		if err := bucket.Put(r.key, data); err != nil {
			return fmt.Errorf("failed to write bolt document: %w", err)
		}
		return nil
	})
}
