package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/jaekwang-park/todo-lite/internal/model"
)

// DefaultDocumentName names the document in keyed backends (bolt, postgres).
const DefaultDocumentName = "todos"

// TodoRepository persists the whole todo collection as one JSON document.
// Implementations return an empty collection when the document does not exist yet.
type TodoRepository interface {
	ReadAll(ctx context.Context) ([]model.Todo, error)
	WriteAll(ctx context.Context, todos []model.Todo) error
}

// EncodeDocument renders todos as the on-disk document: an indented JSON
// array followed by a newline. A nil collection is written as [].
func EncodeDocument(todos []model.Todo) ([]byte, error) {
	if todos == nil {
		todos = []model.Todo{}
	}
	data, err := json.MarshalIndent(todos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeDocument parses a document produced by EncodeDocument. Blank input
// decodes to an empty collection.
func DecodeDocument(data []byte) ([]model.Todo, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []model.Todo{}, nil
	}
	var todos []model.Todo
	if err := json.Unmarshal(data, &todos); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	return todos, nil
}
