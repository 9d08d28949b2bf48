package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jaekwang-park/todo-lite/internal/model"
	"github.com/jaekwang-park/todo-lite/internal/repository"
)

// TodoService exposes the four whole-collection operations. Every call is a
// full round trip through the repository; there is no caching and no locking.
type TodoService struct {
	repo repository.TodoRepository
}

func NewTodoService(repo repository.TodoRepository) *TodoService {
	return &TodoService{repo: repo}
}

func (s *TodoService) List(ctx context.Context) ([]model.Todo, error) {
	todos, err := s.repo.ReadAll(ctx)
	if err != nil {
		return nil, storageError("failed to read todos", err)
	}
	return todos, nil
}

func (s *TodoService) Create(ctx context.Context, text string) (model.Todo, error) {
	todo, err := model.NewTodo(text)
	if err != nil {
		if errors.Is(err, model.ErrEmptyText) {
			return model.Todo{}, fmt.Errorf("%w: todo text is required", ErrInvalidInput)
		}
		return model.Todo{}, err
	}

	todos, err := s.repo.ReadAll(ctx)
	if err != nil {
		return model.Todo{}, storageError("failed to read todos", err)
	}

	todos = append(todos, todo)
	if err := s.repo.WriteAll(ctx, todos); err != nil {
		return model.Todo{}, storageError("failed to create todo", err)
	}

	return todo, nil
}

// ReplaceAll saves todos verbatim as the new canonical collection and echoes it back.
func (s *TodoService) ReplaceAll(ctx context.Context, todos []model.Todo) ([]model.Todo, error) {
	if todos == nil {
		return nil, fmt.Errorf("%w: todos must be an array", ErrInvalidInput)
	}

	if err := s.repo.WriteAll(ctx, todos); err != nil {
		return nil, storageError("failed to update todos", err)
	}
	return todos, nil
}

func (s *TodoService) ClearAll(ctx context.Context) error {
	if err := s.repo.WriteAll(ctx, []model.Todo{}); err != nil {
		return storageError("failed to delete todos", err)
	}
	return nil
}

func storageError(msg string, err error) error {
	return fmt.Errorf("%s: %w: %w", msg, ErrStorage, err)
}
