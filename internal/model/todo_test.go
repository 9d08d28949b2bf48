package model_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jaekwang-park/todo-lite/internal/model"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain", "buy milk", "buy milk", false},
		{"padded", "  x ", "x", false},
		{"tabs and newlines", "\t walk dog \n", "walk dog", false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.NormalizeText(tt.input)
			if tt.wantErr {
				if !errors.Is(err, model.ErrEmptyText) {
					t.Fatalf("expected ErrEmptyText, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewTodo(t *testing.T) {
	before := time.Now().UTC().Add(-time.Second)

	todo, err := model.NewTodo("  x ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if todo.ID == "" {
		t.Error("expected a minted id")
	}
	if todo.Text != "x" {
		t.Errorf("expected text=x, got %q", todo.Text)
	}
	if todo.Completed {
		t.Error("expected completed=false")
	}
	if todo.CreatedAt.Before(before) || todo.CreatedAt.After(time.Now().UTC().Add(time.Second)) {
		t.Errorf("createdAt %v outside expected window", todo.CreatedAt)
	}
	if todo.CreatedAt.Location() != time.UTC {
		t.Errorf("expected UTC createdAt, got %v", todo.CreatedAt.Location())
	}

	other, _ := model.NewTodo("y")
	if other.ID == todo.ID {
		t.Error("expected distinct ids for distinct todos")
	}
}

func TestNewTodo_EmptyText(t *testing.T) {
	for _, text := range []string{"", "   "} {
		if _, err := model.NewTodo(text); !errors.Is(err, model.ErrEmptyText) {
			t.Errorf("NewTodo(%q): expected ErrEmptyText, got %v", text, err)
		}
	}
}

func TestTodo_JSON(t *testing.T) {
	todo := model.Todo{
		ID:        "1",
		Text:      "buy milk",
		Completed: true,
		CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 6_000_000, time.UTC),
	}

	data, err := json.Marshal(todo)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `{"id":"1","text":"buy milk","completed":true,"createdAt":"2025-01-02T03:04:05.006Z"}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}

	var decoded model.Todo
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.ID != todo.ID || decoded.Text != todo.Text || decoded.Completed != todo.Completed || !decoded.CreatedAt.Equal(todo.CreatedAt) {
		t.Errorf("decoded %+v, want %+v", decoded, todo)
	}
}

func TestTodo_UnmarshalJSON_OffsetTimestamp(t *testing.T) {
	var todo model.Todo
	err := json.Unmarshal([]byte(`{"id":"a","text":"t","completed":false,"createdAt":"2025-01-01T09:00:00+09:00"}`), &todo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if !todo.CreatedAt.Equal(want) {
		t.Errorf("expected %v, got %v", want, todo.CreatedAt)
	}
}

func TestTodo_UnmarshalJSON_BadTimestamp(t *testing.T) {
	var todo model.Todo
	err := json.Unmarshal([]byte(`{"id":"a","text":"t","createdAt":"yesterday"}`), &todo)
	if err == nil {
		t.Fatal("expected error for malformed createdAt")
	}
}

func TestTodos_Helpers(t *testing.T) {
	todos := model.Todos{
		{ID: "1", Completed: false},
		{ID: "2", Completed: true},
		{ID: "3", Completed: false},
	}

	if got := todos.Index("2"); got != 1 {
		t.Errorf("Index(2) = %d, want 1", got)
	}
	if got := todos.Index("missing"); got != -1 {
		t.Errorf("Index(missing) = %d, want -1", got)
	}

	active := todos.Active()
	if len(active) != 2 || active[0].ID != "1" || active[1].ID != "3" {
		t.Errorf("unexpected active set: %+v", active)
	}

	completed := todos.Completed()
	if len(completed) != 1 || completed[0].ID != "2" {
		t.Errorf("unexpected completed set: %+v", completed)
	}

	done, pending := todos.Counts()
	if done != 1 || pending != 2 {
		t.Errorf("Counts() = %d, %d; want 1, 2", done, pending)
	}
}
