package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimeLayout is the ISO-8601 form used for createdAt on the wire and on disk.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// ErrEmptyText is returned when a todo's text is empty after trimming.
var ErrEmptyText = errors.New("todo text is required")

type Todo struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

type todoJSON struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
}

// NormalizeText trims surrounding whitespace and rejects empty text.
func NormalizeText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ErrEmptyText
	}
	return trimmed, nil
}

// NewTodo mints a pending todo with a fresh id and creation time.
func NewTodo(text string) (Todo, error) {
	trimmed, err := NormalizeText(text)
	if err != nil {
		return Todo{}, err
	}
	return Todo{
		ID:        uuid.NewString(),
		Text:      trimmed,
		Completed: false,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}, nil
}

func (t Todo) MarshalJSON() ([]byte, error) {
	return json.Marshal(todoJSON{
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
		CreatedAt: t.CreatedAt.UTC().Format(TimeLayout),
	})
}

func (t *Todo) UnmarshalJSON(data []byte) error {
	var raw todoJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var createdAt time.Time
	if raw.CreatedAt != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw.CreatedAt)
		if err != nil {
			return fmt.Errorf("invalid createdAt %q: %w", raw.CreatedAt, err)
		}
		createdAt = parsed.UTC()
	}

	*t = Todo{
		ID:        raw.ID,
		Text:      raw.Text,
		Completed: raw.Completed,
		CreatedAt: createdAt,
	}
	return nil
}

// Todos is an ordered collection of todo records.
type Todos []Todo

// Index returns the position of the todo with the given id, or -1.
func (ts Todos) Index(id string) int {
	for i, t := range ts {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Active returns the todos that are not completed, preserving order.
func (ts Todos) Active() Todos {
	out := make(Todos, 0, len(ts))
	for _, t := range ts {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// Completed returns the completed todos, preserving order.
func (ts Todos) Completed() Todos {
	out := make(Todos, 0, len(ts))
	for _, t := range ts {
		if t.Completed {
			out = append(out, t)
		}
	}
	return out
}

func (ts Todos) Counts() (done, pending int) {
	for _, t := range ts {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return done, pending
}
