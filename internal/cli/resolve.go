package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jaekwang-park/todo-lite/internal/client"
	"github.com/jaekwang-park/todo-lite/internal/model"
)

var (
	ErrNoMatch   = errors.New("no todo matches")
	ErrAmbiguous = errors.New("ambiguous todo id")
)

const shortIDLen = 8

// resolveID finds the todo whose id equals ref or starts with it. A prefix
// must match exactly one todo.
func resolveID(todos model.Todos, ref string) (model.Todo, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Todo{}, fmt.Errorf("%w %q", ErrNoMatch, ref)
	}
	if i := todos.Index(ref); i >= 0 {
		return todos[i], nil
	}

	var matches model.Todos
	for _, t := range todos {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return model.Todo{}, fmt.Errorf("%w %q", ErrNoMatch, ref)
	case 1:
		return matches[0], nil
	default:
		return model.Todo{}, fmt.Errorf("%w %q: %d todos share this prefix", ErrAmbiguous, ref, len(matches))
	}
}

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

func patchText(text string) client.Patch {
	return client.Patch{Text: &text}
}
