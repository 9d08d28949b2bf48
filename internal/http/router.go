package http

import (
	"net/http"

	"github.com/jaekwang-park/todo-lite/internal/http/handler"
	"github.com/jaekwang-park/todo-lite/internal/service"
)

func NewRouter(todoSvc *service.TodoService) http.Handler {
	mux := http.NewServeMux()

	health := handler.NewHealthHandler()
	mux.Handle("/health", health)

	// Whole-collection API, also served under the /api prefix.
	todoHandler := handler.NewTodoHandler(todoSvc)
	mux.Handle("/todos", todoHandler)
	mux.Handle("/api/todos", todoHandler)

	return mux
}
