package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/jaekwang-park/todo-lite/internal/middleware"
	"github.com/jaekwang-park/todo-lite/internal/model"
	"github.com/jaekwang-park/todo-lite/internal/service"
)

const maxBodyBytes = 1 << 20

type TodoHandler struct {
	svc *service.TodoService
}

func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// ServeHTTP serves the todo collection. All mutation goes through whole-collection
// replacement; there are no per-id routes.
func (h *TodoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	case http.MethodPut:
		h.handleReplaceAll(w, r)
	case http.MethodDelete:
		h.handleClearAll(w, r)
	default:
		WriteMethodNotAllowed(w, http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete)
	}
}

func (h *TodoHandler) handleList(w http.ResponseWriter, r *http.Request) {
	todos, err := h.svc.List(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, todos)
}

type createTodoRequest struct {
	Text *string `json:"text"`
}

func (h *TodoHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	text := ""
	if req.Text != nil {
		text = *req.Text
	}

	todo, err := h.svc.Create(r.Context(), text)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, todo)
}

type replaceTodosRequest struct {
	Todos []model.Todo `json:"todos"`
}

func (h *TodoHandler) handleReplaceAll(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid request body")
		return
	}
	if err := replaceTodosSchema.Validate(doc); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid todos payload: "+schemaErrorMessage(err))
		return
	}

	var req replaceTodosRequest
	if err := json.Unmarshal(body, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}
	if req.Todos == nil {
		req.Todos = []model.Todo{}
	}

	saved, err := h.svc.ReplaceAll(r.Context(), req.Todos)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, saved)
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *TodoHandler) handleClearAll(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearAll(r.Context()); err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, messageResponse{Message: "All todos deleted"})
}

func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error())
	default:
		slog.ErrorContext(r.Context(), "todo request failed",
			"error", err,
			"method", r.Method,
			"request_id", middleware.GetRequestID(r),
		)
		WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
