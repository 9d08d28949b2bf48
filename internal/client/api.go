package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jaekwang-park/todo-lite/internal/model"
)

// API is the server contract: whole-collection reads and writes only.
type API interface {
	List(ctx context.Context) ([]model.Todo, error)
	Create(ctx context.Context, text string) (model.Todo, error)
	ReplaceAll(ctx context.Context, todos []model.Todo) ([]model.Todo, error)
	ClearAll(ctx context.Context) error
}

// APIError is a non-2xx response decoded from the server's error body.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("unexpected status %d", e.Status)
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *HTTPClient) List(ctx context.Context) ([]model.Todo, error) {
	var todos []model.Todo
	if err := c.do(ctx, http.MethodGet, nil, &todos); err != nil {
		return nil, fmt.Errorf("failed to fetch todos: %w", err)
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	return todos, nil
}

func (c *HTTPClient) Create(ctx context.Context, text string) (model.Todo, error) {
	var todo model.Todo
	if err := c.do(ctx, http.MethodPost, map[string]string{"text": text}, &todo); err != nil {
		return model.Todo{}, fmt.Errorf("failed to add todo: %w", err)
	}
	return todo, nil
}

func (c *HTTPClient) ReplaceAll(ctx context.Context, todos []model.Todo) ([]model.Todo, error) {
	if todos == nil {
		todos = []model.Todo{}
	}

	var saved []model.Todo
	body := struct {
		Todos []model.Todo `json:"todos"`
	}{Todos: todos}
	if err := c.do(ctx, http.MethodPut, body, &saved); err != nil {
		return nil, fmt.Errorf("failed to save todos: %w", err)
	}
	if saved == nil {
		saved = []model.Todo{}
	}
	return saved, nil
}

func (c *HTTPClient) ClearAll(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, nil, nil); err != nil {
		return fmt.Errorf("failed to delete todos: %w", err)
	}
	return nil
}

func (c *HTTPClient) do(ctx context.Context, method string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/todos", body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var payload struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&payload); err == nil {
		apiErr.Code = payload.Error.Code
		apiErr.Message = payload.Error.Message
	}
	return apiErr
}

var _ API = (*HTTPClient)(nil)
