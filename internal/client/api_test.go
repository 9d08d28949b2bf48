package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaekwang-park/todo-lite/internal/client"
	apphttp "github.com/jaekwang-park/todo-lite/internal/http"
	"github.com/jaekwang-park/todo-lite/internal/model"
	"github.com/jaekwang-park/todo-lite/internal/repository"
	"github.com/jaekwang-park/todo-lite/internal/service"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	repo := repository.NewFileTodo(t.TempDir() + "/todos.json")
	srv := httptest.NewServer(apphttp.NewRouter(service.NewTodoService(repo)))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPClient_RoundTrip(t *testing.T) {
	srv := newTestServer(t)
	api := client.NewHTTPClient(srv.URL+"/", 5*time.Second)
	ctx := context.Background()

	todos, err := api.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, todos)
	assert.Empty(t, todos)

	created, err := api.Create(ctx, "buy milk")
	require.NoError(t, err)
	assert.Equal(t, "buy milk", created.Text)
	assert.NotEmpty(t, created.ID)

	created.Completed = true
	saved, err := api.ReplaceAll(ctx, []model.Todo{created})
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.True(t, saved[0].Completed)

	todos, err = api.List(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.True(t, todos[0].CreatedAt.Equal(created.CreatedAt))

	require.NoError(t, api.ClearAll(ctx))
	todos, err = api.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestHTTPClient_ReplaceAllNil(t *testing.T) {
	srv := newTestServer(t)
	api := client.NewHTTPClient(srv.URL, 5*time.Second)

	saved, err := api.ReplaceAll(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, saved)
	assert.Empty(t, saved)
}

func TestHTTPClient_APIError(t *testing.T) {
	srv := newTestServer(t)
	api := client.NewHTTPClient(srv.URL, 5*time.Second)

	_, err := api.Create(context.Background(), "")

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "INVALID_INPUT", apiErr.Code)
	assert.Contains(t, apiErr.Message, "todo text is required")
}

func TestHTTPClient_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := client.NewHTTPClient(srv.URL, time.Second).ClearAll(context.Background())

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "unexpected status 502", apiErr.Error())
}

func TestManager_AgainstServer(t *testing.T) {
	srv := newTestServer(t)
	m := client.NewManager(client.NewHTTPClient(srv.URL, 5*time.Second), quietLogger())
	ctx := context.Background()

	require.NoError(t, m.Load(ctx))
	a, err := m.Add(ctx, "a")
	require.NoError(t, err)
	_, err = m.Add(ctx, "b")
	require.NoError(t, err)
	require.NoError(t, m.Toggle(ctx, a.ID))
	require.NoError(t, m.ClearCompleted(ctx))

	todos := m.Todos()
	require.Len(t, todos, 1)
	assert.Equal(t, "b", todos[0].Text)

	fresh := client.NewManager(client.NewHTTPClient(srv.URL, 5*time.Second), quietLogger())
	require.NoError(t, fresh.Load(ctx))
	assert.Equal(t, ids(todos), ids(fresh.Todos()))
}
