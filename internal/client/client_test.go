package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Innocent9712/much-to-do/Server/TodoList/internal/client"
	"github.com/Innocent9712/much-to-do/Server/TodoList/internal/config"
	"github.com/Innocent9712/much-to-do/Server/TodoList/internal/server"
	"github.com/Innocent9712/much-to-do/Server/TodoList/internal/todo"
)

func newAPI(t *testing.T) *client.Client {
	t.Helper()
	t.Chdir(t.TempDir())
	cfg, err := config.Load(config.New(""))
	require.NoError(t, err)
	cfg.Server.Mode = "test"

	engine, err := server.NewEngine(cfg, server.NewStore(cfg))
	require.NoError(t, err)
	ts := httptest.NewServer(engine)
	t.Cleanup(ts.Close)

	return client.New(ts.URL+cfg.Server.BasePath, 0)
}

func TestClient_RoundTrip(t *testing.T) {
	c := newAPI(t)
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	todos, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, todos, 3)

	created, err := c.Create(ctx, "  Buy milk ")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", created.Text)

	got, err := c.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	done := true
	updated, err := c.Update(ctx, created.ID, todo.Patch{Completed: &done})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, "Buy milk", updated.Text)

	text := "Buy oat milk"
	updated, err = c.Update(ctx, created.ID, todo.Patch{Text: &text})
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", updated.Text)
	assert.True(t, updated.Completed)

	require.NoError(t, c.Delete(ctx, created.ID))
	err = c.Delete(ctx, created.ID)
	assert.True(t, client.IsNotFound(err))
}

func TestClient_APIErrors(t *testing.T) {
	c := newAPI(t)
	ctx := context.Background()

	_, err := c.Create(ctx, "   ")
	var ae *client.APIError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, http.StatusBadRequest, ae.Status)
	assert.Equal(t, "Text is required", ae.Message)

	_, err = c.Get(ctx, "missing")
	assert.True(t, client.IsNotFound(err))
	assert.Contains(t, err.Error(), "Todo not found")
}

func TestClient_PingFailures(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer ts.Close()

	err := client.New(ts.URL, 0).Ping(context.Background())
	var ae *client.APIError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, http.StatusBadGateway, ae.Status)
	assert.Equal(t, "boom", ae.Message)

	ts.Close()
	err = client.New(ts.URL, 0).Ping(context.Background())
	require.Error(t, err)
	assert.False(t, errors.As(err, &ae))
}

func TestClient_TodosURL(t *testing.T) {
	c := client.New("http://localhost:8888/.netlify/functions/", 0)
	assert.Equal(t, "http://localhost:8888/.netlify/functions/todos", c.TodosURL())
}
