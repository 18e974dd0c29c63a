package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Innocent9712/much-to-do/Server/TodoList/internal/config"
	"github.com/Innocent9712/much-to-do/Server/TodoList/internal/todo"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Chdir(t.TempDir())
	cfg, err := config.Load(config.New(""))
	require.NoError(t, err)
	cfg.Server.Mode = "test"
	return cfg
}

func newTestServer(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	r, err := NewEngine(cfg, NewStore(cfg))
	require.NoError(t, err)
	return r
}

func send(h http.Handler, method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestScenario_BuyMilk(t *testing.T) {
	h := newTestServer(t, testConfig(t))
	base := "/.netlify/functions/todos"

	w := send(h, http.MethodPost, base, `{"text":"Buy milk"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var created todo.Todo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Buy milk", created.Text)
	assert.False(t, created.Completed)
	require.NotNil(t, created.CreatedAt)

	w = send(h, http.MethodGet, base+"/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched todo.Todo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created, fetched)

	w = send(h, http.MethodPut, base+"/"+created.ID, `{"completed":true}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var updated todo.Todo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.True(t, updated.Completed)
	assert.Equal(t, "Buy milk", updated.Text)
	assert.NotNil(t, updated.UpdatedAt)

	w = send(h, http.MethodDelete, base+"/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Todo deleted"}`, w.Body.String())

	w = send(h, http.MethodGet, base+"/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Todo not found"}`, w.Body.String())
}

func TestEngine_HeadersOnEveryAPIResponse(t *testing.T) {
	h := newTestServer(t, testConfig(t))

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/.netlify/functions/todos", ""},
		{http.MethodPost, "/.netlify/functions/todos", `{"text":""}`},
		{http.MethodGet, "/.netlify/functions/todos/zzz", ""},
		{http.MethodGet, "/.netlify/functions/unknown", ""},
		{http.MethodOptions, "/.netlify/functions/todos/1", ""},
	} {
		w := send(h, tc.method, tc.path, tc.body, nil)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"), "%s %s", tc.method, tc.path)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
	}
}

func TestEngine_PreflightWithOrigin(t *testing.T) {
	h := newTestServer(t, testConfig(t))

	w := send(h, http.MethodOptions, "/.netlify/functions/todos", "", map[string]string{
		"Origin":                        "https://example.org",
		"Access-Control-Request-Method": "PUT",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestEngine_RestrictedOrigins(t *testing.T) {
	cfg := testConfig(t)
	cfg.CORS.AllowOrigins = []string{"https://todo.example.com"}
	h := newTestServer(t, cfg)

	w := send(h, http.MethodGet, "/.netlify/functions/todos", "", map[string]string{"Origin": "https://todo.example.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://todo.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = send(h, http.MethodGet, "/.netlify/functions/todos", "", map[string]string{"Origin": "https://evil.example.net"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Origin not allowed"}`, w.Body.String())

	w = send(h, http.MethodOptions, "/.netlify/functions/todos", "", map[string]string{
		"Origin":                        "https://evil.example.net",
		"Access-Control-Request-Method": "DELETE",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.JSONEq(t, `{"error":"Origin not allowed"}`, w.Body.String())

	w = send(h, http.MethodGet, "/.netlify/functions/todos", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))

	w = send(h, http.MethodGet, "/static/style.css", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/css")
}

func TestEngine_InvalidOriginConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.CORS.AllowOrigins = []string{"not a url"}
	_, err := NewEngine(cfg, NewStore(cfg))
	assert.Error(t, err)
}

func TestEngine_CustomBasePath(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.BasePath = "/api"
	h := newTestServer(t, cfg)

	assert.Equal(t, http.StatusOK, send(h, http.MethodGet, "/api/todos", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, send(h, http.MethodGet, "/.netlify/functions/todos", "", nil).Code)
}

func TestEngine_HealthAndUI(t *testing.T) {
	h := newTestServer(t, testConfig(t))

	w := send(h, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = send(h, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), `id="todoList"`)

	w = send(h, http.MethodGet, "/config.js", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"basePath":"/.netlify/functions"`)

	w = send(h, http.MethodGet, "/static/script.js", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "escapeHtml")
}

func TestEngine_ConfigScriptFollowsBasePath(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.Addr = "127.0.0.1:9000"
	cfg.Server.BasePath = "/api"
	h := newTestServer(t, cfg)

	w := send(h, http.MethodGet, "/config.js", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"apiBase":"http://example.com/api"`)
	assert.Contains(t, body, `"localBaseURL":"http://127.0.0.1:9000/api"`)
	assert.NotContains(t, body, "/.netlify/functions")

	assert.Equal(t, http.StatusOK, send(h, http.MethodGet, "/api/todos", "", nil).Code)
}

func TestEngine_Swagger(t *testing.T) {
	cfg := testConfig(t)
	h := newTestServer(t, cfg)
	assert.Equal(t, http.StatusOK, send(h, http.MethodGet, "/swagger/doc.json", "", nil).Code)

	cfg.Server.Swagger = false
	h = newTestServer(t, cfg)
	assert.Equal(t, http.StatusNotFound, send(h, http.MethodGet, "/swagger/doc.json", "", nil).Code)
}

func TestNewStore(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	cfg.Store.IDStrategy = "sequence"
	st := NewStore(cfg)
	todos, _ := st.List(ctx)
	assert.Len(t, todos, 3)
	created, err := st.Create(ctx, "next")
	require.NoError(t, err)
	assert.Equal(t, "4", created.ID)

	cfg.Store.Seed = false
	st = NewStore(cfg)
	todos, _ = st.List(ctx)
	assert.Empty(t, todos)
	created, _ = st.Create(ctx, "first")
	assert.Equal(t, "1", created.ID)
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	cfg := testConfig(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	cfg.Server.Addr = ln.Addr().String()
	require.NoError(t, ln.Close())

	h := newTestServer(t, cfg)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, cfg, h) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + cfg.Server.Addr + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}
