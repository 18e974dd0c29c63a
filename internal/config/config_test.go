package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(New(""))
	require.NoError(t, err)

	assert.Equal(t, ":8888", cfg.Server.Addr)
	assert.Equal(t, "/.netlify/functions", cfg.Server.BasePath)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.True(t, cfg.Server.Swagger)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.True(t, cfg.Store.Seed)
	assert.Equal(t, "uuid", cfg.Store.IDStrategy)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, "netlify", cfg.Client.DeployedHostMarker)
	assert.Empty(t, cfg.Client.LocalBaseURL)
	assert.Equal(t, "http://localhost:8888/.netlify/functions", cfg.LocalAPIBase())
	assert.Zero(t, cfg.Client.Timeout)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "todolist.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9000"
  base_path: "api/"
store:
  seed: false
  id_strategy: Sequence
cors:
  allow_origins: ["https://todo.example.com", " "]
client:
  timeout: 3s
`), 0o644))

	t.Setenv("TODOLIST_SERVER_MODE", "DEBUG")

	cfg, err := Load(New(path))
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "/api", cfg.Server.BasePath)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.False(t, cfg.Store.Seed)
	assert.Equal(t, "sequence", cfg.Store.IDStrategy)
	assert.Equal(t, []string{"https://todo.example.com"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, 3*time.Second, cfg.Client.Timeout)
	assert.Equal(t, "http://localhost:9000/api", cfg.LocalAPIBase())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(New(filepath.Join(t.TempDir(), "nope.yaml")))
	assert.Error(t, err)
}

func TestNormalizeBasePath(t *testing.T) {
	assert.Equal(t, "", NormalizeBasePath(""))
	assert.Equal(t, "", NormalizeBasePath("/"))
	assert.Equal(t, "/api", NormalizeBasePath("api"))
	assert.Equal(t, "/.netlify/functions", NormalizeBasePath("/.netlify/functions/"))
}

func TestResolveAPIBase(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load(New(""))
	require.NoError(t, err)

	assert.Equal(t, "https://my-todos.netlify.app/.netlify/functions", cfg.ResolveAPIBase("https://my-todos.netlify.app"))
	assert.Equal(t, "http://127.0.0.1:3000/.netlify/functions", cfg.ResolveAPIBase("http://127.0.0.1:3000/"))
	assert.Equal(t, "http://localhost:8888/.netlify/functions", cfg.ResolveAPIBase(""))

	cfg.Client.LocalBaseURL = "http://localhost:8888/.netlify/functions"
	assert.Equal(t, "http://localhost:8888/.netlify/functions", cfg.ResolveAPIBase("http://127.0.0.1:3000"))

	cfg.Client.DeployedHostMarker = ""
	assert.Equal(t, cfg.Client.LocalBaseURL, cfg.ResolveAPIBase("https://my-todos.netlify.app"))
}

func TestLocalAPIBase(t *testing.T) {
	cases := []struct{ addr, base, want string }{
		{":8888", "/.netlify/functions", "http://localhost:8888/.netlify/functions"},
		{"127.0.0.1:9000", "/api", "http://127.0.0.1:9000/api"},
		{"0.0.0.0:80", "", "http://localhost:80"},
		{"[::]:8080", "/v1", "http://localhost:8080/v1"},
		{"[::1]:8080", "/v1", "http://[::1]:8080/v1"},
	}
	for _, tc := range cases {
		cfg := &Config{Server: ServerConfig{Addr: tc.addr, BasePath: tc.base}}
		assert.Equal(t, tc.want, cfg.LocalAPIBase(), tc.addr)
	}

	cfg := &Config{Client: ClientConfig{LocalBaseURL: "http://dev.local/api"}}
	assert.Equal(t, "http://dev.local/api", cfg.LocalAPIBase())
}

func TestTodosURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8888/.netlify/functions/todos", TodosURL("http://localhost:8888/.netlify/functions/"))
}
