// Package web serves the browser controller: the page, its assets and the
// API base URL settings it reads at load time.
package web

import (
	"embed"
	"encoding/json"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Innocent9712/much-to-do/Server/TodoList/internal/config"
)

//go:embed static/*.html static/*.js static/*.css
var assetsFS embed.FS

// ClientSettings is what /config.js hands to the browser controller.
// APIBase is resolved for the origin the page was requested from.
type ClientSettings struct {
	APIBase            string `json:"apiBase"`
	DeployedHostMarker string `json:"deployedHostMarker"`
	BasePath           string `json:"basePath"`
	LocalBaseURL       string `json:"localBaseURL"`
}

// SettingsFrom extracts the browser-facing part of cfg for a page loaded
// from origin.
func SettingsFrom(cfg *config.Config, origin string) ClientSettings {
	return ClientSettings{
		APIBase:            cfg.ResolveAPIBase(origin),
		DeployedHostMarker: cfg.Client.DeployedHostMarker,
		BasePath:           cfg.Server.BasePath,
		LocalBaseURL:       cfg.LocalAPIBase(),
	}
}

// Register mounts /, /config.js and /static/* on r.
func Register(r gin.IRoutes, cfg *config.Config) error {
	static, err := fs.Sub(assetsFS, "static")
	if err != nil {
		return err
	}
	index, err := assetsFS.ReadFile("static/index.html")
	if err != nil {
		return err
	}

	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	})
	r.GET("/config.js", func(c *gin.Context) {
		js, err := configScript(SettingsFrom(cfg, requestOrigin(c.Request)))
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Header("Cache-Control", "no-store")
		c.Data(http.StatusOK, "application/javascript; charset=utf-8", js)
	})
	r.StaticFS("/static", http.FS(static))
	return nil
}

// requestOrigin is scheme://host as the browser saw it.
func requestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if p := r.Header.Get("X-Forwarded-Proto"); p == "http" || p == "https" {
		scheme = p
	}
	host := r.Header.Get("X-Forwarded-Host")
	if host == "" {
		host = r.Host
	}
	if host == "" {
		return ""
	}
	return scheme + "://" + host
}

func configScript(settings ClientSettings) ([]byte, error) {
	b, err := json.Marshal(settings)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(b)+32)
	out = append(out, "window.TODO_CONFIG = "...)
	out = append(out, b...)
	out = append(out, ";\n"...)
	return out, nil
}
