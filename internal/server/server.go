// Package server assembles the gin engine and runs it.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Innocent9712/much-to-do/Server/TodoList/docs"
	"github.com/Innocent9712/much-to-do/Server/TodoList/internal/config"
	"github.com/Innocent9712/much-to-do/Server/TodoList/internal/handler"
	"github.com/Innocent9712/much-to-do/Server/TodoList/internal/store"
	"github.com/Innocent9712/much-to-do/Server/TodoList/internal/todo"
	"github.com/Innocent9712/much-to-do/Server/TodoList/internal/web"
)

// NewEngine builds the HTTP surface over st.
func NewEngine(cfg *config.Config, st todo.Store) (*gin.Engine, error) {
	gin.SetMode(ginMode(cfg.Server.Mode))

	r := gin.New()
	r.RedirectTrailingSlash = false
	r.HandleMethodNotAllowed = false

	corsCfg := corsConfig(cfg.CORS.AllowOrigins)
	if err := corsCfg.Validate(); err != nil {
		return nil, fmt.Errorf("cors: %w", err)
	}
	allowOrigin := ""
	if corsCfg.AllowAllOrigins {
		allowOrigin = "*"
	}
	policy := handler.OriginPolicy(cors.New(corsCfg))
	r.Use(
		gin.Logger(),
		gin.Recovery(),
		handler.CORSHeaders(allowOrigin),
		handler.Preflight(policy),
		policy,
	)
	r.NoRoute(handler.RouteNotFound)

	r.GET("/health", handler.Health)

	api := r.Group(cfg.Server.BasePath)
	api.Use(handler.JSONContentType())
	handler.NewTodos(st).Register(api)

	if cfg.Server.Swagger {
		docs.SwaggerInfo.BasePath = basePathOrRoot(cfg.Server.BasePath)
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	if err := web.Register(r, cfg); err != nil {
		return nil, fmt.Errorf("register web ui: %w", err)
	}
	return r, nil
}

// NewStore builds the in-memory store described by cfg.
func NewStore(cfg *config.Config) todo.Store {
	var seed []todo.Todo
	if cfg.Store.Seed {
		seed = store.SeedTodos()
	}
	return store.NewMemory(
		store.WithSeed(seed),
		store.WithIDGenerator(todo.NewIDGenerator(cfg.Store.IDStrategy, len(seed))),
	)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg *config.Config, h http.Handler) error {
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server running on %s (api base %q)", cfg.Server.Addr, basePathOrRoot(cfg.Server.BasePath))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	log.Println("Shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{OptionsResponseStatusCode: http.StatusOK}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

func ginMode(mode string) string {
	switch mode {
	case gin.DebugMode, gin.TestMode:
		return mode
	default:
		return gin.ReleaseMode
	}
}

func basePathOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
