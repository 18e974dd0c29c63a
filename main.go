package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Innocent9712/much-to-do/Server/TodoList/internal/cli"
)

// @title TodoList API
// @version 1.0
// @description In-memory todo list CRUD API.
// @BasePath /.netlify/functions
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
