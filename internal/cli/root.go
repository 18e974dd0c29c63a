// Package cli wires the todolist commands.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Innocent9712/much-to-do/Server/TodoList/internal/config"
)

type App struct {
	ConfigPath string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "todolist",
		Short:        "Todo list API server and terminal client",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Serve the API and browser UI on :8888
  todolist serve

  # Serve under a different base path
  todolist serve --addr 127.0.0.1:9000 --base-path /api

  # Open the terminal UI against a running server
  todolist ui --api http://localhost:8888/.netlify/functions
`),
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("TODOLIST_CONFIG", ""), "Path to a config file (default: ./todolist.yaml if present)")

	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newUICmd(app))

	return cmd
}

// loadConfig reads the config with the given flags layered on top.
// binds maps config keys to flag names on cmd.
func (app *App) loadConfig(cmd *cobra.Command, binds map[string]string) (*config.Config, error) {
	v := config.New(app.ConfigPath)
	for key, name := range binds {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			return nil, fmt.Errorf("unknown flag %q", name)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, err
		}
	}
	return config.Load(v)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
