package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Innocent9712/much-to-do/Server/TodoList/internal/server"
)

func newServeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the todo API and browser UI",
		Long: strings.TrimSpace(`
Run the todo API with an in-memory collection.

The collection lives only as long as the process. The browser UI is served
at / and the API under the configured base path (default /.netlify/functions).
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd, map[string]string{
				"server.addr":       "addr",
				"server.base_path":  "base-path",
				"server.mode":       "mode",
				"store.seed":        "seed",
				"store.id_strategy": "id-strategy",
			})
			if err != nil {
				return err
			}

			engine, err := server.NewEngine(cfg, server.NewStore(cfg))
			if err != nil {
				return err
			}
			return server.Run(cmd.Context(), cfg, engine)
		},
	}

	cmd.Flags().String("addr", ":8888", "Listen address")
	cmd.Flags().String("base-path", "/.netlify/functions", "Path prefix for the API routes")
	cmd.Flags().String("mode", "release", "gin mode (debug|release|test)")
	cmd.Flags().Bool("seed", true, "Start with the three sample todos")
	cmd.Flags().String("id-strategy", "uuid", "Identifier strategy for new todos (uuid|sequence)")

	return cmd
}
