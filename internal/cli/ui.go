package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Innocent9712/much-to-do/Server/TodoList/internal/client"
	"github.com/Innocent9712/much-to-do/Server/TodoList/internal/ui"
)

func newUICmd(app *App) *cobra.Command {
	var (
		apiBase string
		filter  string
		noColor bool
		logFile string
	)

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Manage todos from the terminal",
		Example: strings.TrimSpace(`
# Talk to a local server
todolist ui

# Start on the completed tab without colors
todolist ui --filter completed --no-color
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ui.ParseFilter(filter)
			if err != nil {
				return err
			}
			cfg, err := app.loadConfig(cmd, map[string]string{
				"client.timeout": "timeout",
			})
			if err != nil {
				return err
			}

			base := strings.TrimSpace(apiBase)
			if base == "" {
				base = cfg.LocalAPIBase()
			}
			api := client.New(base, cfg.Client.Timeout)

			return ui.Run(cmd.Context(), api, ui.RunOptions{
				Filter:   f,
				Endpoint: api.TodosURL(),
				NoColor:  noColor || envOr("NO_COLOR", "") != "",
				LogFile:  logFile,
			})
		},
	}

	cmd.Flags().StringVar(&apiBase, "api", envOr("TODOLIST_API", ""), "API base URL (default: client.local_base_url, else the serve address)")
	cmd.Flags().StringVar(&filter, "filter", "all", "Initial filter (all|active|completed)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colors")
	cmd.Flags().StringVar(&logFile, "log-file", "todolist-ui.log", "Where to log request failures (empty to disable)")
	cmd.Flags().Duration("timeout", 0, "Per-request timeout (0 = none)")

	return cmd
}
