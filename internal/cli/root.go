package cli

import (
	"fmt"
	"os"
	"strings"

	"feedlog-cli/internal/api"
	"feedlog-cli/internal/format"
	"feedlog-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Server     string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "feedlog",
		Short:        "Pet feeding log CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  feedlog

  # Scriptable commands
  feedlog records list
  feedlog records add --date 2024-01-15 --time 08:30 --weight 250 --animal cat

  # Run the bundled records server
  feedlog serve --db feedlog.db
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Server, "server", envOr("FEEDLOG_SERVER", "http://localhost:5000"), "Base URL of the records server")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("FEEDLOG_FORMAT", "json"), "Output format (json)")

	cmd.AddCommand(newRecordsCmd(app))
	cmd.AddCommand(newServeCmd(app))

	return cmd
}

func runTUI(app *App) error {
	client, err := newClient(app)
	if err != nil {
		return err
	}
	return tui.Run(client)
}

func newClient(app *App) (*api.Client, error) {
	return api.New(app.Server, api.DefaultTimeout)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
