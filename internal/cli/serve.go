package cli

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"feedlog-cli/internal/server"

	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string
	var dbPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the records server",
		Long: strings.TrimSpace(`
Run the HTTP server the CLI and TUI talk to.

Records are kept in a local SQLite file given with --db. Without --db the
server holds records in memory only and loses them on exit.
`),
		Example: strings.TrimSpace(`
# Serve on the default port with a database file
feedlog serve --db feedlog.db

# Ephemeral in-memory server for a quick try
feedlog serve --addr 127.0.0.1:5000
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			listenAddr := strings.TrimSpace(addr)
			if listenAddr == "" {
				return writeErr(cmd, errors.New("serve: missing --addr"))
			}

			repo := server.NewMemoryRepo()
			if p := strings.TrimSpace(dbPath); p != "" {
				r, db, err := server.OpenSQLite(cmd.Context(), p)
				if err != nil {
					return writeErr(cmd, err)
				}
				defer db.Close()
				repo = r
			}

			ln, err := net.Listen("tcp", listenAddr)
			if err != nil {
				return writeErr(cmd, err)
			}

			actualAddr := ln.Addr().String()
			url := "http://" + actualAddr + "/"

			_ = writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"addr":      actualAddr,
					"url":       url,
					"db":        strings.TrimSpace(dbPath),
					"startedAt": time.Now().UTC().Format(time.RFC3339Nano),
				},
			})

			fmt.Fprintf(cmd.ErrOrStderr(), "feedlog server running at %s\n", url)

			return http.Serve(ln, server.New(repo))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", envOr("FEEDLOG_ADDR", ":5000"), "Bind address (host:port or :port)")
	cmd.Flags().StringVar(&dbPath, "db", envOr("FEEDLOG_DB", ""), "Path to the SQLite database file (empty: in-memory)")
	return cmd
}
