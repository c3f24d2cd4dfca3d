package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/dragboard/internal/backend"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the board API in the foreground",
		Long: `Serve the board API backed by a local SQLite database, the same
server the boardd binary runs. Flags override the BOARDD_* environment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := backend.DaemonConfigFromEnv()
			if secret, _ := cmd.Flags().GetString("secret"); secret != "" {
				cfg.Secret = secret
				if errors.Is(err, backend.ErrNoSecret) {
					err = nil
				}
			}
			if err != nil {
				return err
			}
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.Addr = addr
			}
			if db, _ := cmd.Flags().GetString("db"); db != "" {
				cfg.DBPath = db
			}

			ctx, cancel := signal.NotifyContext(
				context.Background(),
				os.Interrupt,
				syscall.SIGTERM,
			)
			defer cancel()

			return backend.Run(ctx, cfg, slog.New(slog.NewJSONHandler(os.Stderr, nil)))
		},
	}

	cmd.Flags().String("addr", "", "Listen address (defaults to $"+backend.EnvAddr+" or 127.0.0.1:8080)")
	cmd.Flags().String("db", "", "SQLite database path (defaults to $"+backend.EnvDB+")")
	cmd.Flags().String("secret", "", "Token signing secret (defaults to $"+backend.EnvJWTSecret+")")
	return cmd
}
