package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/dragboard/internal/backend"
	"github.com/thenoetrevino/dragboard/internal/user"
)

const defaultTokenTTL = 30 * 24 * time.Hour

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an API token for a local boardd",
		Long: `Sign a bearer token that boardd accepts. The secret must match the
BOARDD_JWT_SECRET the daemon runs with; the subject owns the boards
created with the token and defaults to your login name.

Examples:
  export DRAGBOARD_TOKEN=$(dragboard token)
  dragboard token --secret=dev --subject=ci --ttl=1h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, _ := cmd.Flags().GetString("secret")
			subject, _ := cmd.Flags().GetString("subject")
			ttl, _ := cmd.Flags().GetDuration("ttl")
			if secret == "" {
				secret = os.Getenv(backend.EnvJWTSecret)
			}

			auth, err := backend.NewAuth(secret)
			if err != nil {
				return fmt.Errorf("%w (pass --secret or set %s)", err, backend.EnvJWTSecret)
			}
			token, err := auth.Mint(subject, ttl)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}

	cmd.Flags().String("secret", "", "Signing secret (defaults to $"+backend.EnvJWTSecret+")")
	cmd.Flags().String("subject", user.DefaultSubject(), "Token subject, the board owner")
	cmd.Flags().Duration("ttl", defaultTokenTTL, "Token lifetime")
	return cmd
}
