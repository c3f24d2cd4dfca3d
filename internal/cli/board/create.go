package board

import (
	"context"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/dragboard/internal/cli"
	"github.com/thenoetrevino/dragboard/internal/models"
)

// CreateCmd returns the board create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a board",
		Long: `Create a new, empty board.

Examples:
  dragboard board create --title="Sprint 12"

  # Print only the new board's ID
  dragboard board create --title="Sprint 12" --quiet
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			title, _ := cmd.Flags().GetString("title")
			return cli.Run(cmd, func(ctx context.Context, c *cli.CLI, f *cli.OutputFormatter) error {
				if strings.TrimSpace(title) == "" {
					return models.ErrEmptyTitle
				}
				board, err := c.App.Client.CreateBoard(ctx, strings.TrimSpace(title))
				if err != nil {
					return err
				}
				return f.Success(board)
			})
		},
	}

	cmd.Flags().String("title", "", "Board title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}

	cli.AddOutputFlags(cmd)
	return cmd
}
