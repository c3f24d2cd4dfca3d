package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/dragboard/internal/cli"
	"github.com/thenoetrevino/dragboard/internal/cli/board"
	"github.com/thenoetrevino/dragboard/internal/cli/card"
	"github.com/thenoetrevino/dragboard/internal/cli/list"
	"github.com/thenoetrevino/dragboard/internal/launcher"
)

var rootCmd = &cobra.Command{
	Use:   "dragboard",
	Short: "Dragboard - a terminal kanban board with drag and drop",
	Long: `Dragboard is a terminal kanban board. Cards and lists are reordered
by dragging them with the mouse; every change shows immediately and is saved
to the board API in the background.

Run without a subcommand to open the default board.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return launcher.Launch("")
	},
}

func init() {
	rootCmd.AddCommand(openCmd())
	rootCmd.AddCommand(board.BoardCmd())
	rootCmd.AddCommand(list.ListCmd())
	rootCmd.AddCommand(card.CardCmd())
	rootCmd.AddCommand(tokenCmd())
	rootCmd.AddCommand(serveCmd())
}

// Execute runs the root command and returns the process exit code
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return cli.ExitSuccess
	}

	var reported *cli.ReportedError
	if !errors.As(err, &reported) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return cli.ExitCodeFor(err)
}

func openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open [board-id]",
		Short: "Open a board in the terminal UI",
		Long: `Open a board full screen. Drag cards and lists with the mouse,
or use the keyboard to create, rename and delete them.

The board is taken from the argument, DRAGBOARD_BOARD, or api.board in the
config file, in that order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var boardArg string
			if len(args) == 1 {
				boardArg = args[0]
			}
			return launcher.Launch(boardArg)
		},
	}
}
