package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lmarchetti/cardflow/pkg/board"
)

// boardCommand creates the board management command group.
func (c *CLI) boardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Create and inspect board files",
	}

	cmd.AddCommand(c.boardNewCommand())
	cmd.AddCommand(c.boardShowCommand())

	return cmd
}

// boardNewCommand creates the "board new" subcommand.
func (c *CLI) boardNewCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "new <board.json>",
		Short: "Create an empty board file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b := board.NewBoard(name)
			if err := board.WriteBoardFile(b, args[0]); err != nil {
				return fmt.Errorf("write board %s: %w", args[0], err)
			}

			printSuccess("Created board %s", b.ID)
			printFile(args[0])
			printNewline()
			printNextStep("Add a card", "cardflow card add "+args[0]+" --title \"First card\"")
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "board display name")

	return cmd
}

// boardShowCommand creates the "board show" subcommand.
func (c *CLI) boardShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <board.json>",
		Short: "Print a summary of a board file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := board.ReadBoardFile(args[0])
			if err != nil {
				return fmt.Errorf("load board %s: %w", args[0], err)
			}

			name := b.Name
			if name == "" {
				name = "(unnamed)"
			}
			printInfo("%s", StyleTitle.Render(name))
			printDetail("id: %s", b.ID)
			printDetail("cards: %d", len(b.Cards))

			for _, card := range b.Cards {
				title := card.Title
				if title == "" {
					title = card.ID
				}
				line := fmt.Sprintf("%-30s %8.0f,%-8.0f %4.0fx%-4.0f",
					title, card.Position.X, card.Position.Y,
					card.Geometry().EffectiveWidth(), card.Geometry().EffectiveHeight())
				if card.Kind == board.KindBranch {
					line += "  " + StyleWarning.Render("branch")
				}
				printDetail("%s", line)
			}
			return nil
		},
	}
}

// loadBoard reads and validates a board file, with a uniform error message.
func loadBoard(path string) (*board.Board, error) {
	b, err := board.ReadBoardFile(path)
	if err != nil {
		return nil, fmt.Errorf("load board %s: %w", path, err)
	}
	return b, nil
}

// saveBoard writes a board file, with a uniform error message.
func saveBoard(b *board.Board, path string) error {
	if err := board.WriteBoardFile(b, path); err != nil {
		return fmt.Errorf("write board %s: %w", path, err)
	}
	return nil
}
