package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lmarchetti/cardflow/pkg/board"
)

// cardCommand creates the card manipulation command group.
func (c *CLI) cardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Add, resize, duplicate, and branch cards",
	}

	cmd.AddCommand(c.cardAddCommand())
	cmd.AddCommand(c.cardResizeCommand())
	cmd.AddCommand(c.cardDuplicateCommand())
	cmd.AddCommand(c.cardBranchCommand())

	return cmd
}

// cardAddCommand creates the "card add" subcommand.
func (c *CLI) cardAddCommand() *cobra.Command {
	var (
		title    string
		width    float64
		height   float64
		anchorID string
		free     bool
	)

	cmd := &cobra.Command{
		Use:   "add <board.json>",
		Short: "Add a card to a board",
		Long: `Add a card to a board.

By default the card is appended to the masonry grid: it lands at the bottom
of the shortest column. With --free (or --anchor) the card instead flows to
the right of an anchor card, dodging collisions downward.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBoard(args[0])
			if err != nil {
				return err
			}

			card := board.NewCard(title)
			card.Width = width
			card.Height = height

			var placed board.Card
			if free || anchorID != "" {
				placed = b.PlaceCard(card, anchorID)
			} else {
				placed = b.AddCard(card)
			}

			if err := saveBoard(b, args[0]); err != nil {
				return err
			}

			printSuccess("Added card %s", placed.ID)
			printDetail("position: %.0f, %.0f", placed.Position.X, placed.Position.Y)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "card title")
	cmd.Flags().Float64VarP(&width, "width", "W", 0, "card width (0 for default)")
	cmd.Flags().Float64VarP(&height, "height", "H", 0, "card height (0 for default)")
	cmd.Flags().StringVar(&anchorID, "anchor", "", "place to the right of this card id")
	cmd.Flags().BoolVar(&free, "free", false, "use free-flow placement instead of the grid")

	return cmd
}

// cardResizeCommand creates the "card resize" subcommand.
func (c *CLI) cardResizeCommand() *cobra.Command {
	var (
		width  float64
		height float64
	)

	cmd := &cobra.Command{
		Use:   "resize <board.json> <card-id>",
		Short: "Resize a card and rearrange the board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBoard(args[0])
			if err != nil {
				return err
			}

			if _, err := b.CardByID(args[1]); err != nil {
				printWarning("Card %s not found; board repacked anyway", args[1])
			}
			b.ResizeCard(args[1], width, height)

			if err := saveBoard(b, args[0]); err != nil {
				return err
			}

			printSuccess("Resized %s to %.0fx%.0f", args[1], width, height)
			return nil
		},
	}

	cmd.Flags().Float64VarP(&width, "width", "W", 0, "new width (0 for default)")
	cmd.Flags().Float64VarP(&height, "height", "H", 0, "new height (0 for default)")

	return cmd
}

// cardDuplicateCommand creates the "card duplicate" subcommand.
func (c *CLI) cardDuplicateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate <board.json> <card-id>",
		Short: "Duplicate a card next to its source",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBoard(args[0])
			if err != nil {
				return err
			}

			dup, err := b.DuplicateCard(args[1])
			if err != nil {
				return fmt.Errorf("duplicate card: %w", err)
			}

			if err := saveBoard(b, args[0]); err != nil {
				return err
			}

			printSuccess("Duplicated %s as %s", args[1], dup.ID)
			printDetail("position: %.0f, %.0f", dup.Position.X, dup.Position.Y)
			return nil
		},
	}
}

// cardBranchCommand creates the "card branch" subcommand.
func (c *CLI) cardBranchCommand() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "branch <board.json> <card-id>",
		Short: "Branch a card into a linked follow-up",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBoard(args[0])
			if err != nil {
				return err
			}

			branch, err := b.BranchCard(args[1], title)
			if err != nil {
				return fmt.Errorf("branch card: %w", err)
			}

			if err := saveBoard(b, args[0]); err != nil {
				return err
			}

			printSuccess("Branched %s as %s", args[1], branch.ID)
			printDetail("position: %.0f, %.0f", branch.Position.X, branch.Position.Y)
			printNewline()
			printNextStep("See the lineage", "cardflow lineage "+args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "branch card title")

	return cmd
}
