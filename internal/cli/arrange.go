package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// arrangeCommand creates the arrange command for repacking a board.
func (c *CLI) arrangeCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "arrange <board.json>",
		Short: "Repack a board into masonry columns",
		Long: `Repack a board into masonry columns.

Cards are packed in creation order, each into the currently shortest column.
Cards wider than a column push their right-hand neighbors out of the way,
and the shove cascades as long as the displaced cards overlap vertically.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runArrange(cmd.Context(), args[0], output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: rewrite input)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runArrange loads the board, computes the layout, and writes it back.
func (c *CLI) runArrange(ctx context.Context, input, output string, noCache bool) error {
	b, err := loadBoard(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Arranging cards...")
	spinner.Start()

	arranged, cacheHit, err := runner.Arrange(ctx, b.Geometry())
	if err != nil {
		spinner.StopWithError("Arrange failed")
		return fmt.Errorf("arrange board: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	b.ApplyGeometry(arranged)

	outputPath := output
	if outputPath == "" {
		outputPath = input
	}
	if err := saveBoard(b, outputPath); err != nil {
		return err
	}

	printSuccess("Arrange complete")
	printFile(outputPath)
	printStats(len(b.Cards), cacheHit)
	printNewline()
	printNextStep("Render", "cardflow render "+outputPath)

	return nil
}

// nextCommand creates the next command, printing where a new card would land.
func (c *CLI) nextCommand() *cobra.Command {
	var anchorID string

	cmd := &cobra.Command{
		Use:   "next <board.json>",
		Short: "Print the position the next card would occupy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBoard(args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(true)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			var pos = runner.NextPosition(cmd.Context(), b.Geometry())
			if anchorID != "" {
				pos = runner.Place(cmd.Context(), b.Geometry(), anchorID)
			}

			fmt.Printf("%.0f %.0f\n", pos.X, pos.Y)
			return nil
		},
	}

	cmd.Flags().StringVar(&anchorID, "anchor", "", "free-flow position relative to this card id")

	return cmd
}
