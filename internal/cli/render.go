package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lmarchetti/cardflow/pkg/render"
)

// renderCommand creates the render command for producing board SVGs.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		titles     bool
		background string
	)

	cmd := &cobra.Command{
		Use:   "render <board.json>",
		Short: "Render a board as SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBoard(args[0])
			if err != nil {
				return err
			}

			var opts []render.SVGOption
			if titles {
				opts = append(opts, render.WithTitles())
			}
			if background != "" {
				opts = append(opts, render.WithBackground(background))
			}

			outputPath := output
			if outputPath == "" {
				outputPath = replaceExt(args[0], ".svg")
			}

			if err := os.WriteFile(outputPath, render.BoardSVG(b, opts...), 0644); err != nil {
				return fmt.Errorf("write output %s: %w", outputPath, err)
			}

			printSuccess("Render complete")
			printFile(outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.svg)")
	cmd.Flags().BoolVar(&titles, "titles", true, "draw card titles")
	cmd.Flags().StringVar(&background, "background", "", "canvas background color")

	return cmd
}

// lineageCommand creates the lineage command for duplicate/branch diagrams.
func (c *CLI) lineageCommand() *cobra.Command {
	var (
		output   string
		format   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "lineage <board.json>",
		Short: "Render the duplicate and branch lineage of a board",
		Long: `Render the duplicate and branch lineage of a board.

Every card is a node; every card created by duplicate or branch gets an edge
from its source. The output is a Graphviz diagram, either as raw DOT or
rendered to SVG.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBoard(args[0])
			if err != nil {
				return err
			}

			opts := render.LineageOptions{Detailed: detailed}

			switch format {
			case "dot":
				outputPath := output
				if outputPath == "" {
					outputPath = replaceExt(args[0], ".dot")
				}
				dot := render.LineageDOT(b, opts)
				if err := os.WriteFile(outputPath, []byte(dot), 0644); err != nil {
					return fmt.Errorf("write output %s: %w", outputPath, err)
				}
				printSuccess("Lineage complete")
				printFile(outputPath)
				return nil

			case "svg":
				spinner := newSpinnerWithContext(cmd.Context(), "Rendering lineage...")
				spinner.Start()
				svg, err := render.LineageSVG(b, opts)
				if err != nil {
					spinner.StopWithError("Lineage render failed")
					return fmt.Errorf("render lineage: %w", err)
				}
				spinner.Stop()

				outputPath := output
				if outputPath == "" {
					outputPath = replaceExt(args[0], ".lineage.svg")
				}
				if err := os.WriteFile(outputPath, svg, 0644); err != nil {
					return fmt.Errorf("write output %s: %w", outputPath, err)
				}
				printSuccess("Lineage complete")
				printFile(outputPath)
				return nil
			}

			return fmt.Errorf("unknown format %q (want dot or svg)", format)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg (default), dot")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include card kind and age in labels")

	return cmd
}

// replaceExt swaps a file's extension.
func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
