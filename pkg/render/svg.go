// Package render turns boards into visual outputs.
//
// Two renderers are provided:
//
//   - [BoardSVG] draws an arranged board as a plain SVG: one rounded
//     rectangle per card at its computed canvas position.
//   - [LineageDOT] and [LineageSVG] render the duplicate/branch lineage of a
//     board (SourceID edges) as a node-link diagram via Graphviz.
//
// The board SVG is written by hand into a buffer; card positions are already
// computed by the layout engine, so no layout tool is involved. The lineage
// diagram has no precomputed positions and delegates placement to Graphviz.
package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/lmarchetti/cardflow/pkg/board"
)

// svgMargin is the whitespace added around the outermost cards.
const svgMargin = 32.0

// SVGOption configures board SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	showTitles bool
	background string
}

// WithTitles renders each card's title inside its rectangle.
func WithTitles() SVGOption { return func(r *svgRenderer) { r.showTitles = true } }

// WithBackground sets the canvas background color (default transparent).
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// BoardSVG renders a board as SVG bytes. Cards are drawn at their stored
// positions; callers normally arrange the board first.
func BoardSVG(b *board.Board, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	width, height := canvasExtent(b)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill=%q/>`+"\n", r.background)
	}

	for _, c := range b.Cards {
		g := c.Geometry()
		fmt.Fprintf(&buf, `  <rect id="card-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="12" fill="white" stroke="#333" stroke-width="2"/>`+"\n",
			html.EscapeString(c.ID), g.Position.X, g.Position.Y, g.EffectiveWidth(), g.EffectiveHeight())

		if r.showTitles && c.Title != "" {
			fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-family="sans-serif" font-size="16">%s</text>`+"\n",
				g.Position.X+16, g.Position.Y+28, html.EscapeString(c.Title))
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// canvasExtent returns the frame size needed to show every card plus margin.
// An empty board still gets a visible frame.
func canvasExtent(b *board.Board) (width, height float64) {
	width, height = 2*svgMargin, 2*svgMargin
	for _, c := range b.Cards {
		g := c.Geometry()
		width = max(width, g.Position.X+g.EffectiveWidth()+svgMargin)
		height = max(height, g.Position.Y+g.EffectiveHeight()+svgMargin)
	}
	return width, height
}
