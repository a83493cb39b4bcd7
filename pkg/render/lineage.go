package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/lmarchetti/cardflow/pkg/board"
)

// LineageOptions configures lineage diagram rendering.
type LineageOptions struct {
	// Detailed includes card kind and creation time in node labels.
	// When false, only the title (or ID) is shown.
	Detailed bool
}

// LineageDOT converts a board's duplicate/branch lineage to Graphviz DOT.
// Every card is a node; every SourceID reference is an edge from the origin
// card to its copy or branch. Cards whose SourceID points at a card that has
// since been deleted are rendered as roots.
func LineageDOT(b *board.Board, opts LineageOptions) string {
	present := make(map[string]bool, len(b.Cards))
	for _, c := range b.Cards {
		present[c.ID] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph lineage {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, c := range b.Cards {
		label := lineageLabel(c, opts.Detailed)
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if c.Kind == board.KindBranch {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", c.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, c := range b.Cards {
		if c.SourceID != "" && present[c.SourceID] {
			fmt.Fprintf(&buf, "  %q -> %q;\n", c.SourceID, c.ID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func lineageLabel(c board.Card, detailed bool) string {
	label := c.Title
	if label == "" {
		label = c.ID
	}
	if !detailed {
		return label
	}
	return fmt.Sprintf("%s\nkind: %s\ncreated: %s", label, c.Kind, c.CreatedAt.Format("2006-01-02 15:04"))
}

// LineageSVG renders a board's lineage diagram to SVG using Graphviz.
func LineageSVG(b *board.Board, opts LineageOptions) ([]byte, error) {
	return renderDOT(LineageDOT(b, opts))
}

func renderDOT(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox pins the Graphviz output to a zero-origin viewBox so the
// SVG scales cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
