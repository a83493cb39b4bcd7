package layout

// packResult is the outcome of a full masonry replay: per-column stacks plus
// the watermark (next free Y) of every column.
type packResult struct {
	stacks     []*columnStack
	watermarks []float64
}

// pack replays cards in creation order into GridColumns columns. Each card
// lands in the column with the lowest watermark, ties resolving to the lowest
// column index. X uses the default column pitch; watermark advancement uses
// the card's own height. Watermarks are rebuilt from zero on every call.
func pack(cards []Card) packResult {
	stacks := make([]*columnStack, GridColumns)
	watermarks := make([]float64, GridColumns)
	for i := range stacks {
		stacks[i] = &columnStack{column: i}
		watermarks[i] = GridPadding
	}

	for _, card := range sortByCreation(cards) {
		col := shortestColumn(watermarks)
		p := &Placement{
			Card:   card,
			Column: col,
			X:      DefaultColumnX(col),
			Y:      watermarks[col],
			Width:  card.EffectiveWidth(),
			Height: card.EffectiveHeight(),
		}
		stacks[col].placements = append(stacks[col].placements, p)
		watermarks[col] = p.Y + p.Height + GridGap
	}

	return packResult{stacks: stacks, watermarks: watermarks}
}

// shortestColumn returns the index of the lowest watermark, preferring the
// lowest index on ties.
func shortestColumn(watermarks []float64) int {
	col := 0
	for i := 1; i < len(watermarks); i++ {
		if watermarks[i] < watermarks[col] {
			col = i
		}
	}
	return col
}

// NextPosition simulates packing every existing card plus a hypothetical
// default-size card, and returns the position that card would receive under
// a full arrange. The neighbor-shift rule applies to the hypothetical card
// too: a wide card in the previous column widens the slot's effective X
// past the default column origin. The input is not mutated. An empty input
// yields the grid origin {GridPadding, GridPadding}.
func NextPosition(cards []Card) Point {
	result := pack(cards)
	col := shortestColumn(result.watermarks)

	incoming := &Placement{
		Column: col,
		X:      DefaultColumnX(col),
		Y:      result.watermarks[col],
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
	result.stacks[col].placements = append(result.stacks[col].placements, incoming)
	applyNeighborShifts(result.stacks)

	return Point{X: incoming.X, Y: incoming.Y}
}

// ArrangeAll recomputes the position of every card with a full masonry pass
// followed by the neighbor-shift rule, and returns a new slice of fresh card
// values with updated positions and a freshly stamped UpdatedAt. The input
// slice and its cards are never mutated.
func ArrangeAll(cards []Card) []Card {
	if len(cards) == 0 {
		return []Card{}
	}

	result := pack(cards)
	applyNeighborShifts(result.stacks)

	stamp := now()
	arranged := make([]Card, 0, len(cards))
	for _, stack := range result.stacks {
		for _, p := range stack.placements {
			card := p.Card
			card.Position = Point{X: p.X, Y: p.Y}
			card.UpdatedAt = stamp
			arranged = append(arranged, card)
		}
	}

	// Return cards in packing order rather than column order so output is
	// stable for identical input.
	return sortByCreation(arranged)
}
