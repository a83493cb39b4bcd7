package layout

// Placement is a card resolved to a concrete column slot during a packing
// pass. Placements are ephemeral per-call values and are never persisted.
type Placement struct {
	Card   Card
	Column int
	X, Y   float64
	Width  float64
	Height float64
}

// columnStack holds the placements of one column in ascending Y order.
// Placements within a stack never overlap vertically (strict: touching
// edges are not an overlap).
type columnStack struct {
	column     int
	placements []*Placement
}

// VerticalOverlap reports whether the half-open intervals [startA, endA) and
// [startB, endB) intersect, and by how much. Touching endpoints
// (endA == startB) do not overlap and yield a zero amount.
func VerticalOverlap(startA, endA, startB, endB float64) (bool, float64) {
	amount := min(endA, endB) - max(startA, startB)
	if amount <= 0 {
		return false, 0
	}
	return true, amount
}

// OverlappingNeighbors returns the placements of stack whose vertical span
// strictly overlaps [queryStart, queryStart+queryHeight), in column order.
func OverlappingNeighbors(stack []*Placement, queryStart, queryHeight float64) []*Placement {
	var neighbors []*Placement
	for _, p := range stack {
		if overlaps, _ := VerticalOverlap(queryStart, queryStart+queryHeight, p.Y, p.Y+p.Height); overlaps {
			neighbors = append(neighbors, p)
		}
	}
	return neighbors
}

// DefaultColumnX returns the X origin of a column absent any widening:
// GridPadding + column*(DefaultWidth+GridGap).
func DefaultColumnX(column int) float64 {
	return GridPadding + float64(column)*(DefaultWidth+GridGap)
}

// applyNeighborShifts pushes vertically-overlapping placements of each next
// column to the right of any card that intrudes past their current X.
//
// The shift is strictly neighbor-aware: a card only ever moves placements in
// the column immediately after it, and only those whose Y-range overlaps its
// own. A shifted placement may in turn intrude on the column after it, so
// columns are processed left to right and the same test is applied
// transitively through the chain of overlapping placements. The cascade stops
// at the first non-overlap; a wide card placed low in the layout never
// displaces cards near the top that share no row.
func applyNeighborShifts(stacks []*columnStack) {
	for col := 0; col < len(stacks)-1; col++ {
		next := stacks[col+1]
		for _, p := range stacks[col].placements {
			edge := p.X + p.Width + GridGap
			for _, q := range OverlappingNeighbors(next.placements, p.Y, p.Height) {
				if edge > q.X {
					q.X = edge
				}
			}
		}
	}
}
