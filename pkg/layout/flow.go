package layout

// Free-flow placement: anchor-relative positioning used outside the masonry
// grid, e.g. when a card is created next to a chosen anchor or branched from
// an existing one. Candidates start to the right of the anchor and are pushed
// straight down until they stop colliding. The resolver never moves a
// candidate sideways; denser strategies would change externally observable
// positions.

// SmartPlacement proposes a position for a new card relative to an anchor.
// The anchor is the card with anchorID when present; otherwise the card with
// the latest CreatedAt (ties broken by highest ID, mirroring the packing
// tiebreak). An unknown anchorID silently falls back to the latest card.
// Empty input returns the grid origin.
func SmartPlacement(cards []Card, anchorID string) Point {
	if len(cards) == 0 {
		return Point{X: GridPadding, Y: GridPadding}
	}

	anchor := findAnchor(cards, anchorID)
	x := anchor.Position.X + anchor.EffectiveWidth() + GridGap
	return ResolveCollision(x, anchor.Position.Y, cards)
}

// BranchPlacement proposes a position for a card branched or duplicated from
// source. The rule is the same rightward offset as [SmartPlacement], but the
// source card is excluded from the obstacle set so an existing card cannot
// collide with itself.
func BranchPlacement(source Card, allCards []Card) Point {
	obstacles := make([]Card, 0, len(allCards))
	for _, c := range allCards {
		if c.ID != source.ID {
			obstacles = append(obstacles, c)
		}
	}

	x := source.Position.X + source.EffectiveWidth() + GridGap
	return ResolveCollision(x, source.Position.Y, obstacles)
}

// ResolveCollision finds a free slot for a default-size rectangle starting at
// (x, startY), advancing Y by DefaultHeight+GridGap while the rectangle
// overlaps any obstacle. The search is capped; if the cap is reached while
// still overlapping, the last candidate is returned as a best-effort result
// rather than an error. Callers must treat that as degraded but safe.
func ResolveCollision(x, startY float64, obstacles []Card) Point {
	y := startY
	for i := 0; i < collisionMaxIterations; i++ {
		if !Collides(x, y, obstacles) {
			break
		}
		y += DefaultHeight + GridGap
	}
	return Point{X: x, Y: y}
}

func findAnchor(cards []Card, anchorID string) Card {
	if anchorID != "" {
		for _, c := range cards {
			if c.ID == anchorID {
				return c
			}
		}
	}

	anchor := cards[0]
	for _, c := range cards[1:] {
		switch cmpTime := c.CreatedAt.Compare(anchor.CreatedAt); {
		case cmpTime > 0:
			anchor = c
		case cmpTime == 0 && c.ID > anchor.ID:
			anchor = c
		}
	}
	return anchor
}

// Collides reports whether a default-size rectangle at (x, y) overlaps any
// obstacle. The test is a strict AABB check: touching edges do not collide.
// Callers can probe a position returned by [ResolveCollision] with this to
// detect the capped best-effort case.
func Collides(x, y float64, obstacles []Card) bool {
	for _, o := range obstacles {
		ox, oy := o.Position.X, o.Position.Y
		ow, oh := o.EffectiveWidth(), o.EffectiveHeight()
		if x < ox+ow && x+DefaultWidth > ox && y < oy+oh && y+DefaultHeight > oy {
			return true
		}
	}
	return false
}
