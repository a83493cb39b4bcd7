// Package layout computes positions for rectangular cards on an infinite
// 2-D canvas.
//
// The package implements three placement strategies:
//
//  1. Masonry packing: cards flow into a fixed number of columns, each new
//     card landing in the column with the lowest watermark ([NextPosition],
//     [ArrangeAll]).
//  2. Incremental rearrangement: a full re-pack after a single card changes
//     size, with locality of effect guaranteed by the neighbor-shift rule
//     ([RearrangeAfterResize]).
//  3. Free-flow placement: anchor-relative positioning with downward
//     collision avoidance for ad-hoc card creation ([SmartPlacement],
//     [BranchPlacement], [ResolveCollision]).
//
// # Determinism
//
// Every function is a pure transformation over its input snapshot: cards are
// replayed in ascending CreatedAt order (ties broken by ID), column choice
// ties resolve to the lowest column index, and no result depends on map
// iteration order. Identical input always produces identical output.
//
// # Statelessness
//
// There is no persistent layout state. Column watermarks are local arrays
// rebuilt from zero on every call, so cards can be deleted, resized, or
// reordered between calls without any invalidation logic. Recomputation is
// O(n) per pass.
//
// Input slices and the cards inside them are never mutated; arrange functions
// return fresh card values, so callers can use value comparison to detect
// which cards actually moved.
package layout

import (
	"cmp"
	"slices"
	"time"
)

// Grid constants for masonry packing. These are fixed by the canvas contract
// and are not runtime-configurable.
const (
	// GridColumns is the number of masonry columns.
	GridColumns = 4

	// GridGap is the horizontal and vertical spacing between cards.
	GridGap = 40.0

	// GridPadding is the offset of the grid from the canvas origin.
	GridPadding = 32.0

	// DefaultWidth is the width applied to cards that do not carry one.
	DefaultWidth = 280.0

	// DefaultHeight is the height applied to cards that do not carry one.
	DefaultHeight = 220.0
)

// collisionMaxIterations caps the downward search in [ResolveCollision].
// When exhausted the last candidate is returned as a best-effort result.
const collisionMaxIterations = 200

// Point is a position on the canvas.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Card is the narrow, geometry-only view of a canvas card. Richer domain
// card types convert down to this; the engine never sees their payloads.
//
// Width and Height are optional: zero (or negative) means "use the module
// default". CreatedAt is the sole ordering key for packing. UpdatedAt is
// stamped by arrange functions and carries no layout meaning.
type Card struct {
	ID        string    `json:"id" bson:"id"`
	Position  Point     `json:"position" bson:"position"`
	Width     float64   `json:"width,omitempty" bson:"width,omitempty"`
	Height    float64   `json:"height,omitempty" bson:"height,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// EffectiveWidth returns the card's width, falling back to [DefaultWidth].
func (c Card) EffectiveWidth() float64 {
	if c.Width > 0 {
		return c.Width
	}
	return DefaultWidth
}

// EffectiveHeight returns the card's height, falling back to [DefaultHeight].
func (c Card) EffectiveHeight() float64 {
	if c.Height > 0 {
		return c.Height
	}
	return DefaultHeight
}

// now is the clock used to stamp UpdatedAt. Tests pin it for reproducible
// output.
var now = time.Now

// sortByCreation returns a copy of cards in packing order: ascending
// CreatedAt, ties broken by ID so identical timestamps cannot introduce
// hidden non-determinism.
func sortByCreation(cards []Card) []Card {
	sorted := slices.Clone(cards)
	slices.SortStableFunc(sorted, func(a, b Card) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return sorted
}
