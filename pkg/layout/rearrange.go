package layout

// RearrangeAfterResize re-derives the full layout after one card's dimensions
// changed. The pass uses each card's current (post-resize) dimensions, so the
// resized card is expected to already carry its new Width/Height.
//
// A full re-pack is required rather than a delta patch: a height change can
// alter which column is shortest for every card created after the resized
// one. Locality of effect comes from the neighbor-shift rule, not from
// skipping the repack.
//
// An unknown resizedID is a silent no-op condition: the pass still runs over
// whatever cards are present. Empty input returns an empty slice.
func RearrangeAfterResize(cards []Card, resizedID string) []Card {
	// resizedID identifies the trigger only; the repack reads dimensions off
	// the cards themselves, so a missing ID changes nothing about the pass.
	_ = resizedID
	return ArrangeAll(cards)
}
