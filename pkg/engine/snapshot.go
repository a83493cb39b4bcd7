package engine

import (
	"cmp"
	"encoding/json"
	"slices"
	"time"

	"github.com/lmarchetti/cardflow/pkg/cache"
	"github.com/lmarchetti/cardflow/pkg/layout"
)

// geometryKey is the subset of card state that determines an arrange result.
// Position and UpdatedAt are deliberately excluded: positions are recomputed
// by the pass and UpdatedAt changes on every call, so including either would
// defeat caching.
type geometryKey struct {
	ID        string    `json:"id"`
	Width     float64   `json:"w"`
	Height    float64   `json:"h"`
	CreatedAt time.Time `json:"t"`
}

// snapshotHash produces a deterministic hash of the layout-relevant card
// state. Input order does not matter; keys are sorted before hashing.
func snapshotHash(cards []layout.Card) string {
	keys := make([]geometryKey, len(cards))
	for i, c := range cards {
		keys[i] = geometryKey{
			ID:        c.ID,
			Width:     c.Width,
			Height:    c.Height,
			CreatedAt: c.CreatedAt.UTC(),
		}
	}
	slices.SortFunc(keys, func(a, b geometryKey) int {
		return cmp.Compare(a.ID, b.ID)
	})

	data, _ := json.Marshal(keys)
	return cache.Hash(data)
}

// placementKey extends geometryKey with the card's current position.
// Free-flow placement dodges the cards where they sit, so moving a card
// must invalidate cached previews even when no dimension changed.
type placementKey struct {
	geometryKey
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// placementHash produces a deterministic hash of the placement-relevant card
// state, positions included. Input order does not matter.
func placementHash(cards []layout.Card) string {
	keys := make([]placementKey, len(cards))
	for i, c := range cards {
		keys[i] = placementKey{
			geometryKey: geometryKey{
				ID:        c.ID,
				Width:     c.Width,
				Height:    c.Height,
				CreatedAt: c.CreatedAt.UTC(),
			},
			X: c.Position.X,
			Y: c.Position.Y,
		}
	}
	slices.SortFunc(keys, func(a, b placementKey) int {
		return cmp.Compare(a.ID, b.ID)
	})

	data, _ := json.Marshal(keys)
	return cache.Hash(data)
}
