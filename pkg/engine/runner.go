// Package engine wraps the pure layout functions with caching, logging, and
// observability for use by the CLI and the server.
//
// The Runner is stateless except for its cache and logger - it stores no
// layout results of its own. Because the layout engine is a pure function of
// its geometry snapshot, arranged layouts can be cached under a hash of that
// snapshot; multiple goroutines can safely share one Runner.
package engine

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lmarchetti/cardflow/pkg/cache"
	"github.com/lmarchetti/cardflow/pkg/layout"
	"github.com/lmarchetti/cardflow/pkg/observability"
)

// Placement kinds reported to observability hooks.
const (
	PlacementNext   = "next"
	PlacementSmart  = "smart"
	PlacementBranch = "branch"
)

// Runner executes layout operations with caching.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL bounds the lifetime of cached layouts. Zero means no expiration.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// Arrange computes the full masonry layout for cards, consulting the cache
// first. The second return reports whether the result came from cache; a
// cached layout keeps the UpdatedAt stamps of the pass that computed it.
func (r *Runner) Arrange(ctx context.Context, cards []layout.Card) ([]layout.Card, bool, error) {
	start := time.Now()
	observability.Layout().OnArrangeStart(ctx, len(cards))

	key := r.Keyer.LayoutKey(snapshotHash(cards))
	if data, ok, err := r.Cache.Get(ctx, key); err != nil {
		r.Logger.Warn("layout cache read failed", "err", err)
	} else if ok {
		var arranged []layout.Card
		if err := json.Unmarshal(data, &arranged); err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			observability.Layout().OnArrangeComplete(ctx, len(cards), time.Since(start), true)
			r.Logger.Debug("arrange served from cache", "cards", len(cards))
			return arranged, true, nil
		}
		// Corrupt entry - recompute and overwrite below.
		_ = r.Cache.Delete(ctx, key)
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	arranged := layout.ArrangeAll(cards)

	if data, err := json.Marshal(arranged); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Warn("layout cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	observability.Layout().OnArrangeComplete(ctx, len(cards), time.Since(start), false)
	r.Logger.Debug("arranged cards", "cards", len(cards), "elapsed", time.Since(start))
	return arranged, false, nil
}

// Rearrange re-derives the layout after one card's dimensions changed. The
// result is cached under the same geometry key as Arrange, since a repack of
// identical geometry yields identical positions.
func (r *Runner) Rearrange(ctx context.Context, cards []layout.Card, resizedID string) ([]layout.Card, bool, error) {
	if !hasCard(cards, resizedID) {
		// Silent no-op condition per the engine contract; the pass still runs.
		r.Logger.Debug("resize target not present, repacking anyway", "id", resizedID)
	}
	return r.Arrange(ctx, cards)
}

// NextPosition returns the masonry slot a new default-size card would get.
// Previews are cached per geometry snapshot like full layouts are.
func (r *Runner) NextPosition(ctx context.Context, cards []layout.Card) layout.Point {
	start := time.Now()
	key := r.Keyer.PlacementKey(snapshotHash(cards), PlacementNext)
	if pos, ok := r.cachedPoint(ctx, key); ok {
		observability.Layout().OnPlacement(ctx, PlacementNext, time.Since(start))
		return pos
	}

	pos := layout.NextPosition(cards)
	r.storePoint(ctx, key, pos)
	observability.Layout().OnPlacement(ctx, PlacementNext, time.Since(start))
	return pos
}

// Place proposes a free-flow position next to the anchor card.
func (r *Runner) Place(ctx context.Context, cards []layout.Card, anchorID string) layout.Point {
	start := time.Now()
	key := r.Keyer.PlacementKey(placementHash(cards), PlacementSmart+":"+anchorID)
	if pos, ok := r.cachedPoint(ctx, key); ok {
		observability.Layout().OnPlacement(ctx, PlacementSmart, time.Since(start))
		return pos
	}

	pos := layout.SmartPlacement(cards, anchorID)
	r.storePoint(ctx, key, pos)
	observability.Layout().OnPlacement(ctx, PlacementSmart, time.Since(start))
	r.reportCapHit(ctx, pos, cards)
	return pos
}

// Branch proposes a free-flow position for a card branched from source.
func (r *Runner) Branch(ctx context.Context, source layout.Card, cards []layout.Card) layout.Point {
	start := time.Now()
	key := r.Keyer.PlacementKey(placementHash(cards), PlacementBranch+":"+source.ID)
	if pos, ok := r.cachedPoint(ctx, key); ok {
		observability.Layout().OnPlacement(ctx, PlacementBranch, time.Since(start))
		return pos
	}

	pos := layout.BranchPlacement(source, cards)
	r.storePoint(ctx, key, pos)
	observability.Layout().OnPlacement(ctx, PlacementBranch, time.Since(start))

	obstacles := make([]layout.Card, 0, len(cards))
	for _, c := range cards {
		if c.ID != source.ID {
			obstacles = append(obstacles, c)
		}
	}
	r.reportCapHit(ctx, pos, obstacles)
	return pos
}

// cachedPoint looks up a cached placement preview.
func (r *Runner) cachedPoint(ctx context.Context, key string) (layout.Point, bool) {
	data, ok, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("placement cache read failed", "err", err)
		return layout.Point{}, false
	}
	if !ok {
		observability.Cache().OnCacheMiss(ctx, "placement")
		return layout.Point{}, false
	}

	var pos layout.Point
	if err := json.Unmarshal(data, &pos); err != nil {
		_ = r.Cache.Delete(ctx, key)
		return layout.Point{}, false
	}
	observability.Cache().OnCacheHit(ctx, "placement")
	return pos, true
}

// storePoint caches a placement preview under the runner's TTL.
func (r *Runner) storePoint(ctx context.Context, key string, pos layout.Point) {
	data, err := json.Marshal(pos)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("placement cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "placement", len(data))
}

// reportCapHit detects the capped best-effort outcome: a resolved position
// that still collides means the downward search ran out of iterations.
func (r *Runner) reportCapHit(ctx context.Context, pos layout.Point, obstacles []layout.Card) {
	if layout.Collides(pos.X, pos.Y, obstacles) {
		observability.Layout().OnCollisionCapHit(ctx, len(obstacles))
		r.Logger.Warn("collision resolution capped, returning best-effort position",
			"obstacles", len(obstacles), "x", pos.X, "y", pos.Y)
	}
}

func hasCard(cards []layout.Card, id string) bool {
	for _, c := range cards {
		if c.ID == id {
			return true
		}
	}
	return false
}
