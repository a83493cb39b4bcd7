package layout

import (
	"fmt"
	"testing"
	"time"
)

func placedCard(id string, x, y float64, created time.Time) Card {
	return Card{ID: id, Position: Point{X: x, Y: y}, CreatedAt: created}
}

func TestSmartPlacementEmpty(t *testing.T) {
	got := SmartPlacement(nil, "")
	want := Point{X: GridPadding, Y: GridPadding}
	if got != want {
		t.Errorf("SmartPlacement(nil) = %v, want %v", got, want)
	}
}

func TestSmartPlacement(t *testing.T) {
	early := placedCard("early", 32, 32, testEpoch)
	late := placedCard("late", 352, 32, testEpoch.Add(time.Minute))

	tests := []struct {
		name     string
		cards    []Card
		anchorID string
		want     Point
	}{
		{
			name:     "explicit anchor",
			cards:    []Card{early, late},
			anchorID: "early",
			// Right of early collides with late, resolves downward.
			want: Point{X: 352, Y: 292},
		},
		{
			name:  "defaults to latest created card",
			cards: []Card{early, late},
			want:  Point{X: 672, Y: 32},
		},
		{
			name:     "unknown anchor falls back to latest",
			cards:    []Card{early, late},
			anchorID: "missing",
			want:     Point{X: 672, Y: 32},
		},
		{
			name: "created order beats slice order",
			cards: []Card{
				placedCard("b", 352, 32, testEpoch.Add(time.Hour)),
				placedCard("a", 32, 32, testEpoch),
			},
			want: Point{X: 672, Y: 32},
		},
		{
			name: "timestamp tie resolves by highest id",
			cards: []Card{
				placedCard("a", 32, 32, testEpoch),
				placedCard("b", 352, 32, testEpoch),
			},
			want: Point{X: 672, Y: 32},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SmartPlacement(tt.cards, tt.anchorID); got != tt.want {
				t.Errorf("SmartPlacement() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBranchPlacementStacking(t *testing.T) {
	source := placedCard("source", 32, 32, testEpoch)
	branchSlot := Point{X: source.Position.X + DefaultWidth + GridGap, Y: source.Position.Y}
	sibling := placedCard("sibling", branchSlot.X, branchSlot.Y, testEpoch.Add(time.Second))

	got := BranchPlacement(source, []Card{source, sibling})
	want := Point{X: branchSlot.X, Y: branchSlot.Y + DefaultHeight + GridGap}
	if got != want {
		t.Errorf("BranchPlacement() = %v, want %v", got, want)
	}
}

func TestBranchPlacementExcludesSource(t *testing.T) {
	// A source wide enough to still cover the branch slot must not count as
	// its own obstacle.
	source := Card{ID: "wide", Position: Point{X: 32, Y: 32}, Width: 900, CreatedAt: testEpoch}

	got := BranchPlacement(source, []Card{source})
	want := Point{X: 972, Y: 32}
	if got != want {
		t.Errorf("BranchPlacement() = %v, want %v", got, want)
	}
}

func TestResolveCollision(t *testing.T) {
	tests := []struct {
		name      string
		x, startY float64
		obstacles []Card
		want      Point
	}{
		{
			name: "no obstacles",
			x:    100, startY: 50,
			want: Point{X: 100, Y: 50},
		},
		{
			name: "single obstacle pushes down once",
			x:    32, startY: 32,
			obstacles: []Card{placedCard("o", 32, 32, testEpoch)},
			want:      Point{X: 32, Y: 292},
		},
		{
			name: "touching edges do not collide",
			x:    312, startY: 32,
			obstacles: []Card{placedCard("o", 32, 32, testEpoch)},
			want:      Point{X: 312, Y: 32},
		},
		{
			name: "one pixel of overlap collides",
			x:    311, startY: 32,
			obstacles: []Card{placedCard("o", 32, 32, testEpoch)},
			want:      Point{X: 311, Y: 292},
		},
		{
			name: "skips a vertical run of obstacles",
			x:    32, startY: 32,
			obstacles: []Card{
				placedCard("o1", 32, 32, testEpoch),
				placedCard("o2", 32, 292, testEpoch),
				placedCard("o3", 32, 552, testEpoch),
			},
			want: Point{X: 32, Y: 812},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveCollision(tt.x, tt.startY, tt.obstacles); got != tt.want {
				t.Errorf("ResolveCollision() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveCollisionIterationCap(t *testing.T) {
	// 300 stacked obstacles exceed the 200-iteration cap; the resolver must
	// terminate and hand back its last candidate instead of looping.
	obstacles := make([]Card, 300)
	for i := range obstacles {
		y := GridPadding + float64(i)*(DefaultHeight+GridGap)
		obstacles[i] = placedCard(fmt.Sprintf("o%03d", i), 32, y, testEpoch)
	}

	got := ResolveCollision(32, GridPadding, obstacles)
	want := Point{X: 32, Y: GridPadding + collisionMaxIterations*(DefaultHeight+GridGap)}
	if got != want {
		t.Errorf("ResolveCollision() = %v, want %v", got, want)
	}
}
