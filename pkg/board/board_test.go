package board

import (
	"testing"
	"time"

	"github.com/lmarchetti/cardflow/pkg/errors"
	"github.com/lmarchetti/cardflow/pkg/layout"
)

// pinClock makes card stamps strictly increasing and reproducible.
func pinClock(t *testing.T) {
	t.Helper()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	tick := 0
	orig := now
	now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	t.Cleanup(func() { now = orig })
}

func TestAddCardFillsColumns(t *testing.T) {
	pinClock(t)
	b := NewBoard("test")

	wantX := []float64{32, 352, 672, 992, 32}
	for i, want := range wantX {
		placed := b.AddCard(NewCard("card"))
		if placed.Position.X != want {
			t.Errorf("card %d at x=%v, want %v", i, placed.Position.X, want)
		}
	}

	last := b.Cards[len(b.Cards)-1]
	if last.Position.Y != 292 {
		t.Errorf("wrapped card at y=%v, want 292", last.Position.Y)
	}
}

func TestAddCardAfterWideCard(t *testing.T) {
	pinClock(t)
	b := NewBoard("test")
	wide := NewCard("wide")
	wide.Width = 900
	b.AddCard(wide)

	placed := b.AddCard(NewCard("next"))
	want := layout.Point{X: 972, Y: 32}
	if placed.Position != want {
		t.Errorf("card after wide neighbor at %v, want %v", placed.Position, want)
	}

	// The persisted position must not overlap the wide card's body.
	if layout.Collides(placed.Position.X, placed.Position.Y, []layout.Card{b.Cards[0].Geometry()}) {
		t.Error("added card overlaps its wide neighbor")
	}
}

func TestPlaceCardNextToAnchor(t *testing.T) {
	pinClock(t)
	b := NewBoard("test")
	anchor := b.AddCard(NewCard("anchor"))

	placed := b.PlaceCard(NewCard("new"), anchor.ID)
	want := layout.Point{X: 352, Y: 32}
	if placed.Position != want {
		t.Errorf("placed at %v, want %v", placed.Position, want)
	}
}

func TestResizeCardShiftsNeighbor(t *testing.T) {
	pinClock(t)
	b := NewBoard("test")
	first := b.AddCard(NewCard("first"))
	b.AddCard(NewCard("second"))

	b.ResizeCard(first.ID, 472, 220)

	second := b.Cards[1]
	if second.Position.X != 544 {
		t.Errorf("neighbor at x=%v after widening, want 544", second.Position.X)
	}
}

func TestResizeCardUnknownIDStillRepacks(t *testing.T) {
	pinClock(t)
	b := NewBoard("test")
	b.AddCard(NewCard("a"))
	b.Cards[0].Position = layout.Point{X: 999, Y: 999}

	b.ResizeCard("no-such-card", 100, 100)

	if got := b.Cards[0].Position; got != (layout.Point{X: 32, Y: 32}) {
		t.Errorf("card at %v after repack, want {32 32}", got)
	}
}

func TestDuplicateCard(t *testing.T) {
	pinClock(t)
	b := NewBoard("test")
	source := b.AddCard(NewCard("source"))
	b.Cards[0].Meta = map[string]any{"color": "blue"}

	dup, err := b.DuplicateCard(source.ID)
	if err != nil {
		t.Fatalf("DuplicateCard() error = %v", err)
	}

	if dup.ID == source.ID {
		t.Error("duplicate kept the source id")
	}
	if dup.SourceID != source.ID {
		t.Errorf("SourceID = %q, want %q", dup.SourceID, source.ID)
	}
	if want := (layout.Point{X: 352, Y: 32}); dup.Position != want {
		t.Errorf("duplicate at %v, want %v", dup.Position, want)
	}
	if dup.Meta["color"] != "blue" {
		t.Error("duplicate did not copy payload")
	}

	// A second duplicate stacks below the first.
	dup2, err := b.DuplicateCard(source.ID)
	if err != nil {
		t.Fatalf("DuplicateCard() error = %v", err)
	}
	if want := (layout.Point{X: 352, Y: 292}); dup2.Position != want {
		t.Errorf("second duplicate at %v, want %v", dup2.Position, want)
	}
}

func TestBranchCard(t *testing.T) {
	pinClock(t)
	b := NewBoard("test")
	source := b.AddCard(NewCard("source"))

	branch, err := b.BranchCard(source.ID, "idea")
	if err != nil {
		t.Fatalf("BranchCard() error = %v", err)
	}

	if branch.Kind != KindBranch {
		t.Errorf("Kind = %q, want %q", branch.Kind, KindBranch)
	}
	if branch.SourceID != source.ID {
		t.Errorf("SourceID = %q, want %q", branch.SourceID, source.ID)
	}
}

func TestBranchCardUnknownSource(t *testing.T) {
	pinClock(t)
	b := NewBoard("test")

	_, err := b.BranchCard("missing", "idea")
	if !errors.Is(err, errors.ErrCodeCardNotFound) {
		t.Errorf("BranchCard() error = %v, want CARD_NOT_FOUND", err)
	}
}

func TestShareCard(t *testing.T) {
	pinClock(t)
	src := NewBoard("src")
	dst := NewBoard("dst")
	card := src.AddCard(NewCard("shared"))
	dst.AddCard(NewCard("existing"))

	shared, err := src.ShareCard(card.ID, dst)
	if err != nil {
		t.Fatalf("ShareCard() error = %v", err)
	}

	if shared.SourceID != card.ID {
		t.Errorf("SourceID = %q, want %q", shared.SourceID, card.ID)
	}
	if want := (layout.Point{X: 352, Y: 32}); shared.Position != want {
		t.Errorf("shared card at %v, want %v", shared.Position, want)
	}
	if len(dst.Cards) != 2 {
		t.Errorf("target has %d cards, want 2", len(dst.Cards))
	}
	if len(src.Cards) != 1 {
		t.Errorf("source has %d cards, want 1", len(src.Cards))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		board    *Board
		wantCode errors.Code
	}{
		{
			name:  "valid board",
			board: &Board{ID: "b1", Cards: []Card{{ID: "c1"}, {ID: "c2"}}},
		},
		{
			name:     "missing board id",
			board:    &Board{},
			wantCode: errors.ErrCodeInvalidBoard,
		},
		{
			name:     "card without id",
			board:    &Board{ID: "b1", Cards: []Card{{}}},
			wantCode: errors.ErrCodeInvalidCard,
		},
		{
			name:     "duplicate card ids",
			board:    &Board{ID: "b1", Cards: []Card{{ID: "c1"}, {ID: "c1"}}},
			wantCode: errors.ErrCodeInvalidCard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.board)
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Validate() error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestBoardRoundTrip(t *testing.T) {
	pinClock(t)
	b := NewBoard("trip")
	b.AddCard(NewCard("a"))
	b.AddCard(NewCard("b"))
	b.Cards[0].Meta = map[string]any{"note": "keep"}

	data, err := MarshalBoard(b)
	if err != nil {
		t.Fatalf("MarshalBoard() error = %v", err)
	}

	got, err := UnmarshalBoard(data)
	if err != nil {
		t.Fatalf("UnmarshalBoard() error = %v", err)
	}

	if got.ID != b.ID || len(got.Cards) != len(b.Cards) {
		t.Errorf("round trip changed board: got %s/%d cards, want %s/%d", got.ID, len(got.Cards), b.ID, len(b.Cards))
	}
	if got.Cards[0].Meta["note"] != "keep" {
		t.Error("round trip lost card payload")
	}
}
