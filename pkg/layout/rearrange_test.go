package layout

import (
	"reflect"
	"testing"
)

func TestRearrangeAfterResizeEmpty(t *testing.T) {
	got := RearrangeAfterResize(nil, "anything")
	if len(got) != 0 {
		t.Errorf("RearrangeAfterResize(nil) = %v, want empty", got)
	}
}

func TestRearrangeAfterResizeUnknownID(t *testing.T) {
	pinClock(t)
	cards := makeCards(4)

	// An unknown id is a silent no-op condition: the pass still repacks
	// every card that does exist.
	got := RearrangeAfterResize(cards, "no-such-card")
	want := ArrangeAll(cards)

	if !reflect.DeepEqual(got, want) {
		t.Error("unknown resize id changed the repack result")
	}
}

func TestRearrangeAfterResizeHeightChangesColumns(t *testing.T) {
	pinClock(t)
	cards := makeCards(5)
	arranged := ArrangeAll(cards)

	// card-04 initially wraps into column 0.
	if got := cardByID(t, arranged, "card-04").Position; got != (Point{X: 32, Y: 292}) {
		t.Fatalf("card-04 at %v before resize, want {32 292}", got)
	}

	// Shrinking card-02 makes column 2 the shortest, so the repack must
	// move card-04 there. Locality is about X shifts, not column choice.
	resized := make([]Card, len(arranged))
	copy(resized, arranged)
	for i := range resized {
		if resized[i].ID == "card-02" {
			resized[i].Height = 80
		}
	}

	rearranged := RearrangeAfterResize(resized, "card-02")
	if got := cardByID(t, rearranged, "card-04").Position; got != (Point{X: 672, Y: 152}) {
		t.Errorf("card-04 at %v after resize, want {672 152}", got)
	}
}

func TestRearrangeAfterResizeWidthTriggersShift(t *testing.T) {
	pinClock(t)
	cards := makeCards(2)
	arranged := ArrangeAll(cards)

	resized := make([]Card, len(arranged))
	copy(resized, arranged)
	resized[0].Width = 472

	rearranged := RearrangeAfterResize(resized, "card-00")
	if got := cardByID(t, rearranged, "card-01").Position.X; got != 544 {
		t.Errorf("card-01 x = %v after widening card-00, want 544", got)
	}
}
