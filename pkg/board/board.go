// Package board defines the caller-side card model the layout engine's
// narrow geometry view is carved from, together with the board operations
// that correspond to user actions on a canvas: adding, placing, resizing,
// duplicating, branching, and sharing cards.
//
// Cards carry a loosely-typed Meta payload alongside their geometry. The
// layout engine never reads that payload; boards convert each card down to
// a [layout.Card] before any placement call and copy the computed positions
// back. All types carry both JSON and BSON tags so the same values serve
// files, API responses, and the Mongo store.
package board

import (
	"time"

	"github.com/google/uuid"

	"github.com/lmarchetti/cardflow/pkg/errors"
	"github.com/lmarchetti/cardflow/pkg/layout"
)

// Card kinds. The zero value is a plain note card.
const (
	KindNote   = "note"
	KindBranch = "branch"
)

// Card is a content card on a canvas board. Only the geometric fields
// (ID, Position, Width, Height, CreatedAt) participate in layout; everything
// else is payload.
type Card struct {
	ID        string         `json:"id" bson:"id"`
	Title     string         `json:"title,omitempty" bson:"title,omitempty"`
	Kind      string         `json:"kind,omitempty" bson:"kind,omitempty"`
	SourceID  string         `json:"source_id,omitempty" bson:"source_id,omitempty"` // set by duplicate/branch/share
	Position  layout.Point   `json:"position" bson:"position"`
	Width     float64        `json:"width,omitempty" bson:"width,omitempty"`
	Height    float64        `json:"height,omitempty" bson:"height,omitempty"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" bson:"updated_at"`
	Meta      map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// Geometry returns the narrow layout view of the card.
func (c Card) Geometry() layout.Card {
	return layout.Card{
		ID:        c.ID,
		Position:  c.Position,
		Width:     c.Width,
		Height:    c.Height,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// Board is a canvas surface holding cards. The board owns its cards; the
// layout engine only ever sees geometry snapshots of them.
type Board struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Cards     []Card    `json:"cards" bson:"cards"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// now is the clock used for CreatedAt/UpdatedAt stamps. Tests pin it.
var now = time.Now

// NewBoard creates an empty board with a fresh ID.
func NewBoard(name string) *Board {
	stamp := now()
	return &Board{
		ID:        uuid.NewString(),
		Name:      name,
		Cards:     []Card{},
		CreatedAt: stamp,
		UpdatedAt: stamp,
	}
}

// NewCard mints a card with a fresh ID and creation stamp. The card has no
// position until it is added to a board.
func NewCard(title string) Card {
	stamp := now()
	return Card{
		ID:        uuid.NewString(),
		Title:     title,
		Kind:      KindNote,
		CreatedAt: stamp,
		UpdatedAt: stamp,
	}
}

// Geometry returns the geometry snapshot of every card on the board.
func (b *Board) Geometry() []layout.Card {
	cards := make([]layout.Card, len(b.Cards))
	for i, c := range b.Cards {
		cards[i] = c.Geometry()
	}
	return cards
}

// CardByID returns the card with the given id.
func (b *Board) CardByID(id string) (Card, error) {
	for _, c := range b.Cards {
		if c.ID == id {
			return c, nil
		}
	}
	return Card{}, errors.New(errors.ErrCodeCardNotFound, "card %s not found on board %s", id, b.ID)
}

// NextPosition returns the masonry slot a new default-size card would get.
func (b *Board) NextPosition() layout.Point {
	return layout.NextPosition(b.Geometry())
}

// AddCard places card at the board's next masonry slot and appends it.
// The placed card is returned.
func (b *Board) AddCard(card Card) Card {
	card.Position = b.NextPosition()
	b.append(card)
	return card
}

// PlaceCard places card next to the anchor using free-flow placement and
// appends it. An empty or unknown anchorID falls back to the most recently
// created card.
func (b *Board) PlaceCard(card Card, anchorID string) Card {
	card.Position = layout.SmartPlacement(b.Geometry(), anchorID)
	b.append(card)
	return card
}

// ResizeCard sets the card's dimensions and re-derives the whole layout.
// An unknown id still triggers the repack; per the engine contract that is
// a silent no-op condition, not an error.
func (b *Board) ResizeCard(id string, width, height float64) {
	for i := range b.Cards {
		if b.Cards[i].ID == id {
			b.Cards[i].Width = width
			b.Cards[i].Height = height
			break
		}
	}
	b.ApplyGeometry(layout.RearrangeAfterResize(b.Geometry(), id))
}

// DuplicateCard copies the card with the given id, placing the copy to the
// right of the original (stacking below earlier copies). The copy records
// its origin in SourceID.
func (b *Board) DuplicateCard(id string) (Card, error) {
	source, err := b.CardByID(id)
	if err != nil {
		return Card{}, err
	}

	copyCard := source
	copyCard.ID = uuid.NewString()
	copyCard.SourceID = source.ID
	stamp := now()
	copyCard.CreatedAt = stamp
	copyCard.UpdatedAt = stamp
	copyCard.Position = layout.BranchPlacement(source.Geometry(), b.Geometry())
	if source.Meta != nil {
		copyCard.Meta = make(map[string]any, len(source.Meta))
		for k, v := range source.Meta {
			copyCard.Meta[k] = v
		}
	}

	b.append(copyCard)
	return copyCard, nil
}

// BranchCard creates a new card branched from the card with the given id,
// placed beside it with free-flow collision avoidance.
func (b *Board) BranchCard(id, title string) (Card, error) {
	source, err := b.CardByID(id)
	if err != nil {
		return Card{}, err
	}

	branch := NewCard(title)
	branch.Kind = KindBranch
	branch.SourceID = source.ID
	branch.Position = layout.BranchPlacement(source.Geometry(), b.Geometry())

	b.append(branch)
	return branch, nil
}

// ShareCard copies the card with the given id onto target at target's next
// masonry slot. The copy keeps its payload and records its origin.
func (b *Board) ShareCard(id string, target *Board) (Card, error) {
	source, err := b.CardByID(id)
	if err != nil {
		return Card{}, err
	}

	shared := source
	shared.ID = uuid.NewString()
	shared.SourceID = source.ID
	stamp := now()
	shared.CreatedAt = stamp
	shared.UpdatedAt = stamp

	return target.AddCard(shared), nil
}

// Arrange recomputes every card position with a full masonry pass.
func (b *Board) Arrange() {
	b.ApplyGeometry(layout.ArrangeAll(b.Geometry()))
}

func (b *Board) append(card Card) {
	b.Cards = append(b.Cards, card)
	b.UpdatedAt = now()
}

// ApplyGeometry copies computed geometry back onto the board's cards.
// Cards absent from arranged keep their current position.
func (b *Board) ApplyGeometry(arranged []layout.Card) {
	byID := make(map[string]layout.Card, len(arranged))
	for _, c := range arranged {
		byID[c.ID] = c
	}
	for i := range b.Cards {
		if c, ok := byID[b.Cards[i].ID]; ok {
			b.Cards[i].Position = c.Position
			b.Cards[i].UpdatedAt = c.UpdatedAt
		}
	}
	b.UpdatedAt = now()
}
