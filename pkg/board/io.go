package board

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lmarchetti/cardflow/pkg/errors"
)

// MarshalBoard serializes a board to pretty-printed JSON bytes.
func MarshalBoard(b *Board) ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}

// UnmarshalBoard deserializes JSON bytes into a board and validates the
// result.
func UnmarshalBoard(data []byte) (*Board, error) {
	var b Board
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidBoard, err, "unmarshal board")
	}
	if err := Validate(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Validate checks board invariants: a board ID and unique, non-empty card
// IDs. Positions and dimensions are not validated; the engine is total over
// any geometry.
func Validate(b *Board) error {
	if b.ID == "" {
		return errors.New(errors.ErrCodeInvalidBoard, "board has no id")
	}

	seen := make(map[string]bool, len(b.Cards))
	for i, c := range b.Cards {
		if c.ID == "" {
			return errors.New(errors.ErrCodeInvalidCard, "card %d has no id", i)
		}
		if seen[c.ID] {
			return errors.New(errors.ErrCodeInvalidCard, "duplicate card id %s", c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}

// WriteBoardFile writes a board to a JSON file.
func WriteBoardFile(b *Board, path string) error {
	data, err := MarshalBoard(b)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadBoardFile reads a board from a JSON file.
func ReadBoardFile(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalBoard(data)
}
