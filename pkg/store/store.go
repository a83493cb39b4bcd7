// Package store persists boards. The layout engine itself never touches
// storage; a caller arranges a board and hands the result to a Store.
//
// Three backends are provided:
//   - memory: for tests and single-process development
//   - file: one JSON document per board, for CLI usage
//   - mongo: for server deployments
//
// All backends return a BOARD_NOT_FOUND structured error for missing boards
// so callers can branch on the code regardless of backend.
package store

import (
	"context"

	"github.com/lmarchetti/cardflow/pkg/board"
)

// Store is the interface for board persistence backends.
type Store interface {
	// Get retrieves a board by ID. Returns a BOARD_NOT_FOUND error when the
	// board does not exist.
	Get(ctx context.Context, id string) (*board.Board, error)

	// Put saves a board, replacing any existing board with the same ID.
	Put(ctx context.Context, b *board.Board) error

	// Delete removes a board. Deleting a missing board is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored boards in unspecified order.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
