package store

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmarchetti/cardflow/pkg/board"
	"github.com/lmarchetti/cardflow/pkg/errors"
	"github.com/lmarchetti/cardflow/pkg/observability"
)

// FileStore persists each board as a JSON file in a directory.
// Board IDs are UUIDs, so they map directly to safe filenames.
type FileStore struct {
	dir string
}

// NewFileStore creates a file store rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create store dir %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

// Get retrieves a board by ID.
func (s *FileStore) Get(ctx context.Context, id string) (b *board.Board, err error) {
	defer func(start time.Time) {
		observability.Store().OnLoad(ctx, id, time.Since(start), err)
	}(time.Now())

	b, err = board.ReadBoardFile(s.path(id))
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.New(errors.ErrCodeBoardNotFound, "board %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Put saves a board.
func (s *FileStore) Put(ctx context.Context, b *board.Board) (err error) {
	defer func(start time.Time) {
		observability.Store().OnSave(ctx, b.ID, len(b.Cards), time.Since(start), err)
	}(time.Now())

	if err := board.Validate(b); err != nil {
		return err
	}
	if err := board.WriteBoardFile(b, s.path(b.ID)); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "save board %s", b.ID)
	}
	return nil
}

// Delete removes a board.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	err := os.Remove(s.path(id))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete board %s", id)
	}
	return nil
}

// List returns all stored board IDs.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list boards")
	}

	var ids []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".json"); ok && !e.IsDir() {
			ids = append(ids, name)
		}
	}
	return ids, nil
}

// Close does nothing for the file store.
func (s *FileStore) Close(ctx context.Context) error {
	return nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
