package repositories

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Store bundles the post and comment repositories of one backend.
type Store struct {
	Posts    PostRepository
	Comments CommentRepository

	closeOnce sync.Once
	closeFn   func() error
	closeErr  error
}

// NewStore wraps repositories that share a backend closed by closeFn.
func NewStore(posts PostRepository, comments CommentRepository, closeFn func() error) *Store {
	return &Store{
		Posts:    posts,
		Comments: comments,
		closeFn:  closeFn,
	}
}

// Close releases the backend. It is safe to call more than once.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		if s.closeFn != nil {
			s.closeErr = s.closeFn()
		}
	})
	return s.closeErr
}

// OpenBadgerDB opens the Badger database at path. An empty path opens an
// in-memory database.
func OpenBadgerDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}
	return db, nil
}

// OpenBadger opens a Badger backed Store.
func OpenBadger(path string) (*Store, error) {
	db, err := OpenBadgerDB(path)
	if err != nil {
		return nil, err
	}
	return NewStore(NewBadgerPostRepository(db), NewBadgerCommentRepository(db), db.Close), nil
}
