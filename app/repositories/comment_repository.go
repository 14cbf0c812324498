package repositories

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"inkpost/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCommentRepository implements CommentRepository using BadgerDB
type BadgerCommentRepository struct {
	db *badger.DB
}

// NewBadgerCommentRepository creates a new BadgerCommentRepository
func NewBadgerCommentRepository(db *badger.DB) *BadgerCommentRepository {
	return &BadgerCommentRepository{db: db}
}

// Create assigns an ID to the comment and stores it under its post
func (r *BadgerCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := comment.Validate(); err != nil {
		return fmt.Errorf("invalid comment: %w", err)
	}
	id, err := NewID()
	if err != nil {
		return err
	}

	data, err := marshalEntity(&models.Comment{
		ID:   id,
		Name: comment.Name,
		Text: comment.Text,
		Date: comment.Date,
		Post: comment.Post,
	})
	if err != nil {
		return err
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(commentKey(comment.Post, id), data)
	})
	if err != nil {
		return err
	}
	comment.ID = id
	return nil
}

// List retrieves every comment in the store in creation order
func (r *BadgerCommentRepository) List(ctx context.Context) ([]*models.Comment, error) {
	comments, err := r.listPrefix([]byte(CommentKeyPrefix))
	if err != nil {
		return nil, err
	}
	// Keys group comments by post; ids are time ordered.
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].ID < comments[j].ID
	})
	return comments, nil
}

// ListByPost retrieves all comments for a post
func (r *BadgerCommentRepository) ListByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	return r.listPrefix(commentPostPrefix(postID))
}

func (r *BadgerCommentRepository) listPrefix(prefix []byte) ([]*models.Comment, error) {
	comments := make([]*models.Comment, 0)
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if !directChild(prefix, it.Item().Key()) {
				continue
			}
			var comment models.Comment
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &comment)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal comment: %w", err)
			}
			comments = append(comments, &comment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// Delete deletes a comment by ID
func (r *BadgerCommentRepository) Delete(ctx context.Context, id string) error {
	want := []byte(id)

	return r.db.Update(func(txn *badger.Txn) error {
		// Find the comment's key
		var key []byte
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)

		prefix := []byte(CommentKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if k := it.Item().Key(); bytes.Equal(commentIDOf(k), want) {
				key = it.Item().KeyCopy(nil)
				break
			}
		}
		it.Close()

		if key == nil {
			return ErrNotFound
		}
		return txn.Delete(key)
	})
}

// DeleteByPost deletes every comment of a post and returns how many were removed
func (r *BadgerCommentRepository) DeleteByPost(ctx context.Context, postID string) (int, error) {
	var deleted int

	err := r.db.Update(func(txn *badger.Txn) error {
		var keys [][]byte
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)

		prefix := commentPostPrefix(postID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if directChild(prefix, it.Item().Key()) {
				keys = append(keys, it.Item().KeyCopy(nil))
			}
		}
		it.Close()

		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		deleted = len(keys)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// commentIDOf returns the id segment of a comment key, which follows the last ':'.
func commentIDOf(key []byte) []byte {
	return key[bytes.LastIndexByte(key, ':')+1:]
}

// directChild reports whether key is a comment key directly under prefix.
// Post ids supplied by clients may themselves contain ':'.
func directChild(prefix, key []byte) bool {
	rest := key[len(prefix):]
	if bytes.Equal(prefix, []byte(CommentKeyPrefix)) {
		return true
	}
	return bytes.IndexByte(rest, ':') < 0
}
