package repositories

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

const (
	// Key prefixes for different entity types
	PostKeyPrefix    = "post:"
	CommentKeyPrefix = "comment:"
)

// NewID returns a new time-ordered identifier, so that key order matches
// creation order.
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	return id.String(), nil
}

func postKey(id string) []byte {
	return []byte(PostKeyPrefix + id)
}

// Comments are keyed under their post so a post's comments share a prefix.
func commentKey(postID, id string) []byte {
	return []byte(CommentKeyPrefix + postID + ":" + id)
}

func commentPostPrefix(postID string) []byte {
	return []byte(CommentKeyPrefix + postID + ":")
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %w", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %w", err)
	}
	return nil
}
