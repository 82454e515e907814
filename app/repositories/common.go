package repositories

import (
	"encoding/json"
	"errors"
	"fmt"

	"portfolio/app/models"
)

// CommentsKey is the storage key holding the serialized comment collection.
const CommentsKey = "portfolio_comments"

var (
	ErrNotFound = errors.New("record not found")
)

// marshalComments serializes the collection; a nil slice is stored as [].
func marshalComments(comments []*models.Comment) ([]byte, error) {
	if comments == nil {
		comments = []*models.Comment{}
	}
	data, err := json.Marshal(comments)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal comments: %w", err)
	}
	return data, nil
}

// unmarshalComments decodes a saved collection. null entries are dropped.
func unmarshalComments(data []byte) ([]*models.Comment, error) {
	var decoded []*models.Comment
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("failed to unmarshal comments: %w", err)
	}
	comments := decoded[:0]
	for _, c := range decoded {
		if c != nil {
			comments = append(comments, c)
		}
	}
	return comments, nil
}
