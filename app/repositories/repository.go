package repositories

import (
	"errors"
	"fmt"
	"sync"

	"portfolio/app/models"

	"github.com/dgraph-io/badger/v4"
)

// OpenBadger opens the Badger database at path, or an in-memory one when
// inMemory is set (path is then ignored).
func OpenBadger(path string, inMemory bool) (*badger.DB, error) {
	opts := badger.DefaultOptions(path)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts = opts.
		WithLogger(nil).
		WithNumVersionsToKeep(1)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %q: %w", path, err)
	}
	return db, nil
}

// BadgerCommentStore keeps the comment collection under CommentsKey.
// Each Save is a single Badger transaction, so a crash mid-write leaves the
// previous collection intact.
type BadgerCommentStore struct {
	db    *badger.DB
	mutex sync.Mutex
}

// NewBadgerCommentStore creates a store over an open database.
func NewBadgerCommentStore(db *badger.DB) *BadgerCommentStore {
	return &BadgerCommentStore{db: db}
}

// Load reads the persisted collection.
func (s *BadgerCommentStore) Load() ([]*models.Comment, error) {
	var comments []*models.Comment
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(CommentsKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			comments, err = unmarshalComments(val)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// Save overwrites the persisted collection.
func (s *BadgerCommentStore) Save(comments []*models.Comment) error {
	data, err := marshalComments(comments)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(CommentsKey), data)
	})
}

// Clear removes the persisted collection.
func (s *BadgerCommentStore) Clear() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(CommentsKey))
	})
}
