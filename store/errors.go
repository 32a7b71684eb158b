// Package store persists the application's entities in MongoDB. Uniqueness
// of emails and catalog names is backed by unique indexes (see db.EnsureIndexes),
// so a duplicate insert fails atomically instead of racing a prior lookup.
package store

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound means no document matched the given id or filter.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate means a unique index rejected the write.
	ErrDuplicate = errors.New("duplicate value for unique field")
)

// translate maps driver errors onto the store's sentinel errors.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}
