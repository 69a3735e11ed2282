// Package store wraps the MongoDB collections behind small typed stores.
// The stores are constructed once at startup and injected into the HTTP
// handlers; nothing here is a package-level singleton.
package store

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidID is returned when a route parameter is not a valid
// ObjectID hex string.
var ErrInvalidID = errors.New("invalid document id")

// opTimeout bounds every single store operation. Connection pooling and
// retry behavior stay with the driver.
const opTimeout = 5 * time.Second

// UpdateResult is the subset of the driver's update result the handlers
// echo back to the frontend.
type UpdateResult struct {
	MatchedCount  int64
	ModifiedCount int64
	UpsertedCount int64
	UpsertedID    string
}

func objectID(hex string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}
