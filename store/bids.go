package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"solosphere/models"
)

// Bids provides access to the bids collection.
type Bids struct {
	col *mongo.Collection
}

// NewBids creates a bids store backed by the given database.
func NewBids(db *mongo.Database) *Bids {
	return &Bids{col: db.Collection("bids")}
}

// ByBidder returns the bids placed by the given bidder.
func (s *Bids) ByBidder(ctx context.Context, email string) ([]models.Bid, error) {
	return s.find(ctx, bson.M{"bidderEmail": email})
}

// ByBuyer returns the bids placed against the given buyer's jobs.
func (s *Bids) ByBuyer(ctx context.Context, email string) ([]models.Bid, error) {
	return s.find(ctx, bson.M{"buyerEmail": email})
}

func (s *Bids) find(ctx context.Context, filter bson.M) ([]models.Bid, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("query bids: %w", err)
	}
	defer cursor.Close(ctx)

	bids := []models.Bid{}
	if err := cursor.All(ctx, &bids); err != nil {
		return nil, fmt.Errorf("decode bids: %w", err)
	}
	return bids, nil
}

// Exists reports whether a bid from bidderEmail on jobID is already
// recorded. There is no unique index backing this; the check and the
// subsequent insert are separate operations.
func (s *Bids) Exists(ctx context.Context, bidderEmail, jobID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	err := s.col.FindOne(ctx, bson.M{"bidderEmail": bidderEmail, "jobId": jobID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check bid for job %s: %w", jobID, err)
	}
	return true, nil
}

// Insert stores the bid exactly as given and returns the generated
// identifier.
func (s *Bids) Insert(ctx context.Context, bid models.Bid) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := s.col.InsertOne(ctx, bid)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert bid: %w", err)
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid, nil
}

// SetStatus sets the status field on the matching bid. Any string is a
// valid status.
func (s *Bids) SetStatus(ctx context.Context, id, status string) (*UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return nil, fmt.Errorf("update bid %s status: %w", id, err)
	}
	return &UpdateResult{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}
