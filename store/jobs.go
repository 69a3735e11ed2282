package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"solosphere/models"
)

// Jobs provides access to the jobs collection.
type Jobs struct {
	col *mongo.Collection
}

// NewJobs creates a jobs store backed by the given database.
func NewJobs(db *mongo.Database) *Jobs {
	return &Jobs{col: db.Collection("jobs")}
}

// JobQuery describes the /allJobs filters. Zero values mean "match
// everything, unsorted".
type JobQuery struct {
	Search   string // case-insensitive substring of jobTitle
	Category string // exact jobCategory match
	Sort     string // "asc" or "desc" on deadline; anything else is unsorted
}

// jobFilter builds the Mongo filter for a job query. The title clause is
// always present: an empty $regex pattern matches every document.
func jobFilter(q JobQuery) bson.M {
	filter := bson.M{
		"jobTitle": bson.M{"$regex": q.Search, "$options": "i"},
	}
	if q.Category != "" {
		filter["jobCategory"] = q.Category
	}
	return filter
}

func jobSort(q JobQuery) *options.FindOptions {
	opts := options.Find()
	switch q.Sort {
	case "asc":
		opts.SetSort(bson.D{{Key: "deadline", Value: 1}})
	case "desc":
		opts.SetSort(bson.D{{Key: "deadline", Value: -1}})
	}
	return opts
}

// All returns every job in the collection. No pagination; the result is
// bounded only by collection size.
func (s *Jobs) All(ctx context.Context) ([]models.Job, error) {
	return s.find(ctx, bson.M{}, options.Find())
}

// Search returns the jobs matching q.
func (s *Jobs) Search(ctx context.Context, q JobQuery) ([]models.Job, error) {
	return s.find(ctx, jobFilter(q), jobSort(q))
}

// ByBuyerEmail returns the jobs posted by the given buyer.
func (s *Jobs) ByBuyerEmail(ctx context.Context, email string) ([]models.Job, error) {
	return s.find(ctx, bson.M{"buyer.email": email}, options.Find())
}

func (s *Jobs) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer cursor.Close(ctx)

	jobs := []models.Job{}
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}
	return jobs, nil
}

// ByID returns the job with the given hex identifier, or (nil, nil) when
// no such job exists. Absence is a result, not an error.
func (s *Jobs) ByID(ctx context.Context, id string) (*models.Job, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var job models.Job
	err = s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&job)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find job %s: %w", id, err)
	}
	return &job, nil
}

// Insert stores the job exactly as given and returns the generated
// identifier.
func (s *Jobs) Insert(ctx context.Context, job models.Job) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := s.col.InsertOne(ctx, job)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert job: %w", err)
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid, nil
}

// Update sets the given fields on the matching job. When no job matches,
// a new document is created instead (upsert). That is long-standing
// behavior the frontend relies on, not an accident.
func (s *Jobs) Update(ctx context.Context, id string, fields map[string]interface{}) (*UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": fields},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, fmt.Errorf("update job %s: %w", id, err)
	}

	out := &UpdateResult{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if upserted, ok := res.UpsertedID.(primitive.ObjectID); ok {
		out.UpsertedID = upserted.Hex()
	}
	return out, nil
}

// Delete removes the job with the given identifier and reports how many
// documents were removed. Deleting an absent job is a no-op, not an
// error.
func (s *Jobs) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := objectID(id)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("delete job %s: %w", id, err)
	}
	return res.DeletedCount, nil
}

// IncrementBidCount bumps bid_count on the given job by one, creating
// the field when absent. Returns how many jobs matched; zero means the
// job no longer exists.
func (s *Jobs) IncrementBidCount(ctx context.Context, jobID string) (int64, error) {
	oid, err := objectID(jobID)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"bid_count": 1}},
	)
	if err != nil {
		return 0, fmt.Errorf("increment bid count on job %s: %w", jobID, err)
	}
	return res.MatchedCount, nil
}
