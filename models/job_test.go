package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestJobUnmarshalKeepsUnknownFields(t *testing.T) {
	payload := `{
		"jobTitle": "Build a landing page",
		"jobCategory": "Web Development",
		"deadline": "2026-10-01",
		"buyer": {"email": "buyer@x.com", "name": "Buyer", "photo": "p.png"},
		"min_price": 100,
		"max_price": 250,
		"description": "anything goes"
	}`

	var job Job
	require.NoError(t, json.Unmarshal([]byte(payload), &job))

	assert.Equal(t, "Build a landing page", job.JobTitle)
	assert.Equal(t, "Web Development", job.JobCategory)
	assert.Equal(t, "2026-10-01", job.Deadline)
	require.NotNil(t, job.Buyer)
	assert.Equal(t, "buyer@x.com", job.Buyer.Email)
	assert.Equal(t, "Buyer", job.Buyer.Extra["name"])

	// Fields the server never touches survive in the bag.
	assert.Equal(t, float64(100), job.Extra["min_price"])
	assert.Equal(t, "anything goes", job.Extra["description"])
	assert.NotContains(t, job.Extra, "jobTitle")
	assert.Nil(t, job.BidCount)
}

func TestJobMarshalFlattensDocument(t *testing.T) {
	count := int64(3)
	job := Job{
		ID:       primitive.NewObjectID(),
		JobTitle: "Build a landing page",
		Buyer:    &Buyer{Email: "buyer@x.com", Extra: map[string]interface{}{"name": "Buyer"}},
		BidCount: &count,
		Extra:    map[string]interface{}{"min_price": 100},
	}

	data, err := json.Marshal(job)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, job.ID.Hex(), doc["_id"])
	assert.Equal(t, "Build a landing page", doc["jobTitle"])
	assert.Equal(t, float64(3), doc["bid_count"])
	assert.Equal(t, float64(100), doc["min_price"])

	buyer, ok := doc["buyer"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "buyer@x.com", buyer["email"])
	assert.Equal(t, "Buyer", buyer["name"])
}

func TestJobMarshalOmitsUnsetCounter(t *testing.T) {
	data, err := json.Marshal(Job{JobTitle: "No bids yet"})
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.NotContains(t, doc, "bid_count")
	assert.NotContains(t, doc, "_id")
}

func TestBidRoundTrip(t *testing.T) {
	payload := `{
		"bidderEmail": "a@x.com",
		"buyerEmail": "buyer@x.com",
		"jobId": "507f1f77bcf86cd799439011",
		"status": "Pending",
		"price": 120,
		"comment": "I can do this"
	}`

	var bid Bid
	require.NoError(t, json.Unmarshal([]byte(payload), &bid))
	assert.Equal(t, "a@x.com", bid.BidderEmail)
	assert.Equal(t, "507f1f77bcf86cd799439011", bid.JobID)
	assert.Equal(t, "Pending", bid.Status)
	assert.Equal(t, float64(120), bid.Extra["price"])

	bid.ID = primitive.NewObjectID()
	data, err := json.Marshal(bid)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, bid.ID.Hex(), doc["_id"])
	assert.Equal(t, "buyer@x.com", doc["buyerEmail"])
	assert.Equal(t, "I can do this", doc["comment"])
}
