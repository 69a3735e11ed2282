package models

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bid represents one application for a job. JobID is the hex identifier
// of the job being bid on, copied in by the frontend; it is not a
// store-enforced foreign key. Status is free-form.
type Bid struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty"`
	BidderEmail string                 `bson:"bidderEmail,omitempty"`
	BuyerEmail  string                 `bson:"buyerEmail,omitempty"`
	JobID       string                 `bson:"jobId,omitempty"`
	Status      string                 `bson:"status,omitempty"`
	Extra       map[string]interface{} `bson:",inline"`
}

func (b Bid) MarshalJSON() ([]byte, error) {
	doc := make(map[string]interface{}, len(b.Extra)+5)
	for k, v := range b.Extra {
		doc[k] = v
	}
	if !b.ID.IsZero() {
		doc["_id"] = b.ID.Hex()
	}
	if b.BidderEmail != "" {
		doc["bidderEmail"] = b.BidderEmail
	}
	if b.BuyerEmail != "" {
		doc["buyerEmail"] = b.BuyerEmail
	}
	if b.JobID != "" {
		doc["jobId"] = b.JobID
	}
	if b.Status != "" {
		doc["status"] = b.Status
	}
	return json.Marshal(doc)
}

func (b *Bid) UnmarshalJSON(data []byte) error {
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	b.BidderEmail = popString(doc, "bidderEmail")
	b.BuyerEmail = popString(doc, "buyerEmail")
	b.JobID = popString(doc, "jobId")
	b.Status = popString(doc, "status")
	b.Extra = doc
	return nil
}
