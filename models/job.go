package models

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Job represents a posted job. Only the fields the server itself queries
// or updates are typed; everything else the frontend sends rides along in
// Extra untouched (documents are schema-free).
type Job struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty"`
	JobTitle    string                 `bson:"jobTitle,omitempty"`
	JobCategory string                 `bson:"jobCategory,omitempty"`
	Deadline    string                 `bson:"deadline,omitempty"`
	Buyer       *Buyer                 `bson:"buyer,omitempty"`
	BidCount    *int64                 `bson:"bid_count,omitempty"`
	Extra       map[string]interface{} `bson:",inline"`
}

// Buyer is the poster of a job. Email is the lookup key for the
// per-buyer job listing.
type Buyer struct {
	Email string                 `bson:"email,omitempty"`
	Extra map[string]interface{} `bson:",inline"`
}

// MarshalJSON flattens the typed fields and the extra bag back into a
// single document, with the identifier rendered as its hex string.
func (j Job) MarshalJSON() ([]byte, error) {
	doc := make(map[string]interface{}, len(j.Extra)+6)
	for k, v := range j.Extra {
		doc[k] = v
	}
	if !j.ID.IsZero() {
		doc["_id"] = j.ID.Hex()
	}
	if j.JobTitle != "" {
		doc["jobTitle"] = j.JobTitle
	}
	if j.JobCategory != "" {
		doc["jobCategory"] = j.JobCategory
	}
	if j.Deadline != "" {
		doc["deadline"] = j.Deadline
	}
	if j.Buyer != nil {
		doc["buyer"] = j.Buyer
	}
	if j.BidCount != nil {
		doc["bid_count"] = *j.BidCount
	}
	return json.Marshal(doc)
}

// UnmarshalJSON pulls the typed fields out of the incoming document and
// keeps whatever remains in Extra.
func (j *Job) UnmarshalJSON(data []byte) error {
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	j.JobTitle = popString(doc, "jobTitle")
	j.JobCategory = popString(doc, "jobCategory")
	j.Deadline = popString(doc, "deadline")
	if raw, ok := doc["buyer"].(map[string]interface{}); ok {
		j.Buyer = &Buyer{Email: popString(raw, "email"), Extra: raw}
		delete(doc, "buyer")
	}
	if raw, ok := doc["bid_count"].(float64); ok {
		count := int64(raw)
		j.BidCount = &count
		delete(doc, "bid_count")
	}
	j.Extra = doc
	return nil
}

func (b Buyer) MarshalJSON() ([]byte, error) {
	doc := make(map[string]interface{}, len(b.Extra)+1)
	for k, v := range b.Extra {
		doc[k] = v
	}
	if b.Email != "" {
		doc["email"] = b.Email
	}
	return json.Marshal(doc)
}

func (b *Buyer) UnmarshalJSON(data []byte) error {
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	b.Email = popString(doc, "email")
	b.Extra = doc
	return nil
}

// popString removes key from doc and returns it when it is a string.
func popString(doc map[string]interface{}, key string) string {
	if v, ok := doc[key].(string); ok {
		delete(doc, key)
		return v
	}
	return ""
}
