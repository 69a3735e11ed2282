package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"solosphere/models"
	"solosphere/store"
)

// BidStore is the slice of the bids collection the bid handler needs.
type BidStore interface {
	ByBidder(ctx context.Context, email string) ([]models.Bid, error)
	ByBuyer(ctx context.Context, email string) ([]models.Bid, error)
	Exists(ctx context.Context, bidderEmail, jobID string) (bool, error)
	Insert(ctx context.Context, bid models.Bid) (primitive.ObjectID, error)
	SetStatus(ctx context.Context, id, status string) (*store.UpdateResult, error)
}

// JobCounter is the one jobs-collection operation bid creation touches.
type JobCounter interface {
	IncrementBidCount(ctx context.Context, jobID string) (int64, error)
}

// BidHandler handles HTTP requests for bid operations.
type BidHandler struct {
	bids BidStore
	jobs JobCounter
}

// NewBidHandler creates a new bid handler.
func NewBidHandler(bids BidStore, jobs JobCounter) *BidHandler {
	return &BidHandler{bids: bids, jobs: jobs}
}

// Create handles POST /addBid. A bidder may apply to a job once: a
// second bid with the same bidderEmail and jobId is rejected before
// anything is written. The existence check, the insert and the job
// counter increment are three separate store operations; there is no
// transaction around them, and a bid whose counter increment matches no
// job still stands.
func (bh *BidHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var bid models.Bid
	if err := json.NewDecoder(r.Body).Decode(&bid); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	exists, err := bh.bids.Exists(r.Context(), bid.BidderEmail, bid.JobID)
	if err != nil {
		log.Printf("Failed to check existing bid: %v\n", err)
		writeError(w, http.StatusInternalServerError, "Failed to create bid")
		return
	}
	if exists {
		writeError(w, http.StatusBadRequest, "You already applied for the job!!!")
		return
	}

	id, err := bh.bids.Insert(r.Context(), bid)
	if err != nil {
		log.Printf("Failed to insert bid: %v\n", err)
		writeError(w, http.StatusInternalServerError, "Failed to create bid")
		return
	}

	matched, err := bh.jobs.IncrementBidCount(r.Context(), bid.JobID)
	if err != nil {
		log.Printf("Failed to increment bid count for job %s: %v\n", bid.JobID, err)
	} else if matched == 0 {
		log.Printf("Bid count increment matched no job %s\n", bid.JobID)
	}

	writeJSON(w, http.StatusOK, insertAck{Acknowledged: true, InsertedID: id.Hex()})
}

// ListByBidder handles GET /myBids/:email - the bids a bidder has placed.
func (bh *BidHandler) ListByBidder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bids, err := bh.bids.ByBidder(r.Context(), ps.ByName("email"))
	if err != nil {
		log.Printf("Failed to list bids by bidder: %v\n", err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve bids")
		return
	}
	writeJSON(w, http.StatusOK, bids)
}

// ListByBuyer handles GET /bidRequest/:email - the bids against a
// buyer's jobs. The session identity must equal the email parameter
// exactly; buyers only see their own bid requests.
func (bh *BidHandler) ListByBuyer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	email := ps.ByName("email")
	if identity, ok := SessionEmail(r.Context()); !ok || identity != email {
		writeError(w, http.StatusUnauthorized, "forbidden access")
		return
	}

	bids, err := bh.bids.ByBuyer(r.Context(), email)
	if err != nil {
		log.Printf("Failed to list bids by buyer: %v\n", err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve bids")
		return
	}
	writeJSON(w, http.StatusOK, bids)
}

// UpdateStatus handles PATCH /bidStatusUpdate/:id - sets the status
// field to whatever string the body carries.
func (bh *BidHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		UpdatedStatus string `json:"updatedStatus"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := bh.bids.SetStatus(r.Context(), ps.ByName("id"), body.UpdatedStatus)
	if errors.Is(err, store.ErrInvalidID) {
		writeError(w, http.StatusBadRequest, "Invalid bid ID format")
		return
	}
	if err != nil {
		log.Printf("Failed to update bid status: %v\n", err)
		writeError(w, http.StatusInternalServerError, "Failed to update bid")
		return
	}
	writeJSON(w, http.StatusOK, updateAck{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	})
}
