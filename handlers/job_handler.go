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

// JobStore is the slice of the jobs collection the job handler needs.
type JobStore interface {
	All(ctx context.Context) ([]models.Job, error)
	Search(ctx context.Context, q store.JobQuery) ([]models.Job, error)
	ByBuyerEmail(ctx context.Context, email string) ([]models.Job, error)
	ByID(ctx context.Context, id string) (*models.Job, error)
	Insert(ctx context.Context, job models.Job) (primitive.ObjectID, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*store.UpdateResult, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// JobHandler handles HTTP requests for job operations.
type JobHandler struct {
	jobs JobStore
}

// NewJobHandler creates a new job handler.
func NewJobHandler(jobs JobStore) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// List handles GET /jobs - returns every job, unfiltered.
func (jh *JobHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	jobs, err := jh.jobs.All(r.Context())
	if err != nil {
		log.Printf("Failed to list jobs: %v\n", err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve jobs")
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

// ListFiltered handles GET /allJobs with search, filterByCategory and
// sort query parameters. Absent parameters match everything, unsorted.
func (jh *JobHandler) ListFiltered(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	q := store.JobQuery{
		Search:   query.Get("search"),
		Category: query.Get("filterByCategory"),
		Sort:     query.Get("sort"),
	}

	jobs, err := jh.jobs.Search(r.Context(), q)
	if err != nil {
		log.Printf("Failed to search jobs: %v\n", err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve jobs")
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

// ListByBuyer handles GET /jobs/:email - the jobs a buyer has posted.
func (jh *JobHandler) ListByBuyer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	jobs, err := jh.jobs.ByBuyerEmail(r.Context(), ps.ByName("email"))
	if err != nil {
		log.Printf("Failed to list jobs by buyer: %v\n", err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve jobs")
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

// Get handles GET /job/:id. A missing job is an empty (null) result with
// status 200, never an error.
func (jh *JobHandler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	job, err := jh.jobs.ByID(r.Context(), ps.ByName("id"))
	if errors.Is(err, store.ErrInvalidID) {
		writeError(w, http.StatusBadRequest, "Invalid job ID format")
		return
	}
	if err != nil {
		log.Printf("Failed to find job: %v\n", err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve job")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// Create handles POST /addJob - inserts the payload verbatim. No field
// validation; documents are schema-free.
func (jh *JobHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var job models.Job
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := jh.jobs.Insert(r.Context(), job)
	if err != nil {
		log.Printf("Failed to insert job: %v\n", err)
		writeError(w, http.StatusInternalServerError, "Failed to create job")
		return
	}
	writeJSON(w, http.StatusOK, insertAck{Acknowledged: true, InsertedID: id.Hex()})
}

// Update handles PUT /updateJob/:id - sets the payload's fields on the
// matching job, creating a new document when none matches.
func (jh *JobHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := jh.jobs.Update(r.Context(), ps.ByName("id"), fields)
	if errors.Is(err, store.ErrInvalidID) {
		writeError(w, http.StatusBadRequest, "Invalid job ID format")
		return
	}
	if err != nil {
		log.Printf("Failed to update job: %v\n", err)
		writeError(w, http.StatusInternalServerError, "Failed to update job")
		return
	}
	writeJSON(w, http.StatusOK, updateAck{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	})
}

// Delete handles DELETE /job/:id. Deleting an absent job reports zero
// deleted documents and succeeds.
func (jh *JobHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	deleted, err := jh.jobs.Delete(r.Context(), ps.ByName("id"))
	if errors.Is(err, store.ErrInvalidID) {
		writeError(w, http.StatusBadRequest, "Invalid job ID format")
		return
	}
	if err != nil {
		log.Printf("Failed to delete job: %v\n", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete job")
		return
	}
	writeJSON(w, http.StatusOK, deleteAck{Acknowledged: true, DeletedCount: deleted})
}
