package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/talentflow/talentflow/internal/models"
	"github.com/talentflow/talentflow/internal/reorder"
	"github.com/talentflow/talentflow/pkg/repository"
)

type JobsHandler struct {
	jobs repository.JobRepo
}

func NewJobsHandler(jr repository.JobRepo) *JobsHandler {
	return &JobsHandler{jobs: jr}
}

func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, pageSize := pageParams(r, 10)

	filter := repository.JobFilter{
		Search:   strings.TrimSpace(q.Get("search")),
		Status:   models.JobStatus(q.Get("status")),
		Page:     page,
		PageSize: pageSize,
	}
	if filter.Status != "" && !filter.Status.Valid() {
		writeError(w, "invalid status", http.StatusBadRequest)
		return
	}

	jobs, total, err := h.jobs.ListJobs(r.Context(), filter)
	if err != nil {
		writeError(w, "failed to fetch jobs", http.StatusInternalServerError)
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}

	writeJSON(w, newPagedResponse(jobs, total, page, pageSize), http.StatusOK)
}

type jobRequest struct {
	Title       *string           `json:"title"`
	Slug        *string           `json:"slug"`
	Status      *models.JobStatus `json:"status"`
	Tags        *[]string         `json:"tags"`
	Description *string           `json:"description"`
}

func (h *JobsHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req jobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		writeError(w, "title is required", http.StatusBadRequest)
		return
	}

	// new jobs land at the end of the board; order is the list length
	items, err := h.jobs.ListJobItems(r.Context())
	if err != nil {
		writeError(w, "failed to create job", http.StatusInternalServerError)
		return
	}

	now := time.Now().UTC().UnixMilli()
	job := &models.Job{
		ID:        "job-" + uuid.NewString(),
		Title:     strings.TrimSpace(*req.Title),
		Status:    models.JobActive,
		Tags:      []string{},
		Order:     len(items),
		CreatedAt: now,
		UpdatedAt: now,
	}
	job.Slug = slugify(job.Title)

	if req.Slug != nil && *req.Slug != "" {
		job.Slug = slugify(*req.Slug)
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			writeError(w, "invalid status", http.StatusBadRequest)
			return
		}
		job.Status = *req.Status
	}
	if req.Tags != nil {
		job.Tags = *req.Tags
	}
	if req.Description != nil {
		job.Description = *req.Description
	}

	if err := h.jobs.CreateJob(r.Context(), job); err != nil {
		writeError(w, "failed to create job", http.StatusInternalServerError)
		return
	}

	writeJSON(w, job, http.StatusCreated)
}

func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	job, err := h.jobs.GetJob(r.Context(), id)
	if err != nil {
		writeError(w, "failed to fetch job", http.StatusInternalServerError)
		return
	}
	if job == nil {
		writeError(w, "job not found", http.StatusNotFound)
		return
	}

	writeJSON(w, job, http.StatusOK)
}

func (h *JobsHandler) PatchJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req jobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	job, err := h.jobs.GetJob(r.Context(), id)
	if err != nil {
		writeError(w, "failed to update job", http.StatusInternalServerError)
		return
	}
	if job == nil {
		writeError(w, "job not found", http.StatusNotFound)
		return
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		job.Title = strings.TrimSpace(*req.Title)
	}
	if req.Slug != nil && *req.Slug != "" {
		job.Slug = slugify(*req.Slug)
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			writeError(w, "invalid status", http.StatusBadRequest)
			return
		}
		job.Status = *req.Status
	}
	if req.Tags != nil {
		job.Tags = *req.Tags
	}
	if req.Description != nil {
		job.Description = *req.Description
	}

	if err := h.jobs.UpdateJob(r.Context(), job); err != nil {
		writeError(w, "failed to update job", http.StatusInternalServerError)
		return
	}

	writeJSON(w, job, http.StatusOK)
}

type reorderRequest struct {
	FromOrder int `json:"fromOrder"`
	ToOrder   int `json:"toOrder"`
}

func (h *JobsHandler) ReorderJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	items, err := h.jobs.ListJobItems(r.Context())
	if err != nil {
		writeError(w, "failed to reorder job", http.StatusInternalServerError)
		return
	}

	patches, err := reorder.WithinList(items, id, req.FromOrder, req.ToOrder)
	if err != nil {
		if errors.Is(err, reorder.ErrItemNotFound) {
			writeError(w, "job not found", http.StatusNotFound)
			return
		}
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.jobs.ApplyOrderPatches(r.Context(), patches); err != nil {
		writeError(w, "failed to reorder job", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]bool{"success": true}, http.StatusOK)
}

func (h *JobsHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.jobs.DeleteJob(r.Context(), id); err != nil {
		if errors.Is(err, reorder.ErrItemNotFound) {
			writeError(w, "job not found", http.StatusNotFound)
			return
		}
		writeError(w, "failed to delete job", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// slugify lowercases, hyphenates whitespace runs, and drops anything outside
// [a-z0-9-].
func slugify(title string) string {
	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsSpace(r):
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		case r == '-' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = r == '-'
		}
	}
	return strings.Trim(b.String(), "-")
}
