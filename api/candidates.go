package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/talentflow/talentflow/internal/models"
	"github.com/talentflow/talentflow/internal/reorder"
	"github.com/talentflow/talentflow/pkg/repository"
)

// defaultActor is recorded as createdBy on events when the request does not
// name one.
const defaultActor = "HR Team"

type CandidatesHandler struct {
	candidates repository.CandidateRepo
	timeline   repository.TimelineRepo
}

func NewCandidatesHandler(cr repository.CandidateRepo, tr repository.TimelineRepo) *CandidatesHandler {
	return &CandidatesHandler{candidates: cr, timeline: tr}
}

func (h *CandidatesHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, pageSize := pageParams(r, 50)

	filter := repository.CandidateFilter{
		Search:   strings.TrimSpace(q.Get("search")),
		Stage:    models.Stage(q.Get("stage")),
		JobID:    q.Get("jobId"),
		Page:     page,
		PageSize: pageSize,
	}
	if filter.Stage != "" && !filter.Stage.Valid() {
		writeError(w, "invalid stage", http.StatusBadRequest)
		return
	}

	candidates, total, err := h.candidates.ListCandidates(r.Context(), filter)
	if err != nil {
		writeError(w, "failed to fetch candidates", http.StatusInternalServerError)
		return
	}
	if candidates == nil {
		candidates = []models.Candidate{}
	}

	writeJSON(w, newPagedResponse(candidates, total, page, pageSize), http.StatusOK)
}

type candidateRequest struct {
	Name   *string       `json:"name"`
	Email  *string       `json:"email"`
	Stage  *models.Stage `json:"stage"`
	JobID  *string       `json:"jobId"`
	Phone  *string       `json:"phone"`
	Resume *string       `json:"resume"`
	Skills *[]string     `json:"skills"`
	Rating *int          `json:"rating"`
	Source *string       `json:"source"`
	Notes  *string       `json:"notes"`
}

func (h *CandidatesHandler) CreateCandidate(w http.ResponseWriter, r *http.Request) {
	var req candidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		writeError(w, "name is required", http.StatusBadRequest)
		return
	}
	if req.Email == nil || strings.TrimSpace(*req.Email) == "" {
		writeError(w, "email is required", http.StatusBadRequest)
		return
	}

	now := time.Now().UTC().UnixMilli()
	c := &models.Candidate{
		ID:        "candidate-" + uuid.NewString(),
		Name:      strings.TrimSpace(*req.Name),
		Email:     strings.TrimSpace(*req.Email),
		Stage:     models.StageApplied,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Stage != nil {
		if !req.Stage.Valid() {
			writeError(w, "invalid stage", http.StatusBadRequest)
			return
		}
		c.Stage = *req.Stage
	}
	applyCandidateFields(c, &req)

	if err := h.candidates.CreateCandidate(r.Context(), c); err != nil {
		writeError(w, "failed to create candidate", http.StatusInternalServerError)
		return
	}

	writeJSON(w, c, http.StatusCreated)
}

func (h *CandidatesHandler) GetCandidate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	c, err := h.candidates.GetCandidate(r.Context(), id)
	if err != nil {
		writeError(w, "failed to fetch candidate", http.StatusInternalServerError)
		return
	}
	if c == nil {
		writeError(w, "candidate not found", http.StatusNotFound)
		return
	}

	writeJSON(w, c, http.StatusOK)
}

// PatchCandidate applies a partial update. A stage change in the patch body
// goes through the same move path as the dedicated move endpoint, so the
// same-stage no-op guard applies no matter which interface triggered it.
func (h *CandidatesHandler) PatchCandidate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req candidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	if req.Stage != nil && !req.Stage.Valid() {
		writeError(w, "invalid stage", http.StatusBadRequest)
		return
	}

	c, err := h.candidates.GetCandidate(r.Context(), id)
	if err != nil {
		writeError(w, "failed to update candidate", http.StatusInternalServerError)
		return
	}
	if c == nil {
		writeError(w, "candidate not found", http.StatusNotFound)
		return
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
		c.Email = strings.TrimSpace(*req.Email)
	}
	applyCandidateFields(c, &req)

	if err := h.candidates.UpdateCandidate(r.Context(), c); err != nil {
		writeError(w, "failed to update candidate", http.StatusInternalServerError)
		return
	}

	if req.Stage != nil {
		updated, err := h.applyMove(w, r, c, c.Stage, *req.Stage)
		if err != nil {
			return
		}
		c = updated
	}

	writeJSON(w, c, http.StatusOK)
}

type moveRequest struct {
	FromStage models.Stage `json:"fromStage"`
	ToStage   models.Stage `json:"toStage"`
}

// MoveCandidate is the kanban endpoint: a stage update plus one stage_change
// timeline event, atomically; a same-stage drop changes nothing.
func (h *CandidatesHandler) MoveCandidate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	c, err := h.candidates.GetCandidate(r.Context(), id)
	if err != nil {
		writeError(w, "failed to move candidate", http.StatusInternalServerError)
		return
	}
	if c == nil {
		writeError(w, "candidate not found", http.StatusNotFound)
		return
	}

	updated, err := h.applyMove(w, r, c, req.FromStage, req.ToStage)
	if err != nil {
		return
	}

	writeJSON(w, updated, http.StatusOK)
}

// applyMove runs the shared stage-move path. On error the response has
// already been written; callers just return.
func (h *CandidatesHandler) applyMove(w http.ResponseWriter, r *http.Request, c *models.Candidate, from, to models.Stage) (*models.Candidate, error) {
	move, err := reorder.BetweenBuckets(c, from, to, defaultActor)
	if err != nil {
		if errors.Is(err, reorder.ErrItemNotFound) {
			writeError(w, "candidate not found", http.StatusNotFound)
		} else {
			writeError(w, err.Error(), http.StatusBadRequest)
		}
		return nil, err
	}
	if move == nil {
		// same-stage: no update, no timeline entry
		return c, nil
	}

	if err := h.candidates.ApplyStageMove(r.Context(), move); err != nil {
		writeError(w, "failed to move candidate", http.StatusInternalServerError)
		return nil, err
	}

	c.Stage = move.NewStage
	return c, nil
}

func (h *CandidatesHandler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	events, err := h.timeline.ListTimeline(r.Context(), id)
	if err != nil {
		writeError(w, "failed to fetch timeline", http.StatusInternalServerError)
		return
	}
	if events == nil {
		events = []models.TimelineEvent{}
	}

	writeJSON(w, events, http.StatusOK)
}

type noteRequest struct {
	Note      string `json:"note"`
	CreatedBy string `json:"createdBy"`
}

func (h *CandidatesHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	req.Note = strings.TrimSpace(req.Note)
	if req.Note == "" {
		writeError(w, "note is required", http.StatusBadRequest)
		return
	}

	c, err := h.candidates.GetCandidate(r.Context(), id)
	if err != nil {
		writeError(w, "failed to add note", http.StatusInternalServerError)
		return
	}
	if c == nil {
		writeError(w, "candidate not found", http.StatusNotFound)
		return
	}

	actor := req.CreatedBy
	if actor == "" {
		actor = defaultActor
	}
	event := &models.TimelineEvent{
		ID:          uuid.NewString(),
		CandidateID: c.ID,
		Type:        models.EventNoteAdded,
		Note:        req.Note,
		CreatedAt:   time.Now().UTC().UnixMilli(),
		CreatedBy:   actor,
	}

	if err := h.timeline.AppendEvent(r.Context(), event); err != nil {
		writeError(w, "failed to add note", http.StatusInternalServerError)
		return
	}

	writeJSON(w, event, http.StatusCreated)
}

func applyCandidateFields(c *models.Candidate, req *candidateRequest) {
	if req.JobID != nil {
		c.JobID = *req.JobID
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Resume != nil {
		c.Resume = *req.Resume
	}
	if req.Skills != nil {
		c.Skills = *req.Skills
	}
	if req.Rating != nil {
		c.Rating = req.Rating
	}
	if req.Source != nil {
		c.Source = *req.Source
	}
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
}
