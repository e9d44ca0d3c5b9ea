package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/talentflow/talentflow/internal/assessment"
	"github.com/talentflow/talentflow/internal/models"
	"github.com/talentflow/talentflow/pkg/repository"
)

type AssessmentsHandler struct {
	assessments repository.AssessmentRepo
	timeline    repository.TimelineRepo
}

func NewAssessmentsHandler(ar repository.AssessmentRepo, tr repository.TimelineRepo) *AssessmentsHandler {
	return &AssessmentsHandler{assessments: ar, timeline: tr}
}

func (h *AssessmentsHandler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["jobId"]

	a, err := h.assessments.GetAssessment(r.Context(), jobID)
	if err != nil {
		writeError(w, "failed to fetch assessment", http.StatusInternalServerError)
		return
	}
	if a == nil {
		// absence means "no assessment yet", surfaced as a plain 404
		writeError(w, "assessment not found", http.StatusNotFound)
		return
	}

	writeJSON(w, a, http.StatusOK)
}

type putAssessmentRequest struct {
	Title    string                     `json:"title"`
	Sections []models.AssessmentSection `json:"sections"`
}

// PutAssessment replaces the whole definition for a job. The payload is
// checked against the wire schema, then structurally (conditional reference
// ordering, per-type rules) before it is stored.
func (h *AssessmentsHandler) PutAssessment(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["jobId"]

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := assessment.ValidatePayload(r.Context(), body); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req putAssessmentRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := assessment.CheckDefinition(req.Sections); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	now := time.Now().UTC().UnixMilli()
	a := &models.Assessment{
		ID:        models.AssessmentID(jobID),
		JobID:     jobID,
		Title:     req.Title,
		Sections:  req.Sections,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if existing, err := h.assessments.GetAssessment(r.Context(), jobID); err == nil && existing != nil {
		a.CreatedAt = existing.CreatedAt
	}

	if err := h.assessments.PutAssessment(r.Context(), a); err != nil {
		writeError(w, "failed to save assessment", http.StatusInternalServerError)
		return
	}

	writeJSON(w, a, http.StatusOK)
}

type submitRequest struct {
	CandidateID string               `json:"candidateId"`
	Responses   assessment.Responses `json:"responses"`
}

// SubmitResponse validates a candidate's answers against the stored
// definition and records the submission. Validation failures come back as
// the full per-question error map so every field error renders at once.
func (h *AssessmentsHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["jobId"]

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Responses == nil {
		req.Responses = assessment.Responses{}
	}

	a, err := h.assessments.GetAssessment(r.Context(), jobID)
	if err != nil {
		writeError(w, "failed to submit assessment", http.StatusInternalServerError)
		return
	}
	if a == nil {
		writeError(w, "assessment not found", http.StatusNotFound)
		return
	}

	if errs := assessment.Validate(a.Sections, req.Responses); len(errs) > 0 {
		writeJSON(w, map[string]any{"errors": errs}, http.StatusUnprocessableEntity)
		return
	}

	resp := &models.AssessmentResponse{
		ID:           "response-" + uuid.NewString(),
		AssessmentID: a.ID,
		CandidateID:  strings.TrimSpace(req.CandidateID),
		Responses:    req.Responses,
		CompletedAt:  time.Now().UTC().UnixMilli(),
	}
	if err := h.assessments.CreateResponse(r.Context(), resp); err != nil {
		writeError(w, "failed to submit assessment", http.StatusInternalServerError)
		return
	}

	if resp.CandidateID != "" {
		event := &models.TimelineEvent{
			ID:          uuid.NewString(),
			CandidateID: resp.CandidateID,
			Type:        models.EventAssessmentCompleted,
			Note:        a.Title,
			CreatedAt:   resp.CompletedAt,
			CreatedBy:   defaultActor,
		}
		if err := h.timeline.AppendEvent(r.Context(), event); err != nil {
			// the submission itself landed; log and keep going
			logger.Error("append assessment_completed event", "err", err)
		}
	}

	writeJSON(w, resp, http.StatusCreated)
}

func (h *AssessmentsHandler) ListResponses(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["jobId"]

	list, err := h.assessments.ListResponses(r.Context(), models.AssessmentID(jobID))
	if err != nil {
		writeError(w, "failed to fetch responses", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []models.AssessmentResponse{}
	}

	writeJSON(w, list, http.StatusOK)
}
