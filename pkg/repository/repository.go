package repository

import (
	"context"

	"github.com/talentflow/talentflow/internal/models"
	"github.com/talentflow/talentflow/internal/reorder"
)

// Repository interfaces for the four TalentFlow collections. These are the
// public contracts consumers should depend on; concrete implementations live
// under internal/.

// JobFilter narrows and pages a job listing. Search is a case-insensitive
// substring match on the title; Status an exact match when set.
type JobFilter struct {
	Search   string
	Status   models.JobStatus
	Page     int
	PageSize int
}

// CandidateFilter narrows and pages a candidate listing. Search matches
// name or email substrings; Stage and JobID are exact when set.
type CandidateFilter struct {
	Search   string
	Stage    models.Stage
	JobID    string
	Page     int
	PageSize int
}

type JobRepo interface {
	CreateJob(ctx context.Context, j *models.Job) error
	GetJob(ctx context.Context, id string) (*models.Job, error)
	ListJobs(ctx context.Context, f JobFilter) ([]models.Job, int, error)
	UpdateJob(ctx context.Context, j *models.Job) error
	// DeleteJob removes the job and compacts the remaining order values so
	// the density invariant survives deletion.
	DeleteJob(ctx context.Context, id string) error
	// ListJobItems returns every job as an ordered-list item, sorted by
	// order ascending, for reorder computation.
	ListJobItems(ctx context.Context) ([]reorder.Item, error)
	// ApplyOrderPatches applies a reorder patch set atomically: either every
	// order update lands or none do.
	ApplyOrderPatches(ctx context.Context, patches []reorder.Patch) error
}

type CandidateRepo interface {
	CreateCandidate(ctx context.Context, c *models.Candidate) error
	GetCandidate(ctx context.Context, id string) (*models.Candidate, error)
	ListCandidates(ctx context.Context, f CandidateFilter) ([]models.Candidate, int, error)
	UpdateCandidate(ctx context.Context, c *models.Candidate) error
	// ApplyStageMove updates the candidate's stage and appends the move's
	// timeline event as one atomic write.
	ApplyStageMove(ctx context.Context, move *reorder.StageMove) error
}

type TimelineRepo interface {
	AppendEvent(ctx context.Context, e *models.TimelineEvent) error
	// ListTimeline returns a candidate's events sorted by createdAt descending.
	ListTimeline(ctx context.Context, candidateID string) ([]models.TimelineEvent, error)
}

// Store is the full document-store contract: the four collections behind
// one injected dependency.
type Store interface {
	JobRepo
	CandidateRepo
	TimelineRepo
	AssessmentRepo
}

type AssessmentRepo interface {
	// GetAssessment returns the assessment for a job, or nil when the job
	// has none yet; absence is a normal state, not an error.
	GetAssessment(ctx context.Context, jobID string) (*models.Assessment, error)
	// PutAssessment replaces the whole definition record for a job.
	PutAssessment(ctx context.Context, a *models.Assessment) error
	CreateResponse(ctx context.Context, r *models.AssessmentResponse) error
	ListResponses(ctx context.Context, assessmentID string) ([]models.AssessmentResponse, error)
}
