package models

// JobStatus is the lifecycle state of a job posting.
type JobStatus string

const (
	JobActive   JobStatus = "active"
	JobArchived JobStatus = "archived"
)

func (s JobStatus) Valid() bool {
	return s == JobActive || s == JobArchived
}

// Stage is one of the six fixed pipeline states a candidate occupies.
// Transitions are unconstrained: any stage may move to any other.
type Stage string

const (
	StageApplied  Stage = "applied"
	StageScreen   Stage = "screen"
	StageTech     Stage = "tech"
	StageOffer    Stage = "offer"
	StageHired    Stage = "hired"
	StageRejected Stage = "rejected"
)

// Stages lists all pipeline stages in display order.
var Stages = []Stage{StageApplied, StageScreen, StageTech, StageOffer, StageHired, StageRejected}

func (s Stage) Valid() bool {
	for _, v := range Stages {
		if s == v {
			return true
		}
	}
	return false
}

// Job is a posting on the jobs board. Order values across all jobs are
// unique, dense, zero-based integers reflecting display sequence.
type Job struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Slug        string    `json:"slug" db:"slug"`
	Status      JobStatus `json:"status" db:"status"`
	Tags        []string  `json:"tags" db:"tags"`
	Order       int       `json:"order" db:"ord"`
	Description string    `json:"description,omitempty" db:"description"`
	CreatedAt   int64     `json:"createdAt" db:"created"`
	UpdatedAt   int64     `json:"updatedAt" db:"updated"`
}

type Candidate struct {
	ID        string   `json:"id" db:"id"`
	Name      string   `json:"name" db:"name"`
	Email     string   `json:"email" db:"email"`
	Stage     Stage    `json:"stage" db:"stage"`
	JobID     string   `json:"jobId" db:"job_id"`
	Phone     string   `json:"phone,omitempty" db:"phone"`
	Resume    string   `json:"resume,omitempty" db:"resume"`
	Skills    []string `json:"skills,omitempty" db:"skills"`
	Rating    *int     `json:"rating,omitempty" db:"rating"`
	Source    string   `json:"source,omitempty" db:"source"`
	Notes     string   `json:"notes,omitempty" db:"notes"`
	CreatedAt int64    `json:"createdAt" db:"created"`
	UpdatedAt int64    `json:"updatedAt" db:"updated"`
}

// EventType classifies timeline entries on a candidate's history.
type EventType string

const (
	EventStageChange         EventType = "stage_change"
	EventNoteAdded           EventType = "note_added"
	EventAssessmentCompleted EventType = "assessment_completed"
)

// TimelineEvent is an append-only record owned by a candidate, ordered by
// CreatedAt descending for display.
type TimelineEvent struct {
	ID          string    `json:"id" db:"id"`
	CandidateID string    `json:"candidateId" db:"candidate_id"`
	Type        EventType `json:"type" db:"type"`
	FromStage   Stage     `json:"fromStage,omitempty" db:"from_stage"`
	ToStage     Stage     `json:"toStage,omitempty" db:"to_stage"`
	Note        string    `json:"note,omitempty" db:"note"`
	CreatedAt   int64     `json:"createdAt" db:"created"`
	CreatedBy   string    `json:"createdBy" db:"created_by"`
}

// QuestionType is the kind of input a question renders and validates as.
type QuestionType string

const (
	SingleChoice QuestionType = "single-choice"
	MultiChoice  QuestionType = "multi-choice"
	ShortText    QuestionType = "short-text"
	LongText     QuestionType = "long-text"
	Numeric      QuestionType = "numeric"
	FileUpload   QuestionType = "file-upload"
)

func (t QuestionType) Valid() bool {
	switch t {
	case SingleChoice, MultiChoice, ShortText, LongText, Numeric, FileUpload:
		return true
	}
	return false
}

// Choice reports whether the type requires an options list.
func (t QuestionType) Choice() bool {
	return t == SingleChoice || t == MultiChoice
}

// Text reports whether length validation rules apply to the type.
func (t QuestionType) Text() bool {
	return t == ShortText || t == LongText
}

// Validation holds the optional per-question constraints. Min/Max apply only
// to numeric questions, MinLength/MaxLength only to text questions.
type Validation struct {
	MinLength *int     `json:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
}

// Condition gates a question's visibility on an earlier question's answer.
// Answer is either a single string or a list of strings, matching the wire
// shape; it decodes from JSON as string or []any.
type Condition struct {
	QuestionID string `json:"questionId"`
	Answer     any    `json:"answer"`
}

type Question struct {
	ID            string       `json:"id"`
	Type          QuestionType `json:"type"`
	Text          string       `json:"text"`
	Required      bool         `json:"required"`
	Options       []string     `json:"options,omitempty"`
	Validation    *Validation  `json:"validation,omitempty"`
	ConditionalOn *Condition   `json:"conditionalOn,omitempty"`
}

type AssessmentSection struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Assessment is the section/question tree for one job. The id is derived
// from the job id, enforcing a 1:1 relationship.
type Assessment struct {
	ID        string              `json:"id" db:"id"`
	JobID     string              `json:"jobId" db:"job_id"`
	Title     string              `json:"title" db:"title"`
	Sections  []AssessmentSection `json:"sections" db:"sections"`
	CreatedAt int64               `json:"createdAt" db:"created"`
	UpdatedAt int64               `json:"updatedAt" db:"updated"`
}

// AssessmentID derives the assessment id for a job.
func AssessmentID(jobID string) string {
	return "assessment-" + jobID
}

// AssessmentResponse is a candidate's submission, immutable after creation.
// Response values are strings except for multi-choice answers, which are
// lists of strings.
type AssessmentResponse struct {
	ID           string         `json:"id" db:"id"`
	AssessmentID string         `json:"assessmentId" db:"assessment_id"`
	CandidateID  string         `json:"candidateId" db:"candidate_id"`
	Responses    map[string]any `json:"responses" db:"responses"`
	CompletedAt  int64          `json:"completedAt" db:"completed"`
}
