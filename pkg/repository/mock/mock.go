// Package mock provides an in-memory implementation of the repository
// contracts for handler and engine tests: collections as maps keyed by id,
// never closures over shared mutable slices.
package mock

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/talentflow/talentflow/internal/models"
	"github.com/talentflow/talentflow/internal/reorder"
	"github.com/talentflow/talentflow/pkg/repository"
)

type Store struct {
	mu          sync.Mutex
	jobs        map[string]*models.Job
	candidates  map[string]*models.Candidate
	timeline    []models.TimelineEvent
	assessments map[string]*models.Assessment
	responses   []models.AssessmentResponse

	// WriteErr, when set, makes every write operation fail with it.
	WriteErr error
}

var _ repository.JobRepo = (*Store)(nil)
var _ repository.CandidateRepo = (*Store)(nil)
var _ repository.TimelineRepo = (*Store)(nil)
var _ repository.AssessmentRepo = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		jobs:        make(map[string]*models.Job),
		candidates:  make(map[string]*models.Candidate),
		assessments: make(map[string]*models.Assessment),
	}
}

func (s *Store) CreateJob(_ context.Context, j *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	cp := *j
	s.jobs[j.ID] = &cp
	return nil
}

func (s *Store) GetJob(_ context.Context, id string) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return nil, nil
	}
	cp := *j
	return &cp, nil
}

func (s *Store) ListJobs(_ context.Context, f repository.JobFilter) ([]models.Job, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []models.Job
	for _, j := range s.jobs {
		if f.Search != "" && !strings.Contains(strings.ToLower(j.Title), strings.ToLower(f.Search)) {
			continue
		}
		if f.Status != "" && j.Status != f.Status {
			continue
		}
		all = append(all, *j)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Order < all[j].Order })

	return page(all, f.Page, f.PageSize, 10), len(all), nil
}

func (s *Store) UpdateJob(_ context.Context, j *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	if _, ok := s.jobs[j.ID]; !ok {
		return fmt.Errorf("update job %q: %w", j.ID, reorder.ErrItemNotFound)
	}
	cp := *j
	s.jobs[j.ID] = &cp
	return nil
}

func (s *Store) DeleteJob(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	if _, ok := s.jobs[id]; !ok {
		return fmt.Errorf("delete job %q: %w", id, reorder.ErrItemNotFound)
	}
	delete(s.jobs, id)
	for _, p := range reorder.Reindex(s.jobItems()) {
		s.jobs[p.ID].Order = p.Order
	}
	return nil
}

func (s *Store) ListJobItems(_ context.Context) ([]reorder.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobItems(), nil
}

// ApplyOrderPatches applies patches optimistically and restores the captured
// snapshot when any patch targets an unknown job, mirroring the all-or-
// nothing semantics of the real store.
func (s *Store) ApplyOrderPatches(_ context.Context, patches []reorder.Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}

	snap := reorder.Capture(s.jobItems())
	for _, p := range patches {
		j, ok := s.jobs[p.ID]
		if !ok {
			for _, undo := range snap.Patches() {
				s.jobs[undo.ID].Order = undo.Order
			}
			return fmt.Errorf("patch job %q: %w", p.ID, reorder.ErrItemNotFound)
		}
		j.Order = p.Order
	}
	return nil
}

func (s *Store) jobItems() []reorder.Item {
	items := make([]reorder.Item, 0, len(s.jobs))
	for _, j := range s.jobs {
		items = append(items, reorder.Item{ID: j.ID, Order: j.Order})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Order < items[j].Order })
	return items
}

func (s *Store) CreateCandidate(_ context.Context, c *models.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	cp := *c
	s.candidates[c.ID] = &cp
	return nil
}

func (s *Store) GetCandidate(_ context.Context, id string) (*models.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.candidates[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (s *Store) ListCandidates(_ context.Context, f repository.CandidateFilter) ([]models.Candidate, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []models.Candidate
	for _, c := range s.candidates {
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(c.Name), q) && !strings.Contains(strings.ToLower(c.Email), q) {
				continue
			}
		}
		if f.Stage != "" && c.Stage != f.Stage {
			continue
		}
		if f.JobID != "" && c.JobID != f.JobID {
			continue
		}
		all = append(all, *c)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt != all[j].CreatedAt {
			return all[i].CreatedAt < all[j].CreatedAt
		}
		return all[i].ID < all[j].ID
	})

	return page(all, f.Page, f.PageSize, 50), len(all), nil
}

func (s *Store) UpdateCandidate(_ context.Context, c *models.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	if _, ok := s.candidates[c.ID]; !ok {
		return fmt.Errorf("update candidate %q: %w", c.ID, reorder.ErrItemNotFound)
	}
	cp := *c
	s.candidates[c.ID] = &cp
	return nil
}

func (s *Store) ApplyStageMove(_ context.Context, move *reorder.StageMove) error {
	if move == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	c, ok := s.candidates[move.CandidateID]
	if !ok {
		return fmt.Errorf("move candidate %q: %w", move.CandidateID, reorder.ErrItemNotFound)
	}
	c.Stage = move.NewStage
	s.timeline = append(s.timeline, move.Event)
	return nil
}

func (s *Store) AppendEvent(_ context.Context, e *models.TimelineEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.timeline = append(s.timeline, *e)
	return nil
}

func (s *Store) ListTimeline(_ context.Context, candidateID string) ([]models.TimelineEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.TimelineEvent
	for _, e := range s.timeline {
		if e.CandidateID == candidateID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (s *Store) GetAssessment(_ context.Context, jobID string) (*models.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assessments[models.AssessmentID(jobID)]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (s *Store) PutAssessment(_ context.Context, a *models.Assessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	cp := *a
	s.assessments[a.ID] = &cp
	return nil
}

func (s *Store) CreateResponse(_ context.Context, r *models.AssessmentResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.responses = append(s.responses, *r)
	return nil
}

func (s *Store) ListResponses(_ context.Context, assessmentID string) ([]models.AssessmentResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.AssessmentResponse
	for _, r := range s.responses {
		if r.AssessmentID == assessmentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func page[T any](all []T, pageNum, pageSize, defaultSize int) []T {
	if pageSize <= 0 {
		pageSize = defaultSize
	}
	if pageNum <= 0 {
		pageNum = 1
	}
	start := (pageNum - 1) * pageSize
	if start >= len(all) {
		return nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}
