package sqlite

import (
	"context"
	"testing"

	"github.com/talentflow/talentflow/internal/db"
	"github.com/talentflow/talentflow/internal/models"
	"github.com/talentflow/talentflow/internal/reorder"
	"github.com/talentflow/talentflow/pkg/repository"
)

func testRepo(t *testing.T) *SQLiteRepo {
	t.Helper()
	ctx := context.Background()

	d, err := db.New(ctx, "file:"+t.Name()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if err := db.EnsureSchema(ctx, d); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	return New(d, nil)
}

func seedJobs(t *testing.T, r *SQLiteRepo, titles ...string) {
	t.Helper()
	ctx := context.Background()
	for i, title := range titles {
		j := &models.Job{
			ID: "job-" + title, Title: title, Slug: title, Status: models.JobActive,
			Tags: []string{"Remote"}, Order: i, CreatedAt: int64(i), UpdatedAt: int64(i),
		}
		if err := r.CreateJob(ctx, j); err != nil {
			t.Fatalf("create job %s: %v", title, err)
		}
	}
}

func TestJobCRUD(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	seedJobs(t, r, "alpha", "beta")

	j, err := r.GetJob(ctx, "job-alpha")
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if j == nil || j.Title != "alpha" || j.Order != 0 {
		t.Fatalf("unexpected job: %+v", j)
	}
	if len(j.Tags) != 1 || j.Tags[0] != "Remote" {
		t.Fatalf("tags did not round-trip: %v", j.Tags)
	}

	j.Status = models.JobArchived
	if err := r.UpdateJob(ctx, j); err != nil {
		t.Fatalf("update job: %v", err)
	}
	j, _ = r.GetJob(ctx, "job-alpha")
	if j.Status != models.JobArchived {
		t.Fatalf("expected archived, got %s", j.Status)
	}

	missing, err := r.GetJob(ctx, "nope")
	if err != nil || missing != nil {
		t.Fatalf("missing job should be (nil, nil), got (%v, %v)", missing, err)
	}
}

func TestListJobsFilterAndPaging(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	seedJobs(t, r, "Backend Engineer", "Frontend Developer", "Backend Lead")

	jobs, total, err := r.ListJobs(ctx, repository.JobFilter{Search: "backend", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list jobs: %v", err)
	}
	if total != 2 || len(jobs) != 2 {
		t.Fatalf("expected 2 backend jobs, got total=%d len=%d", total, len(jobs))
	}

	jobs, total, err = r.ListJobs(ctx, repository.JobFilter{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("list jobs page 2: %v", err)
	}
	if total != 3 || len(jobs) != 1 {
		t.Fatalf("expected page 2 with 1 of 3, got total=%d len=%d", total, len(jobs))
	}
	if jobs[0].Order != 2 {
		t.Fatalf("listing must be ordered by ord, got %d", jobs[0].Order)
	}
}

func TestApplyOrderPatches(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	seedJobs(t, r, "a", "b", "c")

	items, err := r.ListJobItems(ctx)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}

	patches, err := reorder.WithinList(items, "job-c", 2, 0)
	if err != nil {
		t.Fatalf("within list: %v", err)
	}
	if err := r.ApplyOrderPatches(ctx, patches); err != nil {
		t.Fatalf("apply patches: %v", err)
	}

	items, _ = r.ListJobItems(ctx)
	want := []string{"job-c", "job-a", "job-b"}
	for i, it := range items {
		if it.ID != want[i] || it.Order != i {
			t.Fatalf("position %d: got %+v, want %s", i, it, want[i])
		}
	}
}

func TestApplyOrderPatchesUnknownIDRollsBack(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	seedJobs(t, r, "a", "b")

	patches := []reorder.Patch{{ID: "job-a", Order: 1}, {ID: "ghost", Order: 0}}
	if err := r.ApplyOrderPatches(ctx, patches); err == nil {
		t.Fatal("expected error for unknown id")
	}

	// the valid patch must not have landed
	items, _ := r.ListJobItems(ctx)
	if items[0].ID != "job-a" || items[0].Order != 0 {
		t.Fatalf("partial patch leaked: %+v", items)
	}
}

func TestDeleteJobReindexes(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()
	seedJobs(t, r, "a", "b", "c", "d")

	if err := r.DeleteJob(ctx, "job-b"); err != nil {
		t.Fatalf("delete job: %v", err)
	}

	items, _ := r.ListJobItems(ctx)
	if len(items) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(items))
	}
	for i, it := range items {
		if it.Order != i {
			t.Fatalf("order values must stay dense after delete: %+v", items)
		}
	}

	if err := r.DeleteJob(ctx, "ghost"); err == nil {
		t.Fatal("expected error deleting unknown job")
	}
}

func TestCandidateStageMove(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	c := &models.Candidate{ID: "candidate-1", Name: "Emma Smith", Email: "emma@example.com",
		Stage: models.StageApplied, JobID: "job-1", CreatedAt: 1, UpdatedAt: 1}
	if err := r.CreateCandidate(ctx, c); err != nil {
		t.Fatalf("create candidate: %v", err)
	}

	move, err := reorder.BetweenBuckets(c, models.StageApplied, models.StageTech, "HR Team")
	if err != nil {
		t.Fatalf("between buckets: %v", err)
	}
	if err := r.ApplyStageMove(ctx, move); err != nil {
		t.Fatalf("apply stage move: %v", err)
	}

	got, _ := r.GetCandidate(ctx, "candidate-1")
	if got.Stage != models.StageTech {
		t.Fatalf("expected stage tech, got %s", got.Stage)
	}

	events, err := r.ListTimeline(ctx, "candidate-1")
	if err != nil {
		t.Fatalf("list timeline: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 timeline event, got %d", len(events))
	}
	e := events[0]
	if e.Type != models.EventStageChange || e.FromStage != models.StageApplied || e.ToStage != models.StageTech {
		t.Fatalf("unexpected event: %+v", e)
	}
}

func TestListCandidatesFilter(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	seed := []models.Candidate{
		{ID: "c1", Name: "Emma Smith", Email: "emma@example.com", Stage: models.StageApplied, JobID: "job-1"},
		{ID: "c2", Name: "Liam Jones", Email: "liam@example.com", Stage: models.StageTech, JobID: "job-1"},
		{ID: "c3", Name: "Olivia Brown", Email: "olivia@other.com", Stage: models.StageTech, JobID: "job-2"},
	}
	for i := range seed {
		seed[i].CreatedAt = int64(i)
		if err := r.CreateCandidate(ctx, &seed[i]); err != nil {
			t.Fatalf("create candidate: %v", err)
		}
	}

	_, total, err := r.ListCandidates(ctx, repository.CandidateFilter{Stage: models.StageTech, Page: 1, PageSize: 50})
	if err != nil || total != 2 {
		t.Fatalf("stage filter: total=%d err=%v", total, err)
	}

	byEmail, total, err := r.ListCandidates(ctx, repository.CandidateFilter{Search: "example.com", Page: 1, PageSize: 50})
	if err != nil || total != 2 || len(byEmail) != 2 {
		t.Fatalf("search filter: total=%d err=%v", total, err)
	}

	_, total, err = r.ListCandidates(ctx, repository.CandidateFilter{JobID: "job-2", Page: 1, PageSize: 50})
	if err != nil || total != 1 {
		t.Fatalf("job filter: total=%d err=%v", total, err)
	}
}

func TestAssessmentRoundTrip(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	missing, err := r.GetAssessment(ctx, "job-1")
	if err != nil || missing != nil {
		t.Fatalf("missing assessment should be (nil, nil), got (%v, %v)", missing, err)
	}

	a := &models.Assessment{
		ID: models.AssessmentID("job-1"), JobID: "job-1", Title: "Screen",
		Sections: []models.AssessmentSection{{
			ID: "s1", Title: "Basics",
			Questions: []models.Question{{ID: "q1", Type: models.SingleChoice, Text: "Remote?", Required: true, Options: []string{"Yes", "No"}}},
		}},
		CreatedAt: 1, UpdatedAt: 1,
	}
	if err := r.PutAssessment(ctx, a); err != nil {
		t.Fatalf("put assessment: %v", err)
	}

	got, err := r.GetAssessment(ctx, "job-1")
	if err != nil {
		t.Fatalf("get assessment: %v", err)
	}
	if got == nil || got.Title != "Screen" || len(got.Sections) != 1 || len(got.Sections[0].Questions) != 1 {
		t.Fatalf("unexpected assessment: %+v", got)
	}

	// full replace on second put
	a.Title = "Updated"
	a.Sections = nil
	a.UpdatedAt = 2
	if err := r.PutAssessment(ctx, a); err != nil {
		t.Fatalf("re-put assessment: %v", err)
	}
	got, _ = r.GetAssessment(ctx, "job-1")
	if got.Title != "Updated" || len(got.Sections) != 0 {
		t.Fatalf("replace did not take: %+v", got)
	}
}

func TestAssessmentResponses(t *testing.T) {
	r := testRepo(t)
	ctx := context.Background()

	resp := &models.AssessmentResponse{
		ID: "response-1", AssessmentID: models.AssessmentID("job-1"), CandidateID: "c1",
		Responses:   map[string]any{"q1": "Yes", "q2": []any{"Go", "Rust"}},
		CompletedAt: 42,
	}
	if err := r.CreateResponse(ctx, resp); err != nil {
		t.Fatalf("create response: %v", err)
	}

	list, err := r.ListResponses(ctx, models.AssessmentID("job-1"))
	if err != nil {
		t.Fatalf("list responses: %v", err)
	}
	if len(list) != 1 || list[0].Responses["q1"] != "Yes" {
		t.Fatalf("unexpected responses: %+v", list)
	}
}
