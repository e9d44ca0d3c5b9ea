// Command seed populates the store with demo data: a jobs board, a thousand
// pipeline candidates with history, and assessments for a handful of jobs.
// It is idempotent: a store that already has jobs is left alone.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/talentflow/talentflow/internal/config"
	"github.com/talentflow/talentflow/internal/db"
	"github.com/talentflow/talentflow/internal/models"
	"github.com/talentflow/talentflow/internal/repository/sqlite"
	"github.com/talentflow/talentflow/pkg/repository"
)

var jobTitles = []string{
	"Senior Frontend Developer", "Backend Engineer", "Full Stack Developer",
	"DevOps Engineer", "Product Manager", "UI/UX Designer", "Data Scientist",
	"Mobile Developer", "QA Engineer", "Solutions Architect", "Technical Lead",
	"Business Analyst", "Scrum Master", "Security Engineer", "Cloud Architect",
	"Machine Learning Engineer", "Customer Success Manager", "Sales Engineer",
	"HR Manager", "Marketing Manager", "Financial Analyst", "Operations Manager",
	"Content Strategist", "SEO Specialist", "Growth Hacker",
}

var jobTags = []string{
	"Remote", "Full-time", "Contract", "Urgent", "Senior", "Junior",
	"Mid-level", "Tech", "Non-tech", "Leadership",
}

var firstNames = []string{
	"Emma", "Liam", "Olivia", "Noah", "Ava", "Ethan", "Sophia", "Mason",
	"Isabella", "William", "Mia", "James", "Charlotte", "Benjamin", "Amelia",
	"Lucas", "Harper", "Henry", "Evelyn", "Alexander",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
}

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	var seed = flag.Int64("seed", time.Now().UnixNano(), "PRNG seed for generated data")
	var candidateCount = flag.Int("candidates", 1000, "number of candidates to generate")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	database, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.EnsureSchema(ctx, database); err != nil {
		fmt.Fprintf(os.Stderr, "Schema error: %v\n", err)
		os.Exit(1)
	}

	repo := sqlite.New(database, nil)

	_, total, err := repo.ListJobs(ctx, repository.JobFilter{Page: 1, PageSize: 1})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Seed check error: %v\n", err)
		os.Exit(1)
	}
	if total > 0 {
		fmt.Printf("Database already seeded with %d jobs.\n", total)
		return
	}

	rng := rand.New(rand.NewSource(*seed))
	if err := seedAll(ctx, repo, rng, *candidateCount); err != nil {
		fmt.Fprintf(os.Stderr, "Seed error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Database seeded successfully.")
}

func seedAll(ctx context.Context, repo *sqlite.SQLiteRepo, rng *rand.Rand, candidateCount int) error {
	now := time.Now().UTC().UnixMilli()
	day := int64(24 * time.Hour / time.Millisecond)

	var activeJobs []models.Job
	for i, title := range jobTitles {
		status := models.JobActive
		if rng.Float64() > 0.7 {
			status = models.JobArchived
		}
		j := models.Job{
			ID:          fmt.Sprintf("job-%d", i+1),
			Title:       title,
			Slug:        slugify(title),
			Status:      status,
			Tags:        pick(rng, jobTags, rng.Intn(3)+1),
			Order:       i,
			Description: fmt.Sprintf("We are looking for an experienced %s to join our team.", title),
			CreatedAt:   now - rng.Int63n(30*day),
			UpdatedAt:   now,
		}
		if err := repo.CreateJob(ctx, &j); err != nil {
			return fmt.Errorf("seed job %s: %w", j.ID, err)
		}
		if j.Status == models.JobActive {
			activeJobs = append(activeJobs, j)
		}
	}

	var candidates []models.Candidate
	for i := 0; i < candidateCount; i++ {
		first := firstNames[rng.Intn(len(firstNames))]
		last := lastNames[rng.Intn(len(lastNames))]
		c := models.Candidate{
			ID:        fmt.Sprintf("candidate-%d", i+1),
			Name:      first + " " + last,
			Email:     fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
			Stage:     models.Stages[rng.Intn(len(models.Stages))],
			JobID:     activeJobs[rng.Intn(len(activeJobs))].ID,
			Phone:     fmt.Sprintf("+1%d", rng.Int63n(9_000_000_000)+1_000_000_000),
			CreatedAt: now - rng.Int63n(60*day),
			UpdatedAt: now,
		}
		if err := repo.CreateCandidate(ctx, &c); err != nil {
			return fmt.Errorf("seed candidate %s: %w", c.ID, err)
		}
		candidates = append(candidates, c)
	}

	// a short stage history for the first hundred candidates
	limit := 100
	if len(candidates) < limit {
		limit = len(candidates)
	}
	for _, c := range candidates[:limit] {
		events := rng.Intn(3) + 1
		for i := 0; i < events; i++ {
			e := models.TimelineEvent{
				ID:          fmt.Sprintf("timeline-%s-%d", c.ID, i),
				CandidateID: c.ID,
				Type:        models.EventStageChange,
				ToStage:     models.Stages[i],
				CreatedAt:   c.CreatedAt + int64(i)*day,
				CreatedBy:   "HR Team",
			}
			if i > 0 {
				e.FromStage = models.Stages[i-1]
			}
			if err := repo.AppendEvent(ctx, &e); err != nil {
				return fmt.Errorf("seed timeline for %s: %w", c.ID, err)
			}
		}
	}

	for i, job := range activeJobs {
		if i >= 5 {
			break
		}
		a := demoAssessment(i, job, now)
		if err := repo.PutAssessment(ctx, &a); err != nil {
			return fmt.Errorf("seed assessment for %s: %w", job.ID, err)
		}
	}

	return nil
}

func demoAssessment(i int, job models.Job, now int64) models.Assessment {
	relocateID := fmt.Sprintf("q-%d-3", i)
	return models.Assessment{
		ID:    models.AssessmentID(job.ID),
		JobID: job.ID,
		Title: job.Title + " Assessment",
		Sections: []models.AssessmentSection{
			{
				ID:    fmt.Sprintf("section-%d-1", i),
				Title: "Technical Skills",
				Questions: []models.Question{
					{
						ID:       fmt.Sprintf("q-%d-1", i),
						Type:     models.SingleChoice,
						Text:     "How many years of experience do you have?",
						Required: true,
						Options:  []string{"0-2 years", "2-5 years", "5-10 years", "10+ years"},
					},
					{
						ID:       fmt.Sprintf("q-%d-2", i),
						Type:     models.MultiChoice,
						Text:     "Which technologies are you proficient in?",
						Required: true,
						Options:  []string{"JavaScript", "TypeScript", "Go", "Python", "SQL"},
					},
				},
			},
			{
				ID:    fmt.Sprintf("section-%d-2", i),
				Title: "About You",
				Questions: []models.Question{
					{
						ID:       relocateID,
						Type:     models.SingleChoice,
						Text:     "Are you willing to relocate?",
						Required: true,
						Options:  []string{"Yes", "No"},
					},
					{
						ID:            fmt.Sprintf("q-%d-4", i),
						Type:          models.ShortText,
						Text:          "Which city would you prefer?",
						Required:      true,
						Validation:    &models.Validation{MaxLength: intp(50)},
						ConditionalOn: &models.Condition{QuestionID: relocateID, Answer: "Yes"},
					},
					{
						ID:         fmt.Sprintf("q-%d-5", i),
						Type:       models.Numeric,
						Text:       "Expected salary (in thousands)?",
						Validation: &models.Validation{Min: floatp(30), Max: floatp(500)},
					},
				},
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func pick(rng *rand.Rand, src []string, n int) []string {
	idx := rng.Perm(len(src))
	if n > len(src) {
		n = len(src)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = src[idx[i]]
	}
	return out
}

func slugify(title string) string {
	s := strings.ToLower(title)
	s = strings.ReplaceAll(s, " ", "-")
	var b strings.Builder
	for _, r := range s {
		if r == '-' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func intp(v int) *int { return &v }

func floatp(v float64) *float64 { return &v }
