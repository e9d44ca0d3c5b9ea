package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/talentflow/talentflow/internal/models"
)

func (r *SQLiteRepo) GetAssessment(ctx context.Context, jobID string) (*models.Assessment, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT id, job_id, title, sections, created, updated FROM assessments WHERE job_id = ?`, jobID)

	var a models.Assessment
	var sections string
	if err := row.Scan(&a.ID, &a.JobID, &a.Title, &sections, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			// no assessment yet is a normal state
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal([]byte(sections), &a.Sections); err != nil {
		return nil, fmt.Errorf("unmarshal sections for assessment %q: %w", a.ID, err)
	}
	return &a, nil
}

// PutAssessment replaces the whole record: the builder loads, edits in
// memory, and saves; there is no partial patching of definitions.
func (r *SQLiteRepo) PutAssessment(ctx context.Context, a *models.Assessment) error {
	if a == nil {
		return fmt.Errorf("assessment is nil")
	}

	sections, err := json.Marshal(a.Sections)
	if err != nil {
		return fmt.Errorf("marshal sections: %w", err)
	}

	_, err = r.conn.Exec(ctx,
		`INSERT INTO assessments (id, job_id, title, sections, created, updated) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET title = excluded.title, sections = excluded.sections, updated = excluded.updated`,
		a.ID, a.JobID, a.Title, string(sections), a.CreatedAt, a.UpdatedAt)
	return err
}

func (r *SQLiteRepo) CreateResponse(ctx context.Context, resp *models.AssessmentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}

	responses, err := json.Marshal(resp.Responses)
	if err != nil {
		return fmt.Errorf("marshal responses: %w", err)
	}

	_, err = r.conn.Exec(ctx,
		`INSERT INTO assessment_responses (id, assessment_id, candidate_id, responses, completed) VALUES (?, ?, ?, ?, ?)`,
		resp.ID, resp.AssessmentID, resp.CandidateID, string(responses), resp.CompletedAt)
	return err
}

func (r *SQLiteRepo) ListResponses(ctx context.Context, assessmentID string) ([]models.AssessmentResponse, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT id, assessment_id, candidate_id, responses, completed FROM assessment_responses WHERE assessment_id = ? ORDER BY completed DESC`,
		assessmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.AssessmentResponse
	for rows.Next() {
		var resp models.AssessmentResponse
		var responses string
		if err := rows.Scan(&resp.ID, &resp.AssessmentID, &resp.CandidateID, &responses, &resp.CompletedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(responses), &resp.Responses); err != nil {
			return nil, fmt.Errorf("unmarshal responses for %q: %w", resp.ID, err)
		}
		out = append(out, resp)
	}

	return out, rows.Err()
}
