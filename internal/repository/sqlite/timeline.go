package sqlite

import (
	"context"
	"fmt"

	"github.com/talentflow/talentflow/internal/models"
)

func (r *SQLiteRepo) AppendEvent(ctx context.Context, e *models.TimelineEvent) error {
	if e == nil {
		return fmt.Errorf("event is nil")
	}

	_, err := r.conn.Exec(ctx,
		`INSERT INTO timeline (id, candidate_id, type, from_stage, to_stage, note, created, created_by) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.CandidateID, e.Type, e.FromStage, e.ToStage, e.Note, e.CreatedAt, e.CreatedBy)
	return err
}

func (r *SQLiteRepo) ListTimeline(ctx context.Context, candidateID string) ([]models.TimelineEvent, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT id, candidate_id, type, from_stage, to_stage, note, created, created_by FROM timeline WHERE candidate_id = ? ORDER BY created DESC, id DESC`,
		candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TimelineEvent
	for rows.Next() {
		var e models.TimelineEvent
		if err := rows.Scan(&e.ID, &e.CandidateID, &e.Type, &e.FromStage, &e.ToStage, &e.Note, &e.CreatedAt, &e.CreatedBy); err != nil {
			return nil, err
		}
		out = append(out, e)
	}

	return out, rows.Err()
}
