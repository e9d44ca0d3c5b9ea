package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/talentflow/talentflow/internal/models"
	"github.com/talentflow/talentflow/internal/reorder"
	"github.com/talentflow/talentflow/pkg/repository"
)

const candidateCols = `id, name, email, stage, job_id, phone, resume, skills, rating, source, notes, created, updated`

func (r *SQLiteRepo) CreateCandidate(ctx context.Context, c *models.Candidate) error {
	if c == nil {
		return fmt.Errorf("candidate is nil")
	}

	skills, err := json.Marshal(emptyIfNil(c.Skills))
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}

	_, err = r.conn.Exec(ctx,
		`INSERT INTO candidates (`+candidateCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Email, c.Stage, c.JobID, c.Phone, c.Resume, string(skills), nullableInt(c.Rating), c.Source, c.Notes, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *SQLiteRepo) GetCandidate(ctx context.Context, id string) (*models.Candidate, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+candidateCols+` FROM candidates WHERE id = ?`, id)
	c, err := scanCandidate(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *SQLiteRepo) ListCandidates(ctx context.Context, f repository.CandidateFilter) ([]models.Candidate, int, error) {
	where, args := candidateFilterClause(f)

	var total int
	row := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM candidates`+where, args...)
	if err := row.Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := pageBounds(f.Page, f.PageSize)
	rows, err := r.conn.QueryRows(ctx,
		`SELECT `+candidateCols+` FROM candidates`+where+` ORDER BY created ASC LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *c)
	}

	return out, total, rows.Err()
}

func (r *SQLiteRepo) UpdateCandidate(ctx context.Context, c *models.Candidate) error {
	if c == nil {
		return fmt.Errorf("candidate is nil")
	}

	skills, err := json.Marshal(emptyIfNil(c.Skills))
	if err != nil {
		return fmt.Errorf("marshal skills: %w", err)
	}

	c.UpdatedAt = now()
	res, err := r.conn.Exec(ctx,
		`UPDATE candidates SET name = ?, email = ?, stage = ?, job_id = ?, phone = ?, resume = ?, skills = ?, rating = ?, source = ?, notes = ?, updated = ? WHERE id = ?`,
		c.Name, c.Email, c.Stage, c.JobID, c.Phone, c.Resume, string(skills), nullableInt(c.Rating), c.Source, c.Notes, c.UpdatedAt, c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update candidate %q: %w", c.ID, reorder.ErrItemNotFound)
	}
	return nil
}

// ApplyStageMove writes the stage change and its timeline event atomically,
// so a bucket move never lands without its history entry or vice versa.
func (r *SQLiteRepo) ApplyStageMove(ctx context.Context, move *reorder.StageMove) error {
	if move == nil {
		return nil
	}

	return r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE candidates SET stage = ?, updated = ? WHERE id = ?`,
			move.NewStage, now(), move.CandidateID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("move candidate %q: %w", move.CandidateID, reorder.ErrItemNotFound)
		}

		e := move.Event
		_, err = tx.ExecContext(ctx,
			`INSERT INTO timeline (id, candidate_id, type, from_stage, to_stage, note, created, created_by) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.CandidateID, e.Type, e.FromStage, e.ToStage, e.Note, e.CreatedAt, e.CreatedBy)
		return err
	})
}

func scanCandidate(row rowScanner) (*models.Candidate, error) {
	var c models.Candidate
	var skills string
	var rating sql.NullInt64
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Stage, &c.JobID, &c.Phone, &c.Resume, &skills, &rating, &c.Source, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(skills), &c.Skills); err != nil {
		return nil, fmt.Errorf("unmarshal skills for candidate %q: %w", c.ID, err)
	}
	if len(c.Skills) == 0 {
		c.Skills = nil
	}
	if rating.Valid {
		v := int(rating.Int64)
		c.Rating = &v
	}
	return &c, nil
}

func candidateFilterClause(f repository.CandidateFilter) (string, []any) {
	var conds []string
	var args []any

	if f.Search != "" {
		pat := "%" + escapeLike(f.Search) + "%"
		conds = append(conds, `(name LIKE ? ESCAPE '\' OR email LIKE ? ESCAPE '\')`)
		args = append(args, pat, pat)
	}
	if f.Stage != "" {
		conds = append(conds, `stage = ?`)
		args = append(args, f.Stage)
	}
	if f.JobID != "" {
		conds = append(conds, `job_id = ?`)
		args = append(args, f.JobID)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
