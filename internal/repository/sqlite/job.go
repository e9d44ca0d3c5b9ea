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

const jobCols = `id, title, slug, status, tags, ord, description, created, updated`

func (r *SQLiteRepo) CreateJob(ctx context.Context, j *models.Job) error {
	if j == nil {
		return fmt.Errorf("job is nil")
	}

	tags, err := json.Marshal(emptyIfNil(j.Tags))
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	_, err = r.conn.Exec(ctx,
		`INSERT INTO jobs (`+jobCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.ID, j.Title, j.Slug, j.Status, string(tags), j.Order, j.Description, j.CreatedAt, j.UpdatedAt)
	return err
}

func (r *SQLiteRepo) GetJob(ctx context.Context, id string) (*models.Job, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+jobCols+` FROM jobs WHERE id = ?`, id)
	j, err := scanJob(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return j, nil
}

func (r *SQLiteRepo) ListJobs(ctx context.Context, f repository.JobFilter) ([]models.Job, int, error) {
	where, args := jobFilterClause(f)

	var total int
	row := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`+where, args...)
	if err := row.Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := pageBounds(f.Page, f.PageSize)
	rows, err := r.conn.QueryRows(ctx,
		`SELECT `+jobCols+` FROM jobs`+where+` ORDER BY ord ASC LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *j)
	}

	return out, total, rows.Err()
}

func (r *SQLiteRepo) UpdateJob(ctx context.Context, j *models.Job) error {
	if j == nil {
		return fmt.Errorf("job is nil")
	}

	tags, err := json.Marshal(emptyIfNil(j.Tags))
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	j.UpdatedAt = now()
	res, err := r.conn.Exec(ctx,
		`UPDATE jobs SET title = ?, slug = ?, status = ?, tags = ?, ord = ?, description = ?, updated = ? WHERE id = ?`,
		j.Title, j.Slug, j.Status, string(tags), j.Order, j.Description, j.UpdatedAt, j.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update job %q: %w", j.ID, reorder.ErrItemNotFound)
	}
	return nil
}

// DeleteJob removes the job and reindexes the survivors in the same
// transaction, keeping order values dense.
func (r *SQLiteRepo) DeleteJob(ctx context.Context, id string) error {
	return r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("delete job %q: %w", id, reorder.ErrItemNotFound)
		}

		rows, err := tx.QueryContext(ctx, `SELECT id, ord FROM jobs ORDER BY ord ASC`)
		if err != nil {
			return err
		}
		items, err := scanItems(rows)
		if err != nil {
			return err
		}

		ts := now()
		for _, p := range reorder.Reindex(items) {
			if _, err := tx.ExecContext(ctx, `UPDATE jobs SET ord = ?, updated = ? WHERE id = ?`, p.Order, ts, p.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SQLiteRepo) ListJobItems(ctx context.Context) ([]reorder.Item, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, ord FROM jobs ORDER BY ord ASC`)
	if err != nil {
		return nil, err
	}
	return scanItems(rows)
}

func (r *SQLiteRepo) ApplyOrderPatches(ctx context.Context, patches []reorder.Patch) error {
	if len(patches) == 0 {
		return nil
	}

	return r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		ts := now()
		for _, p := range patches {
			res, err := tx.ExecContext(ctx, `UPDATE jobs SET ord = ?, updated = ? WHERE id = ?`, p.Order, ts, p.ID)
			if err != nil {
				return err
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return fmt.Errorf("patch job %q: %w", p.ID, reorder.ErrItemNotFound)
			}
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*models.Job, error) {
	var j models.Job
	var tags string
	if err := row.Scan(&j.ID, &j.Title, &j.Slug, &j.Status, &tags, &j.Order, &j.Description, &j.CreatedAt, &j.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tags), &j.Tags); err != nil {
		return nil, fmt.Errorf("unmarshal tags for job %q: %w", j.ID, err)
	}
	return &j, nil
}

func scanItems(rows *sql.Rows) ([]reorder.Item, error) {
	defer rows.Close()

	var items []reorder.Item
	for rows.Next() {
		var it reorder.Item
		if err := rows.Scan(&it.ID, &it.Order); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func jobFilterClause(f repository.JobFilter) (string, []any) {
	var conds []string
	var args []any

	if f.Search != "" {
		conds = append(conds, `title LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(f.Search)+"%")
	}
	if f.Status != "" {
		conds = append(conds, `status = ?`)
		args = append(args, f.Status)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}

func pageBounds(page, pageSize int) (limit, offset int) {
	if pageSize <= 0 {
		pageSize = 10
	}
	if page <= 0 {
		page = 1
	}
	return pageSize, (page - 1) * pageSize
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
