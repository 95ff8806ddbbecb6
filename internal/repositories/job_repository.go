package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	intdb "jenjangkarir/internal/db"
	"jenjangkarir/internal/domain"
	"jenjangkarir/internal/domain/models"
	"jenjangkarir/internal/utils"
)

type JobRepository struct {
	Conn
}

func (r JobRepository) GetBySlug(ctx context.Context, slug string) (models.Job, error) {
	row := r.db().QueryRowContext(ctx, r.rebind(jobDetailSelect+` WHERE j.slug = ? LIMIT 1`), strings.TrimSpace(slug))
	return scanJob(row, true)
}

func (r JobRepository) GetByID(ctx context.Context, id int64) (models.Job, error) {
	row := r.db().QueryRowContext(ctx, r.rebind(jobDetailSelect+` WHERE j.id = ? LIMIT 1`), id)
	return scanJob(row, true)
}

// ListActiveByCompany backs the company detail page.
func (r JobRepository) ListActiveByCompany(ctx context.Context, companyID int64, limit int) ([]models.Job, error) {
	rows, err := r.db().QueryContext(ctx, r.rebind(jobListSelect+
		` WHERE j.company_id = ? AND j.status = ? ORDER BY j.posted_at DESC, j.id DESC LIMIT ?`),
		companyID, domain.JobActive, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Job{}
	for rows.Next() {
		j, err := scanJob(rows, false)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func deadlineArg(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := utils.ParseDate(raw)
	if err != nil {
		return nil, domain.ValidationError{Field: "deadline", Msg: "format tanggal harus YYYY-MM-DD", Err: err}
	}
	return t, nil
}

// Create inserts a job and derives its slug from the title and new id.
func (r JobRepository) Create(ctx context.Context, in models.JobInput) (int64, string, error) {
	deadline, err := deadlineArg(in.Deadline)
	if err != nil {
		return 0, "", err
	}
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = domain.JobActive
	}

	tx, err := r.db().BeginTx(ctx, nil)
	if err != nil {
		return 0, "", err
	}
	defer func() { _ = tx.Rollback() }()

	id, err := r.insert(ctx, tx, `INSERT INTO jobs
		(slug, title, company_id, location, job_type, category_id, salary_min, salary_max, description, requirements, status, deadline, posted_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		fmt.Sprintf("draft-%d", time.Now().UnixNano()), in.Title, in.CompanyID,
		intdb.NullIfEmpty(in.Location), intdb.NullIfEmpty(in.JobType), intdb.NullIfEmpty(in.CategoryID),
		in.SalaryMin, in.SalaryMax, in.Description, in.Requirements, status, deadline, time.Now())
	if err != nil {
		return 0, "", err
	}
	slug := utils.SlugWithID(in.Title, id)
	if _, err := tx.ExecContext(ctx, r.rebind(`UPDATE jobs SET slug = ? WHERE id = ?`), slug, id); err != nil {
		return 0, "", err
	}
	if err := tx.Commit(); err != nil {
		return 0, "", err
	}
	return id, slug, nil
}

func (r JobRepository) Update(ctx context.Context, id int64, in models.JobInput) error {
	deadline, err := deadlineArg(in.Deadline)
	if err != nil {
		return err
	}
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = domain.JobActive
	}
	return affected(r.db().ExecContext(ctx, r.rebind(`UPDATE jobs SET
		title = ?, company_id = ?, location = ?, job_type = ?, category_id = ?, salary_min = ?, salary_max = ?,
		description = ?, requirements = ?, status = ?, deadline = ?
		WHERE id = ?`),
		in.Title, in.CompanyID, intdb.NullIfEmpty(in.Location), intdb.NullIfEmpty(in.JobType), intdb.NullIfEmpty(in.CategoryID),
		in.SalaryMin, in.SalaryMax, in.Description, in.Requirements, status, deadline, id))
}

func (r JobRepository) Delete(ctx context.Context, id int64) error {
	return affected(r.db().ExecContext(ctx, r.rebind(`DELETE FROM jobs WHERE id = ?`), id))
}

// ExpirePastDeadline deactivates active jobs whose deadline is before now.
func (r JobRepository) ExpirePastDeadline(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db().ExecContext(ctx, r.rebind(`UPDATE jobs SET status = ?
		WHERE status = ? AND deadline IS NOT NULL AND deadline < ?`),
		domain.JobInactive, domain.JobActive, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r JobRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	return countBy(ctx, r.db(), `SELECT status, COUNT(*) FROM jobs GROUP BY status`)
}

func countBy(ctx context.Context, db *sql.DB, stmt string) (map[string]int, error) {
	rows, err := db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var key sql.NullString
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		out[key.String] += n
	}
	return out, rows.Err()
}

func count(ctx context.Context, db *sql.DB, table string) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n)
	return n, err
}
