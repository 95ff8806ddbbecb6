package repositories

import (
	"context"
	"time"

	intdb "jenjangkarir/internal/db"
	"jenjangkarir/internal/domain"
	"jenjangkarir/internal/domain/models"
)

const applicationSelect = `SELECT ap.id, ap.job_id, j.slug, j.title, c.name, ap.user_id,
	ap.full_name, ap.email, COALESCE(ap.phone,''), COALESCE(ap.cover_letter,''), COALESCE(ap.resume_url,''),
	ap.status, ap.created_at
	FROM applications ap
	JOIN jobs j ON j.id = ap.job_id
	JOIN companies c ON c.id = j.company_id`

type ApplicationRepository struct {
	Conn
}

func scanApplication(s scanner) (models.Application, error) {
	var a models.Application
	err := s.Scan(&a.ID, &a.JobID, &a.JobSlug, &a.JobTitle, &a.CompanyName, &a.UserID,
		&a.FullName, &a.Email, &a.Phone, &a.CoverLetter, &a.ResumeURL, &a.Status, &a.CreatedAt)
	return a, err
}

func (r ApplicationRepository) Create(ctx context.Context, jobID, userID int64, in models.ApplicationInput) (int64, error) {
	return r.insert(ctx, r.db(), `INSERT INTO applications
		(job_id, user_id, full_name, email, phone, cover_letter, resume_url, status, created_at)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		jobID, userID, in.FullName, in.Email, intdb.NullIfEmpty(in.Phone), intdb.NullIfEmpty(in.CoverLetter),
		intdb.NullIfEmpty(in.ResumeURL), string(domain.ApplicationSubmitted), time.Now())
}

func (r ApplicationRepository) ExistsForUser(ctx context.Context, jobID, userID int64) (bool, error) {
	var n int
	err := r.db().QueryRowContext(ctx, r.rebind(`SELECT COUNT(*) FROM applications WHERE job_id = ? AND user_id = ?`),
		jobID, userID).Scan(&n)
	return n > 0, err
}

func (r ApplicationRepository) GetForUser(ctx context.Context, id, userID int64) (models.Application, error) {
	row := r.db().QueryRowContext(ctx, r.rebind(applicationSelect+` WHERE ap.id = ? AND ap.user_id = ? LIMIT 1`), id, userID)
	return scanApplication(row)
}

func (r ApplicationRepository) ListByUser(ctx context.Context, userID int64) ([]models.Application, error) {
	return r.list(ctx, applicationSelect+` WHERE ap.user_id = ? ORDER BY ap.created_at DESC, ap.id DESC`, userID)
}

// ListByJob lists applications for jobID, or all of them when jobID is 0.
func (r ApplicationRepository) ListByJob(ctx context.Context, jobID int64) ([]models.Application, error) {
	if jobID <= 0 {
		return r.list(ctx, applicationSelect+` ORDER BY ap.created_at DESC, ap.id DESC`)
	}
	return r.list(ctx, applicationSelect+` WHERE ap.job_id = ? ORDER BY ap.created_at DESC, ap.id DESC`, jobID)
}

func (r ApplicationRepository) list(ctx context.Context, stmt string, args ...any) ([]models.Application, error) {
	rows, err := r.db().QueryContext(ctx, r.rebind(stmt), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus) error {
	return affected(r.db().ExecContext(ctx, r.rebind(`UPDATE applications SET status = ? WHERE id = ?`), string(status), id))
}

func (r ApplicationRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	return countBy(ctx, r.db(), `SELECT status, COUNT(*) FROM applications GROUP BY status`)
}
