package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"jenjangkarir/internal/domain"
	"jenjangkarir/internal/domain/models"
	"jenjangkarir/internal/repositories"
	"jenjangkarir/internal/utils"
)

type ApplicationService struct {
	Jobs         repositories.JobRepository
	Applications repositories.ApplicationRepository
	RequestID    string
	now          func() time.Time
}

func (s ApplicationService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

func validateApplication(in models.ApplicationInput) error {
	if strings.TrimSpace(in.FullName) == "" {
		return domain.ValidationError{Field: "full_name", Msg: "nama lengkap wajib diisi"}
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(in.Email)); err != nil {
		return domain.ValidationError{Field: "email", Msg: "format email tidak valid"}
	}
	return nil
}

// Apply submits userID's application to the job at slug. A user applies to
// a job at most once.
func (s ApplicationService) Apply(ctx context.Context, slug string, userID int64, in models.ApplicationInput) (models.Application, error) {
	if err := validateApplication(in); err != nil {
		return models.Application{}, err
	}
	job, err := s.Jobs.GetBySlug(ctx, slug)
	if err != nil {
		return models.Application{}, notFound("lowongan", err)
	}
	if job.Status != domain.JobActive {
		return models.Application{}, domain.ConflictError{Resource: "lowongan", Msg: "lowongan sudah ditutup"}
	}
	if job.Deadline != nil && job.Deadline.Before(s.clock()) {
		return models.Application{}, domain.ConflictError{Resource: "lowongan", Msg: "batas waktu lamaran sudah lewat"}
	}

	exists, err := s.Applications.ExistsForUser(ctx, job.ID, userID)
	if err != nil {
		return models.Application{}, err
	}
	if exists {
		return models.Application{}, domain.ConflictError{Resource: "lamaran", Msg: "kamu sudah melamar lowongan ini"}
	}

	in.FullName = utils.NormalizeSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	id, err := s.Applications.Create(ctx, job.ID, userID, in)
	if err != nil {
		return models.Application{}, err
	}
	utils.LogEvent(s.RequestID, "applications", "apply", fmt.Sprintf("id=%d job_id=%d user_id=%d", id, job.ID, userID))

	return models.Application{
		ID:          id,
		JobID:       job.ID,
		JobSlug:     job.Slug,
		JobTitle:    job.Title,
		CompanyName: job.CompanyName,
		UserID:      userID,
		FullName:    in.FullName,
		Email:       in.Email,
		Phone:       in.Phone,
		CoverLetter: in.CoverLetter,
		ResumeURL:   in.ResumeURL,
		Status:      string(domain.ApplicationSubmitted),
		CreatedAt:   s.clock(),
	}, nil
}

func (s ApplicationService) ListMine(ctx context.Context, userID int64) ([]models.Application, error) {
	return s.Applications.ListByUser(ctx, userID)
}

func (s ApplicationService) ListForAdmin(ctx context.Context, jobID int64) ([]models.Application, error) {
	return s.Applications.ListByJob(ctx, jobID)
}

func (s ApplicationService) UpdateStatus(ctx context.Context, id int64, status string) error {
	st := domain.ApplicationStatus(strings.ToLower(strings.TrimSpace(status)))
	if !st.Valid() {
		return domain.ValidationError{Field: "status", Msg: "status lamaran tidak dikenal"}
	}
	if err := s.Applications.UpdateStatus(ctx, id, st); err != nil {
		return notFound("lamaran", err)
	}
	utils.LogEvent(s.RequestID, "applications", "update_status", fmt.Sprintf("id=%d status=%s", id, st))
	return nil
}
