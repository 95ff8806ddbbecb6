package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"jenjangkarir/internal/domain"
	"jenjangkarir/internal/domain/models"
	"jenjangkarir/internal/query"
	"jenjangkarir/internal/repositories"
	"jenjangkarir/internal/utils"

	"github.com/PuerkitoBio/goquery"
)

const excerptLen = 200

// CatalogService serves detail pages and admin writes for jobs, companies
// and articles. Every write invalidates the cached listing of its
// collection.
type CatalogService struct {
	Jobs      repositories.JobRepository
	Companies repositories.CompanyRepository
	Articles  repositories.ArticleRepository
	Listing   ListingService
	RequestID string
}

func notFound(resource string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: resource, Err: err}
	}
	return err
}

// JobDetail only exposes active jobs to the public.
func (s CatalogService) JobDetail(ctx context.Context, slug string) (models.Job, error) {
	j, err := s.Jobs.GetBySlug(ctx, slug)
	if err != nil {
		return j, notFound("lowongan", err)
	}
	if j.Status != domain.JobActive {
		return models.Job{}, domain.NotFoundError{Resource: "lowongan"}
	}
	return j, nil
}

// JobByID is the admin read; it sees every status.
func (s CatalogService) JobByID(ctx context.Context, id int64) (models.Job, error) {
	j, err := s.Jobs.GetByID(ctx, id)
	return j, notFound("lowongan", err)
}

// CompanyDetail returns the company with its newest open jobs.
func (s CatalogService) CompanyDetail(ctx context.Context, slug string) (models.Company, []models.Job, error) {
	c, err := s.Companies.GetBySlug(ctx, slug)
	if err != nil {
		return c, nil, notFound("perusahaan", err)
	}
	jobs, err := s.Jobs.ListActiveByCompany(ctx, c.ID, 20)
	if err != nil {
		return c, nil, err
	}
	return c, jobs, nil
}

func (s CatalogService) ArticleDetail(ctx context.Context, slug string) (models.Article, error) {
	a, err := s.Articles.GetBySlug(ctx, slug)
	return a, notFound("artikel", err)
}

func validateJob(in models.JobInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return domain.ValidationError{Field: "title", Msg: "judul wajib diisi"}
	}
	if in.CompanyID <= 0 {
		return domain.ValidationError{Field: "company_id", Msg: "perusahaan wajib dipilih"}
	}
	if in.SalaryMin < 0 || in.SalaryMax < 0 {
		return domain.ValidationError{Field: "salary", Msg: "gaji tidak boleh negatif"}
	}
	if in.SalaryMin > 0 && in.SalaryMax > 0 && in.SalaryMin > in.SalaryMax {
		return domain.ValidationError{Field: "salary", Msg: "gaji minimum melebihi maksimum"}
	}
	switch in.Status {
	case "", domain.JobActive, domain.JobInactive, domain.JobDraft:
	default:
		return domain.ValidationError{Field: "status", Msg: "status tidak dikenal"}
	}
	return nil
}

func (s CatalogService) CreateJob(ctx context.Context, in models.JobInput) (int64, string, error) {
	if err := validateJob(in); err != nil {
		return 0, "", err
	}
	id, slug, err := s.Jobs.Create(ctx, in)
	if err != nil {
		return 0, "", err
	}
	s.Listing.Invalidate(ctx, query.Jobs)
	utils.LogEvent(s.RequestID, "admin", "create_job", fmt.Sprintf("id=%d slug=%s", id, slug))
	return id, slug, nil
}

func (s CatalogService) UpdateJob(ctx context.Context, id int64, in models.JobInput) error {
	if err := validateJob(in); err != nil {
		return err
	}
	if err := s.Jobs.Update(ctx, id, in); err != nil {
		return notFound("lowongan", err)
	}
	s.Listing.Invalidate(ctx, query.Jobs)
	return nil
}

func (s CatalogService) DeleteJob(ctx context.Context, id int64) error {
	if err := s.Jobs.Delete(ctx, id); err != nil {
		return notFound("lowongan", err)
	}
	s.Listing.Invalidate(ctx, query.Jobs)
	utils.LogEvent(s.RequestID, "admin", "delete_job", fmt.Sprintf("id=%d", id))
	return nil
}

func validateCompany(in models.CompanyInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.ValidationError{Field: "name", Msg: "nama perusahaan wajib diisi"}
	}
	return nil
}

func (s CatalogService) CreateCompany(ctx context.Context, in models.CompanyInput) (int64, string, error) {
	if err := validateCompany(in); err != nil {
		return 0, "", err
	}
	id, slug, err := s.Companies.Create(ctx, in)
	if err != nil {
		return 0, "", err
	}
	s.Listing.Invalidate(ctx, query.Companies)
	return id, slug, nil
}

func (s CatalogService) UpdateCompany(ctx context.Context, id int64, in models.CompanyInput) error {
	if err := validateCompany(in); err != nil {
		return err
	}
	if err := s.Companies.Update(ctx, id, in); err != nil {
		return notFound("perusahaan", err)
	}
	// Job cards show the company name.
	s.Listing.Invalidate(ctx, query.Companies)
	s.Listing.Invalidate(ctx, query.Jobs)
	return nil
}

func (s CatalogService) DeleteCompany(ctx context.Context, id int64) error {
	if err := s.Companies.Delete(ctx, id); err != nil {
		return notFound("perusahaan", err)
	}
	s.Listing.Invalidate(ctx, query.Companies)
	s.Listing.Invalidate(ctx, query.Jobs)
	return nil
}

func (s CatalogService) CreateArticle(ctx context.Context, in models.ArticleInput) (int64, string, error) {
	if strings.TrimSpace(in.Title) == "" {
		return 0, "", domain.ValidationError{Field: "title", Msg: "judul wajib diisi"}
	}
	excerpt, err := Excerpt(in.Content, excerptLen)
	if err != nil {
		return 0, "", domain.ValidationError{Field: "content", Msg: "konten HTML tidak valid", Err: err}
	}
	id, slug, err := s.Articles.Create(ctx, in, excerpt)
	if err != nil {
		return 0, "", err
	}
	s.Listing.Invalidate(ctx, query.Articles)
	return id, slug, nil
}

func (s CatalogService) UpdateArticle(ctx context.Context, id int64, in models.ArticleInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return domain.ValidationError{Field: "title", Msg: "judul wajib diisi"}
	}
	excerpt, err := Excerpt(in.Content, excerptLen)
	if err != nil {
		return domain.ValidationError{Field: "content", Msg: "konten HTML tidak valid", Err: err}
	}
	if err := s.Articles.Update(ctx, id, in, excerpt); err != nil {
		return notFound("artikel", err)
	}
	s.Listing.Invalidate(ctx, query.Articles)
	return nil
}

func (s CatalogService) DeleteArticle(ctx context.Context, id int64) error {
	if err := s.Articles.Delete(ctx, id); err != nil {
		return notFound("artikel", err)
	}
	s.Listing.Invalidate(ctx, query.Articles)
	return nil
}

// Excerpt strips markup from html and cuts the text at a word boundary no
// longer than max runes.
func Excerpt(html string, max int) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	doc.Find("script, style").Remove()
	doc.Find("p, li, br, div, h1, h2, h3, h4, h5, h6").AppendHtml(" ")
	text := utils.NormalizeSpace(doc.Text())

	runes := []rune(text)
	if len(runes) <= max {
		return text, nil
	}
	cut := string(runes[:max])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "...", nil
}
