package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"jenjangkarir/internal/domain/models"
	"jenjangkarir/internal/query"
	"jenjangkarir/internal/utils"
)

// Column maps from the translator's logical fields to SQL expressions.
var (
	jobColumns = query.Columns{
		query.FieldStatus:      "j.status",
		query.FieldTitle:       "j.title",
		query.FieldCompanyName: "c.name",
		query.FieldLocation:    "j.location",
		query.FieldJobType:     "j.job_type",
		query.FieldCategoryID:  "j.category_id",
		query.FieldSalaryMin:   "j.salary_min",
		query.FieldSalaryMax:   "j.salary_max",
		query.FieldPostedAt:    "j.posted_at",
		query.FieldID:          "j.id",
	}
	companyColumns = query.Columns{
		query.FieldName:      "co.name",
		query.FieldLocation:  "co.location",
		query.FieldIndustry:  "co.industry",
		query.FieldSize:      "co.size",
		query.FieldCreatedAt: "co.created_at",
		query.FieldID:        "co.id",
	}
	articleColumns = query.Columns{
		query.FieldTitle:       "a.title",
		query.FieldCategory:    "a.category",
		query.FieldPublishedAt: "a.published_at",
		query.FieldID:          "a.id",
	}
)

const (
	jobFields = `j.id, j.slug, j.title, j.company_id, c.name, c.slug, COALESCE(c.logo_url,''),
		COALESCE(j.location,''), COALESCE(j.job_type,''), COALESCE(j.category_id,''),
		COALESCE(j.salary_min,0), COALESCE(j.salary_max,0), j.status, j.deadline, j.posted_at`
	jobFrom = ` FROM jobs j JOIN companies c ON c.id = j.company_id`

	jobListSelect   = `SELECT ` + jobFields + jobFrom
	jobDetailSelect = `SELECT ` + jobFields + `, COALESCE(j.description,''), COALESCE(j.requirements,'')` + jobFrom

	companyListSelect = `SELECT co.id, co.slug, co.name, COALESCE(co.industry,''), COALESCE(co.size,''),
		COALESCE(co.location,''), COALESCE(co.logo_url,''),
		(SELECT COUNT(*) FROM jobs oj WHERE oj.company_id = co.id AND oj.status = 'active'),
		co.created_at
		FROM companies co`

	articleListSelect = `SELECT a.id, a.slug, a.title, COALESCE(a.category,''), COALESCE(a.excerpt,''),
		COALESCE(a.cover_url,''), COALESCE(a.author,''), a.published_at
		FROM articles a`
)

// ListingRepository runs translated filter plans against the three public
// collections.
type ListingRepository struct {
	Conn
}

func NewListingRepository(db *sql.DB, d query.Dialect) ListingRepository {
	return ListingRepository{Conn: Conn{DB: db, Dialect: d}}
}

// fetchPage renders plan into base's WHERE/ORDER BY and applies rng.
func (r ListingRepository) fetchPage(ctx context.Context, base string, cols query.Columns, plan query.Plan, rng query.Range) (*sql.Rows, error) {
	db := r.db()
	if db == nil {
		return nil, fmt.Errorf("database belum terhubung")
	}
	where, args, err := query.Render(r.Dialect, plan.Predicates, cols)
	if err != nil {
		return nil, err
	}
	order, err := query.RenderOrder(plan.Order, cols)
	if err != nil {
		return nil, err
	}

	stmt := base + " WHERE " + where
	if order != "" {
		stmt += " ORDER BY " + order
	}
	n := len(args)
	stmt += fmt.Sprintf(" LIMIT %s OFFSET %s", r.Dialect.Placeholder(n+1), r.Dialect.Placeholder(n+2))
	args = append(args, rng.Limit, rng.Offset)

	return db.QueryContext(ctx, stmt, args...)
}

func (r ListingRepository) FetchJobs(ctx context.Context, plan query.Plan, rng query.Range) ([]models.Job, error) {
	rows, err := r.fetchPage(ctx, jobListSelect, jobColumns, plan, rng)
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

func (r ListingRepository) FetchCompanies(ctx context.Context, plan query.Plan, rng query.Range) ([]models.Company, error) {
	rows, err := r.fetchPage(ctx, companyListSelect, companyColumns, plan, rng)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Company{}
	for rows.Next() {
		var c models.Company
		if err := rows.Scan(&c.ID, &c.Slug, &c.Name, &c.Industry, &c.Size, &c.Location, &c.LogoURL, &c.OpenJobs, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r ListingRepository) FetchArticles(ctx context.Context, plan query.Plan, rng query.Range) ([]models.Article, error) {
	rows, err := r.fetchPage(ctx, articleListSelect, articleColumns, plan, rng)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Article{}
	for rows.Next() {
		var a models.Article
		if err := rows.Scan(&a.ID, &a.Slug, &a.Title, &a.Category, &a.Excerpt, &a.CoverURL, &a.Author, &a.PublishedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// scanJob reads the jobListSelect columns, plus description and
// requirements when detail is set.
func scanJob(s scanner, detail bool) (models.Job, error) {
	var j models.Job
	var deadline sql.NullTime
	dest := []any{
		&j.ID, &j.Slug, &j.Title, &j.CompanyID, &j.CompanyName, &j.CompanySlug, &j.CompanyLogo,
		&j.Location, &j.JobType, &j.CategoryID, &j.SalaryMin, &j.SalaryMax, &j.Status, &deadline, &j.PostedAt,
	}
	if detail {
		dest = append(dest, &j.Description, &j.Requirements)
	}
	if err := s.Scan(dest...); err != nil {
		return j, err
	}
	if deadline.Valid {
		d := deadline.Time
		j.Deadline = &d
	}
	j.SalaryLabel = utils.FormatSalaryRange(j.SalaryMin, j.SalaryMax)
	return j, nil
}
