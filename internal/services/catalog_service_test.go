package services

import (
	"context"
	"database/sql"
	"regexp"
	"strings"
	"testing"
	"time"

	"jenjangkarir/internal/domain"
	"jenjangkarir/internal/domain/models"
	"jenjangkarir/internal/query"
	"jenjangkarir/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestExcerptStripsMarkup(t *testing.T) {
	html := `<h2>Tips</h2><p>Siapkan <b>CV</b> yang rapi.</p><script>alert(1)</script><ul><li>Singkat</li><li>Jelas</li></ul>`
	got, err := Excerpt(html, 200)
	if err != nil {
		t.Fatalf("Excerpt: %v", err)
	}
	if got != "Tips Siapkan CV yang rapi. Singkat Jelas" {
		t.Fatalf("excerpt = %q", got)
	}
}

func TestExcerptCutsAtWord(t *testing.T) {
	got, err := Excerpt("<p>satu dua tiga empat lima</p>", 12)
	if err != nil {
		t.Fatalf("Excerpt: %v", err)
	}
	if got != "satu dua..." {
		t.Fatalf("excerpt = %q", got)
	}
}

func TestValidateJob(t *testing.T) {
	cases := []struct {
		in    models.JobInput
		field string
	}{
		{models.JobInput{CompanyID: 1}, "title"},
		{models.JobInput{Title: "QA"}, "company_id"},
		{models.JobInput{Title: "QA", CompanyID: 1, SalaryMin: 9, SalaryMax: 5}, "salary"},
		{models.JobInput{Title: "QA", CompanyID: 1, Status: "archived"}, "status"},
	}
	for _, tc := range cases {
		err := validateJob(tc.in)
		ve, ok := err.(domain.ValidationError)
		if !ok {
			t.Fatalf("expected validation error for %+v, got %v", tc.in, err)
		}
		if ve.Field != tc.field {
			t.Fatalf("field = %q, want %q", ve.Field, tc.field)
		}
	}
	if err := validateJob(models.JobInput{Title: "QA", CompanyID: 1, SalaryMin: 5, SalaryMax: 9}); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
}

func TestJobDetailHidesInactive(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	cols := []string{"id", "slug", "title", "company_id", "company", "company_slug", "logo", "location", "job_type",
		"category_id", "salary_min", "salary_max", "status", "deadline", "posted_at", "description", "requirements"}
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE j.slug = ?`)).
		WithArgs("qa-1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(1, "qa-1", "QA", 2, "Nusantara", "nusantara-2", "", "Bali",
			"contract", "it", 0, 0, "inactive", nil, time.Now(), "", ""))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE j.slug = ?`)).
		WithArgs("hilang").
		WillReturnError(sql.ErrNoRows)

	svc := CatalogService{Jobs: repositories.JobRepository{Conn: repositories.Conn{DB: db, Dialect: query.MySQL}}}
	if _, err := svc.JobDetail(context.Background(), "qa-1"); !domain.IsNotFound(err) {
		t.Fatalf("inactive job should read as not found, got %v", err)
	}
	if _, err := svc.JobDetail(context.Background(), "hilang"); !domain.IsNotFound(err) {
		t.Fatalf("missing job should read as not found, got %v", err)
	}
}

func TestCreateArticleStoresExcerpt(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	content := "<p>" + strings.Repeat("kata ", 60) + "</p>"
	want, _ := Excerpt(content, excerptLen)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO articles`)).
		WithArgs(sqlmock.AnyArg(), "Cara Menulis CV", "tips-karir", want, content, nil, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE articles SET slug = ? WHERE id = ?`)).
		WithArgs("cara-menulis-cv-5", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := CatalogService{Articles: repositories.ArticleRepository{Conn: repositories.Conn{DB: db, Dialect: query.MySQL}}}
	_, slug, err := svc.CreateArticle(context.Background(), models.ArticleInput{
		Title: "Cara Menulis CV", Category: "tips-karir", Content: content,
	})
	if err != nil {
		t.Fatalf("CreateArticle: %v", err)
	}
	if slug != "cara-menulis-cv-5" {
		t.Fatalf("slug = %q", slug)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
