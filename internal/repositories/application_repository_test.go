package repositories

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"jenjangkarir/internal/domain"
	"jenjangkarir/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestApplicationCreateStartsSubmitted(t *testing.T) {
	conn, mock := newMock(t)
	repo := ApplicationRepository{Conn: conn}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO applications`)).
		WithArgs(int64(5), int64(8), "Rina", "rina@mail.id", "0812", nil, nil, "submitted", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(31, 1))

	id, err := repo.Create(context.Background(), 5, 8, models.ApplicationInput{FullName: "Rina", Email: "rina@mail.id", Phone: "0812"})
	if err != nil || id != 31 {
		t.Fatalf("got %d, %v", id, err)
	}
}

func TestApplicationExistsForUser(t *testing.T) {
	conn, mock := newMock(t)
	repo := ApplicationRepository{Conn: conn}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM applications WHERE job_id = ? AND user_id = ?`)).
		WithArgs(int64(5), int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	ok, err := repo.ExistsForUser(context.Background(), 5, 8)
	if err != nil || !ok {
		t.Fatalf("got %v, %v", ok, err)
	}
}

func TestApplicationListByJobAll(t *testing.T) {
	conn, mock := newMock(t)
	repo := ApplicationRepository{Conn: conn}

	cols := []string{"id", "job_id", "slug", "title", "company", "user_id", "name", "email", "phone", "cover", "resume", "status", "created"}
	mock.ExpectQuery(regexp.QuoteMeta(`JOIN companies c ON c.id = j.company_id ORDER BY ap.created_at DESC`)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, 5, "qa-5", "QA", "Nusantara", 8, "Rina", "rina@mail.id", "", "", "", "submitted", time.Now()))

	out, err := repo.ListByJob(context.Background(), 0)
	if err != nil || len(out) != 1 || out[0].JobTitle != "QA" {
		t.Fatalf("got %+v, %v", out, err)
	}
}

func TestApplicationUpdateStatusMissing(t *testing.T) {
	conn, mock := newMock(t)
	repo := ApplicationRepository{Conn: conn}

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE applications SET status = ? WHERE id = ?`)).
		WithArgs("interview", int64(77)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 77, domain.ApplicationInterview)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestUserLookupLowercases(t *testing.T) {
	conn, mock := newMock(t)
	repo := UserRepository{Conn: conn}

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE LOWER(email) = ? OR LOWER(username) = ?`)).
		WithArgs("rina@mail.id", "rina@mail.id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "username", "email", "hash", "role", "created"}).
			AddRow(8, "Rina", "rina", "rina@mail.id", "$2a$10$x", "user", time.Now()))

	u, err := repo.GetByEmailOrUsername(context.Background(), "  Rina@Mail.id ")
	if err != nil || u.ID != 8 {
		t.Fatalf("got %+v, %v", u, err)
	}
}
