package db

import (
	"context"
	"regexp"
	"testing"

	"jenjangkarir/internal/query"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMissingTablesMySQL(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer conn.Close()

	stmt := regexp.QuoteMeta("FROM information_schema.tables")
	mock.ExpectQuery(stmt).WithArgs("jobs").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("jobs"))
	mock.ExpectQuery(stmt).WithArgs("articles").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	got := MissingTables(context.Background(), conn, query.MySQL, "jobs", "articles")
	if len(got) != 1 || got[0] != "articles" {
		t.Fatalf("missing = %v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestHasTablePostgresUsesCurrentSchema(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer conn.Close()

	mock.ExpectQuery(regexp.QuoteMeta("table_schema = current_schema() AND table_name = $1")).
		WithArgs("companies").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("companies"))

	if !HasTable(context.Background(), conn, query.Postgres, "companies") {
		t.Fatalf("expected table to exist")
	}
}

func TestNullIfEmpty(t *testing.T) {
	if NullIfEmpty("") != nil {
		t.Fatalf("empty string should be nil")
	}
	if NullIfEmpty("x") != "x" {
		t.Fatalf("non-empty string should pass through")
	}
}
