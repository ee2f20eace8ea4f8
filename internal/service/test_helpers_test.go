package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/omriBer/diet/internal/db"
	"github.com/omriBer/diet/internal/service"
)

var testNow = time.Date(2026, 4, 20, 12, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leptin.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

// startedDB returns a database whose program began daysAgo days before testNow.
func startedDB(t *testing.T, daysAgo int) *sql.DB {
	t.Helper()
	sqldb := newTestDB(t)
	if _, err := service.SetupProgram(sqldb, service.SetupInput{
		Name:      "דנה",
		StartDate: testNow.AddDate(0, 0, -daysAgo).Format("2006-01-02"),
	}, testNow); err != nil {
		t.Fatalf("setup program: %v", err)
	}
	return sqldb
}

func ptr[T any](v T) *T {
	return &v
}
