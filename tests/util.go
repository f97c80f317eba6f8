package testutil

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ArthurFreire0/dashboard-School/core"
	"github.com/ArthurFreire0/dashboard-School/storage/database"
)

// PrepareDB opens a throwaway in-memory database with the schema applied.
func PrepareDB(t *testing.T) *sqlx.DB {
	db, err := sqlx.Connect("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	return db
}

// ReportConfig returns the standard grading and risk policy used in tests.
func ReportConfig() core.ReportConfig {
	return core.ReportConfig{
		PassingGrade:        6.0,
		MinAttendance:       75.0,
		DefaultTotalClasses: 200.0,
		HighRiskThreshold:   0.7,
		MediumRiskThreshold: 0.4,
	}
}
