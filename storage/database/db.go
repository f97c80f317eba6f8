package database

import (
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/ArthurFreire0/dashboard-School/core"
)

// Open opens the sqlite database file, creating it if needed.
func Open(conf *core.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", conf.Database.Path+"?_foreign_keys=on")
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS students (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	student_id        TEXT NOT NULL UNIQUE,
	name              TEXT NOT NULL DEFAULT '',
	course            TEXT NOT NULL DEFAULT '',
	admission_type    TEXT NOT NULL DEFAULT '',
	enrollment_status TEXT NOT NULL DEFAULT '',
	created_at        TIMESTAMP NOT NULL,
	updated_at        TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS disciplines (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL UNIQUE,
	code       TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS grades (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	student_id        INTEGER NOT NULL REFERENCES students (id),
	discipline_id     INTEGER NOT NULL REFERENCES disciplines (id),
	semester          TEXT NOT NULL DEFAULT '',
	final_grade       REAL,
	attendance_pct    REAL,
	payment_status    TEXT NOT NULL DEFAULT '',
	discipline_status TEXT NOT NULL DEFAULT '',
	course_evaluation REAL,
	created_at        TIMESTAMP NOT NULL,
	updated_at        TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS churn_predictions (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	student_id        INTEGER NOT NULL REFERENCES students (id),
	prediction_date   TIMESTAMP NOT NULL,
	churn_probability REAL NOT NULL,
	risk_level        TEXT NOT NULL,
	factors           TEXT NOT NULL DEFAULT ''
);
`

// Migrate creates the schema; safe to run on every start.
func Migrate(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}
