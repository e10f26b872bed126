package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:assessment.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/assessment?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL,
  email TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS papers (
  id TEXT PRIMARY KEY,
  course_id TEXT NOT NULL,
  exam_name TEXT NOT NULL,
  academic_term TEXT NOT NULL DEFAULT '',
  author_id TEXT NOT NULL,
  total_marks INTEGER NOT NULL,
  questions_json TEXT NOT NULL,
  status TEXT NOT NULL,
  reviewed_by TEXT,
  created_at INTEGER NOT NULL,
  reviewed_at INTEGER
);

CREATE TABLE IF NOT EXISTS attempts (
  student_id TEXT NOT NULL,
  paper_id TEXT NOT NULL REFERENCES papers(id),
  status TEXT NOT NULL,
  answers_json TEXT NOT NULL,
  started_at INTEGER NOT NULL,
  submitted_at INTEGER,
  evaluated_at INTEGER,
  PRIMARY KEY (student_id, paper_id)
);

CREATE TABLE IF NOT EXISTS results (
  student_id TEXT NOT NULL,
  paper_id TEXT NOT NULL REFERENCES papers(id),
  score REAL NOT NULL,
  classification TEXT NOT NULL,
  breakdown_json TEXT NOT NULL DEFAULT '',
  evaluated_at INTEGER NOT NULL,
  PRIMARY KEY (student_id, paper_id)
);

CREATE TABLE IF NOT EXISTS event_log (
  offset INTEGER PRIMARY KEY AUTOINCREMENT, -- BIGSERIAL in Postgres
  site_id TEXT NOT NULL DEFAULT 'local',
  typ TEXT NOT NULL,                         -- e.g., AttemptSubmitted
  key TEXT NOT NULL,                         -- natural key: paperID or studentID|paperID
  data TEXT NOT NULL,                        -- JSON payload
  created_at INTEGER NOT NULL
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL,
  email TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS papers (
  id TEXT PRIMARY KEY,
  course_id TEXT NOT NULL,
  exam_name TEXT NOT NULL,
  academic_term TEXT NOT NULL DEFAULT '',
  author_id TEXT NOT NULL,
  total_marks INTEGER NOT NULL,
  questions_json TEXT NOT NULL,
  status TEXT NOT NULL,
  reviewed_by TEXT,
  created_at BIGINT NOT NULL,
  reviewed_at BIGINT
);

CREATE TABLE IF NOT EXISTS attempts (
  student_id TEXT NOT NULL,
  paper_id TEXT NOT NULL REFERENCES papers(id),
  status TEXT NOT NULL,
  answers_json TEXT NOT NULL,
  started_at BIGINT NOT NULL,
  submitted_at BIGINT,
  evaluated_at BIGINT,
  PRIMARY KEY (student_id, paper_id)
);

CREATE TABLE IF NOT EXISTS results (
  student_id TEXT NOT NULL,
  paper_id TEXT NOT NULL REFERENCES papers(id),
  score DOUBLE PRECISION NOT NULL,
  classification TEXT NOT NULL,
  breakdown_json TEXT NOT NULL DEFAULT '',
  evaluated_at BIGINT NOT NULL,
  PRIMARY KEY (student_id, paper_id)
);

CREATE TABLE IF NOT EXISTS event_log (
  offset BIGSERIAL PRIMARY KEY,
  site_id TEXT NOT NULL DEFAULT 'local',
  typ TEXT NOT NULL,
  key TEXT NOT NULL,
  data TEXT NOT NULL,
  created_at BIGINT NOT NULL
);
`
