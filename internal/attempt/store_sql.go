package attempt

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Get(ctx context.Context, studentID, paperID string) (Attempt, error) {
	row := s.db.QueryRowContext(ctx, `SELECT student_id,paper_id,status,answers_json,started_at,submitted_at,evaluated_at
		FROM attempts WHERE student_id=$1 AND paper_id=$2`, studentID, paperID)
	return scanAttempt(row)
}

func (s *SQLStore) Upsert(ctx context.Context, a Attempt) error {
	aj, err := json.Marshal(a.Answers)
	if err != nil {
		return err
	}
	// Answers may only change while in_progress; the WHERE clause on the
	// update arm makes a write after submission a silent no-op at the SQL
	// level (the controller rejects it first).
	_, err = s.db.ExecContext(ctx, `INSERT INTO attempts (student_id,paper_id,status,answers_json,started_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (student_id,paper_id) DO UPDATE SET answers_json=EXCLUDED.answers_json
		WHERE attempts.status='in_progress'`,
		a.StudentID, a.PaperID, string(a.State), string(aj), a.StartedAt)
	return err
}

func (s *SQLStore) TransitionSubmit(ctx context.Context, studentID, paperID string, answers map[int]string, submittedAt int64) error {
	aj, err := json.Marshal(answers)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE attempts
		SET status='submitted', answers_json=$1, submitted_at=$2
		WHERE student_id=$3 AND paper_id=$4 AND status='in_progress'`,
		string(aj), submittedAt, studentID, paperID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, err := s.Get(ctx, studentID, paperID); err != nil {
			return err
		}
		return ErrDuplicateSubmission
	}
	return nil
}

func (s *SQLStore) ListByStudent(ctx context.Context, studentID string) ([]Attempt, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT student_id,paper_id,status,answers_json,started_at,submitted_at,evaluated_at
		FROM attempts WHERE student_id=$1 ORDER BY started_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Attempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAttempt(row rowScanner) (Attempt, error) {
	var a Attempt
	var status, ajson string
	var submittedAt, evaluatedAt sql.NullInt64
	if err := row.Scan(&a.StudentID, &a.PaperID, &status, &ajson, &a.StartedAt, &submittedAt, &evaluatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Attempt{}, ErrNotFound
		}
		return Attempt{}, err
	}
	a.State = State(status)
	a.SubmittedAt = submittedAt.Int64
	a.EvaluatedAt = evaluatedAt.Int64
	if err := json.Unmarshal([]byte(ajson), &a.Answers); err != nil {
		a.Answers = map[int]string{}
	}
	return a, nil
}
