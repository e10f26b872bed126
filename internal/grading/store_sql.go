package grading

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

func (s *SQLStore) GetResult(ctx context.Context, studentID, paperID string) (Result, error) {
	row := s.db.QueryRowContext(ctx, `SELECT student_id,paper_id,score,classification,breakdown_json,evaluated_at
		FROM results WHERE student_id=$1 AND paper_id=$2`, studentID, paperID)
	return scanResult(row)
}

// SaveResult runs the result insert and the submitted -> evaluated
// attempt transition in one transaction, conditional on the attempt
// still being submitted.
func (s *SQLStore) SaveResult(ctx context.Context, r Result) error {
	bj, err := json.Marshal(r.Breakdown)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE attempts SET status='evaluated', evaluated_at=$1
		WHERE student_id=$2 AND paper_id=$3 AND status='submitted'`,
		r.EvaluatedAt, r.StudentID, r.PaperID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotSubmitted
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO results
		(student_id,paper_id,score,classification,breakdown_json,evaluated_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		r.StudentID, r.PaperID, r.Score, string(r.Classification), string(bj), r.EvaluatedAt); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLStore) ListResultsByStudent(ctx context.Context, studentID string) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT student_id,paper_id,score,classification,breakdown_json,evaluated_at
		FROM results WHERE student_id=$1 ORDER BY evaluated_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (Result, error) {
	var r Result
	var class, bjson string
	if err := row.Scan(&r.StudentID, &r.PaperID, &r.Score, &class, &bjson, &r.EvaluatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Result{}, ErrResultNotFound
		}
		return Result{}, err
	}
	r.Classification = Classification(class)
	if bjson != "" && bjson != "null" {
		if err := json.Unmarshal([]byte(bjson), &r.Breakdown); err != nil {
			return Result{}, err
		}
	}
	return r, nil
}
