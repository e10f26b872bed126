package paper

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) PutPaper(ctx context.Context, p QuestionPaper) error {
	qj, err := json.Marshal(p.Questions)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO papers
		(id,course_id,exam_name,academic_term,author_id,total_marks,questions_json,status,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		p.ID, p.CourseID, p.ExamName, p.AcademicTerm, p.AuthorID, p.TotalMarks, string(qj), string(p.Status), p.CreatedAt)
	return err
}

func (s *SQLStore) GetPaper(ctx context.Context, id string) (QuestionPaper, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,course_id,exam_name,academic_term,author_id,total_marks,questions_json,status,reviewed_by,created_at,reviewed_at
		FROM papers WHERE id=$1`, id)
	var p QuestionPaper
	var qjson, status string
	var reviewedBy sql.NullString
	var reviewedAt sql.NullInt64
	if err := row.Scan(&p.ID, &p.CourseID, &p.ExamName, &p.AcademicTerm, &p.AuthorID, &p.TotalMarks, &qjson, &status, &reviewedBy, &p.CreatedAt, &reviewedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return QuestionPaper{}, ErrNotFound
		}
		return QuestionPaper{}, err
	}
	p.Status = Status(status)
	p.ReviewedBy = reviewedBy.String
	p.ReviewedAt = reviewedAt.Int64
	if err := json.Unmarshal([]byte(qjson), &p.Questions); err != nil {
		return QuestionPaper{}, err
	}
	return p, nil
}

func (s *SQLStore) ListPapers(ctx context.Context, opts ListOpts) ([]Summary, error) {
	q := `SELECT id,course_id,exam_name,author_id,total_marks,status,created_at FROM papers WHERE 1=1`
	args := []any{}
	n := 0
	add := func(clause string, v any) {
		n++
		q += clause + fmt.Sprintf("$%d", n)
		args = append(args, v)
	}
	if opts.Status != "" {
		add(` AND status=`, string(opts.Status))
	}
	if opts.CourseID != "" {
		add(` AND course_id=`, opts.CourseID)
	}
	if opts.AuthorID != "" {
		add(` AND author_id=`, opts.AuthorID)
	}
	q += ` ORDER BY created_at DESC`
	if opts.Limit > 0 {
		add(` LIMIT `, opts.Limit)
	}
	if opts.Offset > 0 {
		add(` OFFSET `, opts.Offset)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Summary
	for rows.Next() {
		var sm Summary
		var status string
		if err := rows.Scan(&sm.ID, &sm.CourseID, &sm.ExamName, &sm.AuthorID, &sm.TotalMarks, &status, &sm.CreatedAt); err != nil {
			return nil, err
		}
		sm.Status = Status(status)
		out = append(out, sm)
	}
	return out, rows.Err()
}

func (s *SQLStore) SetStatus(ctx context.Context, id string, from, to Status, reviewerID string, reviewedAt int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE papers SET status=$1, reviewed_by=$2, reviewed_at=$3 WHERE id=$4 AND status=$5`,
		string(to), reviewerID, reviewedAt, id, string(from))
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Distinguish a missing paper from a lost review race.
		var one int
		if err := s.db.QueryRowContext(ctx, `SELECT 1 FROM papers WHERE id=$1`, id).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		return ErrAlreadyReviewed
	}
	return nil
}
