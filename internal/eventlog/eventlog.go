package eventlog

import (
	"context"
	"database/sql"
	"time"
)

// Lifecycle event types appended by the engine. The log is append-only
// and read by external sync/audit tooling, never by the engine itself.
const (
	TypePaperFinalized   = "PaperFinalized"
	TypePaperReviewed    = "PaperReviewed"
	TypeAttemptSubmitted = "AttemptSubmitted"
	TypeAttemptEvaluated = "AttemptEvaluated"
)

type Event struct {
	Offset    int64
	SiteID    string
	Type      string
	Key       string // natural key: paperID or studentID|paperID
	DataJSON  string
	CreatedAt int64
}

type Repo struct{ db *sql.DB }

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Append(ctx context.Context, e Event) error {
	if e.SiteID == "" {
		e.SiteID = "local"
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_log (site_id, typ, key, data, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		e.SiteID, e.Type, e.Key, e.DataJSON, time.Now().Unix())
	return err
}
