package mysql

import (
	"context"
	"database/sql"
	"time"

	"homestay_wizard/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

// Repo is the submission audit trail: insert-only plus a recent-attempts
// query for ops. Homestay persistence itself lives behind the platform API,
// not here.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Record(ctx context.Context, rec domain.SubmissionRecord) error {
	var created any
	if !rec.CreatedAt.IsZero() {
		created = rec.CreatedAt
	}
	_, err := r.db.ExecContext(ctx, insertSubmissionSQL,
		rec.SessionID,
		valStr(rec.HomestayID),
		rec.Mode,
		rec.Success,
		valStr(rec.Message),
		created,
	)
	return err
}

func (r *Repo) Recent(ctx context.Context, limit int) ([]domain.SubmissionRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, recentSubmissionsSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SubmissionRecord
	for rows.Next() {
		var rec domain.SubmissionRecord
		var homestayID, message sql.NullString
		var createdAt time.Time
		if err := rows.Scan(
			&rec.SessionID,
			&homestayID,
			&rec.Mode,
			&rec.Success,
			&message,
			&createdAt,
		); err != nil {
			return nil, err
		}
		if homestayID.Valid {
			s := homestayID.String
			rec.HomestayID = &s
		}
		if message.Valid {
			s := message.String
			rec.Message = &s
		}
		rec.CreatedAt = createdAt
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
