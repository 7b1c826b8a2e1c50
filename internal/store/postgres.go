// Package store persists sticker run history.
//
// Postgres is used when a database URL is configured; otherwise the server
// keeps a bounded in-memory history.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/stickers/internal/core"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

const createRunsTable = `
CREATE TABLE IF NOT EXISTS sticker_runs (
    id          UUID PRIMARY KEY,
    kind        TEXT NOT NULL,
    file_name   TEXT NOT NULL,
    template    TEXT,
    records     INTEGER NOT NULL DEFAULT 0,
    skipped     INTEGER NOT NULL DEFAULT 0,
    pages       INTEGER NOT NULL DEFAULT 0,
    error       TEXT,
    client_ip   TEXT,
    user_agent  TEXT,
    duration_ms BIGINT NOT NULL DEFAULT 0,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const createRunsIndex = `
CREATE INDEX IF NOT EXISTS sticker_runs_created_at_idx ON sticker_runs (created_at DESC)`

const insertRun = `
INSERT INTO sticker_runs (
    id, kind, file_name, template, records, skipped, pages,
    error, client_ip, user_agent, duration_ms, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

const selectRecentRuns = `
SELECT id, kind, file_name, template, records, skipped, pages,
       error, client_ip, user_agent, duration_ms, created_at
FROM sticker_runs
ORDER BY created_at DESC
LIMIT $1`

const deleteRunsBefore = `DELETE FROM sticker_runs WHERE created_at < $1`

// Postgres is a core.RunStore backed by the sticker_runs table.
type Postgres struct {
	db DBTX
}

// NewPostgres returns a store on db. Call Migrate once before use.
func NewPostgres(db DBTX) *Postgres {
	return &Postgres{db: db}
}

// Migrate creates the sticker_runs table if it does not exist.
func (p *Postgres) Migrate(ctx context.Context) error {
	for _, stmt := range []string{createRunsTable, createRunsIndex} {
		if _, err := p.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate sticker_runs: %w", err)
		}
	}
	return nil
}

func (p *Postgres) SaveRun(ctx context.Context, run core.Run) error {
	id, err := uuid.Parse(run.ID)
	if err != nil {
		return fmt.Errorf("save run: invalid id %q: %w", run.ID, err)
	}

	_, err = p.db.Exec(ctx, insertRun,
		pgtype.UUID{Bytes: id, Valid: true},
		string(run.Kind),
		run.FileName,
		toPgText(run.Template),
		int32(run.Records),
		int32(run.Skipped),
		int32(run.Pages),
		toPgText(run.Error),
		toPgText(run.ClientIP),
		toPgText(run.UserAgent),
		run.DurationMs,
		pgtype.Timestamptz{Time: run.CreatedAt, Valid: !run.CreatedAt.IsZero()},
	)
	if err != nil {
		return fmt.Errorf("save run %s: %w", run.ID, err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first. Limits outside
// 1..core.MaxHistoryLimit are clamped to core.MaxHistoryLimit.
func (p *Postgres) RecentRuns(ctx context.Context, limit int) ([]core.Run, error) {
	if limit <= 0 || limit > core.MaxHistoryLimit {
		limit = core.MaxHistoryLimit
	}

	rows, err := p.db.Query(ctx, selectRecentRuns, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []core.Run
	for rows.Next() {
		var (
			id                      pgtype.UUID
			kind, fileName          string
			template, runErr        pgtype.Text
			clientIP, userAgent     pgtype.Text
			records, skipped, pages int32
			durationMs              int64
			createdAt               pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &kind, &fileName, &template, &records, &skipped, &pages,
			&runErr, &clientIP, &userAgent, &durationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}

		runs = append(runs, core.Run{
			ID:         uuidToString(id),
			Kind:       core.RunKind(kind),
			FileName:   fileName,
			Template:   template.String,
			Records:    int(records),
			Skipped:    int(skipped),
			Pages:      int(pages),
			Error:      runErr.String,
			ClientIP:   clientIP.String,
			UserAgent:  userAgent.String,
			DurationMs: durationMs,
			CreatedAt:  createdAt.Time,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func (p *Postgres) PurgeRuns(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := p.db.Exec(ctx, deleteRunsBefore, pgtype.Timestamptz{Time: cutoff, Valid: true})
	if err != nil {
		return 0, fmt.Errorf("purge runs: %w", err)
	}
	return tag.RowsAffected(), nil
}

func toPgText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

func uuidToString(u pgtype.UUID) string {
	if !u.Valid {
		return ""
	}
	return uuid.UUID(u.Bytes).String()
}
