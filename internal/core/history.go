package core

import (
	"context"
	"time"
)

// RunKind says what a run produced.
type RunKind string

const (
	RunPreview RunKind = "preview"
	RunRender  RunKind = "render"
)

// Run is one ingestion (and possibly render) of an uploaded file.
type Run struct {
	ID         string    `json:"id"`
	Kind       RunKind   `json:"kind"`
	FileName   string    `json:"fileName"`
	Template   string    `json:"template"`
	Records    int       `json:"records"`
	Skipped    int       `json:"skipped"`
	Pages      int       `json:"pages"`
	Error      string    `json:"error,omitempty"`
	ClientIP   string    `json:"clientIp,omitempty"`
	UserAgent  string    `json:"userAgent,omitempty"`
	DurationMs int64     `json:"durationMs"`
	CreatedAt  time.Time `json:"createdAt"`
}

// RunStore persists run history.
type RunStore interface {
	SaveRun(ctx context.Context, run Run) error
	RecentRuns(ctx context.Context, limit int) ([]Run, error)
	// PurgeRuns deletes runs created before cutoff and returns how many went.
	PurgeRuns(ctx context.Context, cutoff time.Time) (int64, error)
}
