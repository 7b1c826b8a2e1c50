package core

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/stickers/internal/logging"
)

// DecodeFunc turns an uploaded file into a workbook. The file name selects
// the format.
type DecodeFunc func(r io.Reader, fileName string) (Workbook, error)

// PDFWriter draws a layout plan onto a document and writes it to w.
type PDFWriter interface {
	WritePDF(w io.Writer, records []EquipmentRecord, plan LayoutPlan) error
}

// Options holds the service limits and defaults.
type Options struct {
	MaxFileSize          int64
	DefaultTemplate      string
	DefaultMaxNameLength int
	MaxConcurrent        int
	MaxWait              time.Duration
	Timeout              time.Duration
}

// Service runs ingestion, layout and rendering for uploaded files and keeps
// the run history. It holds no per-run state; concurrent calls are safe.
type Service struct {
	decode  DecodeFunc
	pdf     PDFWriter
	runs    RunStore
	limiter *JobLimiter
	opts    Options
	now     func() time.Time
}

// NewService wires a Service. runs may be nil to disable history.
func NewService(decode DecodeFunc, pdf PDFWriter, runs RunStore, opts Options) (*Service, error) {
	if decode == nil {
		return nil, fmt.Errorf("new service: decoder is required")
	}
	if opts.DefaultTemplate == "" {
		opts.DefaultTemplate = DefaultTemplateKey
	}
	if _, err := LookupTemplate(opts.DefaultTemplate); err != nil {
		return nil, fmt.Errorf("new service: default template: %w", err)
	}
	if opts.DefaultMaxNameLength == 0 {
		opts.DefaultMaxNameLength = DefaultMaxNameLength
	}

	return &Service{
		decode:  decode,
		pdf:     pdf,
		runs:    runs,
		limiter: NewJobLimiter(opts.MaxConcurrent, opts.MaxWait),
		opts:    opts,
		now:     time.Now,
	}, nil
}

// Request is one uploaded file plus the user's layout choices.
// Zero Template and MaxNameLength select the configured defaults.
type Request struct {
	FileName      string
	Data          []byte
	Template      string
	MaxNameLength int
}

// Batch is the outcome of ingesting and planning one file.
type Batch struct {
	RunID    string
	FileName string
	Template GridTemplate
	Records  []EquipmentRecord
	Stats    IngestStats
	Plan     LayoutPlan
}

// PreviewResult is what the upload page shows before printing.
type PreviewResult struct {
	RunID    string            `json:"runId"`
	FileName string            `json:"fileName"`
	Template GridTemplate      `json:"template"`
	Summary  Summary           `json:"summary"`
	Stats    IngestStats       `json:"stats"`
	Messages []string          `json:"messages"`
	Records  []EquipmentRecord `json:"records"`
}

// Templates lists the grid template catalog.
func (s *Service) Templates() []GridTemplate {
	return Templates()
}

// Preview ingests and plans req without rendering.
func (s *Service) Preview(ctx context.Context, req Request) (*PreviewResult, error) {
	batch, err := s.run(ctx, RunPreview, req, nil)
	if err != nil {
		return nil, err
	}

	summary := Summarize(batch.Plan)
	return &PreviewResult{
		RunID:    batch.RunID,
		FileName: batch.FileName,
		Template: batch.Template,
		Summary:  summary,
		Stats:    batch.Stats,
		Messages: summary.Lines(),
		Records:  batch.Records,
	}, nil
}

// Render ingests and plans req, then writes the sticker PDF to w.
func (s *Service) Render(ctx context.Context, req Request, w io.Writer) (*Batch, error) {
	if s.pdf == nil {
		return nil, fmt.Errorf("render: no PDF writer configured")
	}
	return s.run(ctx, RunRender, req, w)
}

// Load ingests and plans req without touching the limiter or history.
// It is the building block for CLI use.
func (s *Service) Load(req Request) (*Batch, error) {
	if req.Data == nil {
		return nil, ErrNoFile
	}
	if s.opts.MaxFileSize > 0 && int64(len(req.Data)) > s.opts.MaxFileSize {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, len(req.Data), s.opts.MaxFileSize)
	}

	tpl, err := s.resolveTemplate(req.Template)
	if err != nil {
		return nil, err
	}

	wb, err := s.decode(bytes.NewReader(req.Data), req.FileName)
	if err != nil {
		return nil, err
	}

	records, stats, err := IngestWorkbook(wb, s.nameLength(req.MaxNameLength))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptyResult
	}

	plan, err := PlanRecords(records, tpl)
	if err != nil {
		return nil, err
	}

	return &Batch{
		FileName: req.FileName,
		Template: tpl,
		Records:  records,
		Stats:    stats,
		Plan:     plan,
	}, nil
}

func (s *Service) run(ctx context.Context, kind RunKind, req Request, w io.Writer) (*Batch, error) {
	start := s.now()
	runID := uuid.New().String()
	ctx = logging.WithContext(ctx, "run_id", runID, "file", req.FileName, "kind", kind)
	logger := logging.FromContext(ctx)

	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		logger.Warn("job slot not acquired", "error", err)
		return nil, err
	}
	defer s.limiter.Release()

	batch, err := s.Load(req)
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	if err == nil && w != nil {
		if werr := s.pdf.WritePDF(w, batch.Records, batch.Plan); werr != nil {
			err = fmt.Errorf("render pdf: %w", werr)
		}
	}

	run := Run{
		ID:         runID,
		Kind:       kind,
		FileName:   req.FileName,
		Template:   req.Template,
		DurationMs: s.now().Sub(start).Milliseconds(),
		CreatedAt:  start,
	}
	client := ClientFromContext(ctx)
	run.ClientIP, run.UserAgent = client.IP, client.UserAgent

	if err != nil {
		run.Error = err.Error()
		logger.Warn("run failed", "error", err, "code", MapError(err).Code)
	} else {
		batch.RunID = runID
		run.Template = batch.Template.Key
		run.Records = len(batch.Records)
		run.Skipped = batch.Stats.Skipped
		run.Pages = batch.Plan.TotalPages()
		logger.Info("run completed",
			"template", run.Template,
			"records", run.Records,
			"skipped", run.Skipped,
			"pages", run.Pages,
			"duration_ms", run.DurationMs,
		)
	}

	s.saveRun(ctx, run)
	return batch, err
}

// saveRun records run in history; failures are logged, never returned.
func (s *Service) saveRun(ctx context.Context, run Run) {
	if s.runs == nil {
		return
	}
	// The request context may already be done; history still gets written.
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := s.runs.SaveRun(saveCtx, run); err != nil {
		logging.FromContext(ctx).Error("save run history", "error", err)
	}
}

// History limits.
const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

// History returns the most recent runs, newest first. A non-positive limit
// means DefaultHistoryLimit; larger ones are capped at MaxHistoryLimit.
func (s *Service) History(ctx context.Context, limit int) ([]Run, error) {
	if s.runs == nil {
		return nil, nil
	}
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}
	return s.runs.RecentRuns(ctx, limit)
}

func (s *Service) resolveTemplate(key string) (GridTemplate, error) {
	if key == "" {
		key = s.opts.DefaultTemplate
	}
	return LookupTemplate(key)
}

func (s *Service) nameLength(n int) int {
	if n == 0 {
		n = s.opts.DefaultMaxNameLength
	}
	return ClampNameLength(n)
}

// LimiterStatus reports the job limiter state.
func (s *Service) LimiterStatus() JobLimiterStatus {
	return s.limiter.Status()
}

// WaitForJobs blocks until running jobs finish or ctx is done.
func (s *Service) WaitForJobs(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
