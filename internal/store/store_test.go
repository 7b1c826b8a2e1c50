package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/stickers/internal/core"
)

var (
	_ core.RunStore = (*Memory)(nil)
	_ core.RunStore = (*Postgres)(nil)
)

func makeRun(i int, at time.Time) core.Run {
	return core.Run{
		ID:        uuid.New().String(),
		Kind:      core.RunPreview,
		FileName:  fmt.Sprintf("report-%d.xlsx", i),
		Template:  "3x8",
		Records:   i,
		CreatedAt: at,
	}
}

func TestMemory_RecentRunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(10)
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		if err := m.SaveRun(ctx, makeRun(i, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	runs, err := m.RecentRuns(ctx, 3)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}

	var got []int
	for _, r := range runs {
		got = append(got, r.Records)
	}
	if diff := cmp.Diff([]int{4, 3, 2}, got); diff != "" {
		t.Errorf("RecentRuns order (-want +got):\n%s", diff)
	}
}

func TestMemory_Capacity(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(3)
	now := time.Now()

	for i := 0; i < 7; i++ {
		_ = m.SaveRun(ctx, makeRun(i, now))
	}

	if m.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", m.Len())
	}
	runs, _ := m.RecentRuns(ctx, 0)
	if runs[0].Records != 6 || runs[2].Records != 4 {
		t.Errorf("kept runs %d..%d, want 6..4", runs[0].Records, runs[2].Records)
	}
}

func TestMemory_PurgeRuns(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(0)
	cutoff := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	_ = m.SaveRun(ctx, makeRun(1, cutoff.AddDate(0, -2, 0)))
	_ = m.SaveRun(ctx, makeRun(2, cutoff.AddDate(0, 0, -1)))
	_ = m.SaveRun(ctx, makeRun(3, cutoff))
	_ = m.SaveRun(ctx, makeRun(4, cutoff.AddDate(0, 1, 0)))

	purged, err := m.PurgeRuns(ctx, cutoff)
	if err != nil {
		t.Fatalf("PurgeRuns: %v", err)
	}
	if purged != 2 {
		t.Errorf("purged = %d, want 2", purged)
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

// fakeDB records Exec and Query calls. Queries return no rows.
type fakeDB struct {
	sql     []string
	args    [][]interface{}
	tag     string
	execErr error
}

// noRows is an empty result set.
type noRows struct{}

func (noRows) Close()                                       {}
func (noRows) Err() error                                   { return nil }
func (noRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT 0") }
func (noRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (noRows) Next() bool                                   { return false }
func (noRows) Scan(...any) error                            { return errors.New("no rows") }
func (noRows) Values() ([]any, error)                       { return nil, nil }
func (noRows) RawValues() [][]byte                          { return nil }
func (noRows) Conn() *pgx.Conn                              { return nil }

func (f *fakeDB) Exec(_ context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	f.sql = append(f.sql, sql)
	f.args = append(f.args, args)
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	return pgconn.NewCommandTag(f.tag), nil
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	f.sql = append(f.sql, sql)
	f.args = append(f.args, args)
	return noRows{}, nil
}

func (f *fakeDB) QueryRow(context.Context, string, ...interface{}) pgx.Row {
	return nil
}

func TestPostgres_Migrate(t *testing.T) {
	db := &fakeDB{tag: "CREATE TABLE"}
	if err := NewPostgres(db).Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if len(db.sql) != 2 || !strings.Contains(db.sql[0], "CREATE TABLE IF NOT EXISTS sticker_runs") {
		t.Errorf("unexpected migration statements: %q", db.sql)
	}
}

func TestPostgres_SaveRun(t *testing.T) {
	db := &fakeDB{tag: "INSERT 0 1"}
	run := makeRun(12, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	run.ClientIP = "10.0.0.1"

	if err := NewPostgres(db).SaveRun(context.Background(), run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	args := db.args[0]
	if len(args) != 12 {
		t.Fatalf("got %d args, want 12", len(args))
	}
	if id := args[0].(pgtype.UUID); uuidToString(id) != run.ID {
		t.Errorf("id arg = %s, want %s", uuidToString(id), run.ID)
	}
	if txt := args[7].(pgtype.Text); txt.Valid {
		t.Errorf("empty error should be NULL, got %+v", txt)
	}
	if txt := args[8].(pgtype.Text); txt.String != "10.0.0.1" || !txt.Valid {
		t.Errorf("client ip arg = %+v", txt)
	}
}

func TestPostgres_SaveRunInvalidID(t *testing.T) {
	db := &fakeDB{}
	err := NewPostgres(db).SaveRun(context.Background(), core.Run{ID: "not-a-uuid"})
	if err == nil {
		t.Fatal("expected error for invalid id")
	}
	if len(db.sql) != 0 {
		t.Error("no statement should run for an invalid id")
	}
}

func TestPostgres_PurgeRuns(t *testing.T) {
	db := &fakeDB{tag: "DELETE 7"}
	n, err := NewPostgres(db).PurgeRuns(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("PurgeRuns: %v", err)
	}
	if n != 7 {
		t.Errorf("purged = %d, want 7", n)
	}
}

func TestPostgres_ExecError(t *testing.T) {
	boom := errors.New("connection refused")
	db := &fakeDB{execErr: boom}

	_, err := NewPostgres(db).PurgeRuns(context.Background(), time.Now())
	if !errors.Is(err, boom) {
		t.Errorf("PurgeRuns error = %v, want wrapped %v", err, boom)
	}
}

func TestPostgres_RecentRunsClampsLimit(t *testing.T) {
	tests := []struct {
		limit int
		want  int32
	}{
		{10, 10},
		{core.MaxHistoryLimit, core.MaxHistoryLimit},
		{1 << 40, core.MaxHistoryLimit},
		{1<<32 + 5, core.MaxHistoryLimit},
		{0, core.MaxHistoryLimit},
		{-1, core.MaxHistoryLimit},
	}

	for _, tt := range tests {
		db := &fakeDB{}
		runs, err := NewPostgres(db).RecentRuns(context.Background(), tt.limit)
		if err != nil {
			t.Fatalf("RecentRuns(%d): %v", tt.limit, err)
		}
		if len(runs) != 0 {
			t.Errorf("RecentRuns(%d) = %d runs, want 0", tt.limit, len(runs))
		}
		if got := db.args[0][0].(int32); got != tt.want {
			t.Errorf("RecentRuns(%d) LIMIT arg = %d, want %d", tt.limit, got, tt.want)
		}
	}
}

func TestMemory_RecentRunsHugeLimit(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(5)
	_ = m.SaveRun(ctx, makeRun(1, time.Now()))

	runs, err := m.RecentRuns(ctx, 1<<40)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("RecentRuns = %d runs, want 1", len(runs))
	}
}
