package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/telvoice/go-callcenter-backend/internal/domain"
	"github.com/telvoice/go-callcenter-backend/internal/repo"
)

func newLogSvcDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:logsvc_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.UserLog{}, &domain.CallLog{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

type testLogRepo struct{}

func (testLogRepo) AppendUserLog(ctx context.Context, db *gorm.DB, username, action string) (*domain.UserLog, error) {
	return repo.AppendUserLog(ctx, db, username, action)
}

func (testLogRepo) AppendCallLog(ctx context.Context, db *gorm.DB, username string, callDuration int, status string) (*domain.CallLog, error) {
	return repo.AppendCallLog(ctx, db, username, callDuration, status)
}

func (testLogRepo) UserLogsInRange(ctx context.Context, db *gorm.DB, start, end time.Time) ([]domain.UserLog, error) {
	return repo.UserLogsInRange(ctx, db, start, end)
}

func (testLogRepo) CallLogsInRange(ctx context.Context, db *gorm.DB, start, end time.Time) ([]domain.CallLog, error) {
	return repo.CallLogsInRange(ctx, db, start, end)
}

func TestLog_AppendUserAndQueryBack(t *testing.T) {
	svc := &LogService{DB: newLogSvcDB(t), Repo: testLogRepo{}}

	if _, err := svc.AppendUser(context.Background(), "alice", "User created"); err != nil {
		t.Fatalf("AppendUser: %v", err)
	}

	// A generous range around "now" must include the fresh row.
	start := time.Now().UTC().Add(-time.Hour).Format(RangeLayout)
	end := time.Now().UTC().Add(time.Hour).Format(RangeLayout)
	logs, err := svc.UserLogs(context.Background(), start, end)
	if err != nil {
		t.Fatalf("UserLogs: %v", err)
	}
	if len(logs) != 1 || logs[0].Username != "alice" || logs[0].Action != "User created" {
		t.Fatalf("unexpected logs: %#v", logs)
	}
}

func TestLog_AppendCallAndQueryBack(t *testing.T) {
	svc := &LogService{DB: newLogSvcDB(t), Repo: testLogRepo{}}

	if _, err := svc.AppendCall(context.Background(), "bob", 0, "true"); err != nil {
		t.Fatalf("AppendCall: %v", err)
	}

	start := time.Now().UTC().Add(-time.Hour).Format(RangeLayout)
	end := time.Now().UTC().Add(time.Hour).Format(RangeLayout)
	logs, err := svc.CallLogs(context.Background(), start, end)
	if err != nil {
		t.Fatalf("CallLogs: %v", err)
	}
	if len(logs) != 1 || logs[0].Username != "bob" || logs[0].CallDuration != 0 || logs[0].Status != "true" {
		t.Fatalf("unexpected logs: %#v", logs)
	}
}

func TestLog_UserLogs_InvalidRange(t *testing.T) {
	svc := &LogService{DB: newLogSvcDB(t), Repo: testLogRepo{}}

	cases := [][2]string{
		{"2025-06-01", "2025-06-02T00:00:00"},          // date only
		{"2025-06-01T00:00:00", "02/06/2025"},          // wrong layout
		{"2025-06-01T00:00:00Z", "2025-06-02T00:00:00"}, // zone suffix not allowed here
	}
	for _, tc := range cases {
		if _, err := svc.UserLogs(context.Background(), tc[0], tc[1]); !errors.Is(err, ErrInvalidRange) {
			t.Fatalf("UserLogs(%q, %q): expected ErrInvalidRange, got %v", tc[0], tc[1], err)
		}
	}
}

func TestLog_UserLogs_EmptyRangeIsErrNoLogs(t *testing.T) {
	svc := &LogService{DB: newLogSvcDB(t), Repo: testLogRepo{}}

	_, err := svc.UserLogs(context.Background(), "2000-01-01T00:00:00", "2000-01-02T00:00:00")
	if !errors.Is(err, ErrNoLogs) {
		t.Fatalf("expected ErrNoLogs, got %v", err)
	}
}

func TestLog_CallLogs_EmptyRangeIsErrNoLogs(t *testing.T) {
	svc := &LogService{DB: newLogSvcDB(t), Repo: testLogRepo{}}

	_, err := svc.CallLogs(context.Background(), "2000-01-01T00:00:00", "2000-01-02T00:00:00")
	if !errors.Is(err, ErrNoLogs) {
		t.Fatalf("expected ErrNoLogs, got %v", err)
	}
}

func TestLog_RangeBoundsInclusive(t *testing.T) {
	db := newLogSvcDB(t)
	svc := &LogService{DB: db, Repo: testLogRepo{}}

	// Seed with exact timestamps so the boundary behavior is deterministic.
	at := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	if err := db.Create(&domain.UserLog{Username: "edge", Action: "x", Timestamp: at}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	bound := at.Format(RangeLayout)
	logs, err := svc.UserLogs(context.Background(), bound, bound)
	if err != nil {
		t.Fatalf("UserLogs on exact bound: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("row on the boundary must be included, got %d", len(logs))
	}
}

func Test_parseRange(t *testing.T) {
	start, end, err := parseRange("2025-05-01T00:00:00", "2025-05-02T00:00:00")
	if err != nil {
		t.Fatalf("parseRange: %v", err)
	}
	if !end.After(start) {
		t.Fatalf("unexpected bounds: %v .. %v", start, end)
	}
	if _, _, err := parseRange("bad", "2025-05-02T00:00:00"); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for bad start, got %v", err)
	}
	if _, _, err := parseRange("2025-05-01T00:00:00", "bad"); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for bad end, got %v", err)
	}
}
