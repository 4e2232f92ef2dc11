// Package services – LogService
//
// This file implements the LogService, which appends audit rows and serves
// time-range queries over them. Range endpoints require both bounds in the
// fixed textual layout below; the range is inclusive on both ends, and an
// empty result is reported as ErrNoLogs so the handler can answer 404.
package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/telvoice/go-callcenter-backend/internal/domain"
)

// RangeLayout is the required textual timestamp format for log range
// queries, and the format log timestamps are rendered in on the way out.
const RangeLayout = "2006-01-02T15:04:05"

// LogRepo defines the repository contract required by LogService.
type LogRepo interface {
	// AppendUserLog inserts a user-action audit row.
	AppendUserLog(ctx context.Context, db *gorm.DB, username, action string) (*domain.UserLog, error)

	// AppendCallLog inserts a call audit row.
	AppendCallLog(ctx context.Context, db *gorm.DB, username string, callDuration int, status string) (*domain.CallLog, error)

	// UserLogsInRange returns user logs with timestamp in [start, end].
	UserLogsInRange(ctx context.Context, db *gorm.DB, start, end time.Time) ([]domain.UserLog, error)

	// CallLogsInRange returns call logs with timestamp in [start, end].
	CallLogsInRange(ctx context.Context, db *gorm.DB, start, end time.Time) ([]domain.CallLog, error)
}

// LogService provides append and range-query operations over the audit logs.
type LogService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the log repository used by this service.
	Repo LogRepo
}

// AppendUser records a user-action audit row.
func (s *LogService) AppendUser(ctx context.Context, username, action string) (*domain.UserLog, error) {
	return s.Repo.AppendUserLog(ctx, s.DB, username, action)
}

// AppendCall records a call audit row.
func (s *LogService) AppendCall(ctx context.Context, username string, callDuration int, status string) (*domain.CallLog, error) {
	return s.Repo.AppendCallLog(ctx, s.DB, username, callDuration, status)
}

// UserLogs returns user logs between startDate and endDate (inclusive).
// It returns ErrInvalidRange when either bound does not parse, and
// ErrNoLogs when the range matches nothing.
func (s *LogService) UserLogs(ctx context.Context, startDate, endDate string) ([]domain.UserLog, error) {
	start, end, err := parseRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	logs, err := s.Repo.UserLogsInRange(ctx, s.DB, start, end)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, ErrNoLogs
	}
	return logs, nil
}

// CallLogs returns call logs between startDate and endDate (inclusive),
// with the same error semantics as UserLogs.
func (s *LogService) CallLogs(ctx context.Context, startDate, endDate string) ([]domain.CallLog, error) {
	start, end, err := parseRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	logs, err := s.Repo.CallLogsInRange(ctx, s.DB, start, end)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, ErrNoLogs
	}
	return logs, nil
}

// parseRange parses both bounds in RangeLayout, mapping any failure to
// ErrInvalidRange.
func parseRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse(RangeLayout, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	end, err := time.Parse(RangeLayout, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	return start, end, nil
}
