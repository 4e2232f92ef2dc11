// Package services – CallService
//
// This file implements the CallService, which records call attempts and
// serves the call history. It owns the two pieces of input normalization
// the call store performs: deriving the boolean call status from a
// free-text status value, and parsing the optional ISO 8601 call date.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/telvoice/go-callcenter-backend/internal/domain"
)

// CallRepo defines the repository contract required by CallService.
type CallRepo interface {
	// CreateCall inserts a new call row; a zero date means "now".
	CreateCall(ctx context.Context, db *gorm.DB, username string, date time.Time, status bool) (*domain.Call, error)

	// ListCalls returns the full call history.
	ListCalls(ctx context.Context, db *gorm.DB) ([]domain.Call, error)

	// LastCall returns the most recent call by date.
	LastCall(ctx context.Context, db *gorm.DB) (*domain.Call, error)
}

// CallService provides call recording and history operations.
type CallService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the call repository used by this service.
	Repo CallRepo
}

// Create records a call for username. status is the caller's free-text
// status and is reduced to a boolean via DeriveStatus. date is an optional
// ISO 8601 timestamp; when empty the insertion time is used, and when
// malformed ErrInvalidDate is returned.
func (s *CallService) Create(ctx context.Context, username, status, date string) (*domain.Call, error) {
	var when time.Time
	if date != "" {
		var err error
		when, err = parseISODate(date)
		if err != nil {
			return nil, ErrInvalidDate
		}
	}

	c, err := s.Repo.CreateCall(ctx, s.DB, username, when, DeriveStatus(status))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateCall
		}
		return nil, err
	}
	return c, nil
}

// History returns all recorded calls.
func (s *CallService) History(ctx context.Context) ([]domain.Call, error) {
	return s.Repo.ListCalls(ctx, s.DB)
}

// Last returns the most recent call, or ErrNoCalls when none exist.
func (s *CallService) Last(ctx context.Context) (*domain.Call, error) {
	c, err := s.Repo.LastCall(ctx, s.DB)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoCalls
		}
		return nil, err
	}
	return c, nil
}

// DeriveStatus reduces a free-text call status to a boolean. The mapping is
// case-insensitive membership in {"true", "completed", "yes"}; every other
// value (including the empty string) is false.
func DeriveStatus(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "true", "completed", "yes":
		return true
	default:
		return false
	}
}

// parseISODate accepts ISO 8601 timestamps with or without a zone offset,
// e.g. "2025-01-02T15:04:05Z" or "2025-01-02T15:04:05".
func parseISODate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", s)
}
