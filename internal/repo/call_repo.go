// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Call model.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/telvoice/go-callcenter-backend/internal/domain"
)

// CreateCall inserts a new Call row. When date is the zero time, the current
// UTC time is used, matching the source schema's insertion-time default.
// On success, it returns the persisted Call. On failure (including a
// uniqueness violation when the optional unique username index is enabled),
// it returns the DB error.
func CreateCall(ctx context.Context, db *gorm.DB, username string, date time.Time, status bool) (*domain.Call, error) {
	if date.IsZero() {
		date = time.Now().UTC()
	}
	c := &domain.Call{
		Username: username,
		Date:     date,
		Status:   status,
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// ListCalls returns the full call history ordered by id ascending.
// It returns an empty slice when no calls exist. On DB error, it returns
// the error.
func ListCalls(ctx context.Context, db *gorm.DB) ([]domain.Call, error) {
	var out []domain.Call
	err := db.WithContext(ctx).
		Order("id asc").
		Find(&out).Error
	return out, err
}

// LastCall returns the most recent call by date. If the table is empty,
// it returns ErrNotFound. On other DB errors, the raw error is returned.
func LastCall(ctx context.Context, db *gorm.DB) (*domain.Call, error) {
	var c domain.Call
	err := db.WithContext(ctx).
		Order("date desc").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}
