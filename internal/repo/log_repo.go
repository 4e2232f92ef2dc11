// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the two
// append-only audit log models. Log rows are only ever inserted and queried
// by time range; there are no updates or deletes.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/telvoice/go-callcenter-backend/internal/domain"
)

// AppendUserLog inserts a user-action audit row. The timestamp is
// server-assigned (UTC now) when zero. On failure, it returns the DB error.
func AppendUserLog(ctx context.Context, db *gorm.DB, username, action string) (*domain.UserLog, error) {
	l := &domain.UserLog{
		Username:  username,
		Action:    action,
		Timestamp: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(l).Error; err != nil {
		return nil, err
	}
	return l, nil
}

// AppendCallLog inserts a call audit row with the reported duration and
// free-text status. The timestamp is server-assigned (UTC now).
func AppendCallLog(ctx context.Context, db *gorm.DB, username string, callDuration int, status string) (*domain.CallLog, error) {
	l := &domain.CallLog{
		Username:     username,
		CallDuration: callDuration,
		Status:       status,
		Timestamp:    time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(l).Error; err != nil {
		return nil, err
	}
	return l, nil
}

// UserLogsInRange returns user-action logs whose timestamp lies in
// [start, end], both bounds inclusive, ordered by timestamp ascending.
// An empty result is returned as an empty slice, not an error; the service
// layer decides whether that maps to 404.
func UserLogsInRange(ctx context.Context, db *gorm.DB, start, end time.Time) ([]domain.UserLog, error) {
	var out []domain.UserLog
	err := db.WithContext(ctx).
		Where("timestamp >= ? AND timestamp <= ?", start, end).
		Order("timestamp asc").
		Find(&out).Error
	return out, err
}

// CallLogsInRange returns call logs whose timestamp lies in [start, end],
// both bounds inclusive, ordered by timestamp ascending.
func CallLogsInRange(ctx context.Context, db *gorm.DB, start, end time.Time) ([]domain.CallLog, error) {
	var out []domain.CallLog
	err := db.WithContext(ctx).
		Where("timestamp >= ? AND timestamp <= ?", start, end).
		Order("timestamp asc").
		Find(&out).Error
	return out, err
}
