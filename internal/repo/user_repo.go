// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a user is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated. Username/phone uniqueness is
//     enforced only by the database constraint; a duplicate insert
//     surfaces as a constraint error from CreateUser.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/telvoice/go-callcenter-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateUser inserts a new User row with the given username and phone.
// The ID is assigned by the database. On success, it returns the persisted
// User; a duplicate username or phone returns the DB constraint error.
func CreateUser(ctx context.Context, db *gorm.DB, username, phone string) (*domain.User, error) {
	u := &domain.User{
		Username: username,
		Phone:    phone,
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// ListUsers returns all users ordered by id ascending. It returns an empty
// slice when the table is empty. On DB error, it returns the error.
func ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	var out []domain.User
	err := db.WithContext(ctx).
		Order("id asc").
		Find(&out).Error
	return out, err
}

// GetUser fetches a single user by its ID. If the record does not exist,
// it returns ErrNotFound. On other DB errors, the raw error is returned.
func GetUser(ctx context.Context, db *gorm.DB, id uint) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteUser removes the user identified by id. If no rows are affected
// (user missing), it returns ErrNotFound. On DB error, the raw error is
// returned.
func DeleteUser(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
