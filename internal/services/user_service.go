// Package services – UserService
//
// This file implements the UserService, which manages the user lifecycle:
// creation, lookup, listing, and deletion. Uniqueness of username and phone
// is enforced solely by the database constraints; the service translates a
// constraint violation into ErrDuplicateUser after the fact rather than
// pre-checking, so concurrent creates cannot race past a lookup.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/telvoice/go-callcenter-backend/internal/domain"
)

// UserRepo defines the repository contract required by UserService.
type UserRepo interface {
	// CreateUser inserts a new user row.
	CreateUser(ctx context.Context, db *gorm.DB, username, phone string) (*domain.User, error)

	// ListUsers returns all users.
	ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error)

	// GetUser fetches a user by ID.
	GetUser(ctx context.Context, db *gorm.DB, id uint) (*domain.User, error)

	// DeleteUser removes a user by ID.
	DeleteUser(ctx context.Context, db *gorm.DB, id uint) error
}

// UserService provides user-level operations over the users table.
type UserService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the user repository used by this service.
	Repo UserRepo
}

// Create inserts a new user with the given name and phone. It returns
// ErrDuplicateUser when either value is already taken.
func (s *UserService) Create(ctx context.Context, name, phone string) (*domain.User, error) {
	u, err := s.Repo.CreateUser(ctx, s.DB, name, phone)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	return u, nil
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.Repo.ListUsers(ctx, s.DB)
}

// Get returns the user with the given id, or ErrUserNotFound.
func (s *UserService) Get(ctx context.Context, id uint) (*domain.User, error) {
	u, err := s.Repo.GetUser(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// Delete removes the user with the given id, or returns ErrUserNotFound.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteUser(ctx, s.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// isUniqueViolation reports whether err is a uniqueness constraint failure.
// SQLite reports these as "UNIQUE constraint failed: ..." and gorm v2
// additionally exposes ErrDuplicatedKey for translated drivers.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
