// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file contains database bootstrapping helpers for
// SQLite (pure Go driver) and the per-service schema migrations. Each store
// service owns its own database file and migrates only its own tables.
package repo

import (
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/telvoice/go-callcenter-backend/internal/domain"
)

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Trace queries when a global tracer provider is configured; no-op otherwise.
	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

// MigrateUserDB creates the users table if it does not exist.
func MigrateUserDB(db *gorm.DB) error {
	return db.AutoMigrate(&domain.User{})
}

// MigrateCallDB creates the calls table. The source schema declared
// calls.username unique, which contradicts keeping a per-user call history;
// the constraint is therefore opt-in via uniqueUsername and absent by
// default. Toggling the flag adds or removes the index on the next boot.
func MigrateCallDB(db *gorm.DB, uniqueUsername bool) error {
	if err := db.AutoMigrate(&domain.Call{}); err != nil {
		return err
	}
	if uniqueUsername {
		return db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS ux_calls_username ON calls(username);").Error
	}
	return db.Exec("DROP INDEX IF EXISTS ux_calls_username;").Error
}

// MigrateLogDB creates the user_logs and call_logs tables.
func MigrateLogDB(db *gorm.DB) error {
	return db.AutoMigrate(&domain.UserLog{}, &domain.CallLog{})
}
