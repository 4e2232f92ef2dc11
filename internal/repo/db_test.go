package repo

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestOpenSQLite_MissingParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist", "app.db")
	if _, err := OpenSQLite(path); err == nil {
		t.Fatalf("expected error for missing parent directory")
	}
}

func TestOpenSQLite_CreatesAndMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")
	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := MigrateUserDB(db); err != nil {
		t.Fatalf("MigrateUserDB: %v", err)
	}
	if err := MigrateCallDB(db, false); err != nil {
		t.Fatalf("MigrateCallDB: %v", err)
	}
	if err := MigrateLogDB(db); err != nil {
		t.Fatalf("MigrateLogDB: %v", err)
	}

	// The schema is usable end to end.
	if _, err := CreateUser(context.Background(), db, "alice", "+1 555 0100"); err != nil {
		t.Fatalf("CreateUser after migrate: %v", err)
	}
	if _, err := CreateCall(context.Background(), db, "alice", time.Time{}, true); err != nil {
		t.Fatalf("CreateCall after migrate: %v", err)
	}
	if _, err := AppendUserLog(context.Background(), db, "alice", "User created"); err != nil {
		t.Fatalf("AppendUserLog after migrate: %v", err)
	}

	var tables []string
	if err := db.Raw("SELECT name FROM sqlite_master WHERE type='table' ORDER BY name").Scan(&tables).Error; err != nil {
		t.Fatalf("list tables: %v", err)
	}
	want := map[string]bool{"users": false, "calls": false, "user_logs": false, "call_logs": false}
	for _, tb := range tables {
		if _, ok := want[tb]; ok {
			want[tb] = true
		}
	}
	for tb, seen := range want {
		if !seen {
			t.Fatalf("table %q missing from schema (have %v)", tb, tables)
		}
	}
}
