// Package dbtest opens throwaway sqlite databases with the full schema for
// package tests.
package dbtest

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/clinic-scheduler/internal/dates"
	dbpkg "github.com/BruksfildServices01/clinic-scheduler/internal/db"
)

// Open returns a migrated and seeded in-memory database. A single
// connection keeps every query on the same memory database.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: dates.Now,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}

	ctx := context.Background()
	if err := dbpkg.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := dbpkg.Seed(ctx, db, nil); err != nil {
		t.Fatalf("seed: %v", err)
	}

	return db
}
