package testutil

import (
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"citronix/database"
	"citronix/pkg/logger"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB returns a fresh in-memory database per call.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	db, err := database.OpenMemory()
	if err != nil {
		tb.Fatalf("failed to init test db: %v", err)
	}
	tb.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Date builds a UTC calendar date.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Clock returns a fixed clock for injection into services.
func Clock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
