package database

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kbukum/blogd/logger"
)

type txRecord struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

// testDatabase opens an in-memory database. MaxOpenConns is pinned to 1
// because each sqlite :memory: connection is its own database.
func testDatabase(t *testing.T) *DB {
	t.Helper()
	log := logger.New(&logger.Config{Level: "error"}, "database-test")
	db, err := New(context.Background(), sqlite.Open(":memory:"), Config{
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		MaxRetries:   1,
	}, log)
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.AutoMigrate(&txRecord{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func countRecords(t *testing.T, db *DB) int64 {
	t.Helper()
	var count int64
	if err := db.GormDB.Model(&txRecord{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return count
}

func TestWithTransaction_CommitsOnSuccess(t *testing.T) {
	db := testDatabase(t)

	err := db.WithTransaction(context.Background(), func(tx *gorm.DB) error {
		return tx.Create(&txRecord{Name: "kept"}).Error
	})
	if err != nil {
		t.Fatalf("WithTransaction failed: %v", err)
	}
	if got := countRecords(t, db); got != 1 {
		t.Errorf("expected 1 record after commit, got %d", got)
	}
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	db := testDatabase(t)
	boom := errors.New("boom")

	err := db.WithTransaction(context.Background(), func(tx *gorm.DB) error {
		if txErr := tx.Create(&txRecord{Name: "discarded"}).Error; txErr != nil {
			return txErr
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the callback error back, got %v", err)
	}
	if got := countRecords(t, db); got != 0 {
		t.Errorf("expected rollback to discard the insert, got %d records", got)
	}
}

func TestWithTransaction_RollsBackOnPanic(t *testing.T) {
	db := testDatabase(t)

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Error("expected the panic to propagate")
			}
		}()
		_ = db.WithTransaction(context.Background(), func(tx *gorm.DB) error {
			if txErr := tx.Create(&txRecord{Name: "discarded"}).Error; txErr != nil {
				return txErr
			}
			panic("handler blew up")
		})
	}()

	if got := countRecords(t, db); got != 0 {
		t.Errorf("expected rollback after panic, got %d records", got)
	}
}

func TestClose_Idempotent(t *testing.T) {
	db := testDatabase(t)

	if err := db.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}
