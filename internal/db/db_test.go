package db

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"gorm.io/gorm"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	_, err := Open(Options{})
	if err == nil {
		t.Fatalf("expected error when no path supplied")
	}
}

func TestOpenAppliesPragmasWithDefaultTimeout(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "wikimark.db")

	conn, err := Open(Options{Path: path})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := Close(conn); closeErr != nil {
			t.Errorf("closing database failed: %v", closeErr)
		}
	})

	var foreignKeys int
	if queryErr := conn.Raw("PRAGMA foreign_keys;").Scan(&foreignKeys).Error; queryErr != nil {
		t.Fatalf("querying foreign_keys pragma failed: %v", queryErr)
	}
	if foreignKeys != 1 {
		t.Fatalf("expected foreign keys pragma to be enabled, got %d", foreignKeys)
	}

	var journalMode string
	if queryErr := conn.Raw("PRAGMA journal_mode;").Scan(&journalMode).Error; queryErr != nil {
		t.Fatalf("querying journal_mode pragma failed: %v", queryErr)
	}
	if !strings.EqualFold(strings.TrimSpace(journalMode), "wal") {
		t.Fatalf("expected journal mode WAL, got %q", journalMode)
	}

	var busyTimeout int
	if queryErr := conn.Raw("PRAGMA busy_timeout;").Scan(&busyTimeout).Error; queryErr != nil {
		t.Fatalf("querying busy_timeout pragma failed: %v", queryErr)
	}

	expectedTimeout := int((5 * time.Second) / time.Millisecond)
	if busyTimeout != expectedTimeout {
		t.Fatalf("expected busy timeout %d, got %d", expectedTimeout, busyTimeout)
	}
}

func TestOpenTranslatesUniqueConstraintViolations(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "unique.db")

	conn, err := Open(Options{Path: path})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := Close(conn); closeErr != nil {
			t.Errorf("closing database failed: %v", closeErr)
		}
	})

	type row struct {
		ID   uint   `gorm:"primarykey"`
		Slug string `gorm:"uniqueIndex;not null"`
	}

	if err := conn.AutoMigrate(&row{}); err != nil {
		t.Fatalf("AutoMigrate returned error: %v", err)
	}

	if err := conn.Create(&row{Slug: "same"}).Error; err != nil {
		t.Fatalf("first insert failed: %v", err)
	}

	err = conn.Create(&row{Slug: "same"}).Error
	if err == nil {
		t.Fatalf("expected duplicate insert to fail")
	}
	if !eris.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected gorm.ErrDuplicatedKey, got %v", err)
	}
}

func TestOpenHonoursBusyTimeout(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "wikimark_custom.db")

	conn, err := Open(Options{Path: path, BusyTimeout: 1500 * time.Millisecond})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() {
		if closeErr := Close(conn); closeErr != nil {
			t.Errorf("closing database failed: %v", closeErr)
		}
	})

	var busyTimeout int
	if queryErr := conn.Raw("PRAGMA busy_timeout;").Scan(&busyTimeout).Error; queryErr != nil {
		t.Fatalf("querying busy_timeout pragma failed: %v", queryErr)
	}
	if busyTimeout != 1500 {
		t.Fatalf("expected busy timeout 1500, got %d", busyTimeout)
	}
}

func TestSQLDBRequiresConnection(t *testing.T) {
	t.Parallel()

	if _, err := SQLDB(nil); err == nil {
		t.Fatalf("expected error for nil connection")
	}
}
