package db

import (
	"path/filepath"
	"testing"
)

func TestOpenMemory(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	var count int
	if err := d.QueryRow("SELECT COUNT(*) FROM packages").Scan(&count); err != nil {
		t.Errorf("table packages: %v", err)
	}
	if count != 0 {
		t.Errorf("fresh database has %d packages", count)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	d, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	defer d.Close()

	// Running migrate again should not fail.
	if err := d.migrate(); err != nil {
		t.Fatalf("second migrate() error: %v", err)
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer d.Close()

	if d.Path() != path {
		t.Errorf("Path() = %q, want %q", d.Path(), path)
	}
	if _, err := d.Exec("INSERT INTO packages (id, operation) VALUES ('a', 'pack')"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := d.Exec("INSERT INTO packages (id, operation) VALUES ('b', 'bogus')"); err == nil {
		t.Error("operation constraint should reject unknown values")
	}
}
