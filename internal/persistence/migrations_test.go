package persistence

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMigrationFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_favorites.sql", "001_init.sql", "README.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "003_nested.sql"), 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	core, logs := observer.New(zap.DebugLevel)
	files, err := migrationFiles(dir, zap.New(core))
	if err != nil {
		t.Fatalf("migrationFiles: %v", err)
	}
	if want := []string{"001_init.sql", "002_favorites.sql"}; !reflect.DeepEqual(files, want) {
		t.Fatalf("expected %v, got %v", want, files)
	}
	if skipped := logs.FilterMessage("skipping migrations entry").Len(); skipped != 2 {
		t.Fatalf("expected 2 skipped entries logged, got %d", skipped)
	}
}

func TestMigrationFilesMissingDir(t *testing.T) {
	if _, err := migrationFiles(filepath.Join(t.TempDir(), "absent"), zap.NewNop()); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestShippedMigrationsAreListed(t *testing.T) {
	files, err := migrationFiles(filepath.Join("..", "..", "migrations"), zap.NewNop())
	if err != nil {
		t.Fatalf("migrationFiles: %v", err)
	}
	if len(files) == 0 || files[0] != "001_init.sql" {
		t.Fatalf("expected 001_init.sql first, got %v", files)
	}
}
