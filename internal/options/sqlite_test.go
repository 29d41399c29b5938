package options

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	apperrors "selectsearch/internal/errors"
)

func seedOptionsDB(t *testing.T, rows map[string]string) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "options.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE options (value TEXT PRIMARY KEY, label TEXT NOT NULL)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	for value, label := range rows {
		if _, err := db.Exec(`INSERT INTO options (value, label) VALUES (?, ?)`, value, label); err != nil {
			t.Fatalf("insert row: %v", err)
		}
	}
	return dbPath
}

func TestNewSQLiteProviderRequiresPath(t *testing.T) {
	_, err := NewSQLiteProvider("  ")
	if err == nil {
		t.Fatal("expected error for blank path")
	}
	if !apperrors.IsCode(err, apperrors.CodeConfigurationError) {
		t.Errorf("expected configuration error code, got %v", apperrors.CodeOf(err))
	}
}

func TestSQLiteProviderQuery(t *testing.T) {
	dbPath := seedOptionsDB(t, map[string]string{
		"1": "Xray",
		"2": "Xenon",
		"3": "Yankee",
	})

	p, err := NewSQLiteProvider(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteProvider: %v", err)
	}

	t.Run("substring match", func(t *testing.T) {
		results, err := p.Query(context.Background(), "X")
		if err != nil {
			t.Fatalf("Query: %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("expected 2 results, got %d: %v", len(results), results)
		}
		if results["1"] != "Xray" || results["2"] != "Xenon" {
			t.Errorf("unexpected results: %v", results)
		}
	})

	t.Run("no match", func(t *testing.T) {
		results, err := p.Query(context.Background(), "zzz")
		if err != nil {
			t.Fatalf("Query: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("expected no results, got %v", results)
		}
	})
}

func TestSQLiteProviderMissingDatabase(t *testing.T) {
	p, err := NewSQLiteProvider(filepath.Join(t.TempDir(), "missing.db"))
	if err != nil {
		t.Fatalf("NewSQLiteProvider: %v", err)
	}
	_, err = p.Query(context.Background(), "x")
	if err == nil {
		t.Fatal("expected error for missing database")
	}
	if !apperrors.IsCode(err, apperrors.CodeDatabaseError) {
		t.Errorf("expected database error code, got %v", apperrors.CodeOf(err))
	}
}

func TestBuildSQLiteDSN(t *testing.T) {
	dsn := buildSQLiteDSN("/tmp/options.db")
	if !strings.HasPrefix(dsn, "file://") {
		t.Errorf("expected file scheme, got %q", dsn)
	}
	for _, want := range []string{"mode=ro", "_journal_mode=WAL", "_busy_timeout=3000"} {
		if !strings.Contains(dsn, want) {
			t.Errorf("dsn %q missing %q", dsn, want)
		}
	}
}

func TestStaticPreservesOrder(t *testing.T) {
	opts := Static(
		Pair{Value: "", Label: "Choose one"},
		Pair{Value: "b", Label: "Bravo"},
		Pair{Value: "a", Label: "Alpha"},
	)
	if len(opts) != 3 {
		t.Fatalf("expected 3 options, got %d", len(opts))
	}
	if opts[0].Value != "" || opts[1].Label != "Bravo" || opts[2].Value != "a" {
		t.Errorf("unexpected options: %v", opts)
	}
}
