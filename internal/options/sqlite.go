package options

import (
	"context"
	"database/sql"
	"net/url"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver, WAL-friendly

	apperrors "selectsearch/internal/errors"
	"selectsearch/internal/ui"
)

// SQLiteProvider resolves queries against an options table in a SQLite
// database. The database is opened read-only per call; providers are
// dispatched from the UI event loop and must not hold long-lived handles.
type SQLiteProvider struct {
	dbPath string
	dsn    string
}

// NewSQLiteProvider creates a provider reading from the options table of
// the database at dbPath. The table needs (value TEXT, label TEXT) columns.
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	trimmed := strings.TrimSpace(dbPath)
	if trimmed == "" {
		return nil, apperrors.New(apperrors.CodeConfigurationError, "sqlite provider requires a database path", nil)
	}
	return &SQLiteProvider{
		dbPath: trimmed,
		dsn:    buildSQLiteDSN(trimmed),
	}, nil
}

// buildSQLiteDSN creates a read-only WAL DSN for the given path.
func buildSQLiteDSN(dbPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(dbPath),
	}
	q := url.Values{}
	q.Set("mode", "ro")
	q.Set("_journal_mode", "WAL")
	q.Set("_busy_timeout", "3000")
	q.Set("cache", "shared")
	u.RawQuery = q.Encode()
	return u.String()
}

func (p *SQLiteProvider) openDB(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", p.dsn)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeDatabaseError, "open sqlite db", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, apperrors.New(apperrors.CodeDatabaseError, "ping sqlite db", err)
	}
	return db, nil
}

// Query returns the value -> label mapping of every option whose label
// contains the query text.
func (p *SQLiteProvider) Query(ctx context.Context, query string) (map[string]string, error) {
	db, err := p.openDB(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = db.Close()
	}()

	rows, err := db.QueryContext(ctx, `
		SELECT value, label
		FROM options
		WHERE label LIKE '%' || ? || '%'
		ORDER BY label
	`, query)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeProviderFailed, "query options", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	results := make(map[string]string)
	for rows.Next() {
		var value, label string
		if err := rows.Scan(&value, &label); err != nil {
			return nil, apperrors.New(apperrors.CodeProviderFailed, "scan option row", err)
		}
		results[value] = label
	}
	return results, rows.Err()
}

// Provider adapts the SQLiteProvider to the widget's AsyncProvider type.
func (p *SQLiteProvider) Provider() ui.AsyncProvider {
	return p.Query
}
