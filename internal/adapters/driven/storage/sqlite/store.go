package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/commsdash/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/commsdash/internal/core/domain"
	"github.com/custodia-labs/commsdash/internal/core/ports/driven"
)

// MemoryPath is reported by Path for in-memory databases.
const MemoryPath = ":memory:"

// Store is a SQLite database holding the session's period aggregates.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens a store. An empty dataDir opens an in-memory database;
// otherwise the database file is dataDir/aggregates.db.
func NewStore(dataDir string) (*Store, error) {
	dsn := MemoryPath
	path := MemoryPath
	if dataDir != "" {
		if err := os.MkdirAll(dataDir, 0700); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		path = filepath.Join(dataDir, "aggregates.db")
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path, or MemoryPath.
func (s *Store) Path() string {
	return s.path
}

// AggregateStore returns a driven.AggregateStore backed by this store.
func (s *Store) AggregateStore() driven.AggregateStore {
	return &aggregateStore{store: s}
}

// migrate applies every .up.sql migration newer than the recorded version.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var current int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}
	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil || version <= current {
			continue
		}
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}
	return nil
}

func (s *Store) apply(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// ==================== Aggregate Store ====================

// aggregateStore implements driven.AggregateStore.
type aggregateStore struct {
	store *Store
}

var _ driven.AggregateStore = (*aggregateStore)(nil)

// Replace stores agg for the period, discarding any previous aggregate.
func (a *aggregateStore) Replace(ctx context.Context, period domain.Period, agg domain.PeriodAggregate) error {
	tx, err := a.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM periods WHERE period = ?", period.Key()); err != nil {
		return fmt.Errorf("deleting period: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO periods (period) VALUES (?)", period.Key()); err != nil {
		return fmt.Errorf("inserting period: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO bucket_counts (period, source, category, count) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for key, n := range agg {
		if _, err := stmt.ExecContext(ctx, period.Key(), key.Source.String(), key.Category.String(), n); err != nil {
			return fmt.Errorf("inserting bucket %s: %w", key, err)
		}
	}

	return tx.Commit()
}

// Get returns the period's aggregate.
func (a *aggregateStore) Get(ctx context.Context, period domain.Period) (domain.PeriodAggregate, error) {
	var exists int
	err := a.store.db.QueryRowContext(ctx,
		"SELECT 1 FROM periods WHERE period = ?", period.Key()).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying period: %w", err)
	}

	rows, err := a.store.db.QueryContext(ctx,
		"SELECT source, category, count FROM bucket_counts WHERE period = ?", period.Key())
	if err != nil {
		return nil, fmt.Errorf("querying buckets: %w", err)
	}
	defer rows.Close()

	agg := domain.NewPeriodAggregate()
	for rows.Next() {
		var source, category string
		var n int
		if err := rows.Scan(&source, &category, &n); err != nil {
			return nil, fmt.Errorf("scanning bucket: %w", err)
		}
		key := domain.BucketKey{Source: domain.Source(source), Category: domain.Category(category)}
		if !key.Source.IsValid() || !key.Category.IsValid() {
			return nil, fmt.Errorf("%w: stored bucket %s", domain.ErrInvalidInput, key)
		}
		agg[key] = n
	}
	return agg, rows.Err()
}

// Delete removes the period's aggregate. Bucket rows cascade.
func (a *aggregateStore) Delete(ctx context.Context, period domain.Period) error {
	_, err := a.store.db.ExecContext(ctx, "DELETE FROM periods WHERE period = ?", period.Key())
	return err
}

// Clear removes every aggregate.
func (a *aggregateStore) Clear(ctx context.Context) error {
	_, err := a.store.db.ExecContext(ctx, "DELETE FROM periods")
	return err
}

// List returns the periods holding an aggregate, oldest first.
func (a *aggregateStore) List(ctx context.Context) ([]domain.Period, error) {
	rows, err := a.store.db.QueryContext(ctx, "SELECT period FROM periods ORDER BY period")
	if err != nil {
		return nil, fmt.Errorf("querying periods: %w", err)
	}
	defer rows.Close()

	var periods []domain.Period
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scanning period: %w", err)
		}
		period, err := domain.ParsePeriod(key)
		if err != nil {
			return nil, err
		}
		periods = append(periods, period)
	}
	return periods, rows.Err()
}
