package lexicon

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteStore is a lexicon persisted in a SQLite database, for lexicons too
// large to embed in configuration. The modernc driver keeps builds cgo-free.
type SQLiteStore struct {
	db        *sql.DB
	closeOnce sync.Once

	lookupStmt *sql.Stmt
	putStmt    *sql.Stmt
	countStmt  *sql.Stmt
}

// SQLiteStoreConfig configures the SQLite lexicon store.
type SQLiteStoreConfig struct {
	// DBPath is the path to the SQLite database file.
	DBPath string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds.
	BusyTimeout time.Duration
}

// NewSQLiteStore opens (creating if needed) a SQLite-backed lexicon with
// default settings.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	return NewSQLiteStoreWithConfig(SQLiteStoreConfig{DBPath: dbPath})
}

// NewSQLiteStoreWithConfig opens a SQLite-backed lexicon with custom
// configuration.
func NewSQLiteStoreWithConfig(cfg SQLiteStoreConfig) (*SQLiteStore, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		cfg.DBPath, int(cfg.BusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	if err := store.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS lexicon (
		surface TEXT PRIMARY KEY,
		lemma   TEXT NOT NULL,
		tag     TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_lexicon_tag ON lexicon(tag);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.lookupStmt, err = s.db.Prepare(`SELECT surface, lemma, tag FROM lexicon WHERE surface = ?`)
	if err != nil {
		return fmt.Errorf("prepare lookup: %w", err)
	}

	s.putStmt, err = s.db.Prepare(`INSERT OR REPLACE INTO lexicon (surface, lemma, tag) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare put: %w", err)
	}

	s.countStmt, err = s.db.Prepare(`SELECT COUNT(*) FROM lexicon`)
	if err != nil {
		return fmt.Errorf("prepare count: %w", err)
	}

	return nil
}

// Lookup returns the entry for a surface form, or nil if absent.
func (s *SQLiteStore) Lookup(ctx context.Context, surface string) (*Entry, error) {
	var entry Entry
	err := s.lookupStmt.QueryRowContext(ctx, strings.ToLower(surface)).
		Scan(&entry.Surface, &entry.Lemma, &entry.Tag)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lexicon lookup %q: %w", surface, err)
	}
	return &entry, nil
}

// Put inserts or replaces an entry.
func (s *SQLiteStore) Put(ctx context.Context, entry Entry) error {
	_, err := s.putStmt.ExecContext(ctx, strings.ToLower(entry.Surface), entry.Lemma, entry.Tag)
	if err != nil {
		return fmt.Errorf("lexicon put %q: %w", entry.Surface, err)
	}
	return nil
}

// Count returns the number of entries.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.countStmt.QueryRowContext(ctx).Scan(&count); err != nil {
		return 0, fmt.Errorf("lexicon count: %w", err)
	}
	return count, nil
}

// Close closes the prepared statements and the database.
func (s *SQLiteStore) Close() error {
	var err error
	s.closeOnce.Do(func() {
		for _, stmt := range []*sql.Stmt{s.lookupStmt, s.putStmt, s.countStmt} {
			if stmt != nil {
				stmt.Close()
			}
		}
		err = s.db.Close()
	})
	return err
}
