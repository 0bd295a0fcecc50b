package datastore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aleister1102/pagewatch/internal/models"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// HistoryEntry is one row of check_history.
type HistoryEntry struct {
	ID           int64
	PageName     string
	URL          string
	Kind         models.ChangeKind
	CheckedAt    time.Time
	LinesAdded   int
	LinesDeleted int
	Error        sql.NullString
}

// HistoryStore records check outcomes in SQLite
type HistoryStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewHistoryStore opens (or creates) the database and ensures the schema.
func NewHistoryStore(dataSourceName string, logger zerolog.Logger) (*HistoryStore, error) {
	logger = logger.With().Str("component", "HistoryStore").Logger()
	logger.Info().Str("db_path", dataSourceName).Msg("Initializing history database connection")

	dbDir := filepath.Dir(dataSourceName)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error().Err(err).Str("directory", dbDir).Msg("Failed to create history database directory")
		return nil, fmt.Errorf("failed to create history database directory %s: %w", dbDir, err)
	}

	dbInstance, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		logger.Error().Err(err).Str("db_path", dataSourceName).Msg("Failed to open history database")
		return nil, fmt.Errorf("sql.Open failed for %s: %w", dataSourceName, err)
	}
	// SQLite allows one writer; a single connection also keeps :memory: databases shared.
	dbInstance.SetMaxOpenConns(1)

	store := &HistoryStore{
		db:     dbInstance,
		logger: logger,
	}

	if err := store.InitSchema(context.Background()); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	logger.Info().Str("path", dataSourceName).Msg("History database initialized and schema verified")
	return store, nil
}

// Close closes the database connection.
func (s *HistoryStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// InitSchema creates the check_history table if it doesn't already exist.
func (s *HistoryStore) InitSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS check_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		page_name TEXT NOT NULL,
		url TEXT NOT NULL,
		kind TEXT NOT NULL,
		checked_at INTEGER NOT NULL,
		lines_added INTEGER DEFAULT 0,
		lines_deleted INTEGER DEFAULT 0,
		error TEXT
	);
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		s.logger.Error().Err(err).Msg("Failed to initialize schema")
		return err
	}

	index := `CREATE INDEX IF NOT EXISTS idx_check_history_page ON check_history (page_name, checked_at)`
	if _, err := s.db.ExecContext(ctx, index); err != nil {
		s.logger.Error().Err(err).Msg("Failed to create check_history index")
		return err
	}
	return nil
}

// Record appends one outcome and returns the new row ID.
func (s *HistoryStore) Record(ctx context.Context, outcome models.CheckOutcome) (int64, error) {
	added, deleted := models.CountOperations(outcome.Event.Diff)
	query := `INSERT INTO check_history (page_name, url, kind, checked_at, lines_added, lines_deleted, error) VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := s.db.ExecContext(ctx, query,
		outcome.Event.PageName,
		outcome.URL,
		string(outcome.Kind()),
		outcome.CheckedAt.UnixMilli(),
		added,
		deleted,
		sql.NullString{String: outcome.Reason, Valid: outcome.Reason != ""},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert check history for '%s': %w", outcome.Event.PageName, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	s.logger.Debug().Int64("db_id", id).Str("page", outcome.Event.PageName).Msg("Recorded check outcome")
	return id, nil
}

// Recent returns up to limit entries for a page, newest first.
func (s *HistoryStore) Recent(ctx context.Context, pageName string, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `SELECT id, page_name, url, kind, checked_at, lines_added, lines_deleted, error
		FROM check_history WHERE page_name = ? ORDER BY checked_at DESC, id DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, pageName, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query check history for '%s': %w", pageName, err)
	}
	defer func() { _ = rows.Close() }()

	var entries []HistoryEntry
	for rows.Next() {
		var (
			e         HistoryEntry
			kind      string
			checkedAt int64
		)
		if err := rows.Scan(&e.ID, &e.PageName, &e.URL, &kind, &checkedAt, &e.LinesAdded, &e.LinesDeleted, &e.Error); err != nil {
			return nil, fmt.Errorf("failed to scan check history row: %w", err)
		}
		e.Kind = models.ChangeKind(kind)
		e.CheckedAt = time.UnixMilli(checkedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
