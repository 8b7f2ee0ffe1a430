// Package storage provides a SQLite journal of finished breakout rounds.
// It records how each round ended and the seed it ran with, so a round can
// be replayed; scores are not kept.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Round outcomes
const (
	OutcomeWon       = "won"
	OutcomeLost      = "lost"
	OutcomeAbandoned = "abandoned" // Session closed mid-round
)

// DefaultPath is where the journal lives unless --db says otherwise.
const DefaultPath = "~/.breakout/rounds.db"

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for the round journal.
type Store struct {
	db *sql.DB
}

// RoundRecord is one finished round.
type RoundRecord struct {
	ID              uuid.UUID
	Variant         string
	Seed            int64
	Outcome         string
	BlocksDestroyed int
	Ticks           int
	CreatedAt       time.Time
}

// VariantStats contains aggregated outcomes for a variant.
type VariantStats struct {
	Variant    string
	Rounds     int
	Wins       int
	Losses     int
	BestClear  int // Most blocks destroyed in one round
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rounds (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			variant TEXT NOT NULL,
			seed INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			blocks_destroyed INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_variant ON rounds(variant);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRound records a finished round. A nil ID is replaced with a fresh
// UUID and a zero CreatedAt with the current time. Returns the round ID.
func (s *Store) SaveRound(r RoundRecord) (uuid.UUID, error) {
	switch r.Outcome {
	case OutcomeWon, OutcomeLost, OutcomeAbandoned:
	default:
		return uuid.Nil, fmt.Errorf("storage: unknown outcome %q", r.Outcome)
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO rounds (id, variant, seed, outcome, blocks_destroyed, ticks, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID.String(), r.Variant, r.Seed, r.Outcome, r.BlocksDestroyed, r.Ticks,
		r.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("storage: cannot save round: %w", err)
	}

	return r.ID, nil
}

// RoundByID retrieves a round by its ID. Returns nil if no such round exists.
func (s *Store) RoundByID(id uuid.UUID) (*RoundRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, variant, seed, outcome, blocks_destroyed, ticks, created_at
		 FROM rounds
		 WHERE id = ?`,
		id.String(),
	)

	r, err := scanRound(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query round: %w", err)
	}
	return r, nil
}

// RecentRounds retrieves the most recent rounds, newest first. An empty
// variant returns rounds of every variant.
func (s *Store) RecentRounds(variant string, limit int) ([]RoundRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, variant, seed, outcome, blocks_destroyed, ticks, created_at
		 FROM rounds
		 WHERE ? = '' OR variant = ?
		 ORDER BY seq DESC
		 LIMIT ?`,
		variant, variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var rounds []RoundRecord
	for rows.Next() {
		r, err := scanRound(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rounds = append(rounds, *r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return rounds, nil
}

// ClearRounds deletes all rounds for the given variant.
func (s *Store) ClearRounds(variant string) error {
	_, err := s.db.Exec("DELETE FROM rounds WHERE variant = ?", variant)
	if err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}

// Stats retrieves aggregated outcomes for every variant that has been played.
func (s *Store) Stats() (map[string]*VariantStats, error) {
	rows, err := s.db.Query(
		`SELECT variant,
		        COUNT(*),
		        SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END),
		        SUM(CASE WHEN outcome = 'lost' THEN 1 ELSE 0 END),
		        MAX(blocks_destroyed),
		        MAX(created_at)
		 FROM rounds
		 GROUP BY variant`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*VariantStats)
	for rows.Next() {
		var vs VariantStats
		var lastPlayed any
		if err := rows.Scan(&vs.Variant, &vs.Rounds, &vs.Wins, &vs.Losses, &vs.BestClear, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		vs.LastPlayed = parseTime(lastPlayed)
		stats[vs.Variant] = &vs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRound(sc scanner) (*RoundRecord, error) {
	var r RoundRecord
	var id string
	var createdAt any

	if err := sc.Scan(&id, &r.Variant, &r.Seed, &r.Outcome, &r.BlocksDestroyed, &r.Ticks, &createdAt); err != nil {
		return nil, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("bad round id %q: %w", id, err)
	}
	r.ID = parsed
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
