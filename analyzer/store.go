package analyzer

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/fourply/fourply/board"
	"github.com/fourply/fourply/game"
)

// Store persists terminal configurations to a sqlite database so a run can
// be queried afterwards without re-enumerating.
type Store struct {
	db *sql.DB
	tx *sql.Tx
	n  int
}

const storeBatchSize = 10000

// OpenStore opens (or creates) the database at path and prepares the
// terminal_positions table. Use ":memory:" for an in-memory database.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS terminal_positions (
		occupied INTEGER NOT NULL,
		owner INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		winner TEXT,
		plies INTEGER NOT NULL,
		PRIMARY KEY (occupied, owner)
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Insert adds one terminal configuration; writes are batched into
// transactions of storeBatchSize.
func (s *Store) Insert(pos game.Position, outcome game.Outcome, line board.Mask, plies int) error {
	if s.tx == nil {
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		s.tx = tx
	}
	occupied, owner := pos.Words()
	var winner any
	if outcome == game.Won {
		winner = pos.Winner(line).String()
	}
	_, err := s.tx.Exec(
		`INSERT OR IGNORE INTO terminal_positions (occupied, owner, outcome, winner, plies) VALUES (?, ?, ?, ?, ?)`,
		int64(occupied), int64(owner), outcome.String(), winner, plies,
	)
	if err != nil {
		return err
	}
	s.n++
	if s.n%storeBatchSize == 0 {
		return s.flush()
	}
	return nil
}

func (s *Store) flush() error {
	if s.tx == nil {
		return nil
	}
	err := s.tx.Commit()
	s.tx = nil
	return err
}

// Count returns the number of stored terminal configurations.
func (s *Store) Count() (int64, error) {
	if err := s.flush(); err != nil {
		return 0, err
	}
	var n int64
	err := s.db.QueryRow(`SELECT COUNT(*) FROM terminal_positions`).Scan(&n)
	return n, err
}

// Close commits any pending batch and closes the database.
func (s *Store) Close() error {
	if err := s.flush(); err != nil {
		s.db.Close()
		return err
	}
	return s.db.Close()
}
