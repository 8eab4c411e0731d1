package automatic

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	_ "modernc.org/sqlite"
)

const createResultsTable = `CREATE TABLE IF NOT EXISTS results (
	game_id TEXT PRIMARY KEY,
	seed TEXT NOT NULL,
	scorers TEXT NOT NULL,
	rounds INTEGER NOT NULL,
	turns INTEGER NOT NULL,
	pieces0 INTEGER NOT NULL, pieces1 INTEGER NOT NULL,
	pieces2 INTEGER NOT NULL, pieces3 INTEGER NOT NULL,
	cells0 INTEGER NOT NULL, cells1 INTEGER NOT NULL,
	cells2 INTEGER NOT NULL, cells3 INTEGER NOT NULL,
	fingerprint TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// ResultStore keeps finished-game results in a SQLite file.
type ResultStore struct {
	db *sql.DB
}

func OpenResultStore(path string) (*ResultStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening results db: %w", err)
	}
	// sqlite allows a single writer.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(createResultsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating results table: %w", err)
	}
	return &ResultStore{db: db}, nil
}

func (s *ResultStore) Save(ctx context.Context, r *Result) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO results
		(game_id, seed, scorers, rounds, turns,
		 pieces0, pieces1, pieces2, pieces3,
		 cells0, cells1, cells2, cells3, fingerprint)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Seed, joinScorers(r.Scorers), r.Rounds, r.Turns,
		r.Pieces[0], r.Pieces[1], r.Pieces[2], r.Pieces[3],
		r.Cells[0], r.Cells[1], r.Cells[2], r.Cells[3],
		strconv.FormatUint(r.Fingerprint, 16))
	if err != nil {
		return fmt.Errorf("saving result %s: %w", r.GameID, err)
	}
	return nil
}

// Load returns the stored result for a game id, or sql.ErrNoRows.
func (s *ResultStore) Load(ctx context.Context, gameID string) (*Result, error) {
	row := s.db.QueryRowContext(ctx, `SELECT game_id, seed, scorers, rounds, turns,
		pieces0, pieces1, pieces2, pieces3, cells0, cells1, cells2, cells3, fingerprint
		FROM results WHERE game_id = ?`, gameID)
	r := &Result{}
	var scorers, fp string
	err := row.Scan(&r.GameID, &r.Seed, &scorers, &r.Rounds, &r.Turns,
		&r.Pieces[0], &r.Pieces[1], &r.Pieces[2], &r.Pieces[3],
		&r.Cells[0], &r.Cells[1], &r.Cells[2], &r.Cells[3], &fp)
	if err != nil {
		return nil, err
	}
	r.Scorers = splitScorers(scorers)
	if r.Fingerprint, err = strconv.ParseUint(fp, 16, 64); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ResultStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM results").Scan(&n)
	return n, err
}

func (s *ResultStore) Close() error {
	return s.db.Close()
}
