package storage

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// Store persists win rewards. It satisfies logic.RewardSink.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS rewards (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		score REAL NOT NULL,
		pockets_cleared INTEGER NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, err
	}
	logrus.WithField("path", path).Info("sqlite persistence initialized")
	return &Store{db: db}, nil
}

// SaveReward records the final score and cleared-pocket count of a won
// session. Called fire-and-forget after a win; the engine never reads
// back.
func (s *Store) SaveReward(sessionID string, score float64, pocketsCleared int) error {
	_, err := s.db.Exec(
		`INSERT INTO rewards (session_id, score, pockets_cleared) VALUES (?, ?, ?)`,
		sessionID, score, pocketsCleared,
	)
	return err
}

// TopScores returns the best recorded runs, highest score first.
func (s *Store) TopScores(limit int) ([]Reward, error) {
	rows, err := s.db.Query(
		`SELECT session_id, score, pockets_cleared FROM rewards ORDER BY score DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Reward
	for rows.Next() {
		var r Reward
		if err := rows.Scan(&r.SessionID, &r.Score, &r.PocketsCleared); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type Reward struct {
	SessionID      string  `json:"session_id"`
	Score          float64 `json:"score"`
	PocketsCleared int     `json:"pockets_cleared"`
}

func (s *Store) Close() error {
	return s.db.Close()
}
