package game

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
)

const scoresTable = "high_scores"

// Score is one persisted game result.
type Score struct {
	ID         int
	PlayerName string
	Points     int
	Moves      int
	CreatedAt  time.Time
}

// HighScoreService persists game results in a local sqlite database.
type HighScoreService struct {
	db *sql.DB
}

// NewHighScoreService opens (creating if needed) the database at the
// given path and ensures the scores table exists.
func NewHighScoreService(path string) (*HighScoreService, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening high score database: %w", err)
	}
	service := &HighScoreService{db: db}
	if err := service.createTable(); err != nil {
		db.Close()
		return nil, err
	}
	return service, nil
}

// Close releases the underlying database handle.
func (s *HighScoreService) Close() error { return s.db.Close() }

func (s *HighScoreService) createTable() error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS ` + scoresTable + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		player_name TEXT NOT NULL,
		points INTEGER NOT NULL,
		moves INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := s.db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to execute CREATE TABLE: %w", err)
	}
	return nil
}

// SaveScore records a finished game's result.
func (s *HighScoreService) SaveScore(playerName string, points, moves int) error {
	const insertSQL = `
	INSERT INTO ` + scoresTable + ` (player_name, points, moves)
	VALUES (?, ?, ?);`

	if _, err := s.db.Exec(insertSQL, playerName, points, moves); err != nil {
		return fmt.Errorf("failed to insert high score for %s: %w", playerName, err)
	}
	return nil
}

// TopScores retrieves a paginated list of scores ordered by points, with
// fewer moves winning ties.
func (s *HighScoreService) TopScores(limit, offset int) ([]Score, error) {
	const selectSQL = `
	SELECT id, player_name, points, moves, created_at
	FROM ` + scoresTable + `
	ORDER BY points DESC, moves ASC
	LIMIT ? OFFSET ?;`

	rows, err := s.db.Query(selectSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query high scores: %w", err)
	}
	defer rows.Close()

	var scores []Score
	for rows.Next() {
		var score Score
		var createdAt string
		if err := rows.Scan(&score.ID, &score.PlayerName, &score.Points, &score.Moves, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
			score.CreatedAt = ts
		} else {
			log.Debug("unparseable score timestamp", "id", score.ID, "raw", createdAt, "error", err)
		}
		scores = append(scores, score)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return scores, nil
}

// TotalScoreCount returns how many results have been recorded.
func (s *HighScoreService) TotalScoreCount() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM ` + scoresTable + `;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to get total score count: %w", err)
	}
	return count, nil
}
