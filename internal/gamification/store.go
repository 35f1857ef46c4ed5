package gamification

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/vocab-prep/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Core Gamification CRUD ──────────────────────────────

func (s *Store) GetOrCreateGamification(userID int64) (*models.UserGamification, error) {
	_, err := s.db.Exec(
		`INSERT INTO user_gamification (user_id) VALUES ($1)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert gamification: %w", err)
	}

	var g models.UserGamification
	err = s.db.QueryRow(
		`SELECT user_id, total_xp, current_streak, longest_streak, last_active_date,
		        words_answered_total, words_correct_total,
		        sessions_completed, perfect_sessions,
		        created_at, updated_at
		 FROM user_gamification WHERE user_id = $1`,
		userID,
	).Scan(&g.UserID, &g.TotalXP, &g.CurrentStreak, &g.LongestStreak, &g.LastActiveDate,
		&g.WordsAnsweredTotal, &g.WordsCorrectTotal,
		&g.SessionsCompleted, &g.PerfectSessions,
		&g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get gamification: %w", err)
	}
	return &g, nil
}

func (s *Store) UpdateGamification(userID int64, g *models.UserGamification) error {
	_, err := s.db.Exec(
		`UPDATE user_gamification SET
		    total_xp = $2,
		    current_streak = $3, longest_streak = $4, last_active_date = $5,
		    words_answered_total = $6, words_correct_total = $7,
		    sessions_completed = $8, perfect_sessions = $9,
		    updated_at = NOW()
		 WHERE user_id = $1`,
		userID, g.TotalXP,
		g.CurrentStreak, g.LongestStreak, g.LastActiveDate,
		g.WordsAnsweredTotal, g.WordsCorrectTotal,
		g.SessionsCompleted, g.PerfectSessions,
	)
	return err
}

func (s *Store) IncrementCounters(userID int64, correct bool) error {
	correctInc := 0
	if correct {
		correctInc = 1
	}
	_, err := s.db.Exec(
		`UPDATE user_gamification SET
		    words_answered_total = words_answered_total + 1,
		    words_correct_total = words_correct_total + $2,
		    updated_at = NOW()
		 WHERE user_id = $1`,
		userID, correctInc,
	)
	return err
}

// ── XP Operations ───────────────────────────────────────

func (s *Store) AddXP(userID int64, amount int) error {
	_, err := s.db.Exec(
		`UPDATE user_gamification SET
		    total_xp = total_xp + $2,
		    updated_at = NOW()
		 WHERE user_id = $1`,
		userID, amount,
	)
	return err
}

func (s *Store) LogXPEvent(userID int64, eventType string, xpAmount int, metadata map[string]interface{}) error {
	var metaJSON *string
	if metadata != nil {
		b, err := json.Marshal(metadata)
		if err == nil {
			s := string(b)
			metaJSON = &s
		}
	}
	_, err := s.db.Exec(
		`INSERT INTO xp_events (user_id, event_type, xp_amount, metadata)
		 VALUES ($1, $2, $3, $4)`,
		userID, eventType, xpAmount, metaJSON,
	)
	return err
}
