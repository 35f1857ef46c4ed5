package models

import "time"

type UserGamification struct {
	UserID              int64      `json:"user_id"`
	TotalXP             int64      `json:"total_xp"`
	CurrentStreak       int        `json:"current_streak"`
	LongestStreak       int        `json:"longest_streak"`
	LastActiveDate      *time.Time `json:"last_active_date,omitempty"`
	WordsAnsweredTotal  int        `json:"words_answered_total"`
	WordsCorrectTotal   int        `json:"words_correct_total"`
	SessionsCompleted   int        `json:"sessions_completed"`
	PerfectSessions     int        `json:"perfect_sessions"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

type XPBreakdown struct {
	Questions        int     `json:"questions"`
	ComboBonuses     int     `json:"combo_bonuses"`
	TimeBonus        int     `json:"time_bonus"`
	CompletionBonus  int     `json:"completion_bonus"`
	Subtotal         int     `json:"subtotal"`
	StreakMultiplier float64 `json:"streak_multiplier"`
	TotalXP          int     `json:"total_xp"`
}

type GamificationResponse struct {
	TotalXP            int64 `json:"total_xp"`
	CurrentStreak      int   `json:"current_streak"`
	LongestStreak      int   `json:"longest_streak"`
	WordsAnsweredTotal int   `json:"words_answered_total"`
	WordsCorrectTotal  int   `json:"words_correct_total"`
	SessionsCompleted  int   `json:"sessions_completed"`
	PerfectSessions    int   `json:"perfect_sessions"`
}
