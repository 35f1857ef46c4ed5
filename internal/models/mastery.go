package models

import "time"

// Mastery stages run 1–5. Two consecutive correct answers at stage 5
// mark the word mastered and hand it to the spaced-review schedule.
const (
	StageMin = 1
	StageMax = 5
)

// WordMastery is one student's learning state for one word. Created
// lazily on first exposure within an assignment, updated after every
// answer, never deleted except by an explicit assignment reset.
type WordMastery struct {
	ID              int64      `json:"id"`
	StudentID       int64      `json:"student_id"`
	WordID          int64      `json:"word_id"`
	AssignmentID    *int64     `json:"assignment_id,omitempty"`
	Stage           int        `json:"stage"`
	StageStreak     int        `json:"stage_streak"`
	TotalAttempts   int        `json:"total_attempts"`
	TotalCorrect    int        `json:"total_correct"`
	ComboBest       int        `json:"combo_best"`
	LastPracticedAt *time.Time `json:"last_practiced_at,omitempty"`
	MasteredAt      *time.Time `json:"mastered_at,omitempty"`
	ReviewDueAt     *time.Time `json:"review_due_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Mastered reports whether the word has left the five-stage cycle.
func (m *WordMastery) Mastered() bool {
	return m.MasteredAt != nil
}

// ── Response Types ────────────────────────────────────

type ReviewWord struct {
	MasteryID   int64     `json:"mastery_id"`
	WordID      int64     `json:"word_id"`
	English     string    `json:"english"`
	Korean      string    `json:"korean"`
	Stage       int       `json:"stage"`
	ReviewDueAt time.Time `json:"review_due_at"`
}

type ReviewQueueResponse struct {
	Words []ReviewWord `json:"words"`
	Total int          `json:"total"`
}

type MasteryStatsResponse struct {
	TotalWords    int         `json:"total_words"`
	Mastered      int         `json:"mastered"`
	ByStage       map[int]int `json:"by_stage"`
	TotalAttempts int         `json:"total_attempts"`
	TotalCorrect  int         `json:"total_correct"`
	Accuracy      float64     `json:"accuracy"`
	ReviewDue     int         `json:"review_due"`
}
