package models

import "time"

type TestMode string

const (
	ModePlacement TestMode = "placement"
	ModeLevelUp   TestMode = "level_up"
	ModeStageTest TestMode = "stage_test"
	ModeListening TestMode = "listening_test"
)

var ValidTestModes = map[TestMode]bool{
	ModePlacement: true,
	ModeLevelUp:   true,
	ModeStageTest: true,
	ModeListening: true,
}

// DemotesOnWrong reports whether a wrong answer drops the mastery stage
// in this mode. Stage tests never demote.
func (m TestMode) DemotesOnWrong() bool {
	return m == ModeLevelUp || m == ModeListening
}

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
)

// Assignment binds a word selection and a test mode to an opaque code.
// Codes are stored upper-cased and resolved case-insensitively.
type Assignment struct {
	ID        int64     `json:"id"`
	TeacherID int64     `json:"teacher_id"`
	Title     string    `json:"title"`
	Mode      TestMode  `json:"mode"`
	Code      string    `json:"code"`
	LevelMin  int       `json:"level_min"`
	LevelMax  int       `json:"level_max"`
	Lessons   []string  `json:"lessons,omitempty"`
	WordIDs   []int64   `json:"word_ids,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type LearningSession struct {
	ID            int64         `json:"id"`
	AssignmentID  int64         `json:"assignment_id"`
	StudentID     int64         `json:"student_id"`
	Mode          TestMode      `json:"mode"`
	Status        SessionStatus `json:"status"`
	TotalAnswered int           `json:"total_answered"`
	CorrectCount  int           `json:"correct_count"`
	ComboCurrent  int           `json:"combo_current"`
	ComboBest     int           `json:"combo_best"`
	Rank          *int          `json:"rank,omitempty"`
	Sublevel      *int          `json:"sublevel,omitempty"`
	RankLabel     *string       `json:"rank_label,omitempty"`
	StartedAt     time.Time     `json:"started_at"`
	CompletedAt   *time.Time    `json:"completed_at,omitempty"`
}

// LearningAnswer is one row of the append-only answer log.
type LearningAnswer struct {
	ID               int64     `json:"id"`
	SessionID        int64     `json:"session_id"`
	MasteryID        int64     `json:"word_mastery_id"`
	Stage            int       `json:"stage"`
	QuestionType     string    `json:"question_type"`
	Correct          bool      `json:"correct"`
	AlmostCorrect    bool      `json:"almost_correct"`
	TimeTakenSeconds *float64  `json:"time_taken_seconds,omitempty"`
	AnsweredAt       time.Time `json:"answered_at"`
}

// ── Request Types ─────────────────────────────────────

type CreateAssignmentRequest struct {
	Title    string   `json:"title"`
	Mode     TestMode `json:"mode"`
	LevelMin int      `json:"level_min"`
	LevelMax int      `json:"level_max"`
	Lessons  []string `json:"lessons,omitempty"`
	WordIDs  []int64  `json:"word_ids,omitempty"`
}

type StartSessionRequest struct {
	AllowRestart bool `json:"allow_restart"`
}

type SubmitAnswerRequest struct {
	WordMasteryID    int64    `json:"word_mastery_id"`
	SelectedAnswer   string   `json:"selected_answer"`
	TimeTakenSeconds *float64 `json:"time_taken_seconds,omitempty"`
	QuestionType     string   `json:"question_type,omitempty"`
}

type CompleteSessionRequest struct {
	TotalTimeSeconds *float64 `json:"total_time_seconds,omitempty"`
}

// ── Response Types ────────────────────────────────────

type StartSessionResponse struct {
	SessionID    int64          `json:"session_id"`
	AssignmentID int64          `json:"assignment_id"`
	StudentID    int64          `json:"student_id"`
	Mode         TestMode       `json:"mode"`
	WordCount    int            `json:"word_count"`
	Questions    []QuestionView `json:"questions"`
}

type SubmitAnswerResponse struct {
	IsCorrect     bool   `json:"is_correct"`
	AlmostCorrect bool   `json:"almost_correct"`
	CorrectAnswer string `json:"correct_answer"`
	NewStage      int    `json:"new_stage"`
	StageStreak   int    `json:"stage_streak"`
	Mastered      bool   `json:"mastered"`
	Combo         int    `json:"combo"`
	XPAwarded     int    `json:"xp_awarded"`
}

type CompleteSessionResponse struct {
	SessionID     int64   `json:"session_id"`
	TotalAnswered int     `json:"total_answered"`
	CorrectCount  int     `json:"correct_count"`
	Accuracy      float64 `json:"accuracy"`
	XPAwarded     int     `json:"xp_awarded"`
	Rank          *int    `json:"rank,omitempty"`
	Sublevel      *int    `json:"sublevel,omitempty"`
	RankLabel     *string `json:"rank_label,omitempty"`
}

// QuestionView is the client-facing shape of a generated question. The
// correct answer is never included; answers validate server-side on
// submit.
type QuestionView struct {
	MasteryID     int64    `json:"word_mastery_id"`
	WordID        int64    `json:"word_id"`
	Engine        string   `json:"question_type"`
	Prompt        string   `json:"prompt"`
	Mode          string   `json:"mode"`
	Choices       []string `json:"choices"`
	SentenceBlank string   `json:"sentence_blank,omitempty"`
	Emoji         string   `json:"emoji,omitempty"`
	TypingHint    string   `json:"typing_hint,omitempty"`
	ListenText    string   `json:"listen_text,omitempty"`
	Stage         int      `json:"stage"`
	TimerSeconds  int      `json:"timer_seconds"`
}

type BatchResponse struct {
	SessionID int64          `json:"session_id"`
	Questions []QuestionView `json:"questions"`
	Total     int            `json:"total"`
}
