package sessions

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/vocab-prep/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Assignments ─────────────────────────────────────────

func (s *Store) CreateAssignment(a *models.Assignment) error {
	return s.db.QueryRow(
		`INSERT INTO assignments (teacher_id, title, mode, code, level_min, level_max, lessons, word_ids, active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, true)
		 RETURNING id, active, created_at`,
		a.TeacherID, a.Title, a.Mode, a.Code, a.LevelMin, a.LevelMax,
		pq.Array(a.Lessons), pq.Array(a.WordIDs),
	).Scan(&a.ID, &a.Active, &a.CreatedAt)
}

// GetAssignmentByCode looks up an assignment by its test code. Codes are
// stored upper-cased; callers normalize before lookup.
func (s *Store) GetAssignmentByCode(code string) (*models.Assignment, error) {
	var a models.Assignment
	err := s.db.QueryRow(
		`SELECT id, teacher_id, title, mode, code, level_min, level_max, lessons, word_ids, active, created_at
		 FROM assignments WHERE code = $1`,
		code,
	).Scan(&a.ID, &a.TeacherID, &a.Title, &a.Mode, &a.Code, &a.LevelMin, &a.LevelMax,
		pq.Array(&a.Lessons), pq.Array(&a.WordIDs), &a.Active, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get assignment by code: %w", err)
	}
	return &a, nil
}

func (s *Store) GetAssignment(id int64) (*models.Assignment, error) {
	var a models.Assignment
	err := s.db.QueryRow(
		`SELECT id, teacher_id, title, mode, code, level_min, level_max, lessons, word_ids, active, created_at
		 FROM assignments WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.TeacherID, &a.Title, &a.Mode, &a.Code, &a.LevelMin, &a.LevelMax,
		pq.Array(&a.Lessons), pq.Array(&a.WordIDs), &a.Active, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	return &a, nil
}

func (s *Store) ListAssignmentsByTeacher(teacherID int64) ([]models.Assignment, error) {
	rows, err := s.db.Query(
		`SELECT id, teacher_id, title, mode, code, level_min, level_max, lessons, word_ids, active, created_at
		 FROM assignments WHERE teacher_id = $1 ORDER BY created_at DESC`,
		teacherID,
	)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []models.Assignment
	for rows.Next() {
		var a models.Assignment
		if err := rows.Scan(&a.ID, &a.TeacherID, &a.Title, &a.Mode, &a.Code, &a.LevelMin, &a.LevelMax,
			pq.Array(&a.Lessons), pq.Array(&a.WordIDs), &a.Active, &a.CreatedAt); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	if assignments == nil {
		assignments = []models.Assignment{}
	}
	return assignments, rows.Err()
}

func (s *Store) SetAssignmentActive(id, teacherID int64, active bool) error {
	result, err := s.db.Exec(
		`UPDATE assignments SET active = $3 WHERE id = $1 AND teacher_id = $2`,
		id, teacherID, active,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ── Word Selection ──────────────────────────────────────

// SelectAssignmentWords loads the word set an assignment covers: an
// explicit word list wins, otherwise the level range filtered by lesson
// labels when any are set.
func (s *Store) SelectAssignmentWords(a *models.Assignment) ([]models.VocabWord, error) {
	var (
		query string
		args  []interface{}
	)
	if len(a.WordIDs) > 0 {
		query = `SELECT id, english, korean, antonym, examples, level, lesson, compatible_engines, created_at, updated_at
		         FROM vocab_words WHERE id = ANY($1) ORDER BY level, lesson, id`
		args = []interface{}{pq.Array(a.WordIDs)}
	} else if len(a.Lessons) > 0 {
		query = `SELECT id, english, korean, antonym, examples, level, lesson, compatible_engines, created_at, updated_at
		         FROM vocab_words WHERE level BETWEEN $1 AND $2 AND lesson = ANY($3) ORDER BY level, lesson, id`
		args = []interface{}{a.LevelMin, a.LevelMax, pq.Array(a.Lessons)}
	} else {
		query = `SELECT id, english, korean, antonym, examples, level, lesson, compatible_engines, created_at, updated_at
		         FROM vocab_words WHERE level BETWEEN $1 AND $2 ORDER BY level, lesson, id`
		args = []interface{}{a.LevelMin, a.LevelMax}
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("select assignment words: %w", err)
	}
	defer rows.Close()

	return scanWords(rows)
}

func scanWords(rows *sql.Rows) ([]models.VocabWord, error) {
	var words []models.VocabWord
	for rows.Next() {
		var w models.VocabWord
		if err := rows.Scan(&w.ID, &w.English, &w.Korean, &w.Antonym, pq.Array(&w.Examples),
			&w.Level, &w.Lesson, pq.Array(&w.CompatibleEngines), &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// ── Sessions ────────────────────────────────────────────

func (s *Store) CreateSession(assignmentID, studentID int64, mode models.TestMode) (*models.LearningSession, error) {
	var sess models.LearningSession
	err := s.db.QueryRow(
		`INSERT INTO learning_sessions (assignment_id, student_id, mode, status)
		 VALUES ($1, $2, $3, 'active')
		 RETURNING id, assignment_id, student_id, mode, status, total_answered, correct_count, combo_current, combo_best, started_at`,
		assignmentID, studentID, mode,
	).Scan(&sess.ID, &sess.AssignmentID, &sess.StudentID, &sess.Mode, &sess.Status,
		&sess.TotalAnswered, &sess.CorrectCount, &sess.ComboCurrent, &sess.ComboBest, &sess.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &sess, nil
}

func (s *Store) GetSession(id int64) (*models.LearningSession, error) {
	var sess models.LearningSession
	err := s.db.QueryRow(
		`SELECT id, assignment_id, student_id, mode, status, total_answered, correct_count, combo_current, combo_best,
		        rank, sublevel, rank_label, started_at, completed_at
		 FROM learning_sessions WHERE id = $1`,
		id,
	).Scan(&sess.ID, &sess.AssignmentID, &sess.StudentID, &sess.Mode, &sess.Status,
		&sess.TotalAnswered, &sess.CorrectCount, &sess.ComboCurrent, &sess.ComboBest,
		&sess.Rank, &sess.Sublevel, &sess.RankLabel, &sess.StartedAt, &sess.CompletedAt)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &sess, nil
}

// FindSession returns the student's most recent session for an
// assignment with the given status, or nil if none exists.
func (s *Store) FindSession(assignmentID, studentID int64, status models.SessionStatus) (*models.LearningSession, error) {
	var sess models.LearningSession
	err := s.db.QueryRow(
		`SELECT id, assignment_id, student_id, mode, status, total_answered, correct_count, combo_current, combo_best,
		        rank, sublevel, rank_label, started_at, completed_at
		 FROM learning_sessions
		 WHERE assignment_id = $1 AND student_id = $2 AND status = $3
		 ORDER BY started_at DESC LIMIT 1`,
		assignmentID, studentID, status,
	).Scan(&sess.ID, &sess.AssignmentID, &sess.StudentID, &sess.Mode, &sess.Status,
		&sess.TotalAnswered, &sess.CorrectCount, &sess.ComboCurrent, &sess.ComboBest,
		&sess.Rank, &sess.Sublevel, &sess.RankLabel, &sess.StartedAt, &sess.CompletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &sess, nil
}

func (s *Store) CompleteSession(sessionID int64, rank, sublevel *int, rankLabel *string) error {
	_, err := s.db.Exec(
		`UPDATE learning_sessions SET
		    status = 'completed', completed_at = NOW(),
		    rank = COALESCE($2, rank), sublevel = COALESCE($3, sublevel), rank_label = COALESCE($4, rank_label)
		 WHERE id = $1`,
		sessionID, rank, sublevel, rankLabel,
	)
	return err
}

// ── Mastery Records ─────────────────────────────────────

// GetOrCreateMastery lazily creates the per-word record on first
// exposure within an assignment.
func (s *Store) GetOrCreateMastery(studentID, wordID int64, assignmentID *int64) (*models.WordMastery, error) {
	_, err := s.db.Exec(
		`INSERT INTO word_mastery (student_id, word_id, assignment_id, stage)
		 VALUES ($1, $2, $3, 1)
		 ON CONFLICT (student_id, word_id) DO NOTHING`,
		studentID, wordID, assignmentID,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert mastery: %w", err)
	}

	var m models.WordMastery
	err = s.db.QueryRow(
		`SELECT id, student_id, word_id, assignment_id, stage, stage_streak,
		        total_attempts, total_correct, combo_best,
		        last_practiced_at, mastered_at, review_due_at, created_at, updated_at
		 FROM word_mastery WHERE student_id = $1 AND word_id = $2`,
		studentID, wordID,
	).Scan(&m.ID, &m.StudentID, &m.WordID, &m.AssignmentID, &m.Stage, &m.StageStreak,
		&m.TotalAttempts, &m.TotalCorrect, &m.ComboBest,
		&m.LastPracticedAt, &m.MasteredAt, &m.ReviewDueAt, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get mastery: %w", err)
	}
	return &m, nil
}

// ── Answer Submission (single transaction) ──────────────

// SubmitResult carries everything the service needs after the
// transactional write.
type SubmitResult struct {
	Mastery models.WordMastery
	Word    models.VocabWord
	Session models.LearningSession
}

// SubmitAnswer runs the read-compute-write cycle for one answer inside
// one transaction. The mastery row is locked FOR UPDATE so duplicate
// submissions for the same word serialize; last write wins. The apply
// callback is the pure state transition, fed the session's combo count
// after this answer.
func (s *Store) SubmitAnswer(
	sessionID, masteryID int64,
	questionType string,
	correct, almostCorrect bool,
	timeTaken *float64,
	apply func(m models.WordMastery, combo int) models.WordMastery,
) (*SubmitResult, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var m models.WordMastery
	err = tx.QueryRow(
		`SELECT id, student_id, word_id, assignment_id, stage, stage_streak,
		        total_attempts, total_correct, combo_best,
		        last_practiced_at, mastered_at, review_due_at, created_at, updated_at
		 FROM word_mastery WHERE id = $1 FOR UPDATE`,
		masteryID,
	).Scan(&m.ID, &m.StudentID, &m.WordID, &m.AssignmentID, &m.Stage, &m.StageStreak,
		&m.TotalAttempts, &m.TotalCorrect, &m.ComboBest,
		&m.LastPracticedAt, &m.MasteredAt, &m.ReviewDueAt, &m.CreatedAt, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock mastery: %w", err)
	}

	correctInc := 0
	if correct {
		correctInc = 1
	}
	var sess models.LearningSession
	err = tx.QueryRow(
		`UPDATE learning_sessions SET
		    total_answered = total_answered + 1,
		    correct_count = correct_count + $2,
		    combo_current = CASE WHEN $2 = 1 THEN combo_current + 1 ELSE 0 END,
		    combo_best = GREATEST(combo_best, CASE WHEN $2 = 1 THEN combo_current + 1 ELSE 0 END)
		 WHERE id = $1 AND status = 'active'
		 RETURNING id, assignment_id, student_id, mode, status, total_answered, correct_count, combo_current, combo_best, started_at`,
		sessionID, correctInc,
	).Scan(&sess.ID, &sess.AssignmentID, &sess.StudentID, &sess.Mode, &sess.Status,
		&sess.TotalAnswered, &sess.CorrectCount, &sess.ComboCurrent, &sess.ComboBest, &sess.StartedAt)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	priorStage := m.Stage
	updated := apply(m, sess.ComboCurrent)

	_, err = tx.Exec(
		`UPDATE word_mastery SET
		    stage = $2, stage_streak = $3, total_attempts = $4, total_correct = $5,
		    combo_best = $6, last_practiced_at = $7, mastered_at = $8, review_due_at = $9,
		    updated_at = NOW()
		 WHERE id = $1`,
		updated.ID, updated.Stage, updated.StageStreak, updated.TotalAttempts, updated.TotalCorrect,
		updated.ComboBest, updated.LastPracticedAt, updated.MasteredAt, updated.ReviewDueAt,
	)
	if err != nil {
		return nil, fmt.Errorf("update mastery: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO learning_answers (session_id, word_mastery_id, stage, question_type, correct, almost_correct, time_taken_seconds)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sessionID, masteryID, priorStage, questionType, correct, almostCorrect, timeTaken,
	)
	if err != nil {
		return nil, fmt.Errorf("insert answer: %w", err)
	}

	var w models.VocabWord
	err = tx.QueryRow(
		`SELECT id, english, korean, antonym, examples, level, lesson, compatible_engines, created_at, updated_at
		 FROM vocab_words WHERE id = $1`,
		updated.WordID,
	).Scan(&w.ID, &w.English, &w.Korean, &w.Antonym, pq.Array(&w.Examples),
		&w.Level, &w.Lesson, pq.Array(&w.CompatibleEngines), &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get word: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return &SubmitResult{Mastery: updated, Word: w, Session: sess}, nil
}

// GetMasteryWithWord loads a mastery record together with its word, for
// grading before the transactional write.
func (s *Store) GetMasteryWithWord(masteryID int64) (*models.WordMastery, *models.VocabWord, error) {
	var m models.WordMastery
	var w models.VocabWord
	err := s.db.QueryRow(
		`SELECT m.id, m.student_id, m.word_id, m.assignment_id, m.stage, m.stage_streak,
		        m.total_attempts, m.total_correct, m.combo_best,
		        m.last_practiced_at, m.mastered_at, m.review_due_at, m.created_at, m.updated_at,
		        w.id, w.english, w.korean, w.antonym, w.examples, w.level, w.lesson, w.compatible_engines,
		        w.created_at, w.updated_at
		 FROM word_mastery m
		 JOIN vocab_words w ON w.id = m.word_id
		 WHERE m.id = $1`,
		masteryID,
	).Scan(&m.ID, &m.StudentID, &m.WordID, &m.AssignmentID, &m.Stage, &m.StageStreak,
		&m.TotalAttempts, &m.TotalCorrect, &m.ComboBest,
		&m.LastPracticedAt, &m.MasteredAt, &m.ReviewDueAt, &m.CreatedAt, &m.UpdatedAt,
		&w.ID, &w.English, &w.Korean, &w.Antonym, pq.Array(&w.Examples), &w.Level, &w.Lesson,
		pq.Array(&w.CompatibleEngines), &w.CreatedAt, &w.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil, models.ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get mastery with word: %w", err)
	}
	return &m, &w, nil
}

// ── Answer Log ──────────────────────────────────────────

// PlacementAnswer joins the answer log with word difficulty and lesson
// for final rank scoring.
type PlacementAnswer struct {
	WordLevel int
	Lesson    string
	Correct   bool
}

func (s *Store) GetPlacementAnswers(sessionID int64) ([]PlacementAnswer, error) {
	rows, err := s.db.Query(
		`SELECT w.level, w.lesson, a.correct
		 FROM learning_answers a
		 JOIN word_mastery m ON m.id = a.word_mastery_id
		 JOIN vocab_words w ON w.id = m.word_id
		 WHERE a.session_id = $1
		 ORDER BY a.answered_at`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("get placement answers: %w", err)
	}
	defer rows.Close()

	var answers []PlacementAnswer
	for rows.Next() {
		var a PlacementAnswer
		if err := rows.Scan(&a.WordLevel, &a.Lesson, &a.Correct); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

func (s *Store) GetAnswerTimes(sessionID int64) (float64, int, error) {
	var total sql.NullFloat64
	var count int
	err := s.db.QueryRow(
		`SELECT SUM(time_taken_seconds), COUNT(*)
		 FROM learning_answers WHERE session_id = $1 AND time_taken_seconds IS NOT NULL`,
		sessionID,
	).Scan(&total, &count)
	if err != nil {
		return 0, 0, err
	}
	return total.Float64, count, nil
}

// ── Review Queue ────────────────────────────────────────

func (s *Store) GetReviewQueue(studentID int64, now time.Time, limit int) ([]models.ReviewWord, error) {
	rows, err := s.db.Query(
		`SELECT m.id, w.id, w.english, w.korean, m.stage, m.review_due_at
		 FROM word_mastery m
		 JOIN vocab_words w ON w.id = m.word_id
		 WHERE m.student_id = $1 AND m.review_due_at IS NOT NULL AND m.review_due_at <= $2
		 ORDER BY m.review_due_at
		 LIMIT $3`,
		studentID, now, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("get review queue: %w", err)
	}
	defer rows.Close()

	var words []models.ReviewWord
	for rows.Next() {
		var r models.ReviewWord
		if err := rows.Scan(&r.MasteryID, &r.WordID, &r.English, &r.Korean, &r.Stage, &r.ReviewDueAt); err != nil {
			return nil, err
		}
		words = append(words, r)
	}
	if words == nil {
		words = []models.ReviewWord{}
	}
	return words, rows.Err()
}

// ── Stats ───────────────────────────────────────────────

func (s *Store) GetMasteryStats(studentID int64, now time.Time) (*models.MasteryStatsResponse, error) {
	stats := &models.MasteryStatsResponse{ByStage: make(map[int]int)}

	rows, err := s.db.Query(
		`SELECT stage, mastered_at IS NOT NULL, COUNT(*), SUM(total_attempts), SUM(total_correct)
		 FROM word_mastery WHERE student_id = $1
		 GROUP BY stage, mastered_at IS NOT NULL`,
		studentID,
	)
	if err != nil {
		return nil, fmt.Errorf("get mastery stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var stage, count, attempts, correct int
		var mastered bool
		if err := rows.Scan(&stage, &mastered, &count, &attempts, &correct); err != nil {
			return nil, err
		}
		stats.TotalWords += count
		if mastered {
			stats.Mastered += count
		} else {
			stats.ByStage[stage] += count
		}
		stats.TotalAttempts += attempts
		stats.TotalCorrect += correct
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if stats.TotalAttempts > 0 {
		stats.Accuracy = float64(stats.TotalCorrect) / float64(stats.TotalAttempts)
	}

	err = s.db.QueryRow(
		`SELECT COUNT(*) FROM word_mastery
		 WHERE student_id = $1 AND review_due_at IS NOT NULL AND review_due_at <= $2`,
		studentID, now,
	).Scan(&stats.ReviewDue)
	if err != nil {
		return nil, fmt.Errorf("count review due: %w", err)
	}

	return stats, nil
}

// ── Code Generation ─────────────────────────────────────

// codeAlphabet omits easily confused characters (0/O, 1/I/L).
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// NormalizeCode upper-cases and trims a test code for lookup.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
