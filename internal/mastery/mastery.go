// Package mastery implements the per-word learning state machine. The
// transition function is pure: ApplyAnswer takes the current record and
// an answer event and returns the updated record, leaving persistence
// to the caller's transaction.
package mastery

import (
	"strings"
	"time"

	"github.com/agext/levenshtein"
	"github.com/vocab-prep/backend/internal/engine"
	"github.com/vocab-prep/backend/internal/models"
)

// StreakThreshold is the number of consecutive correct answers required
// to advance a stage.
const StreakThreshold = 2

// Review intervals after a word is mastered. The first review comes
// quickly; passing it pushes the word out further.
const (
	FirstReviewInterval = 3 * 24 * time.Hour
	LaterReviewInterval = 7 * 24 * time.Hour
)

// StageQuestionType maps each stage to its question archetype. Stages
// get harder as recall shifts from recognition to production.
var StageQuestionType = map[int]string{
	1: engine.MeaningChoice,
	2: engine.WordChoice,
	3: engine.ListeningTyping,
	4: engine.SentenceBlank,
	5: engine.TypingWord,
}

// StageTimerSeconds is the display countdown per stage.
var StageTimerSeconds = map[int]int{
	1: 10,
	2: 10,
	3: 15,
	4: 20,
	5: 20,
}

// AnswerEvent is one graded answer feeding the state machine.
type AnswerEvent struct {
	Correct bool
	// Demote controls whether a wrong answer drops the stage. Stage
	// tests never demote; level-up and listening tests do.
	Demote bool
	// Combo is the session's current consecutive-correct count
	// including this answer.
	Combo int
	Now   time.Time
}

// ApplyAnswer returns the record after one answer. It never mutates its
// input.
func ApplyAnswer(rec models.WordMastery, ev AnswerEvent) models.WordMastery {
	rec.TotalAttempts++
	now := ev.Now
	rec.LastPracticedAt = &now
	rec.UpdatedAt = now

	if ev.Combo > rec.ComboBest {
		rec.ComboBest = ev.Combo
	}

	if !ev.Correct {
		rec.StageStreak = 0
		if ev.Demote && rec.Stage > models.StageMin {
			rec.Stage--
		}
		return rec
	}

	rec.TotalCorrect++
	rec.StageStreak++
	if rec.StageStreak < StreakThreshold {
		return rec
	}

	rec.StageStreak = 0
	if rec.Stage < models.StageMax {
		rec.Stage++
		return rec
	}

	// Completed stage 5: the word is mastered and enters spaced review.
	interval := FirstReviewInterval
	if rec.MasteredAt != nil {
		interval = LaterReviewInterval
	}
	if rec.MasteredAt == nil {
		rec.MasteredAt = &now
	}
	due := now.Add(interval)
	rec.ReviewDueAt = &due
	return rec
}

// NormalizeAnswer prepares a typed answer for comparison: lowercase,
// trimmed, inner whitespace collapsed to single spaces.
func NormalizeAnswer(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Grade compares a typed answer to the stored correct answer. Almost
// means one edit away from correct; it is reported to the student but
// never counts as correct.
func Grade(submitted, correct string) (isCorrect, almost bool) {
	sub := NormalizeAnswer(submitted)
	want := NormalizeAnswer(correct)
	if sub == want {
		return true, false
	}
	if levenshtein.Distance(sub, want, nil) == 1 {
		return false, true
	}
	return false, false
}
