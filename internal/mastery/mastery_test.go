package mastery

import (
	"testing"
	"time"

	"github.com/vocab-prep/backend/internal/models"
)

var testNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func baseRecord() models.WordMastery {
	return models.WordMastery{
		ID:        1,
		StudentID: 7,
		WordID:    42,
		Stage:     1,
	}
}

func TestApplyAnswerAdvancesAfterTwoCorrect(t *testing.T) {
	rec := baseRecord()

	rec = ApplyAnswer(rec, AnswerEvent{Correct: true, Combo: 1, Now: testNow})
	if rec.Stage != 1 {
		t.Errorf("stage after one correct = %d, want 1", rec.Stage)
	}
	if rec.StageStreak != 1 {
		t.Errorf("streak after one correct = %d, want 1", rec.StageStreak)
	}

	rec = ApplyAnswer(rec, AnswerEvent{Correct: true, Combo: 2, Now: testNow})
	if rec.Stage != 2 {
		t.Errorf("stage after two correct = %d, want 2", rec.Stage)
	}
	if rec.StageStreak != 0 {
		t.Errorf("streak after advancement = %d, want 0", rec.StageStreak)
	}
}

func TestApplyAnswerWrongResetsStreak(t *testing.T) {
	rec := baseRecord()
	rec.Stage = 2
	rec.StageStreak = 1

	rec = ApplyAnswer(rec, AnswerEvent{Correct: false, Now: testNow})
	if rec.StageStreak != 0 {
		t.Errorf("streak after wrong = %d, want 0", rec.StageStreak)
	}
	if rec.Stage != 2 {
		t.Errorf("stage without demotion = %d, want 2", rec.Stage)
	}
}

func TestApplyAnswerDemotion(t *testing.T) {
	rec := baseRecord()
	rec.Stage = 3

	rec = ApplyAnswer(rec, AnswerEvent{Correct: false, Demote: true, Now: testNow})
	if rec.Stage != 2 {
		t.Errorf("stage after demotion = %d, want 2", rec.Stage)
	}

	rec.Stage = 1
	rec = ApplyAnswer(rec, AnswerEvent{Correct: false, Demote: true, Now: testNow})
	if rec.Stage != 1 {
		t.Errorf("stage demoted below 1: got %d", rec.Stage)
	}
}

func TestApplyAnswerMastersAtStageFive(t *testing.T) {
	rec := baseRecord()
	rec.Stage = 5
	rec.StageStreak = 1

	rec = ApplyAnswer(rec, AnswerEvent{Correct: true, Combo: 2, Now: testNow})

	if !rec.Mastered() {
		t.Fatal("record not mastered after completing stage 5")
	}
	if rec.Stage != 5 {
		t.Errorf("stage = %d, want 5 after mastery", rec.Stage)
	}
	if rec.ReviewDueAt == nil {
		t.Fatal("ReviewDueAt not set")
	}
	wantDue := testNow.Add(FirstReviewInterval)
	if !rec.ReviewDueAt.Equal(wantDue) {
		t.Errorf("ReviewDueAt = %v, want %v", rec.ReviewDueAt, wantDue)
	}
}

func TestApplyAnswerReviewReschedules(t *testing.T) {
	rec := baseRecord()
	rec.Stage = 5
	rec.StageStreak = 1
	masteredAt := testNow.Add(-30 * 24 * time.Hour)
	rec.MasteredAt = &masteredAt

	rec = ApplyAnswer(rec, AnswerEvent{Correct: true, Combo: 2, Now: testNow})

	if !rec.MasteredAt.Equal(masteredAt) {
		t.Errorf("MasteredAt changed on review pass: %v", rec.MasteredAt)
	}
	wantDue := testNow.Add(LaterReviewInterval)
	if rec.ReviewDueAt == nil || !rec.ReviewDueAt.Equal(wantDue) {
		t.Errorf("ReviewDueAt = %v, want %v", rec.ReviewDueAt, wantDue)
	}
}

func TestApplyAnswerCounters(t *testing.T) {
	rec := baseRecord()

	rec = ApplyAnswer(rec, AnswerEvent{Correct: true, Combo: 3, Now: testNow})
	rec = ApplyAnswer(rec, AnswerEvent{Correct: false, Combo: 0, Now: testNow})

	if rec.TotalAttempts != 2 {
		t.Errorf("TotalAttempts = %d, want 2", rec.TotalAttempts)
	}
	if rec.TotalCorrect != 1 {
		t.Errorf("TotalCorrect = %d, want 1", rec.TotalCorrect)
	}
	if rec.ComboBest != 3 {
		t.Errorf("ComboBest = %d, want 3", rec.ComboBest)
	}
	if rec.LastPracticedAt == nil || !rec.LastPracticedAt.Equal(testNow) {
		t.Errorf("LastPracticedAt = %v, want %v", rec.LastPracticedAt, testNow)
	}
}

func TestApplyAnswerPure(t *testing.T) {
	rec := baseRecord()
	rec.StageStreak = 1

	_ = ApplyAnswer(rec, AnswerEvent{Correct: true, Now: testNow})

	if rec.StageStreak != 1 || rec.TotalAttempts != 0 {
		t.Errorf("input record mutated: %+v", rec)
	}
}

func TestStageTables(t *testing.T) {
	for stage := models.StageMin; stage <= models.StageMax; stage++ {
		if _, ok := StageQuestionType[stage]; !ok {
			t.Errorf("StageQuestionType missing stage %d", stage)
		}
		if _, ok := StageTimerSeconds[stage]; !ok {
			t.Errorf("StageTimerSeconds missing stage %d", stage)
		}
	}
}

func TestNormalizeAnswer(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Happy ", "happy"},
		{"FOR  THE   FIRST time", "for the first time"},
		{"", ""},
	}

	for _, tt := range tests {
		got := NormalizeAnswer(tt.in)
		if got != tt.want {
			t.Errorf("NormalizeAnswer(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGrade(t *testing.T) {
	tests := []struct {
		name        string
		submitted   string
		correct     string
		wantCorrect bool
		wantAlmost  bool
	}{
		{"exact", "happy", "happy", true, false},
		{"case and space", "  HAPPY ", "happy", true, false},
		{"one letter off", "hapy", "happy", false, true},
		{"transposed tail", "happq", "happy", false, true},
		{"two edits", "hppq", "happy", false, false},
		{"unrelated", "banana", "happy", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotCorrect, gotAlmost := Grade(tt.submitted, tt.correct)
			if gotCorrect != tt.wantCorrect || gotAlmost != tt.wantAlmost {
				t.Errorf("Grade(%q, %q) = (%v, %v), want (%v, %v)",
					tt.submitted, tt.correct, gotCorrect, gotAlmost, tt.wantCorrect, tt.wantAlmost)
			}
		})
	}
}
