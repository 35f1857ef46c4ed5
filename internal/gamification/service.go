package gamification

import (
	"fmt"
	"log"
	"time"

	"github.com/vocab-prep/backend/internal/models"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// ── Per-Word XP (called from SubmitAnswer) ──────────────

// AwardWordXP calculates and awards XP for a correct answer. Callers
// only invoke it on correct answers; combo XP is settled at session
// completion from the session's max combo.
func (s *Service) AwardWordXP(userID int64, wordLevel, studentRank int) int {
	difficulty := WordDifficultyScore(wordLevel)
	base := BaseXP(difficulty)
	challenge := ChallengeBonus(studentRank, wordLevel)
	xpAwarded := base + challenge

	// Ensure gamification row exists
	s.store.GetOrCreateGamification(userID)

	if err := s.store.AddXP(userID, xpAwarded); err != nil {
		log.Printf("[gamification] failed to add XP for user %d: %v", userID, err)
	}

	s.store.LogXPEvent(userID, "word_correct", xpAwarded, map[string]interface{}{
		"word_level":      wordLevel,
		"base_xp":         base,
		"challenge_bonus": challenge,
	})

	return xpAwarded
}

// ── Streak ──────────────────────────────────────────────

func (s *Service) UpdateStreak(userID int64) error {
	gam, err := s.store.GetOrCreateGamification(userID)
	if err != nil {
		return fmt.Errorf("get gamification: %w", err)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)

	if gam.LastActiveDate != nil {
		lastActive := gam.LastActiveDate.Truncate(24 * time.Hour)
		if lastActive.Equal(today) {
			return nil
		}

		daysSinceLast := int(today.Sub(lastActive).Hours() / 24)
		if daysSinceLast == 1 {
			gam.CurrentStreak++
		} else {
			gam.CurrentStreak = 1
		}
	} else {
		// First ever activity
		gam.CurrentStreak = 1
	}

	if gam.CurrentStreak > gam.LongestStreak {
		gam.LongestStreak = gam.CurrentStreak
	}

	gam.LastActiveDate = &today

	return s.store.UpdateGamification(userID, gam)
}

// ── Counter Increment (delegates to store) ──────────────

func (s *Service) IncrementCounters(userID int64, correct bool) error {
	s.store.GetOrCreateGamification(userID)
	return s.store.IncrementCounters(userID, correct)
}

// ── Session Completion ──────────────────────────────────

// CompleteSession settles the session-level bonuses: combo ladder, time
// bonus, completion bonus, all scaled by the daily streak multiplier.
// Per-word XP was already awarded during SubmitAnswer.
func (s *Service) CompleteSession(userID int64, correct, total, comboMax int, avgTimeSeconds float64) (*models.XPBreakdown, error) {
	gam, err := s.store.GetOrCreateGamification(userID)
	if err != nil {
		return nil, fmt.Errorf("get gamification: %w", err)
	}

	isPerfect := correct == total && total > 0

	comboXP := CalculateComboXPTotal(comboMax)
	timeBonus := TimeBonus(avgTimeSeconds)
	completionXP := SessionCompletionXP(correct, total)

	subtotal := comboXP + timeBonus + completionXP
	multiplier := StreakMultiplier(gam.CurrentStreak)
	totalXP := ApplyStreakMultiplier(subtotal, multiplier)

	if totalXP > 0 {
		if err := s.store.AddXP(userID, totalXP); err != nil {
			log.Printf("[gamification] failed to add session XP: %v", err)
		}
		s.store.LogXPEvent(userID, "session_complete", totalXP, map[string]interface{}{
			"combo_xp":   comboXP,
			"time_bonus": timeBonus,
			"session_xp": completionXP,
			"multiplier": multiplier,
			"correct":    correct,
			"total":      total,
		})
	}

	gam.SessionsCompleted++
	if isPerfect {
		gam.PerfectSessions++
	}

	if err := s.store.UpdateGamification(userID, gam); err != nil {
		log.Printf("[gamification] failed to update gamification: %v", err)
	}

	return &models.XPBreakdown{
		ComboBonuses:     comboXP,
		TimeBonus:        timeBonus,
		CompletionBonus:  completionXP,
		Subtotal:         subtotal,
		StreakMultiplier: multiplier,
		TotalXP:          totalXP,
	}, nil
}

// ── Summary ─────────────────────────────────────────────

func (s *Service) GetGamification(userID int64) (*models.GamificationResponse, error) {
	gam, err := s.store.GetOrCreateGamification(userID)
	if err != nil {
		return nil, err
	}
	return &models.GamificationResponse{
		TotalXP:            gam.TotalXP,
		CurrentStreak:      gam.CurrentStreak,
		LongestStreak:      gam.LongestStreak,
		WordsAnsweredTotal: gam.WordsAnsweredTotal,
		WordsCorrectTotal:  gam.WordsCorrectTotal,
		SessionsCompleted:  gam.SessionsCompleted,
		PerfectSessions:    gam.PerfectSessions,
	}, nil
}
