package gamification

import "math"

// WordDifficultyScore maps a word level (1-15) onto the 0-100
// difficulty scale the XP bands are defined over.
func WordDifficultyScore(level int) int {
	score := level*7 - 3
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// BaseXP returns XP for a correct answer based on difficulty score (0-100).
func BaseXP(difficultyScore int) int {
	if difficultyScore <= 20 {
		return 5
	}
	if difficultyScore <= 40 {
		return 8
	}
	if difficultyScore <= 60 {
		return 10
	}
	if difficultyScore <= 80 {
		return 13
	}
	return 16
}

// ChallengeBonus adds XP when a word sits above the student's placement
// rank. Rank is compared on the same 0-100 scale as word difficulty.
func ChallengeBonus(studentRank, wordLevel int) int {
	gap := WordDifficultyScore(wordLevel) - WordDifficultyScore(studentRank)
	if gap <= 0 {
		return 0
	}
	if gap <= 10 {
		return 2
	}
	if gap <= 20 {
		return 5
	}
	return 8
}

// ComboXP returns bonus XP for consecutive correct answers in a session.
func ComboXP(consecutiveCorrect int) int {
	switch {
	case consecutiveCorrect < 3:
		return 0
	case consecutiveCorrect == 3:
		return 3
	case consecutiveCorrect == 4:
		return 5
	case consecutiveCorrect == 5:
		return 8
	default:
		return 10
	}
}

// TimeBonus rewards fast answers, based on average seconds per word in
// the session.
func TimeBonus(avgSecondsPerWord float64) int {
	if avgSecondsPerWord <= 0 {
		return 0
	}
	if avgSecondsPerWord <= 5 {
		return 10
	}
	if avgSecondsPerWord <= 10 {
		return 5
	}
	if avgSecondsPerWord <= 20 {
		return 2
	}
	return 0
}

// StreakMultiplier returns the XP multiplier for a daily streak.
func StreakMultiplier(currentStreak int) float64 {
	if currentStreak < 3 {
		return 1.0
	}
	if currentStreak < 7 {
		return 1.15
	}
	if currentStreak < 14 {
		return 1.25
	}
	if currentStreak < 30 {
		return 1.5
	}
	return 2.0
}

// SessionCompletionXP returns bonus XP for finishing a session.
func SessionCompletionXP(correct, total int) int {
	if total == 0 {
		return 0
	}
	accuracy := float64(correct) / float64(total)

	if correct == total {
		return 25 // Perfect session bonus
	}
	if accuracy >= 0.8 {
		return 10
	}
	return 0
}

// CalculateComboXPTotal computes total combo XP from the max combo
// streak in a session.
func CalculateComboXPTotal(comboMax int) int {
	total := 0
	for i := 3; i <= comboMax; i++ {
		total += ComboXP(i)
	}
	return total
}

// ApplyStreakMultiplier rounds the multiplied XP to the nearest integer.
func ApplyStreakMultiplier(xp int, multiplier float64) int {
	return int(math.Round(float64(xp) * multiplier))
}
