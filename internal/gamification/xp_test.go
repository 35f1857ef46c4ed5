package gamification

import "testing"

func TestWordDifficultyScore(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 4},
		{5, 32},
		{10, 67},
		{15, 100},
		{0, 0},
	}

	for _, tt := range tests {
		got := WordDifficultyScore(tt.level)
		if got != tt.want {
			t.Errorf("WordDifficultyScore(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestBaseXP(t *testing.T) {
	tests := []struct {
		score int
		want  int
	}{
		{10, 5},
		{20, 5},
		{35, 8},
		{50, 10},
		{70, 13},
		{90, 16},
	}

	for _, tt := range tests {
		got := BaseXP(tt.score)
		if got != tt.want {
			t.Errorf("BaseXP(%d) = %d, want %d", tt.score, got, tt.want)
		}
	}
}

func TestChallengeBonus(t *testing.T) {
	// Words at or below the student's rank earn no bonus.
	if got := ChallengeBonus(5, 3); got != 0 {
		t.Errorf("ChallengeBonus(rank 5, level 3) = %d, want 0", got)
	}
	// One level above rank is a small gap on the 0-100 scale.
	if got := ChallengeBonus(5, 6); got != 2 {
		t.Errorf("ChallengeBonus(rank 5, level 6) = %d, want 2", got)
	}
	if got := ChallengeBonus(5, 10); got != 8 {
		t.Errorf("ChallengeBonus(rank 5, level 10) = %d, want 8", got)
	}
}

func TestComboXP(t *testing.T) {
	tests := []struct {
		combo int
		want  int
	}{
		{1, 0},
		{2, 0},
		{3, 3},
		{4, 5},
		{5, 8},
		{6, 10},
		{20, 10},
	}

	for _, tt := range tests {
		got := ComboXP(tt.combo)
		if got != tt.want {
			t.Errorf("ComboXP(%d) = %d, want %d", tt.combo, got, tt.want)
		}
	}
}

func TestCalculateComboXPTotal(t *testing.T) {
	// combo 5 → ComboXP(3) + ComboXP(4) + ComboXP(5) = 3 + 5 + 8
	if got := CalculateComboXPTotal(5); got != 16 {
		t.Errorf("CalculateComboXPTotal(5) = %d, want 16", got)
	}
	if got := CalculateComboXPTotal(2); got != 0 {
		t.Errorf("CalculateComboXPTotal(2) = %d, want 0", got)
	}
}

func TestTimeBonus(t *testing.T) {
	tests := []struct {
		avg  float64
		want int
	}{
		{3, 10},
		{8, 5},
		{15, 2},
		{30, 0},
		{0, 0},
	}

	for _, tt := range tests {
		got := TimeBonus(tt.avg)
		if got != tt.want {
			t.Errorf("TimeBonus(%v) = %d, want %d", tt.avg, got, tt.want)
		}
	}
}

func TestStreakMultiplier(t *testing.T) {
	tests := []struct {
		streak int
		want   float64
	}{
		{0, 1.0},
		{2, 1.0},
		{3, 1.15},
		{7, 1.25},
		{14, 1.5},
		{30, 2.0},
	}

	for _, tt := range tests {
		got := StreakMultiplier(tt.streak)
		if got != tt.want {
			t.Errorf("StreakMultiplier(%d) = %v, want %v", tt.streak, got, tt.want)
		}
	}
}

func TestSessionCompletionXP(t *testing.T) {
	if got := SessionCompletionXP(10, 10); got != 25 {
		t.Errorf("perfect session = %d, want 25", got)
	}
	if got := SessionCompletionXP(8, 10); got != 10 {
		t.Errorf("80%% session = %d, want 10", got)
	}
	if got := SessionCompletionXP(5, 10); got != 0 {
		t.Errorf("50%% session = %d, want 0", got)
	}
	if got := SessionCompletionXP(0, 0); got != 0 {
		t.Errorf("empty session = %d, want 0", got)
	}
}

func TestApplyStreakMultiplier(t *testing.T) {
	if got := ApplyStreakMultiplier(10, 1.15); got != 12 {
		t.Errorf("ApplyStreakMultiplier(10, 1.15) = %d, want 12", got)
	}
	if got := ApplyStreakMultiplier(10, 1.0); got != 10 {
		t.Errorf("ApplyStreakMultiplier(10, 1.0) = %d, want 10", got)
	}
}
