package placement

import "testing"

func TestWordLevelToRank(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 1},
		{5, 5},
		{9, 9},
		{10, 10},
		{12, 10},
		{15, 10},
		{0, 1},
	}

	for _, tt := range tests {
		got := WordLevelToRank(tt.level)
		if got != tt.want {
			t.Errorf("WordLevelToRank(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestFormatRankLabel(t *testing.T) {
	tests := []struct {
		name     string
		rank     int
		sublevel int
		want     string
	}{
		{"rank 1 sublevel 1", 1, 1, "Seedling 1-1"},
		{"rank 2 sublevel 2", 2, 2, "Sprout 2-2"},
		{"max sublevel", 3, 25, "Sapling 3-MAX"},
		{"top rank max", 10, 25, "Grandmaster 10-MAX"},
		{"top rank mid", 10, 12, "Grandmaster 10-12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatRankLabel(tt.rank, tt.sublevel)
			if got != tt.want {
				t.Errorf("FormatRankLabel(%d, %d) = %q, want %q", tt.rank, tt.sublevel, got, tt.want)
			}
		})
	}
}

func TestDetermineLevelEmpty(t *testing.T) {
	got := DetermineLevel(nil)
	if got.Rank != 1 || got.Sublevel != 1 {
		t.Errorf("DetermineLevel(nil) = %+v, want rank 1 sublevel 1", got)
	}
}

func TestDetermineLevelAllCorrect(t *testing.T) {
	var answers []Answer
	for level := 1; level <= 5; level++ {
		answers = append(answers,
			Answer{WordLevel: level, LessonOrdinal: 1, Correct: true},
			Answer{WordLevel: level, LessonOrdinal: 30, Correct: true},
		)
	}

	got := DetermineLevel(answers)
	if got.Rank != 5 {
		t.Errorf("rank = %d, want 5", got.Rank)
	}
	if got.Sublevel != MaxSublevel {
		t.Errorf("sublevel = %d, want %d", got.Sublevel, MaxSublevel)
	}
}

func TestDetermineLevelAllWrong(t *testing.T) {
	var answers []Answer
	for level := 1; level <= 5; level++ {
		answers = append(answers,
			Answer{WordLevel: level, LessonOrdinal: 1, Correct: false},
			Answer{WordLevel: level, LessonOrdinal: 30, Correct: false},
		)
	}

	got := DetermineLevel(answers)
	if got.Rank != 1 || got.Sublevel != 1 {
		t.Errorf("DetermineLevel(all wrong) = %+v, want rank 1 sublevel 1", got)
	}
}

func TestDetermineLevelStopsAfterTwoFailures(t *testing.T) {
	// Ranks 1-3 pass, ranks 4 and 5 fail, rank 6 would pass but must
	// never be reached.
	var answers []Answer
	for level := 1; level <= 3; level++ {
		answers = append(answers,
			Answer{WordLevel: level, LessonOrdinal: 1, Correct: true},
			Answer{WordLevel: level, LessonOrdinal: 30, Correct: false},
		)
	}
	for level := 4; level <= 5; level++ {
		answers = append(answers,
			Answer{WordLevel: level, LessonOrdinal: 1, Correct: false},
			Answer{WordLevel: level, LessonOrdinal: 30, Correct: false},
		)
	}
	answers = append(answers,
		Answer{WordLevel: 6, LessonOrdinal: 1, Correct: true},
		Answer{WordLevel: 6, LessonOrdinal: 30, Correct: true},
	)

	got := DetermineLevel(answers)
	if got.Rank != 3 {
		t.Errorf("rank = %d, want 3 (evaluation must stop after two consecutive failures)", got.Rank)
	}
	// Rank 3 passed on its early probe only.
	if got.Sublevel != 1 {
		t.Errorf("sublevel = %d, want 1", got.Sublevel)
	}
}

func TestDetermineLevelSingleFailureRecovers(t *testing.T) {
	// Rank 2 fails but rank 3 passes, so the walk continues past the
	// single failure.
	answers := []Answer{
		{WordLevel: 1, LessonOrdinal: 1, Correct: true},
		{WordLevel: 1, LessonOrdinal: 30, Correct: true},
		{WordLevel: 2, LessonOrdinal: 1, Correct: false},
		{WordLevel: 2, LessonOrdinal: 30, Correct: false},
		{WordLevel: 3, LessonOrdinal: 1, Correct: false},
		{WordLevel: 3, LessonOrdinal: 30, Correct: true},
	}

	got := DetermineLevel(answers)
	if got.Rank != 3 {
		t.Errorf("rank = %d, want 3", got.Rank)
	}
	// Rank 3 passed on its late probe only.
	if got.Sublevel != 2 {
		t.Errorf("sublevel = %d, want 2", got.Sublevel)
	}
}

func TestDetermineLevelSublevelFromProbes(t *testing.T) {
	tests := []struct {
		name         string
		earlyCorrect bool
		lateCorrect  bool
		want         int
	}{
		{"early only", true, false, 1},
		{"late only", false, true, 2},
		{"both", true, true, MaxSublevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers := []Answer{
				{WordLevel: 1, LessonOrdinal: 1, Correct: tt.earlyCorrect},
				{WordLevel: 1, LessonOrdinal: 30, Correct: tt.lateCorrect},
			}
			got := DetermineLevel(answers)
			if got.Rank != 1 {
				t.Fatalf("rank = %d, want 1", got.Rank)
			}
			if got.Sublevel != tt.want {
				t.Errorf("sublevel = %d, want %d", got.Sublevel, tt.want)
			}
		})
	}
}

func TestDetermineLevelDeterministic(t *testing.T) {
	answers := []Answer{
		{WordLevel: 1, LessonOrdinal: 1, Correct: true},
		{WordLevel: 1, LessonOrdinal: 30, Correct: true},
		{WordLevel: 2, LessonOrdinal: 1, Correct: true},
		{WordLevel: 2, LessonOrdinal: 30, Correct: false},
	}

	first := DetermineLevel(answers)
	for i := 0; i < 10; i++ {
		if got := DetermineLevel(answers); got != first {
			t.Fatalf("run %d: DetermineLevel = %+v, want %+v", i, got, first)
		}
	}
}

func TestDetermineLevelEndToEnd(t *testing.T) {
	// Two words at rank 1 (both correct), two words at rank 2 (early
	// correct, late wrong).
	answers := []Answer{
		{WordLevel: 1, LessonOrdinal: 1, Correct: true},
		{WordLevel: 1, LessonOrdinal: 30, Correct: true},
		{WordLevel: 2, LessonOrdinal: 1, Correct: true},
		{WordLevel: 2, LessonOrdinal: 30, Correct: false},
	}

	got := DetermineLevel(answers)
	if got.Rank != 2 {
		t.Errorf("rank = %d, want 2", got.Rank)
	}
	if got.Sublevel != 1 {
		t.Errorf("sublevel = %d, want 1", got.Sublevel)
	}
	if label := got.Label(); label != "Sprout 2-1" {
		t.Errorf("label = %q, want %q", label, "Sprout 2-1")
	}
}

func TestLessonOrdinal(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"Lesson 12", 12},
		{"Lesson 3", 3},
		{"Unit #7", 7},
		{"Introduction", 0},
		{"", 0},
	}

	for _, tt := range tests {
		got := LessonOrdinal(tt.label)
		if got != tt.want {
			t.Errorf("LessonOrdinal(%q) = %d, want %d", tt.label, got, tt.want)
		}
	}
}
