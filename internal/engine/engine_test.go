package engine

import (
	"strings"
	"testing"

	"github.com/vocab-prep/backend/internal/models"
)

func strPtr(s string) *string { return &s }

func testWord() models.VocabWord {
	return models.VocabWord{
		ID:      1,
		English: "happy",
		Korean:  "행복한",
		Antonym: strPtr("sad"),
		Examples: []string{
			"She was happy to see her friends.",
		},
		Level:  3,
		Lesson: "Lesson 2",
	}
}

func testPool() *DistractorPool {
	words := []models.VocabWord{
		testWord(),
		{ID: 2, English: "angry", Korean: "화난", Level: 3, Lesson: "Lesson 2"},
		{ID: 3, English: "tired", Korean: "피곤한", Level: 3, Lesson: "Lesson 2"},
		{ID: 4, English: "brave", Korean: "용감한", Level: 3, Lesson: "Lesson 3"},
		{ID: 5, English: "calm", Korean: "차분한", Level: 3, Lesson: "Lesson 3"},
	}
	return BuildPool(words)
}

func TestRegistryNames(t *testing.T) {
	r := NewRegistry()
	names := r.Names()

	if len(names) != 13 {
		t.Fatalf("registry has %d engines, want 13: %v", len(names), names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("Names() not sorted: %q before %q", names[i-1], names[i])
		}
	}
}

func TestRegistryGetUnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Get with unknown engine name did not panic")
		}
	}()
	NewRegistry().Get("no_such_engine")
}

func TestGenerateIncompatiblePanics(t *testing.T) {
	w := testWord()
	w.Antonym = nil

	defer func() {
		if recover() == nil {
			t.Error("Generate on a word with no antonym did not panic")
		}
	}()
	NewRegistry().Generate(AntonymChoice, w, testPool(), DefaultChoiceCount)
}

func TestGenerateChoiceQuestions(t *testing.T) {
	r := NewRegistry()
	pool := testPool()
	w := testWord()

	choiceEngines := []string{
		MeaningChoice, WordChoice, EmojiChoice, SentenceBlank,
		ListeningMeaning, ListeningWord, ListeningSentence, AntonymChoice,
	}

	for _, name := range choiceEngines {
		t.Run(name, func(t *testing.T) {
			q := r.Generate(name, w, pool, DefaultChoiceCount)

			if q.Engine != name {
				t.Errorf("Engine = %q, want %q", q.Engine, name)
			}
			if q.WordID != w.ID {
				t.Errorf("WordID = %d, want %d", q.WordID, w.ID)
			}
			if q.TypingMode() {
				t.Error("choice question reports TypingMode")
			}
			if len(q.Choices) != DefaultChoiceCount {
				t.Errorf("len(Choices) = %d, want %d", len(q.Choices), DefaultChoiceCount)
			}

			found := 0
			for _, c := range q.Choices {
				if c == q.CorrectAnswer {
					found++
				}
			}
			if found != 1 {
				t.Errorf("correct answer appears %d times in choices %v, want exactly once", found, q.Choices)
			}

			seen := make(map[string]bool)
			for _, c := range q.Choices {
				if seen[c] {
					t.Errorf("duplicate choice %q in %v", c, q.Choices)
				}
				seen[c] = true
			}
		})
	}
}

func TestGenerateTypingQuestions(t *testing.T) {
	r := NewRegistry()
	pool := testPool()
	w := testWord()

	typingEngines := []string{
		ListeningTyping, TypingWord, TypingMeaning, AntonymTyping, SentenceTyping,
	}

	for _, name := range typingEngines {
		t.Run(name, func(t *testing.T) {
			q := r.Generate(name, w, pool, DefaultChoiceCount)

			if !q.TypingMode() {
				t.Errorf("Choices = %v, want nil for a typing question", q.Choices)
			}
			if q.CorrectAnswer == "" {
				t.Error("CorrectAnswer is empty")
			}
		})
	}
}

func TestGenerateShortfallDegrades(t *testing.T) {
	// Pool with only one distractor candidate besides the target.
	pool := BuildPool([]models.VocabWord{
		testWord(),
		{ID: 2, English: "angry", Korean: "화난", Level: 3, Lesson: "Lesson 2"},
	})

	q := NewRegistry().Generate(MeaningChoice, testWord(), pool, DefaultChoiceCount)

	if len(q.Choices) != 2 {
		t.Errorf("len(Choices) = %d, want 2 with a short pool", len(q.Choices))
	}
	found := false
	for _, c := range q.Choices {
		if c == q.CorrectAnswer {
			found = true
		}
	}
	if !found {
		t.Errorf("correct answer %q missing from choices %v", q.CorrectAnswer, q.Choices)
	}
}

func TestAntonymChoiceExcludesTargetWord(t *testing.T) {
	pool := BuildPool([]models.VocabWord{
		testWord(),
		{ID: 2, English: "angry", Korean: "화난"},
		{ID: 3, English: "tired", Korean: "피곤한"},
		{ID: 4, English: "brave", Korean: "용감한"},
		{ID: 5, English: "calm", Korean: "차분한"},
	})

	for i := 0; i < 20; i++ {
		q := NewRegistry().Generate(AntonymChoice, testWord(), pool, DefaultChoiceCount)
		for _, c := range q.Choices {
			if c == "happy" {
				t.Fatalf("choices %v contain the prompted word itself", q.Choices)
			}
		}
	}
}

func TestSentenceBlankHidesWord(t *testing.T) {
	q := NewRegistry().Generate(SentenceBlank, testWord(), testPool(), DefaultChoiceCount)

	if !strings.Contains(q.SentenceBlank, "____") {
		t.Errorf("SentenceBlank = %q, want a blank marker", q.SentenceBlank)
	}
	if strings.Contains(strings.ToLower(q.SentenceBlank), "happy") {
		t.Errorf("SentenceBlank = %q still contains the answer", q.SentenceBlank)
	}
}

func TestListeningEnginesSetListenText(t *testing.T) {
	r := NewRegistry()
	pool := testPool()
	w := testWord()

	for _, name := range []string{ListeningMeaning, ListeningWord, ListeningTyping, ListeningSentence} {
		q := r.Generate(name, w, pool, DefaultChoiceCount)
		if q.ListenText == "" {
			t.Errorf("%s: ListenText is empty", name)
		}
	}
}

func TestComputeCompatibleEngines(t *testing.T) {
	r := NewRegistry()

	full := testWord()
	got := r.ComputeCompatibleEngines(full)
	if len(got) != 13 {
		t.Errorf("full word compatible with %d engines, want 13: %v", len(got), got)
	}

	noAntonym := testWord()
	noAntonym.Antonym = nil
	for _, name := range r.ComputeCompatibleEngines(noAntonym) {
		if name == AntonymChoice || name == AntonymTyping {
			t.Errorf("word without antonym reported compatible with %s", name)
		}
	}

	noExample := testWord()
	noExample.Examples = nil
	for _, name := range r.ComputeCompatibleEngines(noExample) {
		if name == SentenceBlank || name == SentenceTyping || name == ListeningSentence {
			t.Errorf("word without examples reported compatible with %s", name)
		}
	}

	noEmoji := testWord()
	noEmoji.English = "perspicacious"
	for _, name := range r.ComputeCompatibleEngines(noEmoji) {
		if name == EmojiChoice {
			t.Error("word with no emoji mapping reported compatible with emoji_choice")
		}
	}
}

func TestTypingHint(t *testing.T) {
	tests := []struct {
		answer string
		want   string
	}{
		{"for the first time", "f__ t__ f____ t___"},
		{"happy", "h____"},
		{"a", "a"},
		{"", ""},
	}

	for _, tt := range tests {
		got := TypingHint(tt.answer)
		if got != tt.want {
			t.Errorf("TypingHint(%q) = %q, want %q", tt.answer, got, tt.want)
		}
	}
}

func TestBlankOut(t *testing.T) {
	tests := []struct {
		sentence string
		word     string
		want     string
	}{
		{"She was happy to see them.", "happy", "She was ____ to see them."},
		{"Happy days are here.", "happy", "____ days are here."},
		{"No match here.", "happy", "No match here."},
	}

	for _, tt := range tests {
		got := blankOut(tt.sentence, tt.word)
		if got != tt.want {
			t.Errorf("blankOut(%q, %q) = %q, want %q", tt.sentence, tt.word, got, tt.want)
		}
	}
}
