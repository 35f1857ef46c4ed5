package sessions

import (
	"testing"

	"github.com/vocab-prep/backend/internal/engine"
	"github.com/vocab-prep/backend/internal/models"
)

func strPtr(s string) *string { return &s }

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc123", "ABC123"},
		{"  Xyz9  ", "XYZ9"},
		{"ALREADY", "ALREADY"},
	}

	for _, tt := range tests {
		got := NormalizeCode(tt.in)
		if got != tt.want {
			t.Errorf("NormalizeCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateTestCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := generateTestCode()
		if len(code) != 6 {
			t.Fatalf("code %q has length %d, want 6", code, len(code))
		}
		for _, c := range code {
			switch c {
			case '0', 'O', '1', 'I', 'L':
				t.Errorf("code %q contains look-alike character %q", code, c)
			}
		}
		seen[code] = true
	}
	if len(seen) < 90 {
		t.Errorf("only %d distinct codes out of 100", len(seen))
	}
}

func TestCorrectAnswerFor(t *testing.T) {
	w := models.VocabWord{
		English: "happy",
		Korean:  "행복한",
		Antonym: strPtr("sad"),
	}

	tests := []struct {
		questionType string
		want         string
	}{
		{engine.MeaningChoice, "행복한"},
		{engine.ListeningMeaning, "행복한"},
		{engine.TypingMeaning, "행복한"},
		{engine.WordChoice, "happy"},
		{engine.TypingWord, "happy"},
		{engine.ListeningTyping, "happy"},
		{engine.SentenceBlank, "happy"},
		{engine.SentenceTyping, "happy"},
		{engine.AntonymChoice, "sad"},
		{engine.AntonymTyping, "sad"},
	}

	for _, tt := range tests {
		got := correctAnswerFor(w, tt.questionType)
		if got != tt.want {
			t.Errorf("correctAnswerFor(%s) = %q, want %q", tt.questionType, got, tt.want)
		}
	}
}

func TestEngineFor(t *testing.T) {
	svc := NewService(nil, engine.NewRegistry())

	full := models.VocabWord{
		ID:       1,
		English:  "happy",
		Korean:   "행복한",
		Antonym:  strPtr("sad"),
		Examples: []string{"She was happy to see her friends."},
		Level:    3,
	}

	// Stage archetypes win when the word supports them.
	if got := svc.engineFor(full, 1, models.ModeStageTest); got != engine.MeaningChoice {
		t.Errorf("stage 1 engine = %s, want %s", got, engine.MeaningChoice)
	}
	if got := svc.engineFor(full, 4, models.ModeLevelUp); got != engine.SentenceBlank {
		t.Errorf("stage 4 engine = %s, want %s", got, engine.SentenceBlank)
	}

	// A word without examples falls back when its stage archetype needs one.
	noExample := full
	noExample.Examples = nil
	if got := svc.engineFor(noExample, 4, models.ModeLevelUp); got == engine.SentenceBlank || got == "" {
		t.Errorf("stage 4 engine without examples = %q, want a non-sentence fallback", got)
	}

	// Listening tests only serve listening engines.
	for stage := 1; stage <= 5; stage++ {
		got := svc.engineFor(full, stage, models.ModeListening)
		switch got {
		case engine.ListeningMeaning, engine.ListeningWord, engine.ListeningSentence, engine.ListeningTyping:
		default:
			t.Errorf("listening stage %d engine = %q, want a listening variant", stage, got)
		}
	}

	// Placement prefers meaning choice.
	if got := svc.engineFor(full, 1, models.ModePlacement); got != engine.MeaningChoice {
		t.Errorf("placement engine = %s, want %s", got, engine.MeaningChoice)
	}

	// A word with no compatible engines yields nothing.
	empty := models.VocabWord{ID: 2}
	if got := svc.engineFor(empty, 1, models.ModeStageTest); got != "" {
		t.Errorf("engine for empty word = %q, want \"\"", got)
	}
}

func TestTypingEnginesMatchRegistry(t *testing.T) {
	r := engine.NewRegistry()
	pool := engine.BuildPool([]models.VocabWord{
		{ID: 1, English: "happy", Korean: "행복한", Antonym: strPtr("sad"),
			Examples: []string{"She was happy to see her friends."}},
		{ID: 2, English: "angry", Korean: "화난"},
		{ID: 3, English: "tired", Korean: "피곤한"},
		{ID: 4, English: "brave", Korean: "용감한"},
	})
	w := models.VocabWord{ID: 1, English: "happy", Korean: "행복한", Antonym: strPtr("sad"),
		Examples: []string{"She was happy to see her friends."}}

	for _, name := range r.Names() {
		spec := r.Generate(name, w, pool, engine.DefaultChoiceCount)
		if spec.TypingMode() != typingEngines[name] {
			t.Errorf("%s: TypingMode() = %v but typingEngines[%s] = %v",
				name, spec.TypingMode(), name, typingEngines[name])
		}
	}
}
