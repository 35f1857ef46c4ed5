package engine

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/vocab-prep/backend/internal/models"
)

// DefaultChoiceCount is the standard number of answer choices per
// question (correct answer plus three distractors).
const DefaultChoiceCount = 4

// Context modes for QuestionSpec.
const (
	ContextWord     = "word"
	ContextSentence = "sentence"
)

// QuestionSpec is a fully formed question. Value object: built once per
// question, never mutated. Choices == nil means typing mode.
type QuestionSpec struct {
	Engine        string   `json:"question_type"`
	WordID        int64    `json:"word_id"`
	Prompt        string   `json:"prompt"`
	ContextMode   string   `json:"mode"`
	CorrectAnswer string   `json:"correct_answer"`
	Choices       []string `json:"choices"`
	SentenceBlank string   `json:"sentence_blank,omitempty"`
	Emoji         string   `json:"emoji,omitempty"`
	TypingHint    string   `json:"typing_hint,omitempty"`
	ListenText    string   `json:"listen_text,omitempty"`
}

// TypingMode reports whether the question expects a typed answer.
func (q *QuestionSpec) TypingMode() bool {
	return q.Choices == nil
}

// QuestionEngine converts one vocabulary item plus the distractor pool
// into a question. Engines are stateless; CanGenerate encodes the
// data-availability preconditions and must be checked before Generate.
type QuestionEngine interface {
	CanGenerate(w models.VocabWord) bool
	Generate(w models.VocabWord, pool *DistractorPool, choiceCount int) QuestionSpec
}

// Registry holds the fixed mapping of canonical names to engines. Built
// once at startup; safe for concurrent use without locking.
type Registry struct {
	engines map[string]QuestionEngine
}

func NewRegistry() *Registry {
	r := &Registry{engines: map[string]QuestionEngine{
		MeaningChoice:     meaningChoiceEngine{},
		WordChoice:        wordChoiceEngine{},
		EmojiChoice:       emojiChoiceEngine{},
		SentenceBlank:     sentenceBlankEngine{},
		ListeningMeaning:  listeningMeaningEngine{},
		ListeningWord:     listeningWordEngine{},
		ListeningSentence: listeningSentenceEngine{},
		ListeningTyping:   listeningTypingEngine{},
		TypingWord:        typingWordEngine{},
		TypingMeaning:     typingMeaningEngine{},
		AntonymChoice:     antonymChoiceEngine{},
		AntonymTyping:     antonymTypingEngine{},
		SentenceTyping:    sentenceTypingEngine{},
	}}

	// A canonical engine without a legacy mapping would silently break
	// old clients, so gaps are a startup failure, not a runtime one.
	validateNameTables(r.Names())
	return r
}

// Names returns the canonical engine names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.engines))
	for name := range r.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get resolves a canonical or legacy name to its engine. Requesting an
// unknown name is a programming error.
func (r *Registry) Get(name string) QuestionEngine {
	canonical, ok := ResolveName(name)
	if !ok {
		panic(fmt.Sprintf("engine: unknown question engine %q", name))
	}
	return r.engines[canonical]
}

// Generate builds a question with the named engine. Calling it on an
// item the engine cannot serve is a programming error: callers gate on
// CanGenerate (or ComputeCompatibleEngines) first.
func (r *Registry) Generate(name string, w models.VocabWord, pool *DistractorPool, choiceCount int) QuestionSpec {
	canonical, ok := ResolveName(name)
	if !ok {
		panic(fmt.Sprintf("engine: unknown question engine %q", name))
	}
	e := r.engines[canonical]
	if !e.CanGenerate(w) {
		panic(fmt.Sprintf("engine: %s cannot generate for word %d (%s)", canonical, w.ID, w.English))
	}
	if choiceCount <= 0 {
		choiceCount = DefaultChoiceCount
	}
	return e.Generate(w, pool, choiceCount)
}

// ComputeCompatibleEngines returns every canonical name whose
// CanGenerate holds for the word. The result is cached on the word row
// and must be recomputed whenever antonym, examples, or translations
// change.
func (r *Registry) ComputeCompatibleEngines(w models.VocabWord) []string {
	var names []string
	for _, name := range r.Names() {
		if r.engines[name].CanGenerate(w) {
			names = append(names, name)
		}
	}
	return names
}

// ── Shared generation helpers ───────────────────────────

// buildChoices assembles correct + up to (choiceCount-1) distractors and
// shuffles the result so the correct position is unpredictable. A pool
// smaller than requested degrades to fewer distractors rather than
// failing.
func buildChoices(correct string, candidates []string, choiceCount int, exclude ...string) []string {
	excluded := make(map[string]bool, len(exclude)+1)
	excluded[correct] = true
	for _, e := range exclude {
		excluded[e] = true
	}

	distractors := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c == "" || excluded[c] {
			continue
		}
		excluded[c] = true // dedupe
		distractors = append(distractors, c)
	}

	rand.Shuffle(len(distractors), func(i, j int) {
		distractors[i], distractors[j] = distractors[j], distractors[i]
	})
	if len(distractors) > choiceCount-1 {
		distractors = distractors[:choiceCount-1]
	}

	choices := append(distractors, correct)
	rand.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
	return choices
}

// TypingHint keeps the first character of each space-delimited word and
// masks the rest with underscores: "for the first time" → "f__ t__ f____ t___".
func TypingHint(answer string) string {
	words := strings.Fields(answer)
	for i, w := range words {
		runes := []rune(w)
		words[i] = string(runes[0]) + strings.Repeat("_", len(runes)-1)
	}
	return strings.Join(words, " ")
}

// exampleWithWord returns the first example sentence that actually
// contains the word's English form, or "" if none does.
func exampleWithWord(w models.VocabWord) string {
	for _, ex := range w.Examples {
		if indexFold(ex, w.English) >= 0 {
			return ex
		}
	}
	return ""
}

// blankOut replaces the first case-insensitive occurrence of word in
// the sentence with a blank.
func blankOut(sentence, word string) string {
	i := indexFold(sentence, word)
	if i < 0 {
		return sentence
	}
	return sentence[:i] + "____" + sentence[i+len(word):]
}

func indexFold(s, substr string) int {
	return strings.Index(strings.ToLower(s), strings.ToLower(substr))
}
