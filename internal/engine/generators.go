package engine

import "github.com/vocab-prep/backend/internal/models"

// Canonical engine names. Stable internal identifiers; legacy API names
// map onto these in names.go.
const (
	MeaningChoice     = "meaning_choice"     // English word → choose Korean meaning
	WordChoice        = "word_choice"        // Korean meaning → choose English word
	EmojiChoice       = "emoji_choice"       // emoji → choose English word
	SentenceBlank     = "sentence_blank"     // blanked example → choose English word
	ListeningMeaning  = "listening_meaning"  // hear word → choose Korean meaning
	ListeningWord     = "listening_word"     // hear word → choose written form
	ListeningSentence = "listening_sentence" // hear example → choose English word
	ListeningTyping   = "listening_typing"   // hear word → type it
	TypingWord        = "typing_word"        // Korean meaning → type English word
	TypingMeaning     = "typing_meaning"     // English word → type Korean meaning
	AntonymChoice     = "antonym_choice"     // English word → choose its antonym
	AntonymTyping     = "antonym_typing"     // English word → type its antonym
	SentenceTyping    = "sentence_typing"    // blanked example → type the word
)

// ── Choice engines ──────────────────────────────────────

type meaningChoiceEngine struct{}

func (meaningChoiceEngine) CanGenerate(w models.VocabWord) bool {
	return w.English != "" && w.Korean != ""
}

func (meaningChoiceEngine) Generate(w models.VocabWord, pool *DistractorPool, choiceCount int) QuestionSpec {
	return QuestionSpec{
		Engine:        MeaningChoice,
		WordID:        w.ID,
		Prompt:        w.English,
		ContextMode:   ContextWord,
		CorrectAnswer: w.Korean,
		Choices:       buildChoices(w.Korean, pool.Meanings, choiceCount),
	}
}

type wordChoiceEngine struct{}

func (wordChoiceEngine) CanGenerate(w models.VocabWord) bool {
	return w.English != "" && w.Korean != ""
}

func (wordChoiceEngine) Generate(w models.VocabWord, pool *DistractorPool, choiceCount int) QuestionSpec {
	return QuestionSpec{
		Engine:        WordChoice,
		WordID:        w.ID,
		Prompt:        w.Korean,
		ContextMode:   ContextWord,
		CorrectAnswer: w.English,
		Choices:       buildChoices(w.English, pool.Words, choiceCount),
	}
}

type emojiChoiceEngine struct{}

func (emojiChoiceEngine) CanGenerate(w models.VocabWord) bool {
	return emojiFor(w.English) != ""
}

func (emojiChoiceEngine) Generate(w models.VocabWord, pool *DistractorPool, choiceCount int) QuestionSpec {
	emoji := emojiFor(w.English)
	return QuestionSpec{
		Engine:        EmojiChoice,
		WordID:        w.ID,
		Prompt:        emoji,
		ContextMode:   ContextWord,
		CorrectAnswer: w.English,
		Choices:       buildChoices(w.English, pool.Words, choiceCount),
		Emoji:         emoji,
	}
}

type sentenceBlankEngine struct{}

func (sentenceBlankEngine) CanGenerate(w models.VocabWord) bool {
	return exampleWithWord(w) != ""
}

func (sentenceBlankEngine) Generate(w models.VocabWord, pool *DistractorPool, choiceCount int) QuestionSpec {
	blanked := blankOut(exampleWithWord(w), w.English)
	return QuestionSpec{
		Engine:        SentenceBlank,
		WordID:        w.ID,
		Prompt:        blanked,
		ContextMode:   ContextSentence,
		CorrectAnswer: w.English,
		Choices:       buildChoices(w.English, pool.Words, choiceCount),
		SentenceBlank: blanked,
	}
}

// ── Listening engines ───────────────────────────────────
// ListenText carries the text the TTS collaborator speaks; audio
// synthesis itself lives outside the core.

type listeningMeaningEngine struct{}

func (listeningMeaningEngine) CanGenerate(w models.VocabWord) bool {
	return w.English != "" && w.Korean != ""
}

func (listeningMeaningEngine) Generate(w models.VocabWord, pool *DistractorPool, choiceCount int) QuestionSpec {
	return QuestionSpec{
		Engine:        ListeningMeaning,
		WordID:        w.ID,
		ContextMode:   ContextWord,
		CorrectAnswer: w.Korean,
		Choices:       buildChoices(w.Korean, pool.Meanings, choiceCount),
		ListenText:    w.English,
	}
}

type listeningWordEngine struct{}

func (listeningWordEngine) CanGenerate(w models.VocabWord) bool {
	return w.English != ""
}

func (listeningWordEngine) Generate(w models.VocabWord, pool *DistractorPool, choiceCount int) QuestionSpec {
	return QuestionSpec{
		Engine:        ListeningWord,
		WordID:        w.ID,
		ContextMode:   ContextWord,
		CorrectAnswer: w.English,
		Choices:       buildChoices(w.English, pool.Words, choiceCount),
		ListenText:    w.English,
	}
}

type listeningSentenceEngine struct{}

func (listeningSentenceEngine) CanGenerate(w models.VocabWord) bool {
	return exampleWithWord(w) != ""
}

func (listeningSentenceEngine) Generate(w models.VocabWord, pool *DistractorPool, choiceCount int) QuestionSpec {
	return QuestionSpec{
		Engine:        ListeningSentence,
		WordID:        w.ID,
		ContextMode:   ContextSentence,
		CorrectAnswer: w.English,
		Choices:       buildChoices(w.English, pool.Words, choiceCount),
		ListenText:    exampleWithWord(w),
	}
}

type listeningTypingEngine struct{}

func (listeningTypingEngine) CanGenerate(w models.VocabWord) bool {
	return w.English != ""
}

func (listeningTypingEngine) Generate(w models.VocabWord, pool *DistractorPool, choiceCount int) QuestionSpec {
	return QuestionSpec{
		Engine:        ListeningTyping,
		WordID:        w.ID,
		ContextMode:   ContextWord,
		CorrectAnswer: w.English,
		TypingHint:    TypingHint(w.English),
		ListenText:    w.English,
	}
}

// ── Typing engines ──────────────────────────────────────

type typingWordEngine struct{}

func (typingWordEngine) CanGenerate(w models.VocabWord) bool {
	return w.English != "" && w.Korean != ""
}

func (typingWordEngine) Generate(w models.VocabWord, pool *DistractorPool, choiceCount int) QuestionSpec {
	return QuestionSpec{
		Engine:        TypingWord,
		WordID:        w.ID,
		Prompt:        w.Korean,
		ContextMode:   ContextWord,
		CorrectAnswer: w.English,
		TypingHint:    TypingHint(w.English),
	}
}

type typingMeaningEngine struct{}

func (typingMeaningEngine) CanGenerate(w models.VocabWord) bool {
	return w.English != "" && w.Korean != ""
}

func (typingMeaningEngine) Generate(w models.VocabWord, pool *DistractorPool, choiceCount int) QuestionSpec {
	return QuestionSpec{
		Engine:        TypingMeaning,
		WordID:        w.ID,
		Prompt:        w.English,
		ContextMode:   ContextWord,
		CorrectAnswer: w.Korean,
		TypingHint:    TypingHint(w.Korean),
	}
}

// ── Antonym engines ─────────────────────────────────────

type antonymChoiceEngine struct{}

func (antonymChoiceEngine) CanGenerate(w models.VocabWord) bool {
	return w.Antonym != nil && *w.Antonym != ""
}

func (antonymChoiceEngine) Generate(w models.VocabWord, pool *DistractorPool, choiceCount int) QuestionSpec {
	antonym := *w.Antonym
	return QuestionSpec{
		Engine:        AntonymChoice,
		WordID:        w.ID,
		Prompt:        w.English,
		ContextMode:   ContextWord,
		CorrectAnswer: antonym,
		// The word itself is never a plausible antonym choice.
		Choices: buildChoices(antonym, pool.Words, choiceCount, w.English),
	}
}

type antonymTypingEngine struct{}

func (antonymTypingEngine) CanGenerate(w models.VocabWord) bool {
	return w.Antonym != nil && *w.Antonym != ""
}

func (antonymTypingEngine) Generate(w models.VocabWord, pool *DistractorPool, choiceCount int) QuestionSpec {
	antonym := *w.Antonym
	return QuestionSpec{
		Engine:        AntonymTyping,
		WordID:        w.ID,
		Prompt:        w.English,
		ContextMode:   ContextWord,
		CorrectAnswer: antonym,
		TypingHint:    TypingHint(antonym),
	}
}

// ── Sentence + typing ───────────────────────────────────

type sentenceTypingEngine struct{}

func (sentenceTypingEngine) CanGenerate(w models.VocabWord) bool {
	return exampleWithWord(w) != ""
}

func (sentenceTypingEngine) Generate(w models.VocabWord, pool *DistractorPool, choiceCount int) QuestionSpec {
	blanked := blankOut(exampleWithWord(w), w.English)
	return QuestionSpec{
		Engine:        SentenceTyping,
		WordID:        w.ID,
		Prompt:        blanked,
		ContextMode:   ContextSentence,
		CorrectAnswer: w.English,
		SentenceBlank: blanked,
		TypingHint:    TypingHint(w.English),
	}
}
