package engine

import "fmt"

// LegacyVocab selects which historical naming scheme to render engine
// names in. The placement test and the mastery system each shipped
// their own question-type strings before the registry unified them, and
// both are still spoken by deployed clients.
type LegacyVocab string

const (
	LegacyPlacement LegacyVocab = "placement"
	LegacyMastery   LegacyVocab = "mastery"
)

// placementNames maps the placement test's historical names to
// canonical engine names.
var placementNames = map[string]string{
	"word_to_meaning": MeaningChoice,
	"meaning_to_word": WordChoice,
	"emoji_quiz":      EmojiChoice,
	"fill_in_blank":   SentenceBlank,
	"listen_meaning":  ListeningMeaning,
	"listen_word":     ListeningWord,
	"listen_sentence": ListeningSentence,
	"listen_spell":    ListeningTyping,
	"spell_word":      TypingWord,
	"write_meaning":   TypingMeaning,
	"opposite_choice": AntonymChoice,
	"opposite_spell":  AntonymTyping,
	"blank_spell":     SentenceTyping,
}

// masteryNames maps the mastery system's historical names to canonical
// engine names.
var masteryNames = map[string]string{
	"mc_meaning":      MeaningChoice,
	"mc_word":         WordChoice,
	"mc_emoji":        EmojiChoice,
	"mc_sentence":     SentenceBlank,
	"audio_meaning":   ListeningMeaning,
	"audio_word":      ListeningWord,
	"audio_sentence":  ListeningSentence,
	"audio_typing":    ListeningTyping,
	"input_word":      TypingWord,
	"input_meaning":   TypingMeaning,
	"mc_antonym":      AntonymChoice,
	"input_antonym":   AntonymTyping,
	"sentence_typing": SentenceTyping,
}

// Inverse tables, built once at package init. The legacy tables are
// one-to-one, so the inversion is unambiguous.
var (
	placementByCanonical = invert(placementNames)
	masteryByCanonical   = invert(masteryNames)
)

func invert(m map[string]string) map[string]string {
	inv := make(map[string]string, len(m))
	for legacy, canonical := range m {
		inv[canonical] = legacy
	}
	return inv
}

// ResolveName maps a canonical or legacy engine name to its canonical
// form. Canonical names resolve to themselves.
func ResolveName(name string) (string, bool) {
	if _, ok := placementByCanonical[name]; ok {
		return name, true
	}
	if canonical, ok := placementNames[name]; ok {
		return canonical, true
	}
	if canonical, ok := masteryNames[name]; ok {
		return canonical, true
	}
	return "", false
}

// LegacyName renders a canonical engine name in the given legacy
// vocabulary for API compatibility.
func LegacyName(canonical string, vocab LegacyVocab) (string, bool) {
	switch vocab {
	case LegacyPlacement:
		name, ok := placementByCanonical[canonical]
		return name, ok
	case LegacyMastery:
		name, ok := masteryByCanonical[canonical]
		return name, ok
	}
	return "", false
}

// validateNameTables checks at startup that every canonical engine name
// has a mapping in both legacy vocabularies and that the mapping
// round-trips. A gap here is a programming error.
func validateNameTables(canonical []string) {
	for _, name := range canonical {
		for _, vocab := range []LegacyVocab{LegacyPlacement, LegacyMastery} {
			legacy, ok := LegacyName(name, vocab)
			if !ok {
				panic(fmt.Sprintf("engine: canonical name %q has no %s legacy mapping", name, vocab))
			}
			resolved, ok := ResolveName(legacy)
			if !ok || resolved != name {
				panic(fmt.Sprintf("engine: legacy name %q does not resolve back to %q", legacy, name))
			}
		}
	}
}
