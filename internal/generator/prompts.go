package generator

import (
	"fmt"
	"strings"

	"github.com/vocab-prep/backend/internal/models"
)

// EnrichmentSystemPrompt frames the model as a vocabulary content
// author for Korean middle-school English learners.
func EnrichmentSystemPrompt() string {
	return `You are a content author for an English vocabulary learning platform used by Korean students.

Given one English word with its Korean meaning, you produce:
1. Two or three natural example sentences that use the word exactly as given (same form, same spelling). Sentences must be simple enough for the word's difficulty level and must each contain the word exactly once.
2. A single-word antonym when a common, unambiguous one exists; otherwise an empty string. Never invent a strained antonym.
3. A check that the Korean gloss is a reasonable translation.

Respond with JSON only, no prose, in this shape:
{"examples": ["...", "..."], "antonym": "...", "korean_check": true}`
}

// BuildEnrichmentUserPrompt renders the word card the model enriches.
func BuildEnrichmentUserPrompt(word models.VocabWord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Word: %s\n", word.English)
	fmt.Fprintf(&b, "Korean meaning: %s\n", word.Korean)
	fmt.Fprintf(&b, "Difficulty level: %d of 15\n", word.Level)
	if word.Antonym != nil && *word.Antonym != "" {
		fmt.Fprintf(&b, "Known antonym: %s (do not suggest another)\n", *word.Antonym)
	}
	if len(word.Examples) > 0 {
		fmt.Fprintf(&b, "Existing examples (do not repeat these):\n")
		for _, ex := range word.Examples {
			fmt.Fprintf(&b, "- %s\n", ex)
		}
	}
	return b.String()
}

// wordFromPrompt pulls the target word back out of the user prompt, for
// the mock client.
func wordFromPrompt(userPrompt string) string {
	for _, line := range strings.Split(userPrompt, "\n") {
		if rest, ok := strings.CutPrefix(line, "Word: "); ok {
			return strings.TrimSpace(rest)
		}
	}
	return "example"
}
