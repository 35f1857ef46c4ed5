package engine

import "github.com/vocab-prep/backend/internal/models"

// DistractorPool is the per-batch set of candidate wrong answers shared
// by every generator. It is built once per batch and never mutated, so
// it is safe to hand to concurrent generators.
type DistractorPool struct {
	Meanings []string // unique Korean meanings
	Words    []string // unique English forms
	Items    []models.VocabWord
}

// BuildPool collects the unique Korean meanings and English forms of a
// word batch, preserving first-seen order.
func BuildPool(items []models.VocabWord) *DistractorPool {
	pool := &DistractorPool{Items: items}

	seenMeaning := make(map[string]bool, len(items))
	seenWord := make(map[string]bool, len(items))
	for _, item := range items {
		if item.Korean != "" && !seenMeaning[item.Korean] {
			seenMeaning[item.Korean] = true
			pool.Meanings = append(pool.Meanings, item.Korean)
		}
		if item.English != "" && !seenWord[item.English] {
			seenWord[item.English] = true
			pool.Words = append(pool.Words, item.English)
		}
	}
	return pool
}
