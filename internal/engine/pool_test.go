package engine

import (
	"testing"

	"github.com/vocab-prep/backend/internal/models"
)

func TestBuildPoolDedupes(t *testing.T) {
	words := []models.VocabWord{
		{ID: 1, English: "happy", Korean: "행복한"},
		{ID: 2, English: "glad", Korean: "행복한"},
		{ID: 3, English: "happy", Korean: "기쁜"},
		{ID: 4, English: "angry", Korean: "화난"},
	}

	pool := BuildPool(words)

	wantWords := []string{"happy", "glad", "angry"}
	if len(pool.Words) != len(wantWords) {
		t.Fatalf("len(Words) = %d, want %d: %v", len(pool.Words), len(wantWords), pool.Words)
	}
	for i, w := range wantWords {
		if pool.Words[i] != w {
			t.Errorf("Words[%d] = %q, want %q (first-seen order)", i, pool.Words[i], w)
		}
	}

	wantMeanings := []string{"행복한", "기쁜", "화난"}
	if len(pool.Meanings) != len(wantMeanings) {
		t.Fatalf("len(Meanings) = %d, want %d: %v", len(pool.Meanings), len(wantMeanings), pool.Meanings)
	}
	for i, m := range wantMeanings {
		if pool.Meanings[i] != m {
			t.Errorf("Meanings[%d] = %q, want %q", i, pool.Meanings[i], m)
		}
	}

	if len(pool.Items) != len(words) {
		t.Errorf("len(Items) = %d, want %d", len(pool.Items), len(words))
	}
}

func TestBuildPoolEmpty(t *testing.T) {
	pool := BuildPool(nil)
	if len(pool.Words) != 0 || len(pool.Meanings) != 0 || len(pool.Items) != 0 {
		t.Errorf("BuildPool(nil) = %+v, want empty pool", pool)
	}
}
