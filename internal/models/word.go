package models

import "time"

// Word difficulty levels run 1–15; placement ranks run 1–10.
const (
	WordLevelMin = 1
	WordLevelMax = 15
)

type VocabWord struct {
	ID       int64    `json:"id"`
	English  string   `json:"english"`
	Korean   string   `json:"korean"`
	Antonym  *string  `json:"antonym,omitempty"`
	Examples []string `json:"examples"`
	Level    int      `json:"level"`
	Lesson   string   `json:"lesson"`

	// CompatibleEngines caches the canonical engine names this word can
	// serve. Recomputed whenever english/korean/antonym/examples change.
	CompatibleEngines []string  `json:"compatible_engines"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ── Request Types ─────────────────────────────────────

type CreateWordRequest struct {
	English  string   `json:"english"`
	Korean   string   `json:"korean"`
	Antonym  *string  `json:"antonym,omitempty"`
	Examples []string `json:"examples,omitempty"`
	Level    int      `json:"level"`
	Lesson   string   `json:"lesson"`
}

type UpdateWordRequest struct {
	English  *string   `json:"english,omitempty"`
	Korean   *string   `json:"korean,omitempty"`
	Antonym  *string   `json:"antonym,omitempty"`
	Examples *[]string `json:"examples,omitempty"`
	Level    *int      `json:"level,omitempty"`
	Lesson   *string   `json:"lesson,omitempty"`
}

// ── Import Types ──────────────────────────────────────

type WordImportEnvelope struct {
	Version int                 `json:"version"`
	Words   []CreateWordRequest `json:"words"`
}

type WordImportResult struct {
	TotalInPayload int `json:"total_in_payload"`
	Imported       int `json:"imported"`
	Skipped        int `json:"skipped"`
}

type WordListResponse struct {
	Words    []VocabWord `json:"words"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}
