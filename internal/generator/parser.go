package generator

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Enrichment is the model's contribution to one word.
type Enrichment struct {
	Examples    []string `json:"examples"`
	Antonym     string   `json:"antonym"`
	KoreanCheck bool     `json:"korean_check"`
}

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// ParseEnrichment parses and validates an enrichment response. Example
// sentences that do not actually contain the word are dropped; an
// otherwise-empty result is an error.
func ParseEnrichment(responseBody, english string) (*Enrichment, error) {
	cleaned := stripCodeFences(responseBody)

	var enrichment Enrichment
	if err := json.Unmarshal([]byte(cleaned), &enrichment); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateEnrichment(&enrichment, english); err != nil {
		return nil, err
	}

	return &enrichment, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

const maxExamples = 3

func validateEnrichment(e *Enrichment, english string) error {
	var errs []string

	target := strings.ToLower(english)
	var kept []string
	for _, ex := range e.Examples {
		ex = strings.TrimSpace(ex)
		if ex == "" {
			continue
		}
		if !strings.Contains(strings.ToLower(ex), target) {
			errs = append(errs, fmt.Sprintf("example %q does not contain %q", ex, english))
			continue
		}
		kept = append(kept, ex)
		if len(kept) == maxExamples {
			break
		}
	}
	e.Examples = kept

	e.Antonym = strings.TrimSpace(e.Antonym)
	if strings.Contains(e.Antonym, " ") {
		errs = append(errs, fmt.Sprintf("antonym %q is not a single word", e.Antonym))
		e.Antonym = ""
	}
	if strings.EqualFold(e.Antonym, english) {
		errs = append(errs, "antonym equals the word itself")
		e.Antonym = ""
	}

	if len(e.Examples) == 0 && e.Antonym == "" {
		if len(errs) == 0 {
			errs = append(errs, "response contains no usable content")
		}
		return &ValidationError{Errors: errs}
	}

	return nil
}
