package generator

import (
	"errors"
	"testing"
)

func TestParseEnrichment(t *testing.T) {
	body := `{"examples":["She was happy to see them.","A happy song played."],"antonym":"sad","korean_check":true}`

	e, err := ParseEnrichment(body, "happy")
	if err != nil {
		t.Fatalf("ParseEnrichment returned error: %v", err)
	}
	if len(e.Examples) != 2 {
		t.Errorf("len(Examples) = %d, want 2", len(e.Examples))
	}
	if e.Antonym != "sad" {
		t.Errorf("Antonym = %q, want %q", e.Antonym, "sad")
	}
}

func TestParseEnrichmentStripsCodeFences(t *testing.T) {
	body := "```json\n{\"examples\":[\"She was happy to see them.\"],\"antonym\":\"sad\"}\n```"

	e, err := ParseEnrichment(body, "happy")
	if err != nil {
		t.Fatalf("ParseEnrichment returned error: %v", err)
	}
	if len(e.Examples) != 1 {
		t.Errorf("len(Examples) = %d, want 1", len(e.Examples))
	}
}

func TestParseEnrichmentDropsExamplesWithoutWord(t *testing.T) {
	body := `{"examples":["She was happy to see them.","A joyful song played."],"antonym":"sad"}`

	e, err := ParseEnrichment(body, "happy")
	if err != nil {
		t.Fatalf("ParseEnrichment returned error: %v", err)
	}
	if len(e.Examples) != 1 {
		t.Errorf("len(Examples) = %d, want 1 after dropping a bad example: %v", len(e.Examples), e.Examples)
	}
}

func TestParseEnrichmentCapsExamples(t *testing.T) {
	body := `{"examples":["happy one.","happy two.","happy three.","happy four."],"antonym":""}`

	e, err := ParseEnrichment(body, "happy")
	if err != nil {
		t.Fatalf("ParseEnrichment returned error: %v", err)
	}
	if len(e.Examples) != 3 {
		t.Errorf("len(Examples) = %d, want 3", len(e.Examples))
	}
}

func TestParseEnrichmentRejectsMultiWordAntonym(t *testing.T) {
	body := `{"examples":["She was happy."],"antonym":"not happy"}`

	e, err := ParseEnrichment(body, "happy")
	if err != nil {
		t.Fatalf("ParseEnrichment returned error: %v", err)
	}
	if e.Antonym != "" {
		t.Errorf("Antonym = %q, want empty after rejecting multi-word antonym", e.Antonym)
	}
}

func TestParseEnrichmentEmptyContent(t *testing.T) {
	body := `{"examples":["A joyful song played."],"antonym":""}`

	_, err := ParseEnrichment(body, "happy")
	if err == nil {
		t.Fatal("ParseEnrichment accepted a response with no usable content")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("error type = %T, want *ValidationError", err)
	}
}

func TestParseEnrichmentInvalidJSON(t *testing.T) {
	if _, err := ParseEnrichment("not json at all", "happy"); err == nil {
		t.Fatal("ParseEnrichment accepted invalid JSON")
	}
}
