package words

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/vocab-prep/backend/internal/engine"
	"github.com/vocab-prep/backend/internal/generator"
	"github.com/vocab-prep/backend/internal/models"
)

// Enricher fills in missing word content (examples, antonym) from an
// LLM. Nil disables the enrich endpoint.
type Enricher interface {
	EnrichWord(ctx context.Context, word models.VocabWord) (*generator.Enrichment, error)
}

type Handler struct {
	store    *Store
	registry *engine.Registry
	enricher Enricher
}

func NewHandler(store *Store, registry *engine.Registry, enricher Enricher) *Handler {
	return &Handler{store: store, registry: registry, enricher: enricher}
}

// ── CRUD ────────────────────────────────────────────────

func (h *Handler) CreateWord(w http.ResponseWriter, r *http.Request) {
	var req models.CreateWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if msg := validateWordRequest(req); msg != "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: msg})
		return
	}

	compatible := h.registry.ComputeCompatibleEngines(models.VocabWord{
		English:  req.English,
		Korean:   req.Korean,
		Antonym:  req.Antonym,
		Examples: req.Examples,
	})

	word, err := h.store.CreateWord(req, compatible)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, word)
}

func (h *Handler) GetWord(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid word ID"})
		return
	}

	word, err := h.store.GetWord(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, word)
}

func (h *Handler) UpdateWord(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid word ID"})
		return
	}

	var req models.UpdateWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	word, err := h.store.GetWord(id)
	if err != nil {
		writeError(w, err)
		return
	}

	if req.English != nil {
		word.English = *req.English
	}
	if req.Korean != nil {
		word.Korean = *req.Korean
	}
	if req.Antonym != nil {
		word.Antonym = req.Antonym
	}
	if req.Examples != nil {
		word.Examples = *req.Examples
	}
	if req.Level != nil {
		word.Level = *req.Level
	}
	if req.Lesson != nil {
		word.Lesson = *req.Lesson
	}
	if word.Level < models.WordLevelMin || word.Level > models.WordLevelMax {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "level must be between 1 and 15"})
		return
	}

	word.CompatibleEngines = h.registry.ComputeCompatibleEngines(*word)

	if err := h.store.UpdateWord(word); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, word)
}

func (h *Handler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid word ID"})
		return
	}

	if err := h.store.DeleteWord(id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListWords(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	levelMin := intQueryParam(query, "level_min", models.WordLevelMin)
	levelMax := intQueryParam(query, "level_max", models.WordLevelMax)
	lesson := query.Get("lesson")
	page := intQueryParam(query, "page", 1)
	pageSize := intQueryParam(query, "page_size", 50)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	resp, err := h.store.ListWords(levelMin, levelMax, lesson, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ── Import ──────────────────────────────────────────────

// ImportWords bulk-loads a word catalog. Duplicates (same english +
// lesson) are skipped, not overwritten.
func (h *Handler) ImportWords(w http.ResponseWriter, r *http.Request) {
	var envelope models.WordImportEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	result := models.WordImportResult{TotalInPayload: len(envelope.Words)}
	for _, req := range envelope.Words {
		if msg := validateWordRequest(req); msg != "" {
			result.Skipped++
			continue
		}
		exists, err := h.store.WordExists(req.English, req.Lesson)
		if err != nil {
			writeError(w, err)
			return
		}
		if exists {
			result.Skipped++
			continue
		}

		compatible := h.registry.ComputeCompatibleEngines(models.VocabWord{
			English:  req.English,
			Korean:   req.Korean,
			Antonym:  req.Antonym,
			Examples: req.Examples,
		})
		if _, err := h.store.CreateWord(req, compatible); err != nil {
			writeError(w, err)
			return
		}
		result.Imported++
	}

	log.Printf("[words] imported %d/%d words (%d skipped)",
		result.Imported, result.TotalInPayload, result.Skipped)
	writeJSON(w, http.StatusOK, result)
}

// ── Enrichment ──────────────────────────────────────────

// EnrichWord asks the LLM for example sentences and an antonym
// suggestion, then recomputes the word's compatible engines.
func (h *Handler) EnrichWord(w http.ResponseWriter, r *http.Request) {
	if h.enricher == nil {
		writeJSON(w, http.StatusServiceUnavailable, models.ErrorResponse{Error: "Enrichment is not configured"})
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid word ID"})
		return
	}

	word, err := h.store.GetWord(id)
	if err != nil {
		writeError(w, err)
		return
	}

	enrichment, err := h.enricher.EnrichWord(r.Context(), *word)
	if err != nil {
		log.Printf("[words] enrichment failed for word %d: %v", id, err)
		writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "Enrichment failed"})
		return
	}

	if len(enrichment.Examples) > 0 {
		word.Examples = append(word.Examples, enrichment.Examples...)
	}
	if word.Antonym == nil && enrichment.Antonym != "" {
		antonym := enrichment.Antonym
		word.Antonym = &antonym
	}
	word.CompatibleEngines = h.registry.ComputeCompatibleEngines(*word)

	if err := h.store.UpdateWord(word); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, word)
}

// ── Helpers ─────────────────────────────────────────────

func validateWordRequest(req models.CreateWordRequest) string {
	if req.English == "" {
		return "english is required"
	}
	if req.Korean == "" {
		return "korean is required"
	}
	if req.Level < models.WordLevelMin || req.Level > models.WordLevelMax {
		return "level must be between 1 and 15"
	}
	if req.Lesson == "" {
		return "lesson is required"
	}
	return ""
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, models.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Word not found"})
		return
	}
	log.Printf("[words] internal error: %v", err)
	writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
}

func intQueryParam(query url.Values, key string, fallback int) int {
	if v := query.Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
