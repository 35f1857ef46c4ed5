package words

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/vocab-prep/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateWord(req models.CreateWordRequest, compatibleEngines []string) (*models.VocabWord, error) {
	var w models.VocabWord
	err := s.db.QueryRow(
		`INSERT INTO vocab_words (english, korean, antonym, examples, level, lesson, compatible_engines)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, english, korean, antonym, examples, level, lesson, compatible_engines, created_at, updated_at`,
		req.English, req.Korean, req.Antonym, pq.Array(req.Examples), req.Level, req.Lesson,
		pq.Array(compatibleEngines),
	).Scan(&w.ID, &w.English, &w.Korean, &w.Antonym, pq.Array(&w.Examples),
		&w.Level, &w.Lesson, pq.Array(&w.CompatibleEngines), &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create word: %w", err)
	}
	return &w, nil
}

func (s *Store) GetWord(id int64) (*models.VocabWord, error) {
	var w models.VocabWord
	err := s.db.QueryRow(
		`SELECT id, english, korean, antonym, examples, level, lesson, compatible_engines, created_at, updated_at
		 FROM vocab_words WHERE id = $1`,
		id,
	).Scan(&w.ID, &w.English, &w.Korean, &w.Antonym, pq.Array(&w.Examples),
		&w.Level, &w.Lesson, pq.Array(&w.CompatibleEngines), &w.CreatedAt, &w.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get word: %w", err)
	}
	return &w, nil
}

func (s *Store) UpdateWord(w *models.VocabWord) error {
	result, err := s.db.Exec(
		`UPDATE vocab_words SET
		    english = $2, korean = $3, antonym = $4, examples = $5,
		    level = $6, lesson = $7, compatible_engines = $8, updated_at = NOW()
		 WHERE id = $1`,
		w.ID, w.English, w.Korean, w.Antonym, pq.Array(w.Examples),
		w.Level, w.Lesson, pq.Array(w.CompatibleEngines),
	)
	if err != nil {
		return fmt.Errorf("update word: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteWord(id int64) error {
	result, err := s.db.Exec(`DELETE FROM vocab_words WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete word: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ListWords pages through the catalog, optionally filtered by level
// range and lesson label.
func (s *Store) ListWords(levelMin, levelMax int, lesson string, page, pageSize int) (*models.WordListResponse, error) {
	offset := (page - 1) * pageSize

	var total int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM vocab_words
		 WHERE level BETWEEN $1 AND $2 AND ($3 = '' OR lesson = $3)`,
		levelMin, levelMax, lesson,
	).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count words: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT id, english, korean, antonym, examples, level, lesson, compatible_engines, created_at, updated_at
		 FROM vocab_words
		 WHERE level BETWEEN $1 AND $2 AND ($3 = '' OR lesson = $3)
		 ORDER BY level, lesson, id
		 LIMIT $4 OFFSET $5`,
		levelMin, levelMax, lesson, pageSize, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	defer rows.Close()

	var words []models.VocabWord
	for rows.Next() {
		var w models.VocabWord
		if err := rows.Scan(&w.ID, &w.English, &w.Korean, &w.Antonym, pq.Array(&w.Examples),
			&w.Level, &w.Lesson, pq.Array(&w.CompatibleEngines), &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if words == nil {
		words = []models.VocabWord{}
	}

	return &models.WordListResponse{
		Words:    words,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// WordExists reports whether an english/lesson pair is already in the
// catalog, for import dedup.
func (s *Store) WordExists(english, lesson string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM vocab_words WHERE LOWER(english) = LOWER($1) AND lesson = $2)`,
		english, lesson,
	).Scan(&exists)
	return exists, err
}
