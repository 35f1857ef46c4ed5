package database

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

func Connect() (*sql.DB, error) {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "vocab_user")
	password := getEnv("DB_PASSWORD", "vocab_password")
	dbname := getEnv("DB_NAME", "vocab_prep")
	sslmode := getEnv("DB_SSLMODE", "disable")

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func Migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'student',
		password VARCHAR(255) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

	CREATE TABLE IF NOT EXISTS vocab_words (
		id                 BIGSERIAL PRIMARY KEY,
		english            VARCHAR(100) NOT NULL,
		korean             VARCHAR(100) NOT NULL,
		antonym            VARCHAR(100),
		examples           TEXT[] NOT NULL DEFAULT '{}',
		level              INT NOT NULL,
		lesson             VARCHAR(100) NOT NULL DEFAULT '',
		compatible_engines TEXT[] NOT NULL DEFAULT '{}',
		created_at         TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at         TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_words_level_lesson ON vocab_words(level, lesson);

	CREATE TABLE IF NOT EXISTS assignments (
		id         BIGSERIAL PRIMARY KEY,
		teacher_id BIGINT NOT NULL REFERENCES users(id),
		title      VARCHAR(255) NOT NULL,
		mode       VARCHAR(30) NOT NULL,
		code       VARCHAR(10) UNIQUE NOT NULL,
		level_min  INT NOT NULL DEFAULT 1,
		level_max  INT NOT NULL DEFAULT 15,
		lessons    TEXT[] NOT NULL DEFAULT '{}',
		word_ids   BIGINT[] NOT NULL DEFAULT '{}',
		active     BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_assignments_code ON assignments(code);
	CREATE INDEX IF NOT EXISTS idx_assignments_teacher ON assignments(teacher_id, created_at DESC);

	CREATE TABLE IF NOT EXISTS word_mastery (
		id                BIGSERIAL PRIMARY KEY,
		student_id        BIGINT NOT NULL REFERENCES users(id),
		word_id           BIGINT NOT NULL REFERENCES vocab_words(id),
		assignment_id     BIGINT REFERENCES assignments(id),
		stage             INT NOT NULL DEFAULT 1,
		stage_streak      INT NOT NULL DEFAULT 0,
		total_attempts    INT NOT NULL DEFAULT 0,
		total_correct     INT NOT NULL DEFAULT 0,
		combo_best        INT NOT NULL DEFAULT 0,
		last_practiced_at TIMESTAMP WITH TIME ZONE,
		mastered_at       TIMESTAMP WITH TIME ZONE,
		review_due_at     TIMESTAMP WITH TIME ZONE,
		created_at        TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at        TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(student_id, word_id)
	);

	CREATE INDEX IF NOT EXISTS idx_mastery_student ON word_mastery(student_id, stage);
	CREATE INDEX IF NOT EXISTS idx_mastery_review ON word_mastery(student_id, review_due_at)
		WHERE review_due_at IS NOT NULL;

	CREATE TABLE IF NOT EXISTS learning_sessions (
		id             BIGSERIAL PRIMARY KEY,
		assignment_id  BIGINT NOT NULL REFERENCES assignments(id),
		student_id     BIGINT NOT NULL REFERENCES users(id),
		mode           VARCHAR(30) NOT NULL,
		status         VARCHAR(20) NOT NULL DEFAULT 'active',
		total_answered INT NOT NULL DEFAULT 0,
		correct_count  INT NOT NULL DEFAULT 0,
		combo_current  INT NOT NULL DEFAULT 0,
		combo_best     INT NOT NULL DEFAULT 0,
		rank           INT,
		sublevel       INT,
		rank_label     VARCHAR(50),
		started_at     TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		completed_at   TIMESTAMP WITH TIME ZONE
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_student ON learning_sessions(student_id, assignment_id, started_at DESC);

	CREATE TABLE IF NOT EXISTS learning_answers (
		id                 BIGSERIAL PRIMARY KEY,
		session_id         BIGINT NOT NULL REFERENCES learning_sessions(id),
		word_mastery_id    BIGINT NOT NULL REFERENCES word_mastery(id),
		stage              INT NOT NULL,
		question_type      VARCHAR(50) NOT NULL,
		correct            BOOLEAN NOT NULL,
		almost_correct     BOOLEAN NOT NULL DEFAULT FALSE,
		time_taken_seconds DOUBLE PRECISION,
		answered_at        TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_answers_session ON learning_answers(session_id, answered_at);

	CREATE TABLE IF NOT EXISTS user_gamification (
		user_id              BIGINT PRIMARY KEY REFERENCES users(id),
		total_xp             INT NOT NULL DEFAULT 0,
		current_streak       INT NOT NULL DEFAULT 0,
		longest_streak       INT NOT NULL DEFAULT 0,
		last_active_date     TIMESTAMP WITH TIME ZONE,
		words_answered_total INT NOT NULL DEFAULT 0,
		words_correct_total  INT NOT NULL DEFAULT 0,
		sessions_completed   INT NOT NULL DEFAULT 0,
		perfect_sessions     INT NOT NULL DEFAULT 0,
		created_at           TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at           TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS xp_events (
		id         BIGSERIAL PRIMARY KEY,
		user_id    BIGINT NOT NULL REFERENCES users(id),
		event_type VARCHAR(50) NOT NULL,
		xp_amount  INT NOT NULL,
		metadata   TEXT,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_xp_events_user ON xp_events(user_id, created_at DESC);
	`

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// Additive changes for databases created before these columns existed.
	alters := []string{
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS role VARCHAR(20) NOT NULL DEFAULT 'student'`,
		`ALTER TABLE learning_sessions ADD COLUMN IF NOT EXISTS combo_current INT NOT NULL DEFAULT 0`,
		`ALTER TABLE learning_answers ADD COLUMN IF NOT EXISTS almost_correct BOOLEAN NOT NULL DEFAULT FALSE`,
		`ALTER TABLE vocab_words ADD COLUMN IF NOT EXISTS compatible_engines TEXT[] NOT NULL DEFAULT '{}'`,
	}
	for _, stmt := range alters {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("alter failed: %w", err)
		}
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
