package sessions

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/vocab-prep/backend/internal/engine"
	"github.com/vocab-prep/backend/internal/gamification"
	"github.com/vocab-prep/backend/internal/mastery"
	"github.com/vocab-prep/backend/internal/models"
	"github.com/vocab-prep/backend/internal/placement"
)

const defaultBatchSize = 10

type Service struct {
	store      *Store
	registry   *engine.Registry
	gamService *gamification.Service
	batchSize  int
}

func NewService(store *Store, registry *engine.Registry) *Service {
	batchSize := defaultBatchSize
	if v := os.Getenv("SESSION_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			batchSize = n
		}
	}

	return &Service{
		store:     store,
		registry:  registry,
		batchSize: batchSize,
	}
}

// SetGamificationService injects the gamification service for XP/streak tracking.
func (s *Service) SetGamificationService(gs *gamification.Service) {
	s.gamService = gs
}

// ── Test Code Resolution ────────────────────────────────

// ResolveTestCode looks up an assignment by its opaque code,
// case-insensitively.
func (s *Service) ResolveTestCode(code string) (*models.Assignment, error) {
	a, err := s.store.GetAssignmentByCode(NormalizeCode(code))
	if err != nil {
		return nil, err
	}
	if !a.Active {
		return nil, models.ErrInactiveCode
	}
	return a, nil
}

// ── Session Lifecycle ───────────────────────────────────

func (s *Service) StartSession(studentID int64, code string, allowRestart bool) (*models.StartSessionResponse, error) {
	assignment, err := s.ResolveTestCode(code)
	if err != nil {
		return nil, err
	}

	completed, err := s.store.FindSession(assignment.ID, studentID, models.SessionCompleted)
	if err != nil {
		return nil, err
	}
	if completed != nil && !allowRestart {
		return nil, &models.AlreadyCompletedError{
			SessionID:    completed.ID,
			AssignmentID: assignment.ID,
		}
	}

	sess, err := s.store.FindSession(assignment.ID, studentID, models.SessionActive)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		sess, err = s.store.CreateSession(assignment.ID, studentID, assignment.Mode)
		if err != nil {
			return nil, err
		}
	}

	words, err := s.store.SelectAssignmentWords(assignment)
	if err != nil {
		return nil, err
	}

	questions, err := s.buildQuestions(sess, assignment, words, 0, s.batchSize)
	if err != nil {
		return nil, err
	}

	log.Printf("[sessions] started session %d (mode=%s, %d words) for student %d",
		sess.ID, assignment.Mode, len(words), studentID)

	return &models.StartSessionResponse{
		SessionID:    sess.ID,
		AssignmentID: assignment.ID,
		StudentID:    studentID,
		Mode:         assignment.Mode,
		WordCount:    len(words),
		Questions:    questions,
	}, nil
}

// FetchBatch returns the next batch of questions for an active session.
// FetchBatch serves the next batch of questions for an active session.
// A stage of 0 means no filter; otherwise only words currently at that
// mastery stage are served.
func (s *Service) FetchBatch(studentID, sessionID int64, stage, batchSize int) (*models.BatchResponse, error) {
	sess, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.StudentID != studentID {
		return nil, models.ErrForbidden
	}
	if sess.Status != models.SessionActive {
		return nil, models.ErrNotFound
	}

	assignment, err := s.store.GetAssignment(sess.AssignmentID)
	if err != nil {
		return nil, err
	}
	words, err := s.store.SelectAssignmentWords(assignment)
	if err != nil {
		return nil, err
	}

	if batchSize <= 0 {
		batchSize = s.batchSize
	}
	questions, err := s.buildQuestions(sess, assignment, words, stage, batchSize)
	if err != nil {
		return nil, err
	}

	return &models.BatchResponse{
		SessionID: sess.ID,
		Questions: questions,
		Total:     len(questions),
	}, nil
}

// ── Question Building ───────────────────────────────────

func (s *Service) buildQuestions(sess *models.LearningSession, assignment *models.Assignment, words []models.VocabWord, stageFilter, batchSize int) ([]models.QuestionView, error) {
	if assignment.Mode == models.ModePlacement {
		return s.buildPlacementQuestions(sess, words)
	}

	pool := engine.BuildPool(words)

	// Unmastered words first, then shuffle within the batch so repeats
	// don't arrive in catalog order.
	var pending, mastered []candidate
	for _, w := range words {
		m, err := s.store.GetOrCreateMastery(sess.StudentID, w.ID, &assignment.ID)
		if err != nil {
			return nil, err
		}
		if stageFilter > 0 && m.Stage != stageFilter {
			continue
		}
		c := candidate{word: w, mastery: *m}
		if m.Mastered() {
			mastered = append(mastered, c)
		} else {
			pending = append(pending, c)
		}
	}
	rand.Shuffle(len(pending), func(i, j int) { pending[i], pending[j] = pending[j], pending[i] })
	candidates := append(pending, mastered...)

	if len(candidates) > batchSize {
		candidates = candidates[:batchSize]
	}

	var questions []models.QuestionView
	for _, c := range candidates {
		name := s.engineFor(c.word, c.mastery.Stage, assignment.Mode)
		if name == "" {
			// Word supports none of the mode's engines; skip it.
			continue
		}
		spec := s.registry.Generate(name, c.word, pool, engine.DefaultChoiceCount)
		questions = append(questions, questionView(spec, c.mastery))
	}
	return questions, nil
}

type candidate struct {
	word    models.VocabWord
	mastery models.WordMastery
}

// buildPlacementQuestions picks two probe words per rank, from the
// earliest and latest lesson tested, walking every rank the word set
// covers.
func (s *Service) buildPlacementQuestions(sess *models.LearningSession, words []models.VocabWord) ([]models.QuestionView, error) {
	pool := engine.BuildPool(words)

	type probePair struct {
		early *models.VocabWord
		late  *models.VocabWord
	}
	probes := make(map[int]*probePair)
	for i := range words {
		w := &words[i]
		rank := placement.WordLevelToRank(w.Level)
		p := probes[rank]
		if p == nil {
			p = &probePair{}
			probes[rank] = p
		}
		if p.early == nil || placement.LessonOrdinal(w.Lesson) < placement.LessonOrdinal(p.early.Lesson) {
			p.early = w
		}
		if p.late == nil || placement.LessonOrdinal(w.Lesson) > placement.LessonOrdinal(p.late.Lesson) {
			p.late = w
		}
	}

	var questions []models.QuestionView
	for rank := placement.RankMin; rank <= placement.RankMax; rank++ {
		p, ok := probes[rank]
		if !ok {
			continue
		}
		probeWords := []*models.VocabWord{p.early, p.late}
		if p.early == p.late {
			probeWords = probeWords[:1]
		}
		for _, w := range probeWords {
			m, err := s.store.GetOrCreateMastery(sess.StudentID, w.ID, &sess.AssignmentID)
			if err != nil {
				return nil, err
			}
			name := s.engineFor(*w, m.Stage, models.ModePlacement)
			if name == "" {
				continue
			}
			spec := s.registry.Generate(name, *w, pool, engine.DefaultChoiceCount)
			questions = append(questions, questionView(spec, *m))
		}
	}
	return questions, nil
}

// listeningOrder is the preference order for listening-test questions.
var listeningOrder = []string{
	engine.ListeningMeaning, engine.ListeningWord, engine.ListeningSentence, engine.ListeningTyping,
}

// engineFor picks the question engine for a word: the stage's archetype
// when the word supports it, otherwise the first compatible engine.
// Listening tests rotate through the listening variants by stage.
// Returns "" when nothing fits.
func (s *Service) engineFor(w models.VocabWord, stage int, mode models.TestMode) string {
	compatible := w.CompatibleEngines
	if len(compatible) == 0 {
		compatible = s.registry.ComputeCompatibleEngines(w)
	}
	supported := make(map[string]bool, len(compatible))
	for _, name := range compatible {
		supported[name] = true
	}

	if mode == models.ModeListening {
		if name := listeningOrder[(stage-1)%len(listeningOrder)]; supported[name] {
			return name
		}
		for _, name := range listeningOrder {
			if supported[name] {
				return name
			}
		}
		return ""
	}

	if mode == models.ModePlacement {
		if supported[engine.MeaningChoice] {
			return engine.MeaningChoice
		}
		if supported[engine.WordChoice] {
			return engine.WordChoice
		}
	} else if name := mastery.StageQuestionType[stage]; supported[name] {
		return name
	}

	if len(compatible) > 0 {
		return compatible[0]
	}
	return ""
}

func questionView(spec engine.QuestionSpec, m models.WordMastery) models.QuestionView {
	timer := mastery.StageTimerSeconds[m.Stage]
	if timer == 0 {
		timer = 10
	}
	return models.QuestionView{
		MasteryID:     m.ID,
		WordID:        spec.WordID,
		Engine:        spec.Engine,
		Prompt:        spec.Prompt,
		Mode:          spec.ContextMode,
		Choices:       spec.Choices,
		SentenceBlank: spec.SentenceBlank,
		Emoji:         spec.Emoji,
		TypingHint:    spec.TypingHint,
		ListenText:    spec.ListenText,
		Stage:         m.Stage,
		TimerSeconds:  timer,
	}
}

// ── Answer Submission ───────────────────────────────────

func (s *Service) SubmitAnswer(studentID, sessionID int64, req models.SubmitAnswerRequest) (*models.SubmitAnswerResponse, error) {
	sess, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.StudentID != studentID {
		return nil, models.ErrForbidden
	}

	rec, word, err := s.store.GetMasteryWithWord(req.WordMasteryID)
	if err != nil {
		return nil, err
	}
	if rec.StudentID != studentID {
		return nil, models.ErrForbidden
	}

	questionType := req.QuestionType
	if questionType == "" {
		questionType = mastery.StageQuestionType[rec.Stage]
	}
	if canonical, ok := engine.ResolveName(questionType); ok {
		questionType = canonical
	}

	correctAnswer := correctAnswerFor(*word, questionType)
	var isCorrect, almost bool
	if typingEngines[questionType] {
		isCorrect, almost = mastery.Grade(req.SelectedAnswer, correctAnswer)
	} else {
		isCorrect = mastery.NormalizeAnswer(req.SelectedAnswer) == mastery.NormalizeAnswer(correctAnswer)
	}

	demote := sess.Mode.DemotesOnWrong()
	now := time.Now().UTC()

	result, err := s.store.SubmitAnswer(sessionID, req.WordMasteryID, questionType,
		isCorrect, almost, req.TimeTakenSeconds,
		func(m models.WordMastery, combo int) models.WordMastery {
			return mastery.ApplyAnswer(m, mastery.AnswerEvent{
				Correct: isCorrect,
				Demote:  demote,
				Combo:   combo,
				Now:     now,
			})
		})
	if err != nil {
		return nil, err
	}

	var xpAwarded int
	if s.gamService != nil {
		if isCorrect {
			studentRank := 1
			if sess.Rank != nil {
				studentRank = *sess.Rank
			}
			xpAwarded = s.gamService.AwardWordXP(studentID, word.Level, studentRank)
		}
		s.gamService.UpdateStreak(studentID)
		s.gamService.IncrementCounters(studentID, isCorrect)
	}

	return &models.SubmitAnswerResponse{
		IsCorrect:     isCorrect,
		AlmostCorrect: almost,
		CorrectAnswer: correctAnswer,
		NewStage:      result.Mastery.Stage,
		StageStreak:   result.Mastery.StageStreak,
		Mastered:      result.Mastery.Mastered(),
		Combo:         result.Session.ComboCurrent,
		XPAwarded:     xpAwarded,
	}, nil
}

// typingEngines marks the question types where the student types the
// answer, and "almost correct" grading applies.
var typingEngines = map[string]bool{
	engine.ListeningTyping: true,
	engine.TypingWord:      true,
	engine.TypingMeaning:   true,
	engine.AntonymTyping:   true,
	engine.SentenceTyping:  true,
}

// correctAnswerFor derives the expected answer for a word under a
// canonical question type. Every engine's answer is a fixed projection
// of the word, so answers validate without persisting question rows.
func correctAnswerFor(w models.VocabWord, questionType string) string {
	switch questionType {
	case engine.MeaningChoice, engine.ListeningMeaning, engine.TypingMeaning:
		return w.Korean
	case engine.AntonymChoice, engine.AntonymTyping:
		if w.Antonym != nil {
			return *w.Antonym
		}
		return ""
	default:
		return w.English
	}
}

// ── Session Completion ──────────────────────────────────

func (s *Service) CompleteSession(studentID, sessionID int64, req models.CompleteSessionRequest) (*models.CompleteSessionResponse, error) {
	sess, err := s.store.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.StudentID != studentID {
		return nil, models.ErrForbidden
	}
	if sess.Status == models.SessionCompleted {
		return nil, &models.AlreadyCompletedError{
			SessionID:    sess.ID,
			AssignmentID: sess.AssignmentID,
		}
	}

	resp := &models.CompleteSessionResponse{
		SessionID:     sess.ID,
		TotalAnswered: sess.TotalAnswered,
		CorrectCount:  sess.CorrectCount,
	}
	if sess.TotalAnswered > 0 {
		resp.Accuracy = float64(sess.CorrectCount) / float64(sess.TotalAnswered)
	}

	var rank, sublevel *int
	var rankLabel *string
	if sess.Mode == models.ModePlacement {
		logged, err := s.store.GetPlacementAnswers(sessionID)
		if err != nil {
			return nil, err
		}
		answers := make([]placement.Answer, len(logged))
		for i, a := range logged {
			answers[i] = placement.Answer{
				WordLevel:     a.WordLevel,
				LessonOrdinal: placement.LessonOrdinal(a.Lesson),
				Correct:       a.Correct,
			}
		}
		result := placement.DetermineLevel(answers)
		label := result.Label()
		rank, sublevel, rankLabel = &result.Rank, &result.Sublevel, &label
		resp.Rank, resp.Sublevel, resp.RankLabel = rank, sublevel, rankLabel
		log.Printf("[sessions] placement session %d scored %s", sessionID, label)
	}

	if err := s.store.CompleteSession(sessionID, rank, sublevel, rankLabel); err != nil {
		return nil, fmt.Errorf("complete session: %w", err)
	}

	if s.gamService != nil {
		avgTime := 0.0
		if req.TotalTimeSeconds != nil && sess.TotalAnswered > 0 {
			avgTime = *req.TotalTimeSeconds / float64(sess.TotalAnswered)
		} else if total, count, err := s.store.GetAnswerTimes(sessionID); err == nil && count > 0 {
			avgTime = total / float64(count)
		}

		breakdown, err := s.gamService.CompleteSession(studentID, sess.CorrectCount, sess.TotalAnswered, sess.ComboBest, avgTime)
		if err != nil {
			log.Printf("[sessions] WARN: session XP settle failed: %v", err)
		} else {
			resp.XPAwarded = breakdown.TotalXP
		}
		s.gamService.UpdateStreak(studentID)
	}

	return resp, nil
}

// ── Review & Stats ──────────────────────────────────────

func (s *Service) GetReviewQueue(studentID int64, limit int) (*models.ReviewQueueResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	words, err := s.store.GetReviewQueue(studentID, time.Now().UTC(), limit)
	if err != nil {
		return nil, err
	}
	return &models.ReviewQueueResponse{Words: words, Total: len(words)}, nil
}

func (s *Service) GetMasteryStats(studentID int64) (*models.MasteryStatsResponse, error) {
	return s.store.GetMasteryStats(studentID, time.Now().UTC())
}

// ── Assignments ─────────────────────────────────────────

func (s *Service) CreateAssignment(teacherID int64, req models.CreateAssignmentRequest) (*models.Assignment, error) {
	if !models.ValidTestModes[req.Mode] {
		return nil, fmt.Errorf("invalid test mode: %s", req.Mode)
	}

	a := &models.Assignment{
		TeacherID: teacherID,
		Title:     req.Title,
		Mode:      req.Mode,
		Code:      generateTestCode(),
		LevelMin:  req.LevelMin,
		LevelMax:  req.LevelMax,
		Lessons:   req.Lessons,
		WordIDs:   req.WordIDs,
	}
	if a.LevelMin < models.WordLevelMin {
		a.LevelMin = models.WordLevelMin
	}
	if a.LevelMax <= 0 || a.LevelMax > models.WordLevelMax {
		a.LevelMax = models.WordLevelMax
	}

	if err := s.store.CreateAssignment(a); err != nil {
		return nil, fmt.Errorf("create assignment: %w", err)
	}
	return a, nil
}

func (s *Service) ListAssignments(teacherID int64) ([]models.Assignment, error) {
	return s.store.ListAssignmentsByTeacher(teacherID)
}

func (s *Service) SetAssignmentActive(id, teacherID int64, active bool) error {
	return s.store.SetAssignmentActive(id, teacherID, active)
}

// generateTestCode derives a 6-character code from a fresh UUID, using
// an alphabet without look-alike characters.
func generateTestCode() string {
	id := uuid.New()
	code := make([]byte, 6)
	for i := range code {
		code[i] = codeAlphabet[int(id[i])%len(codeAlphabet)]
	}
	return string(code)
}
