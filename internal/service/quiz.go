package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/mi-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/mi-quiz-bot/internal/presenter"
	"github.com/aliskhannn/mi-quiz-bot/internal/storage"
)

var (
	ErrNoQuestionsAvailable = errors.New("no questions available")
	ErrNoTopicsSelected     = errors.New("no topics selected")
	ErrSessionNotFound      = errors.New("quiz session not found")
	ErrQuestionOutOfRange   = errors.New("question index out of range")
	ErrQuizNotFinished      = errors.New("not all questions are answered")
	ErrNotAwaitingText      = errors.New("current question does not take a text answer")
	ErrAttemptNotFound      = errors.New("quiz attempt not found")
)

// QuizConfig holds quiz limits.
type QuizConfig struct {
	DefaultLimit int
	MaxLimit     int
	SessionTTL   time.Duration
}

// QuestionView is the state of one question inside a running quiz.
type QuestionView struct {
	presenter.View

	SessionID     string
	Index         int // zero-based position in the quiz
	Total         int
	AnsweredCount int // answered questions in the quiz

	CanGoBack    bool
	CanGoForward bool
	CanFinish    bool
}

// ReviewItem is one graded answer of a finished quiz. Question is nil when
// the question no longer exists.
type ReviewItem struct {
	Question *entities.Question
	Result   entities.Result
}

// activeQuiz bundles a session with its per-question presenters and score.
type activeQuiz struct {
	mu         sync.Mutex
	session    *entities.QuizSession
	presenters *presenter.Cache
	tracker    *Tracker
}

type QuizService struct {
	questionRepo QuestionRepository
	attemptRepo  AttemptRepository
	reporter     presenter.IssueReporter
	cfg          QuizConfig
	logger       *zap.Logger

	quizzes *storage.QuizStorage[*activeQuiz]
	newRand func() presenter.Rand
}

func NewQuizService(
	questionRepo QuestionRepository,
	attemptRepo AttemptRepository,
	reporter presenter.IssueReporter,
	cfg QuizConfig,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		reporter:     reporter,
		cfg:          cfg,
		logger:       logger,
		quizzes:      storage.NewQuizStorage[*activeQuiz](),
		newRand: func() presenter.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// SetRandSource replaces the randomness used for new quizzes.
func (s *QuizService) SetRandSource(fn func() presenter.Rand) {
	s.newRand = fn
}

// StartQuiz draws questions from the selected topics and makes the new quiz
// the user's active one. A quiz the user had running is abandoned.
func (s *QuizService) StartQuiz(
	ctx context.Context, userID, chatID int64, topics []string, limit int,
) (*QuestionView, error) {
	topics = normalizeTopics(topics)
	if len(topics) == 0 {
		return nil, ErrNoTopicsSelected
	}

	limit = s.clampLimit(limit)

	questions, err := s.questionRepo.GetQuestions(ctx, topics, limit)
	if err != nil {
		return nil, fmt.Errorf("get questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestionsAvailable
	}

	session := entities.NewQuizSession(userID, chatID, topics, questions)

	var opts []presenter.Option
	if s.reporter != nil {
		opts = append(opts, presenter.WithIssueReporter(s.reporter))
	}

	quiz := &activeQuiz{
		session:    session,
		presenters: presenter.NewCache(s.newRand(), opts...),
		tracker:    NewTracker(),
	}

	if prev, replaced := s.quizzes.Store(userID, session.ID, quiz); replaced {
		prev.mu.Lock()
		prev.session.Abandon()
		prev.mu.Unlock()

		s.logger.Debug("previous quiz abandoned",
			zap.Int64("user_id", userID),
			zap.String("session_id", prev.session.ID),
		)
	}

	s.logger.Debug("quiz session created",
		zap.Int64("user_id", userID),
		zap.String("session_id", session.ID),
		zap.Strings("topics", topics),
		zap.Int("questions", len(questions)),
	)

	quiz.mu.Lock()
	defer quiz.mu.Unlock()

	return quiz.view(), nil
}

// Current returns the question on screen in the user's active quiz.
func (s *QuizService) Current(_ context.Context, userID int64) (*QuestionView, error) {
	quiz, ok := s.quizzes.Active(userID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	quiz.mu.Lock()
	defer quiz.mu.Unlock()

	if !quiz.session.IsActive() {
		return nil, ErrSessionNotFound
	}

	return quiz.view(), nil
}

// Navigate moves the quiz to the question at index. Questions that were
// already shown keep their option order.
func (s *QuizService) Navigate(_ context.Context, userID int64, sessionID string, index int) (*QuestionView, error) {
	quiz, err := s.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}

	quiz.mu.Lock()
	defer quiz.mu.Unlock()

	if !quiz.session.IsActive() {
		return nil, ErrSessionNotFound
	}
	if index < 0 || index >= quiz.session.Total() {
		return nil, fmt.Errorf("%w: %d", ErrQuestionOutOfRange, index)
	}

	quiz.session.CurrentIndex = index
	quiz.session.Touch(time.Now())

	return quiz.view(), nil
}

// Answer grades answer for the question at index and returns the revealed view.
// Answering a question twice keeps the first answer.
func (s *QuizService) Answer(
	_ context.Context, userID int64, sessionID string, index int, answer entities.Answer,
) (*QuestionView, error) {
	quiz, err := s.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}

	quiz.mu.Lock()
	defer quiz.mu.Unlock()

	return s.answerLocked(quiz, index, func(*presenter.Presenter) (entities.Answer, error) {
		return answer, nil
	})
}

// AnswerOption grades a tapped option (display position) for the question at index.
func (s *QuizService) AnswerOption(
	_ context.Context, userID int64, sessionID string, index, position int,
) (*QuestionView, error) {
	quiz, err := s.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}

	quiz.mu.Lock()
	defer quiz.mu.Unlock()

	return s.answerLocked(quiz, index, func(p *presenter.Presenter) (entities.Answer, error) {
		return p.AnswerFor(position)
	})
}

// AnswerText answers the current question of the user's active quiz with free text.
func (s *QuizService) AnswerText(_ context.Context, userID int64, text string) (*QuestionView, error) {
	quiz, ok := s.quizzes.Active(userID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	quiz.mu.Lock()
	defer quiz.mu.Unlock()

	if !quiz.session.IsActive() {
		return nil, ErrSessionNotFound
	}

	q := quiz.session.Current()
	if q == nil || q.Type != entities.QuestionTypeOpenEnded || quiz.tracker.Has(q.ID) {
		return nil, ErrNotAwaitingText
	}

	return s.answerLocked(quiz, quiz.session.CurrentIndex, func(*presenter.Presenter) (entities.Answer, error) {
		return entities.OpenEndedAnswer(text), nil
	})
}

func (s *QuizService) answerLocked(
	quiz *activeQuiz, index int, pick func(*presenter.Presenter) (entities.Answer, error),
) (*QuestionView, error) {
	if !quiz.session.IsActive() {
		return nil, ErrSessionNotFound
	}
	if index < 0 || index >= quiz.session.Total() {
		return nil, fmt.Errorf("%w: %d", ErrQuestionOutOfRange, index)
	}

	p := quiz.presenters.Get(quiz.session.Questions[index])

	answer, err := pick(p)
	if err != nil {
		return nil, err
	}

	result, err := p.Submit(answer)
	if err != nil {
		return nil, err
	}

	if quiz.tracker.Record(result) {
		s.logger.Debug("answer recorded",
			zap.Int64("user_id", quiz.session.UserID),
			zap.String("session_id", quiz.session.ID),
			zap.Int64("question_id", result.QuestionID),
			zap.Bool("is_correct", result.IsCorrect),
		)
	}

	quiz.session.CurrentIndex = index
	quiz.session.Touch(time.Now())

	return quiz.view(), nil
}

// SetMessageID remembers the message the current question is rendered in.
func (s *QuizService) SetMessageID(userID int64, sessionID string, messageID int) {
	quiz, err := s.lookup(userID, sessionID)
	if err != nil {
		return
	}

	quiz.mu.Lock()
	quiz.session.MessageID = messageID
	quiz.mu.Unlock()
}

// MessageID returns the message of the user's active quiz, 0 if unknown.
func (s *QuizService) MessageID(userID int64) (string, int) {
	quiz, ok := s.quizzes.Active(userID)
	if !ok {
		return "", 0
	}

	quiz.mu.Lock()
	defer quiz.mu.Unlock()
	return quiz.session.ID, quiz.session.MessageID
}

// Finish stores the quiz in the user's history. Every question must be answered.
func (s *QuizService) Finish(ctx context.Context, userID int64, sessionID string) (*entities.QuizAttempt, error) {
	quiz, err := s.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}

	quiz.mu.Lock()
	defer quiz.mu.Unlock()

	if !quiz.session.IsActive() {
		return nil, ErrSessionNotFound
	}
	if quiz.tracker.Answered() < quiz.session.Total() {
		return nil, fmt.Errorf("%w: %d of %d", ErrQuizNotFinished, quiz.tracker.Answered(), quiz.session.Total())
	}

	attempt := entities.NewQuizAttempt(userID, quiz.session.Topics, quiz.tracker.Results())

	id, err := s.attemptRepo.Save(ctx, attempt)
	if err != nil {
		return nil, fmt.Errorf("save attempt: %w", err)
	}
	attempt.ID = id

	quiz.session.Complete()
	s.quizzes.Delete(quiz.session.ID)

	s.logger.Info("quiz finished",
		zap.Int64("user_id", userID),
		zap.String("session_id", quiz.session.ID),
		zap.Int("correct", attempt.CorrectAnswers),
		zap.Int("total", attempt.TotalQuestions),
	)

	return attempt, nil
}

// History returns the user's latest attempts, newest first.
func (s *QuizService) History(ctx context.Context, userID int64, limit int) ([]*entities.QuizAttempt, error) {
	return s.attemptRepo.ListByUser(ctx, userID, limit)
}

// Review returns the graded answers of one of the user's attempts together
// with their questions.
func (s *QuizService) Review(ctx context.Context, userID, attemptID int64) ([]ReviewItem, error) {
	results, err := s.attemptRepo.GetAnswers(ctx, userID, attemptID)
	if err != nil {
		return nil, fmt.Errorf("get answers: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrAttemptNotFound
	}

	items := make([]ReviewItem, 0, len(results))
	for _, res := range results {
		q, err := s.questionRepo.GetByID(ctx, res.QuestionID)
		if err != nil && !errors.Is(err, entities.ErrQuestionNotFound) {
			return nil, fmt.Errorf("get question %d: %w", res.QuestionID, err)
		}
		items = append(items, ReviewItem{Question: q, Result: res})
	}

	return items, nil
}

// Stats returns aggregated results of all of the user's attempts.
func (s *QuizService) Stats(ctx context.Context, userID int64) (entities.Stats, error) {
	return s.attemptRepo.Stats(ctx, userID)
}

// AbandonIdle drops quizzes without activity for longer than the session TTL.
func (s *QuizService) AbandonIdle(now time.Time) int {
	if s.cfg.SessionTTL <= 0 {
		return 0
	}

	abandoned := 0
	for _, quiz := range s.quizzes.Snapshot() {
		quiz.mu.Lock()
		idle := now.Sub(quiz.session.LastActivityAt) > s.cfg.SessionTTL
		if idle {
			quiz.session.Abandon()
		}
		id := quiz.session.ID
		quiz.mu.Unlock()

		if idle {
			s.quizzes.Delete(id)
			abandoned++
		}
	}

	return abandoned
}

func (s *QuizService) lookup(userID int64, sessionID string) (*activeQuiz, error) {
	quiz, ok := s.quizzes.Get(sessionID)
	if !ok || quiz.session.UserID != userID {
		return nil, ErrSessionNotFound
	}
	return quiz, nil
}

func (s *QuizService) clampLimit(limit int) int {
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	if s.cfg.MaxLimit > 0 && limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}
	return limit
}

// view must be called with quiz.mu held.
func (q *activeQuiz) view() *QuestionView {
	idx := q.session.CurrentIndex
	p := q.presenters.Get(q.session.Questions[idx])
	total := q.session.Total()
	answered := q.tracker.Answered()

	return &QuestionView{
		View:          p.View(),
		SessionID:     q.session.ID,
		Index:         idx,
		Total:         total,
		AnsweredCount: answered,
		CanGoBack:     idx > 0,
		CanGoForward:  idx < total-1,
		CanFinish:     answered == total,
	}
}

// normalizeTopics trims names and drops blanks and duplicates, keeping order.
func normalizeTopics(topics []string) []string {
	seen := make(map[string]struct{}, len(topics))
	out := make([]string, 0, len(topics))
	for _, t := range topics {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
