package entities

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Session statuses.
const (
	SessionActive    = "active"
	SessionCompleted = "completed"
	SessionAbandoned = "abandoned"
)

// QuizSession represents a quiz a user is currently taking.
// It tracks the questions drawn for the quiz, which one is on screen and timestamps.
type QuizSession struct {
	ID             string     // unique session ID
	UserID         int64      // user ID who started the quiz
	ChatID         int64      // chat the quiz is rendered in
	Topics         []string   // topics the questions were drawn from
	Questions      []Question // questions in presentation order
	CurrentIndex   int        // zero-based index of the question on screen
	MessageID      int        // message holding the current question (0 if none yet)
	SessionStatus  string     // "active", "completed" or "abandoned"
	StartedAt      time.Time  // timestamp when the quiz started
	LastActivityAt time.Time  // last time the user interacted with the quiz
	CompletedAt    *time.Time // timestamp when the quiz was completed (nullable)
}

// NewQuizSession creates a new active quiz session for a user.
func NewQuizSession(userID, chatID int64, topics []string, questions []Question) *QuizSession {
	now := time.Now()
	return &QuizSession{
		ID:             uuid.NewString(),
		UserID:         userID,
		ChatID:         chatID,
		Topics:         topics,
		Questions:      questions,
		SessionStatus:  SessionActive,
		StartedAt:      now,
		LastActivityAt: now,
	}
}

// IsActive reports whether the session still accepts answers.
func (qs *QuizSession) IsActive() bool {
	return qs.SessionStatus == SessionActive
}

// Total returns the number of questions in the quiz.
func (qs *QuizSession) Total() int {
	return len(qs.Questions)
}

// Current returns the question on screen.
func (qs *QuizSession) Current() *Question {
	if qs.CurrentIndex < 0 || qs.CurrentIndex >= len(qs.Questions) {
		return nil
	}
	return &qs.Questions[qs.CurrentIndex]
}

// Touch records user activity.
func (qs *QuizSession) Touch(now time.Time) {
	qs.LastActivityAt = now
}

// Complete marks the quiz session as completed and sets the completion timestamp.
func (qs *QuizSession) Complete() {
	qs.SessionStatus = SessionCompleted
	now := time.Now()
	qs.CompletedAt = &now
}

// Abandon marks the quiz session as abandoned.
func (qs *QuizSession) Abandon() {
	qs.SessionStatus = SessionAbandoned
}

// QuizAttempt is a finished quiz as stored in history.
type QuizAttempt struct {
	ID             int64
	UserID         int64
	Topics         []string
	TotalQuestions int
	CorrectAnswers int
	Percentage     int
	Answers        []Result
	CreatedAt      time.Time
}

// NewQuizAttempt summarises results into an attempt. The percentage is
// computed over answered questions and rounded half away from zero.
func NewQuizAttempt(userID int64, topics []string, results []Result) *QuizAttempt {
	correct := 0
	for _, r := range results {
		if r.IsCorrect {
			correct++
		}
	}

	return &QuizAttempt{
		UserID:         userID,
		Topics:         topics,
		TotalQuestions: len(results),
		CorrectAnswers: correct,
		Percentage:     Percent(correct, len(results)),
		Answers:        results,
		CreatedAt:      time.Now(),
	}
}

// Stats aggregates all attempts of a user.
type Stats struct {
	TotalAttempts  int
	TotalQuestions int
	TotalCorrect   int
	AverageScore   int
}

// NewStats computes the average score from totals.
func NewStats(attempts, questions, correct int) Stats {
	return Stats{
		TotalAttempts:  attempts,
		TotalQuestions: questions,
		TotalCorrect:   correct,
		AverageScore:   Percent(correct, questions),
	}
}

// Percent returns round(part/total*100), or 0 when total is 0.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
