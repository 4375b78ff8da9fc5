package service

import (
	"github.com/aliskhannn/mi-quiz-bot/internal/domain/entities"
)

// Tracker accumulates graded answers of one quiz session. Only the first
// result per question is kept.
type Tracker struct {
	results []entities.Result
	seen    map[int64]struct{}
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		seen: make(map[int64]struct{}),
	}
}

// Record adds a result. It returns false if the question was already answered.
func (t *Tracker) Record(r entities.Result) bool {
	if _, ok := t.seen[r.QuestionID]; ok {
		return false
	}
	t.seen[r.QuestionID] = struct{}{}
	t.results = append(t.results, r)
	return true
}

// Has reports whether a result for the question was recorded.
func (t *Tracker) Has(questionID int64) bool {
	_, ok := t.seen[questionID]
	return ok
}

// Results returns the recorded results in answer order.
func (t *Tracker) Results() []entities.Result {
	out := make([]entities.Result, len(t.results))
	copy(out, t.results)
	return out
}

// Answered returns the number of answered questions.
func (t *Tracker) Answered() int {
	return len(t.results)
}

// Correct returns the number of correct answers.
func (t *Tracker) Correct() int {
	n := 0
	for _, r := range t.results {
		if r.IsCorrect {
			n++
		}
	}
	return n
}

// Percentage returns the rounded share of correct answers among answered ones.
func (t *Tracker) Percentage() int {
	return entities.Percent(t.Correct(), t.Answered())
}
