// Package entities contains domain entities used across the application.
package entities

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// QuestionType identifies how a question is answered and graded.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeTrueFalse      QuestionType = "true_false"
	QuestionTypeOpenEnded      QuestionType = "open_ended"
)

// MinOptions is the smallest option list a multiple choice question can be graded with.
const MinOptions = 2

var (
	// ErrMalformedQuestion marks question records that cannot be graded as stored.
	ErrMalformedQuestion = errors.New("malformed question data")
	ErrQuestionNotFound  = errors.New("question not found")
)

var validate = validator.New()

// Question is a read-only question record as supplied by the question store.
// Options and CorrectAnswerIndex are used by multiple choice questions only,
// CorrectAnswer by true/false questions only.
type Question struct {
	ID                 int64        `json:"id" validate:"required"`
	Topic              string       `json:"topic" validate:"required"`
	Type               QuestionType `json:"type" validate:"oneof=multiple_choice true_false open_ended"`
	Text               string       `json:"question" validate:"required"`
	Options            []string     `json:"options,omitempty"`            // canonical order
	CorrectAnswerIndex *int         `json:"correctAnswerIndex,omitempty"` // index into Options
	CorrectAnswer      *bool        `json:"correctAnswer,omitempty"`      // true/false key
	SuggestedAnswer    *string      `json:"suggestedAnswer,omitempty"`    // shown after an open ended answer
	CreatedAt          time.Time    `json:"createdAt"`
}

// IsMultipleChoice reports whether the question is shown with shuffled options.
func (q *Question) IsMultipleChoice() bool {
	return q.Type == QuestionTypeMultipleChoice
}

// HasValidKey reports whether CorrectAnswerIndex points into Options.
func (q *Question) HasValidKey() bool {
	if q.CorrectAnswerIndex == nil {
		return false
	}
	i := *q.CorrectAnswerIndex
	return i >= 0 && i < len(q.Options)
}

// Validate checks the record for content problems. Every returned error wraps
// ErrMalformedQuestion. A malformed question is still presentable; it just can
// never be answered correctly.
func (q *Question) Validate() error {
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("%w: question %d: %v", ErrMalformedQuestion, q.ID, err)
	}

	switch q.Type {
	case QuestionTypeMultipleChoice:
		if len(q.Options) < MinOptions {
			return fmt.Errorf("%w: question %d has %d options", ErrMalformedQuestion, q.ID, len(q.Options))
		}
		if q.CorrectAnswerIndex == nil {
			return fmt.Errorf("%w: question %d has no correct answer index", ErrMalformedQuestion, q.ID)
		}
		if !q.HasValidKey() {
			return fmt.Errorf("%w: question %d correct answer index %d out of range [0, %d)",
				ErrMalformedQuestion, q.ID, *q.CorrectAnswerIndex, len(q.Options))
		}
	case QuestionTypeTrueFalse:
		if q.CorrectAnswer == nil {
			return fmt.Errorf("%w: question %d has no true/false key", ErrMalformedQuestion, q.ID)
		}
	}

	return nil
}
