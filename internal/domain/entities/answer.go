package entities

import (
	"errors"
	"fmt"
	"strconv"
)

// Answer is a learner's selection for one question. The concrete type
// determines which kind of question it can answer.
type Answer interface {
	// Kind returns the question type this answer belongs to.
	Kind() QuestionType
	// String renders the answer for storage and logs.
	String() string

	isAnswer()
}

// MultipleChoiceAnswer is a position in the shuffled option order.
type MultipleChoiceAnswer int

func (MultipleChoiceAnswer) Kind() QuestionType { return QuestionTypeMultipleChoice }
func (a MultipleChoiceAnswer) String() string   { return strconv.Itoa(int(a)) }
func (MultipleChoiceAnswer) isAnswer()          {}

// TrueFalseAnswer is the learner's true/false choice.
type TrueFalseAnswer bool

func (TrueFalseAnswer) Kind() QuestionType { return QuestionTypeTrueFalse }
func (a TrueFalseAnswer) String() string   { return strconv.FormatBool(bool(a)) }
func (TrueFalseAnswer) isAnswer()          {}

// OpenEndedAnswer is free text, possibly empty.
type OpenEndedAnswer string

func (OpenEndedAnswer) Kind() QuestionType { return QuestionTypeOpenEnded }
func (a OpenEndedAnswer) String() string   { return string(a) }
func (OpenEndedAnswer) isAnswer()          {}

// Result is the outcome of one graded answer, handed to the score tracker verbatim.
type Result struct {
	QuestionID int64
	Answer     Answer
	IsCorrect  bool
}

// ErrUnknownAnswerKind is returned by ParseAnswer for unsupported kinds.
var ErrUnknownAnswerKind = errors.New("unknown answer kind")

// ParseAnswer restores an answer stored as its kind and String form.
func ParseAnswer(kind QuestionType, value string) (Answer, error) {
	switch kind {
	case QuestionTypeMultipleChoice:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("parse choice %q: %w", value, err)
		}
		return MultipleChoiceAnswer(n), nil
	case QuestionTypeTrueFalse:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("parse true/false %q: %w", value, err)
		}
		return TrueFalseAnswer(b), nil
	case QuestionTypeOpenEnded:
		return OpenEndedAnswer(value), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAnswerKind, kind)
	}
}
