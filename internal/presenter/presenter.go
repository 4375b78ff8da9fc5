package presenter

import (
	"errors"
	"fmt"

	"github.com/aliskhannn/mi-quiz-bot/internal/domain/entities"
)

var (
	ErrAnswerMismatch = errors.New("answer does not match question type")
	ErrOptionNotFound = errors.New("option not found")
)

// State is the lifecycle position of one presented question.
type State int

const (
	StateUnprepared State = iota
	StatePrepared
	StateAnswered
)

func (s State) String() string {
	switch s {
	case StateUnprepared:
		return "unprepared"
	case StatePrepared:
		return "prepared"
	case StateAnswered:
		return "answered"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// IssueReporter receives content problems found in question data.
type IssueReporter interface {
	ReportIssue(q *entities.Question, err error)
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithIssueReporter sets where malformed question data is reported.
func WithIssueReporter(r IssueReporter) Option {
	return func(p *Presenter) {
		p.reporter = r
	}
}

// Presenter holds the display and grading state of a single question.
// It moves Unprepared -> Prepared -> Answered and never goes back.
// A Presenter is not safe for concurrent use.
type Presenter struct {
	question entities.Question
	rng      Rand
	reporter IssueReporter

	state   State
	mapping *Mapping
	issue   error
	result  entities.Result
}

// New creates a presenter for q. Nothing is shuffled until Prepare is called.
func New(q entities.Question, rng Rand, opts ...Option) *Presenter {
	p := &Presenter{
		question: q,
		rng:      rng,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Question returns the presented question.
func (p *Presenter) Question() *entities.Question {
	return &p.question
}

// State returns the current lifecycle state.
func (p *Presenter) State() State {
	return p.state
}

// Issue returns the content problem found while preparing, if any.
func (p *Presenter) Issue() error {
	return p.issue
}

// Prepare shuffles the options of a multiple choice question. It returns nil
// for other question types and for questions without options. Only the first
// call shuffles; later calls return the same mapping.
func (p *Presenter) Prepare() *Mapping {
	if p.state != StateUnprepared {
		return p.mapping
	}

	if err := p.question.Validate(); err != nil {
		p.issue = err
		if p.reporter != nil {
			p.reporter.ReportIssue(&p.question, err)
		}
	}

	if p.question.IsMultipleChoice() && len(p.question.Options) > 0 {
		p.mapping = Shuffle(p.question.Options, p.question.CorrectAnswerIndex, p.rng)
	}

	p.state = StatePrepared
	return p.mapping
}

// Mapping returns the shuffle mapping, or nil if there is none.
func (p *Presenter) Mapping() *Mapping {
	return p.mapping
}

// Submit grades the answer. The first accepted answer is final: later calls
// return the recorded result unchanged. An answer of the wrong kind is
// rejected with ErrAnswerMismatch and leaves the state untouched.
func (p *Presenter) Submit(a entities.Answer) (entities.Result, error) {
	if p.state == StateAnswered {
		return p.result, nil
	}

	if a == nil || a.Kind() != p.question.Type {
		return entities.Result{}, fmt.Errorf("%w: question %d is %s", ErrAnswerMismatch, p.question.ID, p.question.Type)
	}

	p.Prepare()

	p.result = entities.Result{
		QuestionID: p.question.ID,
		Answer:     a,
		IsCorrect:  p.grade(a),
	}
	p.state = StateAnswered

	return p.result, nil
}

// Result returns the recorded result and whether the question was answered.
func (p *Presenter) Result() (entities.Result, bool) {
	return p.result, p.state == StateAnswered
}

// CorrectPosition returns the display position of the correct option, or
// NoCorrectIndex when the question cannot be answered correctly.
func (p *Presenter) CorrectPosition() int {
	if p.mapping == nil || len(p.mapping.Options) < entities.MinOptions {
		return NoCorrectIndex
	}
	return p.mapping.CorrectIndex
}

func (p *Presenter) grade(a entities.Answer) bool {
	switch v := a.(type) {
	case entities.MultipleChoiceAnswer:
		correct := p.CorrectPosition()
		return correct != NoCorrectIndex && int(v) == correct
	case entities.TrueFalseAnswer:
		return p.question.CorrectAnswer != nil && bool(v) == *p.question.CorrectAnswer
	case entities.OpenEndedAnswer:
		// Free text is recorded as submitted, not graded.
		return true
	default:
		return false
	}
}

// AnswerFor converts a tapped option position into the answer variant of this
// question. Multiple choice positions are display positions; true/false uses
// 0 for true and 1 for false.
func (p *Presenter) AnswerFor(position int) (entities.Answer, error) {
	switch p.question.Type {
	case entities.QuestionTypeMultipleChoice:
		if p.mapping == nil || position < 0 || position >= len(p.mapping.Options) {
			return nil, fmt.Errorf("%w: position %d", ErrOptionNotFound, position)
		}
		return entities.MultipleChoiceAnswer(position), nil
	case entities.QuestionTypeTrueFalse:
		if position != 0 && position != 1 {
			return nil, fmt.Errorf("%w: position %d", ErrOptionNotFound, position)
		}
		return entities.TrueFalseAnswer(position == 0), nil
	default:
		return nil, fmt.Errorf("%w: question %d takes free text", ErrAnswerMismatch, p.question.ID)
	}
}
