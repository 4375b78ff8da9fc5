package presenter

import (
	"github.com/aliskhannn/mi-quiz-bot/internal/domain/entities"
)

// Mark is how an option is highlighted once the question is revealed.
type Mark int

const (
	MarkNone Mark = iota
	MarkCorrect
	MarkWrong
)

// OptionView is one tappable option.
type OptionView struct {
	Label string // "A", "B", ... for multiple choice, empty otherwise
	Text  string
	Mark  Mark
}

// View is everything needed to render a question in its current state.
type View struct {
	Question *entities.Question
	Options  []OptionView // display order; nil for open ended questions
	Answered bool
	Result   entities.Result
	// CorrectText is the correct option or true/false value, empty if unknown
	// or the question is open ended.
	CorrectText string
}

// View renders the current state. Options are only marked after an answer.
func (p *Presenter) View() View {
	p.Prepare()

	v := View{
		Question: &p.question,
		Answered: p.state == StateAnswered,
		Result:   p.result,
	}

	switch p.question.Type {
	case entities.QuestionTypeMultipleChoice:
		v.Options, v.CorrectText = p.choiceOptions(v.Answered)
	case entities.QuestionTypeTrueFalse:
		v.Options, v.CorrectText = p.trueFalseOptions(v.Answered)
	}

	return v
}

func (p *Presenter) choiceOptions(answered bool) ([]OptionView, string) {
	if p.mapping == nil {
		return nil, ""
	}

	correct := p.CorrectPosition()
	selected := NoCorrectIndex
	if answered {
		if a, ok := p.result.Answer.(entities.MultipleChoiceAnswer); ok {
			selected = int(a)
		}
	}

	out := make([]OptionView, len(p.mapping.Options))
	for i, text := range p.mapping.Options {
		out[i] = OptionView{Label: string(rune('A' + i)), Text: text}
		if !answered {
			continue
		}
		switch i {
		case correct:
			out[i].Mark = MarkCorrect
		case selected:
			out[i].Mark = MarkWrong
		}
	}

	correctText := ""
	if correct != NoCorrectIndex {
		correctText = p.mapping.Options[correct]
	}
	return out, correctText
}

func (p *Presenter) trueFalseOptions(answered bool) ([]OptionView, string) {
	out := []OptionView{{Text: "True"}, {Text: "False"}}
	key := p.question.CorrectAnswer

	correctText := ""
	if key != nil {
		correctText = out[boolPosition(*key)].Text
	}

	if !answered {
		return out, correctText
	}

	if key != nil {
		out[boolPosition(*key)].Mark = MarkCorrect
	}
	if a, ok := p.result.Answer.(entities.TrueFalseAnswer); ok && !p.result.IsCorrect {
		out[boolPosition(bool(a))].Mark = MarkWrong
	}

	return out, correctText
}

func boolPosition(v bool) int {
	if v {
		return 0
	}
	return 1
}
