package presenter

import (
	"testing"

	"github.com/aliskhannn/mi-quiz-bot/internal/domain/entities"
)

func marks(v View) []Mark {
	out := make([]Mark, len(v.Options))
	for i, o := range v.Options {
		out[i] = o.Mark
	}
	return out
}

func TestView_MultipleChoice(t *testing.T) {
	// Display order after the scripted swaps: B, C, D, A. "C" is at 1.
	p := New(multipleChoice(intPtr(2), "A", "B", "C", "D"), &scriptedRand{values: []int{0, 0, 0}})

	v := p.View()
	if v.Answered {
		t.Fatal("fresh view reported answered")
	}
	for i, o := range v.Options {
		if o.Mark != MarkNone {
			t.Fatalf("option %d marked before answering", i)
		}
	}
	if v.Options[0].Label != "A" || v.Options[3].Label != "D" {
		t.Fatalf("labels = %q..%q", v.Options[0].Label, v.Options[3].Label)
	}
	if v.CorrectText != "C" {
		t.Fatalf("correct text = %q, want C", v.CorrectText)
	}

	if _, err := p.Submit(entities.MultipleChoiceAnswer(3)); err != nil {
		t.Fatal(err)
	}

	v = p.View()
	want := []Mark{MarkNone, MarkCorrect, MarkNone, MarkWrong}
	got := marks(v)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("marks = %v, want %v", got, want)
		}
	}
	if !v.Answered || v.Result.IsCorrect {
		t.Fatalf("result = %+v", v.Result)
	}
}

func TestView_MultipleChoiceCorrectSelection(t *testing.T) {
	p := New(multipleChoice(intPtr(2), "A", "B", "C", "D"), &scriptedRand{values: []int{0, 0, 0}})
	p.Prepare()
	if _, err := p.Submit(entities.MultipleChoiceAnswer(1)); err != nil {
		t.Fatal(err)
	}

	got := marks(p.View())
	want := []Mark{MarkNone, MarkCorrect, MarkNone, MarkNone}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("marks = %v, want %v", got, want)
		}
	}
}

func TestView_MalformedHasNoCorrectMark(t *testing.T) {
	p := New(multipleChoice(intPtr(99), "A", "B", "C", "D"), &scriptedRand{})
	p.Prepare()
	if _, err := p.Submit(entities.MultipleChoiceAnswer(0)); err != nil {
		t.Fatal(err)
	}

	v := p.View()
	if v.CorrectText != "" {
		t.Fatalf("correct text = %q, want empty", v.CorrectText)
	}
	for i, o := range v.Options {
		if o.Mark == MarkCorrect {
			t.Fatalf("option %d marked correct", i)
		}
	}
	if v.Options[0].Mark != MarkWrong {
		t.Fatalf("selected option mark = %v, want MarkWrong", v.Options[0].Mark)
	}
}

func TestView_TrueFalse(t *testing.T) {
	p := New(trueFalse(boolPtr(true)), &scriptedRand{})

	v := p.View()
	if len(v.Options) != 2 || v.Options[0].Text != "True" || v.Options[1].Text != "False" {
		t.Fatalf("options = %+v", v.Options)
	}

	if _, err := p.Submit(entities.TrueFalseAnswer(false)); err != nil {
		t.Fatal(err)
	}
	v = p.View()
	if v.Options[0].Mark != MarkCorrect || v.Options[1].Mark != MarkWrong {
		t.Fatalf("marks = %v", marks(v))
	}
	if v.CorrectText != "True" {
		t.Fatalf("correct text = %q", v.CorrectText)
	}
}

func TestView_OpenEnded(t *testing.T) {
	p := New(openEnded(), &scriptedRand{})
	v := p.View()
	if v.Options != nil {
		t.Fatalf("open ended view has options: %+v", v.Options)
	}
	if p.State() != StatePrepared {
		t.Fatalf("View should prepare, state = %s", p.State())
	}
}
