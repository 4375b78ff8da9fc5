package service

import (
	"testing"

	"github.com/aliskhannn/mi-quiz-bot/internal/domain/entities"
)

func TestTracker_FirstResultWins(t *testing.T) {
	tr := NewTracker()

	if !tr.Record(entities.Result{QuestionID: 1, IsCorrect: true}) {
		t.Fatal("first record rejected")
	}
	if tr.Record(entities.Result{QuestionID: 1, IsCorrect: false}) {
		t.Fatal("second record for the same question accepted")
	}
	tr.Record(entities.Result{QuestionID: 2, IsCorrect: false})

	if tr.Answered() != 2 {
		t.Fatalf("Answered = %d, want 2", tr.Answered())
	}
	if tr.Correct() != 1 {
		t.Fatalf("Correct = %d, want 1", tr.Correct())
	}
	if !tr.Results()[0].IsCorrect {
		t.Fatal("first result was overwritten")
	}
}

func TestTracker_Percentage(t *testing.T) {
	tests := []struct {
		name    string
		correct []bool
		want    int
	}{
		{"empty", nil, 0},
		{"all correct", []bool{true, true}, 100},
		{"one of three", []bool{true, false, false}, 33},
		{"two of three", []bool{true, true, false}, 67},
		{"half", []bool{true, false}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker()
			for i, c := range tt.correct {
				tr.Record(entities.Result{QuestionID: int64(i + 1), IsCorrect: c})
			}
			if got := tr.Percentage(); got != tt.want {
				t.Errorf("Percentage = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTracker_ResultsIsCopy(t *testing.T) {
	tr := NewTracker()
	tr.Record(entities.Result{QuestionID: 1, IsCorrect: true})

	rs := tr.Results()
	rs[0].IsCorrect = false

	if !tr.Results()[0].IsCorrect {
		t.Fatal("Results exposed internal slice")
	}
}
