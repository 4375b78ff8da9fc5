package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/mi-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/mi-quiz-bot/internal/presenter"
)

type zeroRand struct{}

func (zeroRand) Intn(int) int { return 0 }

type fakeQuestionRepo struct {
	questions []entities.Question
	gotTopics []string
	gotLimit  int
	err       error
}

func (r *fakeQuestionRepo) GetQuestions(_ context.Context, topics []string, limit int) ([]entities.Question, error) {
	r.gotTopics = topics
	r.gotLimit = limit
	if r.err != nil {
		return nil, r.err
	}
	if limit < len(r.questions) {
		return r.questions[:limit], nil
	}
	return r.questions, nil
}

func (r *fakeQuestionRepo) GetByID(_ context.Context, id int64) (*entities.Question, error) {
	for i := range r.questions {
		if r.questions[i].ID == id {
			return &r.questions[i], nil
		}
	}
	return nil, entities.ErrQuestionNotFound
}

type fakeAttemptRepo struct {
	saved []*entities.QuizAttempt
	err   error
}

func (r *fakeAttemptRepo) Save(_ context.Context, a *entities.QuizAttempt) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.saved = append(r.saved, a)
	return int64(len(r.saved)), nil
}

func (r *fakeAttemptRepo) ListByUser(_ context.Context, userID int64, _ int) ([]*entities.QuizAttempt, error) {
	var out []*entities.QuizAttempt
	for _, a := range r.saved {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAttemptRepo) GetAnswers(_ context.Context, userID, attemptID int64) ([]entities.Result, error) {
	if attemptID < 1 || int(attemptID) > len(r.saved) {
		return nil, nil
	}
	a := r.saved[attemptID-1]
	if a.UserID != userID {
		return nil, nil
	}
	return a.Answers, nil
}

func (r *fakeAttemptRepo) Stats(_ context.Context, userID int64) (entities.Stats, error) {
	attempts, questions, correct := 0, 0, 0
	for _, a := range r.saved {
		if a.UserID == userID {
			attempts++
			questions += a.TotalQuestions
			correct += a.CorrectAnswers
		}
	}
	return entities.NewStats(attempts, questions, correct), nil
}

type countingReporter struct{ n int }

func (r *countingReporter) ReportIssue(*entities.Question, error) { r.n++ }

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func sampleQuestions() []entities.Question {
	return []entities.Question{
		{
			ID: 1, Topic: "Go", Type: entities.QuestionTypeMultipleChoice,
			Text:               "Which keyword starts a goroutine?",
			Options:            []string{"go", "async", "spawn"},
			CorrectAnswerIndex: intPtr(0),
		},
		{
			ID: 2, Topic: "Go", Type: entities.QuestionTypeTrueFalse,
			Text:          "Maps are safe for concurrent writes.",
			CorrectAnswer: boolPtr(false),
		},
		{
			ID: 3, Topic: "Go", Type: entities.QuestionTypeOpenEnded,
			Text: "Name a use of context.Context.",
		},
	}
}

func newTestQuizService(questions *fakeQuestionRepo, attempts *fakeAttemptRepo, reporter presenter.IssueReporter) *QuizService {
	s := NewQuizService(questions, attempts, reporter, QuizConfig{
		DefaultLimit: 10,
		MaxLimit:     20,
		SessionTTL:   time.Minute,
	}, zap.NewNop())
	s.SetRandSource(func() presenter.Rand { return zeroRand{} })
	return s
}

func positionOf(t *testing.T, v *QuestionView, text string) int {
	t.Helper()
	for i, o := range v.Options {
		if o.Text == text {
			return i
		}
	}
	t.Fatalf("option %q not shown", text)
	return -1
}

func TestQuizService_StartQuiz(t *testing.T) {
	questions := &fakeQuestionRepo{questions: sampleQuestions()}
	s := newTestQuizService(questions, &fakeAttemptRepo{}, nil)

	v, err := s.StartQuiz(context.Background(), 7, 70, []string{" Go ", "", "Go"}, 0)
	if err != nil {
		t.Fatalf("StartQuiz: %v", err)
	}

	if len(questions.gotTopics) != 1 || questions.gotTopics[0] != "Go" {
		t.Fatalf("topics = %v, want [Go]", questions.gotTopics)
	}
	if questions.gotLimit != 10 {
		t.Fatalf("limit = %d, want default 10", questions.gotLimit)
	}
	if v.Index != 0 || v.Total != 3 || v.AnsweredCount != 0 {
		t.Fatalf("view = index %d total %d answered %d", v.Index, v.Total, v.AnsweredCount)
	}
	if v.CanGoBack || !v.CanGoForward || v.CanFinish {
		t.Fatalf("navigation flags = %v %v %v", v.CanGoBack, v.CanGoForward, v.CanFinish)
	}
	if len(v.Options) != 3 {
		t.Fatalf("options = %d, want 3", len(v.Options))
	}
}

func TestQuizService_StartQuizLimits(t *testing.T) {
	questions := &fakeQuestionRepo{questions: sampleQuestions()}
	s := newTestQuizService(questions, &fakeAttemptRepo{}, nil)

	if _, err := s.StartQuiz(context.Background(), 1, 1, []string{"Go"}, 500); err != nil {
		t.Fatal(err)
	}
	if questions.gotLimit != 20 {
		t.Fatalf("limit = %d, want capped 20", questions.gotLimit)
	}
}

func TestQuizService_StartQuizErrors(t *testing.T) {
	ctx := context.Background()

	s := newTestQuizService(&fakeQuestionRepo{}, &fakeAttemptRepo{}, nil)
	if _, err := s.StartQuiz(ctx, 1, 1, nil, 5); !errors.Is(err, ErrNoTopicsSelected) {
		t.Fatalf("no topics: err = %v", err)
	}
	if _, err := s.StartQuiz(ctx, 1, 1, []string{"Go"}, 5); !errors.Is(err, ErrNoQuestionsAvailable) {
		t.Fatalf("empty bank: err = %v", err)
	}

	boom := errors.New("boom")
	s = newTestQuizService(&fakeQuestionRepo{err: boom}, &fakeAttemptRepo{}, nil)
	if _, err := s.StartQuiz(ctx, 1, 1, []string{"Go"}, 5); !errors.Is(err, boom) {
		t.Fatalf("repo failure: err = %v", err)
	}
}

func TestQuizService_AnswerFlow(t *testing.T) {
	ctx := context.Background()
	attempts := &fakeAttemptRepo{}
	s := newTestQuizService(&fakeQuestionRepo{questions: sampleQuestions()}, attempts, nil)

	v, err := s.StartQuiz(ctx, 7, 70, []string{"Go"}, 3)
	if err != nil {
		t.Fatal(err)
	}
	sid := v.SessionID

	if _, err := s.Finish(ctx, 7, sid); !errors.Is(err, ErrQuizNotFinished) {
		t.Fatalf("early finish: err = %v", err)
	}

	v, err = s.AnswerOption(ctx, 7, sid, 0, positionOf(t, v, "go"))
	if err != nil {
		t.Fatalf("answer mc: %v", err)
	}
	if !v.Answered || !v.Result.IsCorrect {
		t.Fatalf("mc result = %+v", v.Result)
	}

	// True/false: position 1 is "false".
	v, err = s.AnswerOption(ctx, 7, sid, 1, 1)
	if err != nil {
		t.Fatalf("answer tf: %v", err)
	}
	if !v.Result.IsCorrect || v.Index != 1 {
		t.Fatalf("tf view = index %d result %+v", v.Index, v.Result)
	}

	if _, err := s.Navigate(ctx, 7, sid, 2); err != nil {
		t.Fatal(err)
	}
	v, err = s.AnswerText(ctx, 7, "  cancellation ")
	if err != nil {
		t.Fatalf("answer text: %v", err)
	}
	if v.Result.Answer != entities.OpenEndedAnswer("  cancellation ") {
		t.Fatalf("text answer = %v", v.Result.Answer)
	}
	if !v.CanFinish {
		t.Fatal("quiz should be finishable")
	}

	attempt, err := s.Finish(ctx, 7, sid)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if attempt.ID != 1 || attempt.CorrectAnswers != 3 || attempt.Percentage != 100 {
		t.Fatalf("attempt = %+v", attempt)
	}
	if len(attempts.saved) != 1 {
		t.Fatalf("saved %d attempts", len(attempts.saved))
	}

	if _, err := s.Current(ctx, 7); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("finished quiz still current: %v", err)
	}
	if _, err := s.Finish(ctx, 7, sid); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("second finish: err = %v", err)
	}
}

func TestQuizService_AnswerIsFinal(t *testing.T) {
	ctx := context.Background()
	s := newTestQuizService(&fakeQuestionRepo{questions: sampleQuestions()}, &fakeAttemptRepo{}, nil)

	v, _ := s.StartQuiz(ctx, 1, 1, []string{"Go"}, 3)
	wrong := positionOf(t, v, "spawn")
	right := positionOf(t, v, "go")

	v, err := s.AnswerOption(ctx, 1, v.SessionID, 0, wrong)
	if err != nil {
		t.Fatal(err)
	}
	if v.Result.IsCorrect {
		t.Fatal("wrong option graded correct")
	}

	v, err = s.AnswerOption(ctx, 1, v.SessionID, 0, right)
	if err != nil {
		t.Fatal(err)
	}
	if v.Result.IsCorrect || v.AnsweredCount != 1 {
		t.Fatalf("second answer changed the outcome: %+v answered=%d", v.Result, v.AnsweredCount)
	}
	if v.Options[wrong].Mark != presenter.MarkWrong || v.Options[right].Mark != presenter.MarkCorrect {
		t.Fatalf("marks = %+v", v.Options)
	}
}

func TestQuizService_NavigationKeepsOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestQuizService(&fakeQuestionRepo{questions: sampleQuestions()}, &fakeAttemptRepo{}, nil)

	first, _ := s.StartQuiz(ctx, 1, 1, []string{"Go"}, 3)
	if _, err := s.Navigate(ctx, 1, first.SessionID, 1); err != nil {
		t.Fatal(err)
	}
	back, err := s.Navigate(ctx, 1, first.SessionID, 0)
	if err != nil {
		t.Fatal(err)
	}

	for i := range first.Options {
		if first.Options[i].Text != back.Options[i].Text {
			t.Fatalf("option order changed: %v vs %v", first.Options, back.Options)
		}
	}

	if _, err := s.Navigate(ctx, 1, first.SessionID, 3); !errors.Is(err, ErrQuestionOutOfRange) {
		t.Fatalf("out of range: err = %v", err)
	}
}

func TestQuizService_Mismatches(t *testing.T) {
	ctx := context.Background()
	s := newTestQuizService(&fakeQuestionRepo{questions: sampleQuestions()}, &fakeAttemptRepo{}, nil)

	v, _ := s.StartQuiz(ctx, 1, 1, []string{"Go"}, 3)

	if _, err := s.Answer(ctx, 1, v.SessionID, 0, entities.TrueFalseAnswer(true)); !errors.Is(err, presenter.ErrAnswerMismatch) {
		t.Fatalf("wrong kind: err = %v", err)
	}
	if _, err := s.AnswerText(ctx, 1, "text"); !errors.Is(err, ErrNotAwaitingText) {
		t.Fatalf("text on mc: err = %v", err)
	}
	if _, err := s.AnswerOption(ctx, 1, v.SessionID, 0, 9); !errors.Is(err, presenter.ErrOptionNotFound) {
		t.Fatalf("bad position: err = %v", err)
	}
	if _, err := s.AnswerOption(ctx, 2, v.SessionID, 0, 0); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("other user: err = %v", err)
	}

	cur, err := s.Current(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if cur.AnsweredCount != 0 {
		t.Fatal("rejected answers were recorded")
	}
}

func TestQuizService_NewQuizReplacesOld(t *testing.T) {
	ctx := context.Background()
	s := newTestQuizService(&fakeQuestionRepo{questions: sampleQuestions()}, &fakeAttemptRepo{}, nil)

	first, _ := s.StartQuiz(ctx, 1, 1, []string{"Go"}, 3)
	second, _ := s.StartQuiz(ctx, 1, 1, []string{"Go"}, 2)

	if first.SessionID == second.SessionID {
		t.Fatal("session id reused")
	}
	if _, err := s.Navigate(ctx, 1, first.SessionID, 1); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("old session still reachable: %v", err)
	}
	cur, err := s.Current(ctx, 1)
	if err != nil || cur.SessionID != second.SessionID {
		t.Fatalf("Current = %v, %v", cur, err)
	}
}

func TestQuizService_MalformedQuestionReported(t *testing.T) {
	ctx := context.Background()
	bad := entities.Question{
		ID: 9, Topic: "Go", Type: entities.QuestionTypeMultipleChoice,
		Text:               "Broken",
		Options:            []string{"a", "b"},
		CorrectAnswerIndex: intPtr(5),
	}
	reporter := &countingReporter{}
	s := newTestQuizService(&fakeQuestionRepo{questions: []entities.Question{bad}}, &fakeAttemptRepo{}, reporter)

	v, err := s.StartQuiz(ctx, 1, 1, []string{"Go"}, 1)
	if err != nil {
		t.Fatal(err)
	}
	v, err = s.AnswerOption(ctx, 1, v.SessionID, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if v.Result.IsCorrect {
		t.Fatal("malformed question graded correct")
	}
	if reporter.n != 1 {
		t.Fatalf("reported %d times, want 1", reporter.n)
	}
}

func TestQuizService_TextAnswerRecordedVerbatim(t *testing.T) {
	ctx := context.Background()
	attempts := &fakeAttemptRepo{}
	s := newTestQuizService(&fakeQuestionRepo{questions: sampleQuestions()[2:]}, attempts, nil)

	v, err := s.StartQuiz(ctx, 1, 1, []string{"Go"}, 1)
	if err != nil {
		t.Fatal(err)
	}

	v, err = s.AnswerText(ctx, 1, "  hello  ")
	if err != nil {
		t.Fatalf("AnswerText: %v", err)
	}
	if v.Result.Answer != entities.OpenEndedAnswer("  hello  ") || !v.Result.IsCorrect {
		t.Fatalf("result = %+v", v.Result)
	}

	attempt, err := s.Finish(ctx, 1, v.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	if got := attempt.Answers[0].Answer.String(); got != "  hello  " {
		t.Fatalf("stored answer = %q", got)
	}
}

func TestQuizService_AbandonedQuizRejectsActions(t *testing.T) {
	ctx := context.Background()
	s := newTestQuizService(&fakeQuestionRepo{questions: sampleQuestions()}, &fakeAttemptRepo{}, nil)

	v, err := s.StartQuiz(ctx, 1, 1, []string{"Go"}, 3)
	if err != nil {
		t.Fatal(err)
	}
	sid := v.SessionID

	// Abandoned but not yet removed from storage, as during an idle sweep.
	quiz, ok := s.quizzes.Get(sid)
	if !ok {
		t.Fatal("quiz not stored")
	}
	quiz.mu.Lock()
	quiz.session.Abandon()
	quiz.mu.Unlock()

	if _, err := s.Navigate(ctx, 1, sid, 1); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Navigate: err = %v", err)
	}
	if _, err := s.AnswerOption(ctx, 1, sid, 0, 0); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("AnswerOption: err = %v", err)
	}
	if _, err := s.Answer(ctx, 1, sid, 1, entities.TrueFalseAnswer(false)); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Answer: err = %v", err)
	}
	if quiz.tracker.Answered() != 0 {
		t.Fatalf("abandoned quiz recorded %d answers", quiz.tracker.Answered())
	}
}

func TestQuizService_AbandonIdle(t *testing.T) {
	ctx := context.Background()
	s := newTestQuizService(&fakeQuestionRepo{questions: sampleQuestions()}, &fakeAttemptRepo{}, nil)

	if _, err := s.StartQuiz(ctx, 1, 1, []string{"Go"}, 3); err != nil {
		t.Fatal(err)
	}

	if n := s.AbandonIdle(time.Now()); n != 0 {
		t.Fatalf("fresh quiz abandoned: %d", n)
	}
	if n := s.AbandonIdle(time.Now().Add(2 * time.Minute)); n != 1 {
		t.Fatalf("AbandonIdle = %d, want 1", n)
	}
	if _, err := s.Current(ctx, 1); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("idle quiz still active: %v", err)
	}
}

func TestQuizService_HistoryAndStats(t *testing.T) {
	ctx := context.Background()
	attempts := &fakeAttemptRepo{}
	s := newTestQuizService(&fakeQuestionRepo{questions: sampleQuestions()}, attempts, nil)

	attempts.saved = []*entities.QuizAttempt{
		{UserID: 1, TotalQuestions: 4, CorrectAnswers: 3},
		{UserID: 1, TotalQuestions: 4, CorrectAnswers: 1},
		{UserID: 2, TotalQuestions: 10, CorrectAnswers: 10},
	}

	history, err := s.History(ctx, 1, 10)
	if err != nil || len(history) != 2 {
		t.Fatalf("History = %d, %v", len(history), err)
	}

	stats, err := s.Stats(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalAttempts != 2 || stats.TotalCorrect != 4 || stats.AverageScore != 50 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestQuizService_Review(t *testing.T) {
	ctx := context.Background()
	attempts := &fakeAttemptRepo{}
	s := newTestQuizService(&fakeQuestionRepo{questions: sampleQuestions()}, attempts, nil)

	attempts.saved = []*entities.QuizAttempt{
		{
			UserID: 1,
			Answers: []entities.Result{
				{QuestionID: 2, Answer: entities.TrueFalseAnswer(true), IsCorrect: false},
				{QuestionID: 3, Answer: entities.OpenEndedAnswer("deadlines"), IsCorrect: true},
				{QuestionID: 99, Answer: entities.MultipleChoiceAnswer(1), IsCorrect: false},
			},
		},
	}

	items, err := s.Review(ctx, 1, 1)
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items", len(items))
	}
	if items[0].Question == nil || items[0].Question.ID != 2 || items[0].Result.IsCorrect {
		t.Errorf("item 0 = %+v", items[0])
	}
	if items[1].Result.Answer != entities.OpenEndedAnswer("deadlines") {
		t.Errorf("item 1 answer = %v", items[1].Result.Answer)
	}
	if items[2].Question != nil {
		t.Errorf("missing question resolved to %+v", items[2].Question)
	}

	if _, err := s.Review(ctx, 2, 1); !errors.Is(err, ErrAttemptNotFound) {
		t.Errorf("foreign attempt: err = %v", err)
	}
	if _, err := s.Review(ctx, 1, 5); !errors.Is(err, ErrAttemptNotFound) {
		t.Errorf("unknown attempt: err = %v", err)
	}
}
