// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/mi-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/mi-quiz-bot/internal/service"
)

// Error messages.
const (
	msgNoTopicsSelected = "Select at least one topic first."
	msgNoTopics         = "There are no topics yet. Please come back later."
	msgNoQuestions      = "There are no questions for the selected topics yet."
	msgQuizExpired      = "This quiz is no longer active. Start a new one with /quiz."
	msgQuizNotFinished  = "Answer every question before finishing the quiz."
	msgNotAwaitingText  = "Send /quiz to start a quiz or /help to see what I can do."
	msgInvalidAction    = "That action is not available right now."
	msgInternalError    = "Something went wrong. Please try again later."
	msgUnknownCommand   = "Unknown command. Send /help to see the list of commands."
	msgNoHistory        = "You have not finished any quizzes yet. Start one with /quiz."
	msgAttemptNotFound  = "That quiz result is no longer available."
)

const msgHelp = `Commands:

/quiz — pick topics and start a quiz
/topics — list available topics
/history — your latest results, tap one to review it
/stats — your overall score
/help — this message

Tap an option to answer. Open ended questions take your next message as the answer.`

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

func welcomeMessage(firstName string) string {
	greeting := "Welcome!"
	if firstName != "" {
		greeting = fmt.Sprintf("Welcome, %s!", firstName)
	}

	var sb strings.Builder
	sb.WriteString(bold(greeting))
	sb.WriteString("\n\n")
	sb.WriteString(md("Test yourself with short quizzes. Pick one or more topics, choose how many questions you want and go."))
	sb.WriteString("\n\n")
	sb.WriteString(md("Options are shuffled every time, so learn the answer, not its position."))
	return sb.String()
}

// formatTopics lists all topics with descriptions.
func formatTopics(topics []entities.Topic) string {
	var sb strings.Builder
	sb.WriteString(bold("📚 Topics"))
	sb.WriteString("\n")

	for _, t := range topics {
		sb.WriteString("\n• ")
		sb.WriteString(bold(t.Name))
		if t.Description != "" {
			sb.WriteString(md(" — " + t.Description))
		}
	}

	sb.WriteString("\n\n")
	sb.WriteString(md("Start a quiz with /quiz."))
	return sb.String()
}

// formatPicker renders the quiz setup screen.
func formatPicker(sel selection) string {
	var sb strings.Builder
	sb.WriteString(bold("🎯 New quiz"))
	sb.WriteString("\n\n")

	if len(sel.Topics) == 0 {
		sb.WriteString(md("Tap topics to select them."))
	} else {
		sb.WriteString(md("Topics: " + strings.Join(sel.Topics, ", ")))
	}

	sb.WriteString("\n")
	sb.WriteString(md(fmt.Sprintf("Questions: %d", sel.Limit)))
	return sb.String()
}

// formatQuestion renders a question and, once answered, the feedback.
func formatQuestion(v *service.QuestionView) string {
	q := v.Question

	var sb strings.Builder
	sb.WriteString(bold(fmt.Sprintf("Question %d of %d", v.Index+1, v.Total)))
	sb.WriteString(md(" · "))
	sb.WriteString(italic(q.Topic))
	sb.WriteString("\n\n")
	sb.WriteString(md(q.Text))

	if q.Type == entities.QuestionTypeMultipleChoice {
		sb.WriteString("\n")
		for _, o := range v.Options {
			sb.WriteString("\n")
			sb.WriteString(md(o.Label + ". " + o.Text))
		}
	}

	sb.WriteString("\n\n")

	switch {
	case v.Answered:
		sb.WriteString(formatFeedback(v))
	case q.Type == entities.QuestionTypeOpenEnded:
		sb.WriteString(italic("Send your answer as a message."))
	default:
		sb.WriteString(italic("Choose an answer."))
	}

	sb.WriteString("\n\n")
	sb.WriteString(md(fmt.Sprintf("Answered %d of %d", v.AnsweredCount, v.Total)))
	return sb.String()
}

func formatFeedback(v *service.QuestionView) string {
	q := v.Question

	if q.Type == entities.QuestionTypeOpenEnded {
		answer := strings.TrimSpace(v.Result.Answer.String())
		if answer == "" {
			answer = "(empty)"
		}

		text := md("📝 Your answer: " + answer)
		if q.SuggestedAnswer != nil && *q.SuggestedAnswer != "" {
			text += "\n" + md("💡 Suggested answer: "+*q.SuggestedAnswer)
		}
		return text
	}

	if v.Result.IsCorrect {
		return bold("✅ Correct!")
	}

	text := bold("❌ Wrong.")
	if v.CorrectText != "" {
		text += " " + md("Correct answer: "+v.CorrectText)
	}
	return text
}

// scoreEmoji picks a band for a percentage score.
func scoreEmoji(percentage int) string {
	switch {
	case percentage >= 90:
		return "🏆"
	case percentage >= 70:
		return "🎉"
	case percentage >= 50:
		return "👍"
	default:
		return "📚"
	}
}

func formatResults(a *entities.QuizAttempt) string {
	return fmt.Sprintf(
		"%s\n\n%s\n%s",
		bold(scoreEmoji(a.Percentage)+" Quiz finished!"),
		md(fmt.Sprintf("Score: %d of %d (%d%%)", a.CorrectAnswers, a.TotalQuestions, a.Percentage)),
		md("Topics: "+strings.Join(a.Topics, ", ")),
	)
}

func formatHistory(attempts []*entities.QuizAttempt) string {
	var sb strings.Builder
	sb.WriteString(bold("🕘 Latest results"))
	sb.WriteString("\n")

	for _, a := range attempts {
		sb.WriteString("\n")
		sb.WriteString(md(fmt.Sprintf("%s %s — %d/%d (%d%%) — %s",
			scoreEmoji(a.Percentage),
			a.CreatedAt.Format("2006-01-02 15:04"),
			a.CorrectAnswers,
			a.TotalQuestions,
			a.Percentage,
			strings.Join(a.Topics, ", "),
		)))
	}

	return sb.String()
}

// formatReview lists the graded answers of a finished quiz.
func formatReview(items []service.ReviewItem) string {
	var sb strings.Builder
	sb.WriteString(bold("🔍 Quiz review"))

	for i, it := range items {
		sb.WriteString("\n\n")

		mark := "❌"
		switch {
		case it.Result.Answer.Kind() == entities.QuestionTypeOpenEnded:
			mark = "📝"
		case it.Result.IsCorrect:
			mark = "✅"
		}

		if it.Question == nil {
			sb.WriteString(md(fmt.Sprintf("%d. %s (question removed)", i+1, mark)))
			continue
		}
		q := it.Question
		sb.WriteString(md(fmt.Sprintf("%d. %s %s", i+1, mark, q.Text)))

		switch a := it.Result.Answer.(type) {
		case entities.TrueFalseAnswer:
			sb.WriteString("\n" + md("Your answer: "+trueFalseLabel(bool(a))))
		case entities.OpenEndedAnswer:
			text := strings.TrimSpace(string(a))
			if text == "" {
				text = "(empty)"
			}
			sb.WriteString("\n" + md("Your answer: "+text))
			if q.SuggestedAnswer != nil && *q.SuggestedAnswer != "" {
				sb.WriteString("\n" + md("Suggested answer: "+*q.SuggestedAnswer))
			}
			continue
		}

		if key, ok := correctText(q); ok && !it.Result.IsCorrect {
			sb.WriteString("\n" + md("Correct answer: "+key))
		}
	}

	return sb.String()
}

func trueFalseLabel(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

// correctText renders the answer key, false if the record has none.
func correctText(q *entities.Question) (string, bool) {
	switch {
	case q.Type == entities.QuestionTypeTrueFalse && q.CorrectAnswer != nil:
		return trueFalseLabel(*q.CorrectAnswer), true
	case q.IsMultipleChoice() && q.HasValidKey():
		return q.Options[*q.CorrectAnswerIndex], true
	default:
		return "", false
	}
}

func formatStats(s entities.Stats) string {
	return fmt.Sprintf(
		"%s\n\n%s\n%s\n%s",
		bold("📊 Your stats"),
		md(fmt.Sprintf("Quizzes finished: %d", s.TotalAttempts)),
		md(fmt.Sprintf("Correct answers: %d of %d", s.TotalCorrect, s.TotalQuestions)),
		md(fmt.Sprintf("Average score: %d%% %s", s.AverageScore, scoreEmoji(s.AverageScore))),
	)
}
