package telegram

import (
	"fmt"
	"slices"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/mi-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/mi-quiz-bot/internal/presenter"
	"github.com/aliskhannn/mi-quiz-bot/internal/service"
)

// buildPickerKeyboard builds topic toggles, quiz length choices and the start button.
func buildPickerKeyboard(topics []entities.Topic, sel selection) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	if len(topics) > 1 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Select all", buildSelectAllCallback()),
		))
	}

	for i, t := range topics {
		label := "▫️ " + t.Name
		if slices.Contains(sel.Topics, t.Name) {
			label = "☑️ " + t.Name
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildTopicToggleCallback(i)),
		))
	}

	var counts []tgbotapi.InlineKeyboardButton
	for _, n := range questionCounts {
		label := fmt.Sprintf("%d", n)
		if n == sel.Limit {
			label = fmt.Sprintf("• %d •", n)
		}
		counts = append(counts, tgbotapi.NewInlineKeyboardButtonData(label, buildCountCallback(n)))
	}
	rows = append(rows, counts)

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("▶️ Start quiz", buildStartCallback()),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuestionKeyboard builds option buttons in display order plus navigation.
func buildQuestionKeyboard(v *service.QuestionView) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	for pos, o := range v.Options {
		data := buildAnswerCallback(v.SessionID, v.Index, pos)
		if v.Answered {
			data = actionNoop
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(optionLabel(o), data),
		))
	}

	if v.Question.Type == entities.QuestionTypeOpenEnded && !v.Answered {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏭ Submit empty", buildEmptyAnswerCallback(v.SessionID, v.Index)),
		))
	}

	var nav []tgbotapi.InlineKeyboardButton
	if v.CanGoBack {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀️ Back", buildNavCallback(v.SessionID, v.Index-1)))
	}
	if v.CanGoForward {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("Forward ▶️", buildNavCallback(v.SessionID, v.Index+1)))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	if v.CanFinish {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏁 Finish", buildFinishCallback(v.SessionID)),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func optionLabel(o presenter.OptionView) string {
	text := o.Text
	if o.Label != "" {
		text = o.Label + ". " + o.Text
	}

	switch o.Mark {
	case presenter.MarkCorrect:
		return "✅ " + text
	case presenter.MarkWrong:
		return "❌ " + text
	default:
		return text
	}
}

// buildResultKeyboard builds keyboard for quiz results screen.
func buildResultKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 New quiz", buildPickerCallback()),
		),
	)
}

// buildHistoryKeyboard adds a review button for every attempt.
func buildHistoryKeyboard(attempts []*entities.QuizAttempt) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(attempts))
	for _, a := range attempts {
		label := fmt.Sprintf("🔍 %s · %d%%", a.CreatedAt.Format("2006-01-02 15:04"), a.Percentage)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildReviewCallback(a.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
