package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/mi-quiz-bot/internal/service"
)

// renderQuestion edits messageID to show v, or sends a new message when
// messageID is 0. The message becomes the quiz's current message.
func (h *Handler) renderQuestion(chatID, userID int64, messageID int, v *service.QuestionView) error {
	text := formatQuestion(v)
	kb := buildQuestionKeyboard(v)

	if messageID != 0 {
		edit := newEdit(chatID, messageID, text)
		edit.ReplyMarkup = &kb
		if _, err := h.send(edit); err != nil {
			return fmt.Errorf("edit question: %w", err)
		}
		h.quizService.SetMessageID(userID, v.SessionID, messageID)
		return nil
	}

	msg := newMessage(chatID, text)
	msg.ReplyMarkup = kb
	sent, err := h.send(msg)
	if err != nil {
		return fmt.Errorf("send question: %w", err)
	}

	h.quizService.SetMessageID(userID, v.SessionID, sent.MessageID)
	return nil
}

// detachQuestion removes the keyboard from the quiz's previous message so
// only the newest one is interactive.
func (h *Handler) detachQuestion(chatID, userID int64) {
	_, msgID := h.quizService.MessageID(userID)
	if msgID == 0 {
		return
	}

	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, msgID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	})
	_, _ = h.bot.Request(edit)
}

// renderPicker shows the quiz setup screen, editing messageID when set.
func (h *Handler) renderPicker(ctx context.Context, chatID, userID int64, messageID int) error {
	topics, err := h.topicService.List(ctx)
	if err != nil {
		return err
	}
	if len(topics) == 0 {
		_, err := h.send(newPlainMessage(chatID, msgNoTopics))
		return err
	}

	sel := h.selections.Get(userID)
	text := formatPicker(sel)
	kb := buildPickerKeyboard(topics, sel)

	if messageID != 0 {
		edit := newEdit(chatID, messageID, text)
		edit.ReplyMarkup = &kb
		_, err = h.send(edit)
		return err
	}

	msg := newMessage(chatID, text)
	msg.ReplyMarkup = kb
	_, err = h.send(msg)
	return err
}
