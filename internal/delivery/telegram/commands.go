package telegram

import (
	"context"
	"errors"

	"github.com/aliskhannn/mi-quiz-bot/internal/service"
)

func (h *Handler) startHandler(firstName string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		_, err := h.send(newMessage(chatID, welcomeMessage(firstName)))
		return err
	}
}

func (h *Handler) helpHandler() HandlerFunc {
	return h.textHandler(msgHelp)
}

func (h *Handler) textHandler(text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		_, err := h.send(newPlainMessage(chatID, text))
		return err
	}
}

// quizHandler resumes the active quiz or opens the topic picker.
func (h *Handler) quizHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		v, err := h.quizService.Current(ctx, userID)
		if errors.Is(err, service.ErrSessionNotFound) {
			return h.renderPicker(ctx, chatID, userID, 0)
		}
		if err != nil {
			return err
		}

		h.detachQuestion(chatID, userID)
		return h.renderQuestion(chatID, userID, 0, v)
	}
}

func (h *Handler) topicsHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		topics, err := h.topicService.List(ctx)
		if err != nil {
			return err
		}
		if len(topics) == 0 {
			_, err := h.send(newPlainMessage(chatID, msgNoTopics))
			return err
		}

		_, err = h.send(newMessage(chatID, formatTopics(topics)))
		return err
	}
}

func (h *Handler) historyHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		attempts, err := h.quizService.History(ctx, userID, historyLimit)
		if err != nil {
			return err
		}
		if len(attempts) == 0 {
			_, err := h.send(newPlainMessage(chatID, msgNoHistory))
			return err
		}

		msg := newMessage(chatID, formatHistory(attempts))
		msg.ReplyMarkup = buildHistoryKeyboard(attempts)
		_, err = h.send(msg)
		return err
	}
}

func (h *Handler) statsHandler(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		stats, err := h.quizService.Stats(ctx, userID)
		if err != nil {
			return err
		}
		if stats.TotalAttempts == 0 {
			_, err := h.send(newPlainMessage(chatID, msgNoHistory))
			return err
		}

		_, err = h.send(newMessage(chatID, formatStats(stats)))
		return err
	}
}

// freeTextHandler treats plain text as the answer to an open ended question.
func (h *Handler) freeTextHandler(userID int64, text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		v, err := h.quizService.AnswerText(ctx, userID, text)
		if errors.Is(err, service.ErrSessionNotFound) || errors.Is(err, service.ErrNotAwaitingText) {
			_, err := h.send(newPlainMessage(chatID, msgNotAwaitingText))
			return err
		}
		if err != nil {
			return err
		}

		h.detachQuestion(chatID, userID)
		return h.renderQuestion(chatID, userID, 0, v)
	}
}
