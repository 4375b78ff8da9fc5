package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/mi-quiz-bot/internal/presenter"
	"github.com/aliskhannn/mi-quiz-bot/internal/service"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling logs errors and tells the user what went wrong.
// Expected quiz errors get a specific message, everything else a generic one.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		if err == nil {
			return nil
		}

		text, expected := userMessageFor(err)
		if expected {
			h.logger.Debug("handle error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		} else {
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		}

		_, _ = h.send(newPlainMessage(chatID, text))
		return nil
	}
}

func userMessageFor(err error) (string, bool) {
	switch {
	case errors.Is(err, service.ErrNoTopicsSelected):
		return msgNoTopicsSelected, true
	case errors.Is(err, service.ErrNoQuestionsAvailable):
		return msgNoQuestions, true
	case errors.Is(err, service.ErrSessionNotFound):
		return msgQuizExpired, true
	case errors.Is(err, service.ErrQuizNotFinished):
		return msgQuizNotFinished, true
	case errors.Is(err, service.ErrAttemptNotFound):
		return msgAttemptNotFound, true
	case errors.Is(err, service.ErrQuestionOutOfRange),
		errors.Is(err, errInvalidCallback),
		errors.Is(err, presenter.ErrOptionNotFound),
		errors.Is(err, presenter.ErrAnswerMismatch):
		return msgInvalidAction, true
	default:
		return msgInternalError, false
	}
}
