package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/mi-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/mi-quiz-bot/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	cd := decodeCallback(cb.Data)
	userID := cb.From.ID
	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID

	var fn HandlerFunc
	switch cd.Action {
	case actionTopic:
		fn = h.topicToggleCallback(cd, userID, msgID)
	case actionAll:
		fn = h.selectAllCallback(userID, msgID)
	case actionCount:
		fn = h.countCallback(cd, userID, msgID)
	case actionStart:
		fn = h.startQuizCallback(cb, userID, msgID)
	case actionPicker:
		fn = func(ctx context.Context, chatID int64) error {
			return h.renderPicker(ctx, chatID, userID, msgID)
		}
	case actionAnswer:
		fn = h.answerOptionCallback(cd, userID, msgID)
	case actionEmpty:
		fn = h.emptyAnswerCallback(cd, userID, msgID)
	case actionNav:
		fn = h.navCallback(cd, userID, msgID)
	case actionFinish:
		fn = h.finishCallback(cd, userID, msgID)
	case actionReview:
		fn = h.reviewCallback(cd, userID)
	case actionNoop:
		h.answerCallback(cb.ID, "")
		return
	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
		h.answerCallback(cb.ID, "")
		return
	}

	_ = h.withErrorHandling(fn)(ctx, chatID)

	h.answerCallback(cb.ID, "")
}

func (h *Handler) topicToggleCallback(cd callbackData, userID int64, msgID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		idx, err := cd.intParam(0)
		if err != nil {
			return err
		}

		topics, err := h.topicService.List(ctx)
		if err != nil {
			return err
		}
		if idx >= len(topics) {
			return fmt.Errorf("%w: topic %d of %d", errInvalidCallback, idx, len(topics))
		}

		h.selections.Toggle(userID, topics[idx].Name)
		return h.renderPicker(ctx, chatID, userID, msgID)
	}
}

func (h *Handler) selectAllCallback(userID int64, msgID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		topics, err := h.topicService.List(ctx)
		if err != nil {
			return err
		}

		names := make([]string, 0, len(topics))
		for _, t := range topics {
			names = append(names, t.Name)
		}

		h.selections.SelectAll(userID, names)
		return h.renderPicker(ctx, chatID, userID, msgID)
	}
}

func (h *Handler) countCallback(cd callbackData, userID int64, msgID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		n, err := cd.intParam(0)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: zero question count", errInvalidCallback)
		}

		h.selections.SetLimit(userID, n)
		return h.renderPicker(ctx, chatID, userID, msgID)
	}
}

func (h *Handler) startQuizCallback(cb *tgbotapi.CallbackQuery, userID int64, msgID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		sel := h.selections.Get(userID)

		v, err := h.quizService.StartQuiz(ctx, userID, chatID, sel.Topics, sel.Limit)
		if errors.Is(err, service.ErrNoTopicsSelected) {
			h.answerCallback(cb.ID, msgNoTopicsSelected)
			return nil
		}
		if err != nil {
			return err
		}
		h.selections.Reset(userID)

		return h.renderQuestion(chatID, userID, msgID, v)
	}
}

func (h *Handler) answerOptionCallback(cd callbackData, userID int64, msgID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		sid, err := cd.stringParam(0)
		if err != nil {
			return err
		}
		idx, err := cd.intParam(1)
		if err != nil {
			return err
		}
		pos, err := cd.intParam(2)
		if err != nil {
			return err
		}

		v, err := h.quizService.AnswerOption(ctx, userID, sid, idx, pos)
		if err != nil {
			return err
		}

		return h.renderQuestion(chatID, userID, msgID, v)
	}
}

func (h *Handler) emptyAnswerCallback(cd callbackData, userID int64, msgID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		sid, err := cd.stringParam(0)
		if err != nil {
			return err
		}
		idx, err := cd.intParam(1)
		if err != nil {
			return err
		}

		v, err := h.quizService.Answer(ctx, userID, sid, idx, entities.OpenEndedAnswer(""))
		if err != nil {
			return err
		}

		return h.renderQuestion(chatID, userID, msgID, v)
	}
}

func (h *Handler) navCallback(cd callbackData, userID int64, msgID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		sid, err := cd.stringParam(0)
		if err != nil {
			return err
		}
		idx, err := cd.intParam(1)
		if err != nil {
			return err
		}

		v, err := h.quizService.Navigate(ctx, userID, sid, idx)
		if err != nil {
			return err
		}

		return h.renderQuestion(chatID, userID, msgID, v)
	}
}

func (h *Handler) finishCallback(cd callbackData, userID int64, msgID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		sid, err := cd.stringParam(0)
		if err != nil {
			return err
		}

		attempt, err := h.quizService.Finish(ctx, userID, sid)
		if err != nil {
			return err
		}

		edit := newEdit(chatID, msgID, formatResults(attempt))
		kb := buildResultKeyboard()
		edit.ReplyMarkup = &kb
		_, err = h.send(edit)
		return err
	}
}

func (h *Handler) reviewCallback(cd callbackData, userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		id, err := cd.intParam(0)
		if err != nil {
			return err
		}

		items, err := h.quizService.Review(ctx, userID, int64(id))
		if err != nil {
			return err
		}

		_, err = h.send(newMessage(chatID, formatReview(items)))
		return err
	}
}
