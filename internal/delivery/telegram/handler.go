package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const historyLimit = 10

type Handler struct {
	bot          BotAPI
	logger       *zap.Logger
	userService  UserService
	topicService TopicService
	quizService  QuizService
	selections   *selectionStore
}

func NewHandler(
	bot BotAPI,
	logger *zap.Logger,
	userService UserService,
	topicService TopicService,
	quizService QuizService,
	defaultLimit int,
) *Handler {
	return &Handler{
		bot:          bot,
		logger:       logger,
		userService:  userService,
		topicService: topicService,
		quizService:  quizService,
		selections:   newSelectionStore(defaultLimit),
	}
}

// Run polls Telegram for updates until ctx is done.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	msg := update.Message
	from := msg.From
	chatID := msg.Chat.ID

	h.logger.Debug("update received",
		zap.Int64("chat_id", chatID),
		zap.String("text", msg.Text),
	)

	if err := h.userService.EnsureUser(ctx, from.ID, chatID, from.UserName); err != nil {
		h.logger.Error("failed to ensure user",
			zap.Int64("user_id", from.ID),
			zap.Error(err),
		)
	}

	if msg.IsCommand() {
		var fn HandlerFunc
		switch msg.Command() {
		case "start":
			fn = h.startHandler(from.FirstName)
		case "help":
			fn = h.helpHandler()
		case "quiz":
			fn = h.quizHandler(from.ID)
		case "topics":
			fn = h.topicsHandler()
		case "history":
			fn = h.historyHandler(from.ID)
		case "stats":
			fn = h.statsHandler(from.ID)
		default:
			fn = h.textHandler(msgUnknownCommand)
		}

		_ = h.withErrorHandling(fn)(ctx, chatID)
		return
	}

	_ = h.withErrorHandling(h.freeTextHandler(from.ID, msg.Text))(ctx, chatID)
}

func (h *Handler) send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m, err := h.bot.Send(c)
	if err != nil {
		h.logger.Error("failed to send telegram message", zap.Error(err))
	}
	return m, err
}

// answerCallback removes the loading indicator on the tapped button.
func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Debug("callback answer error", zap.Error(err))
	}
}
