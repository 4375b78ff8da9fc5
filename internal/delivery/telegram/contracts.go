package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/mi-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/mi-quiz-bot/internal/service"
)

// BotAPI is the part of *tgbotapi.BotAPI the handler uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type UserService interface {
	EnsureUser(ctx context.Context, userID, chatID int64, username string) error
}

type TopicService interface {
	List(ctx context.Context) ([]entities.Topic, error)
}

type QuizService interface {
	StartQuiz(ctx context.Context, userID, chatID int64, topics []string, limit int) (*service.QuestionView, error)
	Current(ctx context.Context, userID int64) (*service.QuestionView, error)
	Navigate(ctx context.Context, userID int64, sessionID string, index int) (*service.QuestionView, error)
	Answer(ctx context.Context, userID int64, sessionID string, index int, answer entities.Answer) (*service.QuestionView, error)
	AnswerOption(ctx context.Context, userID int64, sessionID string, index, position int) (*service.QuestionView, error)
	AnswerText(ctx context.Context, userID int64, text string) (*service.QuestionView, error)
	SetMessageID(userID int64, sessionID string, messageID int)
	MessageID(userID int64) (string, int)
	Finish(ctx context.Context, userID int64, sessionID string) (*entities.QuizAttempt, error)
	History(ctx context.Context, userID int64, limit int) ([]*entities.QuizAttempt, error)
	Review(ctx context.Context, userID, attemptID int64) ([]service.ReviewItem, error)
	Stats(ctx context.Context, userID int64) (entities.Stats, error)
}
