package service

import (
	"context"

	"github.com/aliskhannn/mi-quiz-bot/internal/domain/entities"
)

type UserRepository interface {
	Save(ctx context.Context, user *entities.User) (bool, error)
	Exists(ctx context.Context, userID int64) (bool, error)
}

// QuestionRepository supplies question records for quizzes.
type QuestionRepository interface {
	// GetQuestions returns up to limit questions from the given topics in random order.
	GetQuestions(ctx context.Context, topics []string, limit int) ([]entities.Question, error)
	GetByID(ctx context.Context, id int64) (*entities.Question, error)
}

type TopicRepository interface {
	List(ctx context.Context) ([]entities.Topic, error)
}

// AttemptRepository stores finished quizzes.
type AttemptRepository interface {
	Save(ctx context.Context, attempt *entities.QuizAttempt) (int64, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]*entities.QuizAttempt, error)
	GetAnswers(ctx context.Context, userID, attemptID int64) ([]entities.Result, error)
	Stats(ctx context.Context, userID int64) (entities.Stats, error)
}
