package service

import (
	"context"
	"fmt"

	"github.com/aliskhannn/mi-quiz-bot/internal/domain/entities"
)

type UserService struct {
	repository UserRepository
}

func NewUserService(repository UserRepository) *UserService {
	return &UserService{repository: repository}
}

// EnsureUser registers the user on first contact.
func (s *UserService) EnsureUser(ctx context.Context, userID, chatID int64, username string) error {
	exists, err := s.repository.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := s.repository.Save(ctx, entities.NewUser(userID, chatID, username)); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}
