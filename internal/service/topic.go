package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/aliskhannn/mi-quiz-bot/internal/domain/entities"
)

type TopicService struct {
	repository TopicRepository
}

func NewTopicService(repository TopicRepository) *TopicService {
	return &TopicService{repository: repository}
}

// List returns all topics sorted by name.
func (s *TopicService) List(ctx context.Context) ([]entities.Topic, error) {
	topics, err := s.repository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}

	sort.Slice(topics, func(i, j int) bool {
		return topics[i].Name < topics[j].Name
	})
	return topics, nil
}
