package repository

import (
	"context"
	"fmt"

	"github.com/aliskhannn/mi-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/mi-quiz-bot/internal/infra/postgres"
)

type TopicRepository struct {
	db postgres.DBTX
}

func NewTopicRepository(db postgres.DBTX) *TopicRepository {
	return &TopicRepository{db: db}
}

// List returns all topics that have at least one question.
func (r *TopicRepository) List(ctx context.Context) ([]entities.Topic, error) {
	query := `
		SELECT t.id, t.name, t.description, t.created_at
		FROM topics t
		WHERE EXISTS (SELECT 1 FROM questions q WHERE q.topic_id = t.id)
		ORDER BY t.name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	var topics []entities.Topic
	for rows.Next() {
		var t entities.Topic
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		topics = append(topics, t)
	}

	return topics, rows.Err()
}
