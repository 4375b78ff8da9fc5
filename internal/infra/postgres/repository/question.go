package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/mi-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/mi-quiz-bot/internal/infra/postgres"
)

var ErrQuestionNotFound = entities.ErrQuestionNotFound

const questionColumns = `
	q.id, t.name, q.question_type, q.question_text, q.options,
	q.correct_answer_index, q.correct_answer, q.suggested_answer, q.created_at
`

// QuestionRepository reads question records from PostgreSQL.
type QuestionRepository struct {
	db postgres.DBTX
}

func NewQuestionRepository(db postgres.DBTX) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// GetQuestions returns up to limit random questions from the given topics.
func (r *QuestionRepository) GetQuestions(ctx context.Context, topics []string, limit int) ([]entities.Question, error) {
	query := `
		SELECT ` + questionColumns + `
		FROM questions q
		JOIN topics t ON t.id = q.topic_id
		WHERE t.name = ANY($1)
		ORDER BY random()
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, topics, limit)
	if err != nil {
		return nil, fmt.Errorf("get questions: %w", err)
	}
	defer rows.Close()

	questions := make([]entities.Question, 0, limit)
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

// GetByID retrieves a single question.
func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*entities.Question, error) {
	query := `
		SELECT ` + questionColumns + `
		FROM questions q
		JOIN topics t ON t.id = q.topic_id
		WHERE q.id = $1
	`

	q, err := scanQuestion(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("get question: %w", err)
	}

	return &q, nil
}

func scanQuestion(row pgx.Row) (entities.Question, error) {
	var (
		q       entities.Question
		qType   string
		index   *int32
		options []string
	)

	err := row.Scan(
		&q.ID,
		&q.Topic,
		&qType,
		&q.Text,
		&options,
		&index,
		&q.CorrectAnswer,
		&q.SuggestedAnswer,
		&q.CreatedAt,
	)
	if err != nil {
		return entities.Question{}, err
	}

	q.Type = entities.QuestionType(qType)
	q.Options = options
	if index != nil {
		i := int(*index)
		q.CorrectAnswerIndex = &i
	}

	return q, nil
}
