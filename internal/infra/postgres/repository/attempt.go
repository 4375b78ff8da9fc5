package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/mi-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/mi-quiz-bot/internal/infra/postgres"
)

// AttemptRepository stores finished quizzes and their answers.
type AttemptRepository struct {
	db postgres.DBTX
	tr *postgres.Transactor
}

func NewAttemptRepository(db postgres.DBTX, tr *postgres.Transactor) *AttemptRepository {
	return &AttemptRepository{db: db, tr: tr}
}

// Save inserts the attempt and all its answers in one transaction.
func (r *AttemptRepository) Save(ctx context.Context, attempt *entities.QuizAttempt) (int64, error) {
	var id int64

	err := r.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO quiz_attempts (
				user_id, topics, total_questions, correct_answers, percentage, created_at
			) VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`

		err := tx.QueryRow(ctx, query,
			attempt.UserID,
			attempt.Topics,
			attempt.TotalQuestions,
			attempt.CorrectAnswers,
			attempt.Percentage,
			attempt.CreatedAt,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert attempt: %w", err)
		}

		batch := &pgx.Batch{}
		for _, a := range attempt.Answers {
			batch.Queue(`
				INSERT INTO quiz_answers (attempt_id, question_id, answer_kind, answer_value, is_correct)
				VALUES ($1, $2, $3, $4, $5)
			`, id, a.QuestionID, string(a.Answer.Kind()), a.Answer.String(), a.IsCorrect)
		}

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert answers: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("save attempt: %w", err)
	}

	return id, nil
}

// ListByUser returns the user's latest attempts, newest first. Answers are
// not loaded.
func (r *AttemptRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*entities.QuizAttempt, error) {
	query := `
		SELECT id, user_id, topics, total_questions, correct_answers, percentage, created_at
		FROM quiz_attempts
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	attempts := make([]*entities.QuizAttempt, 0, limit)
	for rows.Next() {
		a := new(entities.QuizAttempt)
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Topics, &a.TotalQuestions,
			&a.CorrectAnswers, &a.Percentage, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}

	return attempts, rows.Err()
}

// GetAnswers loads the graded answers of one of the user's attempts.
// Attempts of other users yield no rows.
func (r *AttemptRepository) GetAnswers(ctx context.Context, userID, attemptID int64) ([]entities.Result, error) {
	query := `
		SELECT a.question_id, a.answer_kind, a.answer_value, a.is_correct
		FROM quiz_answers a
		JOIN quiz_attempts qa ON qa.id = a.attempt_id
		WHERE a.attempt_id = $1 AND qa.user_id = $2
		ORDER BY a.id
	`

	rows, err := r.db.Query(ctx, query, attemptID, userID)
	if err != nil {
		return nil, fmt.Errorf("get answers: %w", err)
	}
	defer rows.Close()

	var results []entities.Result
	for rows.Next() {
		var (
			res         entities.Result
			kind, value string
		)
		if err := rows.Scan(&res.QuestionID, &kind, &value, &res.IsCorrect); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}

		res.Answer, err = entities.ParseAnswer(entities.QuestionType(kind), value)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}

	return results, rows.Err()
}

// Stats aggregates all attempts of the user.
func (r *AttemptRepository) Stats(ctx context.Context, userID int64) (entities.Stats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(total_questions), 0),
			COALESCE(SUM(correct_answers), 0)
		FROM quiz_attempts
		WHERE user_id = $1
	`

	var attempts, questions, correct int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&attempts, &questions, &correct); err != nil {
		return entities.Stats{}, fmt.Errorf("get stats: %w", err)
	}

	return entities.NewStats(attempts, questions, correct), nil
}
