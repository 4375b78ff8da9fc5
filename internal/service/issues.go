package service

import (
	"sync"

	"go.uber.org/zap"

	"github.com/aliskhannn/mi-quiz-bot/internal/domain/entities"
)

// IssueLog reports malformed question data to the log, once per question.
// Learners never see these; the quiz just cannot be won on that question.
type IssueLog struct {
	logger   *zap.Logger
	reported sync.Map
}

// NewIssueLog creates a new IssueLog.
func NewIssueLog(logger *zap.Logger) *IssueLog {
	return &IssueLog{logger: logger}
}

// ReportIssue logs a content problem for q.
func (l *IssueLog) ReportIssue(q *entities.Question, err error) {
	if _, loaded := l.reported.LoadOrStore(q.ID, struct{}{}); loaded {
		return
	}

	l.logger.Warn("malformed question data",
		zap.Int64("question_id", q.ID),
		zap.String("topic", q.Topic),
		zap.String("type", string(q.Type)),
		zap.Error(err),
	)
}
