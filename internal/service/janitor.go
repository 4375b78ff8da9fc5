package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// IdleSweeper drops quizzes nobody touched for too long.
type IdleSweeper interface {
	AbandonIdle(now time.Time) int
}

// Janitor periodically removes idle quiz sessions.
type Janitor struct {
	sweeper  IdleSweeper
	schedule string
	logger   *zap.Logger
}

func NewJanitor(sweeper IdleSweeper, schedule string, logger *zap.Logger) *Janitor {
	return &Janitor{
		sweeper:  sweeper,
		schedule: schedule,
		logger:   logger,
	}
}

// Start runs the sweep on schedule until ctx is done.
func (j *Janitor) Start(ctx context.Context) {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(j.schedule, func() {
		j.Sweep(time.Now())
	})
	if err != nil {
		j.logger.Error("failed to add cron job",
			zap.String("schedule", j.schedule),
			zap.Error(err),
		)
		return
	}

	c.Start()
	j.logger.Info("session janitor started", zap.String("schedule", j.schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	j.logger.Info("session janitor stopped")
}

// Sweep abandons idle sessions once.
func (j *Janitor) Sweep(now time.Time) int {
	n := j.sweeper.AbandonIdle(now)
	if n > 0 {
		j.logger.Info("idle quizzes abandoned", zap.Int("count", n))
	}
	return n
}
