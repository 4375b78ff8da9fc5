package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/mi-quiz-bot/internal/config"
	"github.com/aliskhannn/mi-quiz-bot/internal/delivery/telegram"
	"github.com/aliskhannn/mi-quiz-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/mi-quiz-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/mi-quiz-bot/internal/logger"
	"github.com/aliskhannn/mi-quiz-bot/internal/repository"
	"github.com/aliskhannn/mi-quiz-bot/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB.URL, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		lg.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	tr := postgres.NewTransactor(pool)

	userRepo := pgrepo.NewUserRepository(pool)
	attemptRepo := pgrepo.NewAttemptRepository(pool, tr)

	var (
		questionRepo service.QuestionRepository
		topicRepo    service.TopicRepository
	)
	switch cfg.Questions.Source {
	case config.SourceFile:
		bank, err := repository.NewQuestionBank(cfg.Questions.JSONPath)
		if err != nil {
			lg.Fatal("failed to load question bank",
				zap.String("path", cfg.Questions.JSONPath),
				zap.Error(err),
			)
		}
		questionRepo, topicRepo = bank, bank
	default:
		questionRepo = pgrepo.NewQuestionRepository(pool)
		topicRepo = pgrepo.NewTopicRepository(pool)
	}

	userService := service.NewUserService(userRepo)
	topicService := service.NewTopicService(topicRepo)
	quizService := service.NewQuizService(
		questionRepo,
		attemptRepo,
		service.NewIssueLog(lg),
		service.QuizConfig{
			DefaultLimit: cfg.Quiz.DefaultLimit,
			MaxLimit:     cfg.Quiz.MaxLimit,
			SessionTTL:   cfg.Quiz.SessionTTL,
		},
		lg,
	)

	janitor := service.NewJanitor(quizService, cfg.Quiz.JanitorSchedule, lg)
	go janitor.Start(ctx)

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.Env != "production"

	commands := []tgbotapi.BotCommand{
		{Command: "quiz", Description: "Start a quiz"},
		{Command: "topics", Description: "List topics"},
		{Command: "history", Description: "Latest results"},
		{Command: "stats", Description: "Overall score"},
		{Command: "help", Description: "Help"},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	handler := telegram.NewHandler(
		bot,
		lg,
		userService,
		topicService,
		quizService,
		cfg.Quiz.DefaultLimit,
	)
	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("telegram handler stopped", zap.Error(err))
	}

	bot.StopReceivingUpdates()
	lg.Info("shutdown signal received")
}
