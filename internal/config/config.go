package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidQuestionSource       = errors.New("invalid question source")
)

// Question sources.
const (
	SourcePostgres = "postgres"
	SourceFile     = "file"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string    `mapstructure:"env"` // current application environment (local, dev, production)
	TelegramAPIToken string    `mapstructure:"-"`   // Telegram API token loaded from environment
	DB               DB        `mapstructure:"database"`
	Quiz             Quiz      `mapstructure:"quiz"`
	Questions        Questions `mapstructure:"questions"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Quiz contains quiz session parameters.
type Quiz struct {
	DefaultLimit    int           `mapstructure:"default_limit"`    // questions per quiz when none is chosen
	MaxLimit        int           `mapstructure:"max_limit"`        // upper bound for questions per quiz
	SessionTTL      time.Duration `mapstructure:"session_ttl"`      // idle time after which a quiz is dropped
	JanitorSchedule string        `mapstructure:"janitor_schedule"` // cron schedule for the idle sweep
}

// Questions selects where question records come from.
type Questions struct {
	Source   string `mapstructure:"source"`    // "postgres" or "file"
	JSONPath string `mapstructure:"json_path"` // question bank for the file source
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// A missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("quiz.default_limit", 10)
	v.SetDefault("quiz.max_limit", 50)
	v.SetDefault("quiz.session_ttl", "30m")
	v.SetDefault("quiz.janitor_schedule", "*/5 * * * *")
	v.SetDefault("questions.source", SourcePostgres)
	v.SetDefault("questions.json_path", "assets/questions.json")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}

	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Questions.Source {
	case SourcePostgres, SourceFile:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidQuestionSource, c.Questions.Source)
	}

	if c.Quiz.DefaultLimit <= 0 {
		return fmt.Errorf("quiz.default_limit must be positive, got %d", c.Quiz.DefaultLimit)
	}
	if c.Quiz.MaxLimit < c.Quiz.DefaultLimit {
		return fmt.Errorf("quiz.max_limit %d is below quiz.default_limit %d", c.Quiz.MaxLimit, c.Quiz.DefaultLimit)
	}

	return nil
}
