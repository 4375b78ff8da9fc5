package config

import (
	"errors"
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://localhost/quiz")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Env != "local" {
		t.Errorf("Env = %q", cfg.Env)
	}
	if cfg.Quiz.DefaultLimit != 10 || cfg.Quiz.MaxLimit != 50 {
		t.Errorf("limits = %d/%d", cfg.Quiz.DefaultLimit, cfg.Quiz.MaxLimit)
	}
	if cfg.Quiz.SessionTTL != 30*time.Minute {
		t.Errorf("SessionTTL = %v", cfg.Quiz.SessionTTL)
	}
	if cfg.DB.MaxConnLifetime != 30*time.Second {
		t.Errorf("MaxConnLifetime = %v", cfg.DB.MaxConnLifetime)
	}
	if cfg.Questions.Source != SourcePostgres {
		t.Errorf("Source = %q", cfg.Questions.Source)
	}
}

func TestLoad_MissingToken(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TELEGRAM_API_TOKEN", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/quiz")

	if _, err := Load(); !errors.Is(err, ErrMissingEnvironmentVariables) {
		t.Fatalf("err = %v, want ErrMissingEnvironmentVariables", err)
	}
}

func TestLoad_InvalidSource(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://localhost/quiz")
	t.Setenv("QUESTIONS_SOURCE", "redis")

	if _, err := Load(); !errors.Is(err, ErrInvalidQuestionSource) {
		t.Fatalf("err = %v, want ErrInvalidQuestionSource", err)
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore Chdir: %v", err)
		}
	})
}
