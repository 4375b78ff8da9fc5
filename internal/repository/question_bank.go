// Package repository holds file-backed data sources.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/aliskhannn/mi-quiz-bot/internal/domain/entities"
)

var ErrQuestionNotFound = entities.ErrQuestionNotFound

// QuestionBank serves questions from a JSON file loaded at startup.
type QuestionBank struct {
	questions []entities.Question
	topics    []entities.Topic

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

type bankFile struct {
	Topics    []entities.Topic    `json:"topics"`
	Questions []entities.Question `json:"questions"`
}

// NewQuestionBank reads the bank at path.
func NewQuestionBank(path string) (*QuestionBank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}

	var file bankFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal questions JSON: %w", err)
	}

	if len(file.Questions) == 0 {
		return nil, fmt.Errorf("question bank %s is empty", path)
	}

	return newQuestionBank(file, rand.New(rand.NewSource(time.Now().UnixNano()))), nil
}

func newQuestionBank(file bankFile, rng *rand.Rand) *QuestionBank {
	topics := file.Topics

	// Topics only referenced by questions are listed too.
	known := make(map[string]struct{}, len(topics))
	for _, t := range topics {
		known[t.Name] = struct{}{}
	}
	for _, q := range file.Questions {
		if _, ok := known[q.Topic]; !ok && q.Topic != "" {
			known[q.Topic] = struct{}{}
			topics = append(topics, entities.Topic{Name: q.Topic})
		}
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Name < topics[j].Name })

	return &QuestionBank{
		questions: file.Questions,
		topics:    topics,
		rng:       rng,
	}
}

// GetQuestions returns up to limit questions from the given topics in random order.
func (b *QuestionBank) GetQuestions(_ context.Context, topics []string, limit int) ([]entities.Question, error) {
	wanted := make(map[string]struct{}, len(topics))
	for _, t := range topics {
		wanted[t] = struct{}{}
	}

	var picked []entities.Question
	for _, q := range b.questions {
		if _, ok := wanted[q.Topic]; ok {
			picked = append(picked, q)
		}
	}

	b.mu.Lock()
	b.rng.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	b.mu.Unlock()

	if limit > 0 && len(picked) > limit {
		picked = picked[:limit]
	}

	return picked, nil
}

// GetByID retrieves a single question.
func (b *QuestionBank) GetByID(_ context.Context, id int64) (*entities.Question, error) {
	for i := range b.questions {
		if b.questions[i].ID == id {
			q := b.questions[i]
			return &q, nil
		}
	}
	return nil, ErrQuestionNotFound
}

// List returns the bank's topics.
func (b *QuestionBank) List(_ context.Context) ([]entities.Topic, error) {
	out := make([]entities.Topic, len(b.topics))
	copy(out, b.topics)
	return out, nil
}
