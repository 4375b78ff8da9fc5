package storage

import (
	"sync"
)

// QuizStorage provides in-memory storage for running quizzes by session ID,
// with at most one active quiz per user.
type QuizStorage[T any] struct {
	mu       sync.RWMutex
	sessions map[string]T
	byUser   map[int64]string
	owners   map[string]int64
}

// NewQuizStorage creates a new QuizStorage.
func NewQuizStorage[T any]() *QuizStorage[T] {
	return &QuizStorage[T]{
		sessions: make(map[string]T),
		byUser:   make(map[int64]string),
		owners:   make(map[string]int64),
	}
}

// Store saves a quiz as the user's active one. A quiz the user had before
// is removed and returned.
func (s *QuizStorage[T]) Store(userID int64, sessionID string, v T) (prev T, replaced bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if oldID, ok := s.byUser[userID]; ok && oldID != sessionID {
		prev, replaced = s.sessions[oldID]
		delete(s.sessions, oldID)
		delete(s.owners, oldID)
	}

	s.sessions[sessionID] = v
	s.byUser[userID] = sessionID
	s.owners[sessionID] = userID

	return prev, replaced
}

// Get retrieves a quiz by session ID.
func (s *QuizStorage[T]) Get(sessionID string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.sessions[sessionID]
	return v, ok
}

// Active retrieves the user's active quiz.
func (s *QuizStorage[T]) Active(userID int64) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero T
	id, ok := s.byUser[userID]
	if !ok {
		return zero, false
	}
	v, ok := s.sessions[id]
	return v, ok
}

// Delete removes a quiz by session ID.
func (s *QuizStorage[T]) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if userID, ok := s.owners[sessionID]; ok {
		if s.byUser[userID] == sessionID {
			delete(s.byUser, userID)
		}
		delete(s.owners, sessionID)
	}
	delete(s.sessions, sessionID)
}

// Snapshot returns all stored quizzes.
func (s *QuizStorage[T]) Snapshot() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.sessions))
	for _, v := range s.sessions {
		out = append(out, v)
	}
	return out
}

// Len returns the number of stored quizzes.
func (s *QuizStorage[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
