package telegram

import (
	"slices"
	"sync"
)

// questionCounts are the quiz lengths offered in the topic picker.
var questionCounts = []int{5, 10, 20, 30, 50}

// selection is a user's pending quiz setup.
type selection struct {
	Topics []string
	Limit  int
}

// selectionStore keeps topic picker state per user in memory.
type selectionStore struct {
	mu           sync.Mutex
	defaultLimit int
	items        map[int64]*selection
}

func newSelectionStore(defaultLimit int) *selectionStore {
	return &selectionStore{
		defaultLimit: defaultLimit,
		items:        make(map[int64]*selection),
	}
}

func (s *selectionStore) getLocked(userID int64) *selection {
	sel, ok := s.items[userID]
	if !ok {
		sel = &selection{Limit: s.defaultLimit}
		s.items[userID] = sel
	}
	return sel
}

// Get returns a copy of the user's selection.
func (s *selectionStore) Get(userID int64) selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel := s.getLocked(userID)
	return selection{Topics: slices.Clone(sel.Topics), Limit: sel.Limit}
}

// Toggle adds or removes a topic.
func (s *selectionStore) Toggle(userID int64, topic string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sel := s.getLocked(userID)
	if i := slices.Index(sel.Topics, topic); i >= 0 {
		sel.Topics = slices.Delete(sel.Topics, i, i+1)
		return
	}
	sel.Topics = append(sel.Topics, topic)
}

// SetLimit sets the number of questions.
func (s *selectionStore) SetLimit(userID int64, limit int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getLocked(userID).Limit = limit
}

// SelectAll replaces the selected topics with all of topics.
func (s *selectionStore) SelectAll(userID int64, topics []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getLocked(userID).Topics = slices.Clone(topics)
}

// Reset forgets the user's selection.
func (s *selectionStore) Reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, userID)
}
