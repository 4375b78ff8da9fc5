package presenter

import (
	"github.com/aliskhannn/mi-quiz-bot/internal/domain/entities"
)

// Cache keeps one prepared presenter per question id for the lifetime of a
// quiz session, so a question keeps its option order when the learner comes
// back to it. Entries are never refreshed. A Cache is not safe for concurrent use.
type Cache struct {
	rng   Rand
	opts  []Option
	items map[int64]*Presenter
}

// NewCache creates an empty cache whose presenters share rng.
func NewCache(rng Rand, opts ...Option) *Cache {
	return &Cache{
		rng:   rng,
		opts:  opts,
		items: make(map[int64]*Presenter),
	}
}

// Get returns the prepared presenter for q, creating it on first use.
func (c *Cache) Get(q entities.Question) *Presenter {
	if p, ok := c.items[q.ID]; ok {
		return p
	}

	p := New(q, c.rng, c.opts...)
	p.Prepare()
	c.items[q.ID] = p

	return p
}

// Lookup returns the presenter for a question id if it was already shown.
func (c *Cache) Lookup(questionID int64) (*Presenter, bool) {
	p, ok := c.items[questionID]
	return p, ok
}

// Len returns the number of questions presented so far.
func (c *Cache) Len() int {
	return len(c.items)
}
