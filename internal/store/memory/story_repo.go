package memory

import (
	"context"
	"sync"
	"time"

	"studyvibe/internal/domain"
)

// StoryRepo is the in-memory story carousel, most-recent-first.
type StoryRepo struct {
	mu      sync.RWMutex
	stories []*domain.Story
}

func NewStoryRepo() *StoryRepo {
	return &StoryRepo{}
}

var _ domain.StoryRepository = (*StoryRepo)(nil)

func (r *StoryRepo) Prepend(ctx context.Context, s *domain.Story) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *s
	r.stories = append([]*domain.Story{&cp}, r.stories...)
	return nil
}

func (r *StoryRepo) List(ctx context.Context) ([]*domain.Story, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*domain.Story, 0, len(r.stories))
	for _, s := range r.stories {
		cp := *s
		res = append(res, &cp)
	}
	return res, nil
}

func (r *StoryRepo) MarkViewed(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.stories {
		if s.ID == id {
			s.IsViewed = true
			return nil
		}
	}
	return nil
}

func (r *StoryRepo) PruneOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.stories[:0]
	removed := 0
	for _, s := range r.stories {
		if s.Timestamp.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	r.stories = kept
	return removed, nil
}
