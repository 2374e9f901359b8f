package memory

import (
	"context"
	"sync"

	"studyvibe/internal/domain"
)

// EventRepo is the in-memory calendar, newest-first.
type EventRepo struct {
	mu     sync.RWMutex
	events []*domain.Event
}

func NewEventRepo() *EventRepo {
	return &EventRepo{}
}

var _ domain.EventRepository = (*EventRepo)(nil)

func (r *EventRepo) Prepend(ctx context.Context, e *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append([]*domain.Event{copyEvent(e)}, r.events...)
	return nil
}

func (r *EventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.events {
		if e.ID == id {
			return copyEvent(e), nil
		}
	}
	return nil, nil
}

func (r *EventRepo) List(ctx context.Context) ([]*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*domain.Event, 0, len(r.events))
	for _, e := range r.events {
		res = append(res, copyEvent(e))
	}
	return res, nil
}

func (r *EventRepo) Update(ctx context.Context, e *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.events {
		if existing.ID == e.ID {
			r.events[i] = copyEvent(e)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *EventRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.events[:0]
	for _, e := range r.events {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	r.events = kept
	return nil
}

func copyEvent(e *domain.Event) *domain.Event {
	cp := *e
	cp.Attendees = append([]string(nil), e.Attendees...)
	return &cp
}
