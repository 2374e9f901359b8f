package memory

import (
	"context"
	"sync"

	"studyvibe/internal/domain"
)

// GoalRepo is the in-memory goal collection, newest-first.
type GoalRepo struct {
	mu    sync.RWMutex
	goals []*domain.Goal
}

func NewGoalRepo() *GoalRepo {
	return &GoalRepo{}
}

var _ domain.GoalRepository = (*GoalRepo)(nil)

func (r *GoalRepo) Prepend(ctx context.Context, g *domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *g
	r.goals = append([]*domain.Goal{&cp}, r.goals...)
	return nil
}

func (r *GoalRepo) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, g := range r.goals {
		if g.ID == id {
			cp := *g
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *GoalRepo) List(ctx context.Context) ([]*domain.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*domain.Goal, 0, len(r.goals))
	for _, g := range r.goals {
		cp := *g
		res = append(res, &cp)
	}
	return res, nil
}

func (r *GoalRepo) Update(ctx context.Context, g *domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.goals {
		if existing.ID == g.ID {
			cp := *g
			r.goals[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *GoalRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.goals[:0]
	for _, g := range r.goals {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	r.goals = kept
	return nil
}
