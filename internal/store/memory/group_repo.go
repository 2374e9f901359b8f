package memory

import (
	"context"
	"sync"

	"studyvibe/internal/domain"
)

// GroupRepo is the in-memory study-group collection, in creation order.
type GroupRepo struct {
	mu     sync.RWMutex
	groups []*domain.StudyGroup
}

func NewGroupRepo() *GroupRepo {
	return &GroupRepo{}
}

var _ domain.GroupRepository = (*GroupRepo)(nil)

func (r *GroupRepo) Create(ctx context.Context, g *domain.StudyGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.groups = append(r.groups, copyGroup(g))
	return nil
}

func (r *GroupRepo) GetByID(ctx context.Context, id string) (*domain.StudyGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, g := range r.groups {
		if g.ID == id {
			return copyGroup(g), nil
		}
	}
	return nil, nil
}

func (r *GroupRepo) List(ctx context.Context) ([]*domain.StudyGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*domain.StudyGroup, 0, len(r.groups))
	for _, g := range r.groups {
		res = append(res, copyGroup(g))
	}
	return res, nil
}

func (r *GroupRepo) Update(ctx context.Context, g *domain.StudyGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.groups {
		if existing.ID == g.ID {
			r.groups[i] = copyGroup(g)
			return nil
		}
	}
	return domain.ErrNotFound
}

func copyGroup(g *domain.StudyGroup) *domain.StudyGroup {
	cp := *g
	cp.Members = append([]string(nil), g.Members...)
	return &cp
}
