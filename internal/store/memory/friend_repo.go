package memory

import (
	"context"
	"sync"

	"studyvibe/internal/domain"
)

// FriendRepo is the in-memory friends list, kept in insertion order.
type FriendRepo struct {
	mu      sync.RWMutex
	friends []*domain.Friend
}

func NewFriendRepo() *FriendRepo {
	return &FriendRepo{}
}

var _ domain.FriendRepository = (*FriendRepo)(nil)

func (r *FriendRepo) Add(ctx context.Context, f *domain.Friend) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.friends {
		if existing.ID == f.ID {
			return domain.ErrConflict
		}
	}
	cp := *f
	r.friends = append(r.friends, &cp)
	return nil
}

func (r *FriendRepo) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.friends[:0]
	for _, f := range r.friends {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	r.friends = kept
	return nil
}

func (r *FriendRepo) GetByID(ctx context.Context, id string) (*domain.Friend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, f := range r.friends {
		if f.ID == id {
			cp := *f
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *FriendRepo) List(ctx context.Context) ([]*domain.Friend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*domain.Friend, 0, len(r.friends))
	for _, f := range r.friends {
		cp := *f
		res = append(res, &cp)
	}
	return res, nil
}
