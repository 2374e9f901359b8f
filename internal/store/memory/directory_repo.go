package memory

import (
	"context"
	"sync"

	"studyvibe/internal/domain"
)

// DirectoryRepo is the in-memory registered-account directory.
type DirectoryRepo struct {
	mu      sync.RWMutex
	entries []*domain.DirectoryEntry
}

func NewDirectoryRepo() *DirectoryRepo {
	return &DirectoryRepo{}
}

var _ domain.DirectoryRepository = (*DirectoryRepo)(nil)

func (r *DirectoryRepo) Append(ctx context.Context, e *domain.DirectoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.entries {
		if existing.Username == e.Username {
			return domain.ErrConflict
		}
	}
	cp := *e
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *DirectoryRepo) GetByID(ctx context.Context, id string) (*domain.DirectoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *DirectoryRepo) GetByUsername(ctx context.Context, username string) (*domain.DirectoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Case-sensitive exact match.
	for _, e := range r.entries {
		if e.Username == username {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}
