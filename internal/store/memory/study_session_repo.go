package memory

import (
	"context"
	"sync"

	"studyvibe/internal/domain"
)

// StudySessionRepo tracks at most one current session per user plus the
// completed-session history, most-recent-first.
type StudySessionRepo struct {
	mu      sync.RWMutex
	current map[string]*domain.StudySession
	history map[string][]*domain.StudySession
}

func NewStudySessionRepo() *StudySessionRepo {
	return &StudySessionRepo{
		current: make(map[string]*domain.StudySession),
		history: make(map[string][]*domain.StudySession),
	}
}

var _ domain.StudySessionRepository = (*StudySessionRepo)(nil)

func (r *StudySessionRepo) SetCurrent(ctx context.Context, s *domain.StudySession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *s
	r.current[s.UserID] = &cp
	return nil
}

func (r *StudySessionRepo) GetCurrent(ctx context.Context, userID string) (*domain.StudySession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.current[userID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *StudySessionRepo) ClearCurrent(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.current, userID)
	return nil
}

func (r *StudySessionRepo) PrependHistory(ctx context.Context, s *domain.StudySession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *s
	r.history[s.UserID] = append([]*domain.StudySession{&cp}, r.history[s.UserID]...)
	return nil
}

func (r *StudySessionRepo) ListHistory(ctx context.Context, userID string) ([]*domain.StudySession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := r.history[userID]
	res := make([]*domain.StudySession, 0, len(sessions))
	for _, s := range sessions {
		cp := *s
		res = append(res, &cp)
	}
	return res, nil
}
