package memory

import (
	"context"
	"sync"

	"studyvibe/internal/domain"
)

// ChatRepo holds per-friend message threads. At most one thread exists per
// friend id; messages within a thread are append-only.
type ChatRepo struct {
	mu    sync.RWMutex
	chats map[string]*domain.Chat
	order []string
}

func NewChatRepo() *ChatRepo {
	return &ChatRepo{chats: make(map[string]*domain.Chat)}
}

var _ domain.ChatRepository = (*ChatRepo)(nil)

func (r *ChatRepo) Append(ctx context.Context, friendID string, m *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.chats[friendID]
	if !ok {
		c = &domain.Chat{FriendID: friendID}
		r.chats[friendID] = c
		r.order = append(r.order, friendID)
	}
	cp := *m
	// Timestamps within a thread are non-decreasing; clamp against the tail
	// in case the wall clock stepped backwards.
	if n := len(c.Messages); n > 0 && cp.Timestamp.Before(c.Messages[n-1].Timestamp) {
		cp.Timestamp = c.Messages[n-1].Timestamp
	}
	c.Messages = append(c.Messages, &cp)
	c.LastMessage = &cp
	return nil
}

func (r *ChatRepo) GetByFriend(ctx context.Context, friendID string) (*domain.Chat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.chats[friendID]
	if !ok {
		return nil, nil
	}
	return copyChat(c), nil
}

func (r *ChatRepo) List(ctx context.Context) ([]*domain.Chat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*domain.Chat, 0, len(r.order))
	for _, id := range r.order {
		if c, ok := r.chats[id]; ok {
			res = append(res, copyChat(c))
		}
	}
	return res, nil
}

func (r *ChatRepo) MarkAllRead(ctx context.Context, friendID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.chats[friendID]
	if !ok {
		return nil
	}
	for _, m := range c.Messages {
		m.IsRead = true
	}
	if c.LastMessage != nil {
		c.LastMessage.IsRead = true
	}
	return nil
}

func (r *ChatRepo) Delete(ctx context.Context, friendID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.chats, friendID)
	kept := r.order[:0]
	for _, id := range r.order {
		if id != friendID {
			kept = append(kept, id)
		}
	}
	r.order = kept
	return nil
}

func copyChat(c *domain.Chat) *domain.Chat {
	cp := &domain.Chat{FriendID: c.FriendID}
	cp.Messages = make([]*domain.Message, 0, len(c.Messages))
	for _, m := range c.Messages {
		mc := *m
		cp.Messages = append(cp.Messages, &mc)
	}
	if len(cp.Messages) > 0 {
		cp.LastMessage = cp.Messages[len(cp.Messages)-1]
	}
	return cp
}
