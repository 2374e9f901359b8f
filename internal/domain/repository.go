package domain

import (
	"context"
	"time"
)

// DirectoryRepository defines operations on the registered-account directory.
type DirectoryRepository interface {
	Append(ctx context.Context, e *DirectoryEntry) error
	GetByID(ctx context.Context, id string) (*DirectoryEntry, error)
	GetByUsername(ctx context.Context, username string) (*DirectoryEntry, error)
}

// SessionRepository persists the serialized session blob per user.
type SessionRepository interface {
	Save(ctx context.Context, u *User) error
	Load(ctx context.Context, userID string) (*User, error)
	Delete(ctx context.Context, userID string) error
}

// FriendRepository defines operations on the friends list.
type FriendRepository interface {
	Add(ctx context.Context, f *Friend) error
	Remove(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Friend, error)
	List(ctx context.Context) ([]*Friend, error)
}

// ChatRepository defines operations on per-friend message threads.
type ChatRepository interface {
	// Append adds a message to the friend's thread, creating the thread if
	// it does not exist, and updates the cached last-message pointer.
	Append(ctx context.Context, friendID string, m *Message) error
	GetByFriend(ctx context.Context, friendID string) (*Chat, error)
	List(ctx context.Context) ([]*Chat, error)
	MarkAllRead(ctx context.Context, friendID string) error
	Delete(ctx context.Context, friendID string) error
}

// GroupRepository defines operations on study groups.
type GroupRepository interface {
	Create(ctx context.Context, g *StudyGroup) error
	GetByID(ctx context.Context, id string) (*StudyGroup, error)
	List(ctx context.Context) ([]*StudyGroup, error)
	Update(ctx context.Context, g *StudyGroup) error
}

// StoryRepository defines operations on the story carousel.
type StoryRepository interface {
	// Prepend inserts the story at the front (most-recent-first ordering).
	Prepend(ctx context.Context, s *Story) error
	List(ctx context.Context) ([]*Story, error)
	MarkViewed(ctx context.Context, id string) error
	// PruneOlderThan removes stories posted before the cutoff and returns
	// how many were removed.
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// StudySessionRepository tracks the current session and completed history
// per user.
type StudySessionRepository interface {
	SetCurrent(ctx context.Context, s *StudySession) error
	GetCurrent(ctx context.Context, userID string) (*StudySession, error)
	ClearCurrent(ctx context.Context, userID string) error
	// PrependHistory records a finalized session, most-recent-first.
	PrependHistory(ctx context.Context, s *StudySession) error
	ListHistory(ctx context.Context, userID string) ([]*StudySession, error)
}

// GoalRepository defines CRUD over study goals, newest-first.
type GoalRepository interface {
	Prepend(ctx context.Context, g *Goal) error
	GetByID(ctx context.Context, id string) (*Goal, error)
	List(ctx context.Context) ([]*Goal, error)
	Update(ctx context.Context, g *Goal) error
	Delete(ctx context.Context, id string) error
}

// EventRepository defines CRUD over calendar events, newest-first.
type EventRepository interface {
	Prepend(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id string) error
}
