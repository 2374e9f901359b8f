package domain

import (
	"fmt"
	"time"
)

// User is the profile carried by an authenticated session.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Bio      string `json:"bio,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// DirectoryEntry is a registered credential in the account directory.
type DirectoryEntry struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Bio            string `json:"bio,omitempty"`
	HashedPassword string `json:"-"`
}

// Friend represents another user on the current user's friends list.
type Friend struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Bio      string `json:"bio,omitempty"`
	IsOnline bool   `json:"is_online"`
	LastSeen string `json:"last_seen,omitempty"`
}

// MessageType enumerates the supported message payload kinds.
type MessageType string

const (
	MessageText  MessageType = "text"
	MessageImage MessageType = "image"
	MessageVideo MessageType = "video"
	MessageAudio MessageType = "audio"
	MessageFile  MessageType = "file"
)

// ParseMessageType validates a raw message kind. An empty kind defaults to
// text; anything outside the enumerated set is rejected.
func ParseMessageType(raw string) (MessageType, error) {
	switch MessageType(raw) {
	case "":
		return MessageText, nil
	case MessageText, MessageImage, MessageVideo, MessageAudio, MessageFile:
		return MessageType(raw), nil
	default:
		return "", fmt.Errorf("%w: unknown message type %q", ErrInvalidInput, raw)
	}
}

// Message is a single chat message. Immutable once created except for the
// read flag, which only ever flips false -> true.
type Message struct {
	ID         string      `json:"id"`
	SenderID   string      `json:"sender_id"`
	ReceiverID string      `json:"receiver_id"`
	Content    string      `json:"content"`
	Type       MessageType `json:"type"`
	Timestamp  time.Time   `json:"timestamp"`
	IsRead     bool        `json:"is_read"`
}

// Chat is the ordered message history between the current user and one
// friend. Messages are append-only and in non-decreasing timestamp order.
type Chat struct {
	FriendID    string     `json:"friend_id"`
	Messages    []*Message `json:"messages"`
	LastMessage *Message   `json:"last_message,omitempty"`
}

// StudyGroup is a named set of members with a single admin.
// Invariant: AdminID is always a member.
type StudyGroup struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	AdminID   string    `json:"admin_id"`
	Members   []string  `json:"members"`
	CreatedAt time.Time `json:"created_at"`
}

// HasMember reports whether the given user belongs to the group.
func (g *StudyGroup) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// Story is a user-attributed media post shown in a carousel. Stories expire
// after a configurable TTL and are pruned by a background sweep.
type Story struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar"`
	MediaURL  string    `json:"media_url"`
	Timestamp time.Time `json:"timestamp"`
	IsViewed  bool      `json:"is_viewed"`
}

// SessionState is the lifecycle state of an unfinished study session.
type SessionState string

const (
	SessionActive SessionState = "active"
	SessionPaused SessionState = "paused"
)

// StudySession is a bounded interval of self-reported focused study time.
// Duration is in whole minutes and is computed when the session ends.
type StudySession struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	Subject   string       `json:"subject"`
	Duration  int          `json:"duration"`
	StartTime time.Time    `json:"start_time"`
	EndTime   time.Time    `json:"end_time"`
	Notes     string       `json:"notes,omitempty"`
	Rating    *int         `json:"rating,omitempty"`
	State     SessionState `json:"state,omitempty"`
}

// Goal is a study target tracked in hours against a deadline.
type Goal struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	TargetHours  float64   `json:"target_hours"`
	CurrentHours float64   `json:"current_hours"`
	Deadline     time.Time `json:"deadline"`
	Category     string    `json:"category"`
	IsCompleted  bool      `json:"is_completed"`
	CreatedAt    time.Time `json:"created_at"`
}

// EventType enumerates the calendar event kinds.
type EventType string

const (
	EventStudy      EventType = "study"
	EventExam       EventType = "exam"
	EventAssignment EventType = "assignment"
	EventBreak      EventType = "break"
	EventSocial     EventType = "social"
)

// ParseEventType validates a raw calendar event kind. An empty kind defaults
// to study; anything outside the enumerated set is rejected.
func ParseEventType(raw string) (EventType, error) {
	switch EventType(raw) {
	case "":
		return EventStudy, nil
	case EventStudy, EventExam, EventAssignment, EventBreak, EventSocial:
		return EventType(raw), nil
	default:
		return "", fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, raw)
	}
}

// Event is a calendar entry.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Type        EventType `json:"type"`
	Subject     string    `json:"subject,omitempty"`
	Location    string    `json:"location,omitempty"`
	Attendees   []string  `json:"attendees,omitempty"`
}
