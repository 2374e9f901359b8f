package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"studyvibe/internal/domain"
)

// ChatService owns friends, per-friend message threads, study groups, and
// stories.
type ChatService struct {
	friends domain.FriendRepository
	chats   domain.ChatRepository
	groups  domain.GroupRepository
	stories domain.StoryRepository

	storyTTL   time.Duration
	sweepEvery time.Duration
}

func NewChatService(
	friends domain.FriendRepository,
	chats domain.ChatRepository,
	groups domain.GroupRepository,
	stories domain.StoryRepository,
	storyTTL time.Duration,
	sweepEvery time.Duration,
) *ChatService {
	return &ChatService{
		friends:    friends,
		chats:      chats,
		groups:     groups,
		stories:    stories,
		storyTTL:   storyTTL,
		sweepEvery: sweepEvery,
	}
}

type SendMessageInput struct {
	FriendID string
	Content  string
	Type     string
}

// SendMessage appends a message to the addressed friend's thread, creating
// the thread on first use. The new message is always the last element of the
// thread and carries the wall-clock timestamp at call time.
func (s *ChatService) SendMessage(ctx context.Context, senderID string, in SendMessageInput) (*domain.Message, error) {
	msgType, err := domain.ParseMessageType(in.Type)
	if err != nil {
		return nil, err
	}
	if in.FriendID == "" {
		return nil, fmt.Errorf("%w: friend id is required", domain.ErrInvalidInput)
	}
	if in.Content == "" {
		return nil, fmt.Errorf("%w: message content cannot be empty", domain.ErrInvalidInput)
	}

	msg := &domain.Message{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: in.FriendID,
		Content:    in.Content,
		Type:       msgType,
		Timestamp:  time.Now(),
		IsRead:     false,
	}
	if err := s.chats.Append(ctx, in.FriendID, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// MarkMessagesAsRead flips every message in the thread to read, regardless
// of sender. Safe on a missing or empty thread, and idempotent.
func (s *ChatService) MarkMessagesAsRead(ctx context.Context, friendID string) error {
	return s.chats.MarkAllRead(ctx, friendID)
}

// GetChatWithFriend is a pure lookup; it returns (nil, nil) when no thread
// exists for the friend.
func (s *ChatService) GetChatWithFriend(ctx context.Context, friendID string) (*domain.Chat, error) {
	return s.chats.GetByFriend(ctx, friendID)
}

func (s *ChatService) ListChats(ctx context.Context) ([]*domain.Chat, error) {
	return s.chats.List(ctx)
}

func (s *ChatService) ListFriends(ctx context.Context) ([]*domain.Friend, error) {
	return s.friends.List(ctx)
}

func (s *ChatService) AddFriend(ctx context.Context, f *domain.Friend) error {
	if f.ID == "" || f.Username == "" {
		return fmt.Errorf("%w: friend id and username are required", domain.ErrInvalidInput)
	}
	if f.Avatar == "" {
		f.Avatar = domain.AvatarURL(f.Username)
	}
	return s.friends.Add(ctx, f)
}

// RemoveFriend drops the friend and discards their thread so no orphaned
// threads remain.
func (s *ChatService) RemoveFriend(ctx context.Context, friendID string) error {
	if err := s.friends.Remove(ctx, friendID); err != nil {
		return err
	}
	return s.chats.Delete(ctx, friendID)
}

// CreateStudyGroup creates a group whose member set is the union of the
// creator and the given member ids, with the creator as admin.
func (s *ChatService) CreateStudyGroup(ctx context.Context, name string, memberIDs []string, creatorID string) (*domain.StudyGroup, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: group name is required", domain.ErrInvalidInput)
	}

	members := make([]string, 0, len(memberIDs)+1)
	seen := map[string]struct{}{creatorID: {}}
	members = append(members, creatorID)
	for _, id := range memberIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		members = append(members, id)
	}

	group := &domain.StudyGroup{
		ID:        uuid.NewString(),
		Name:      name,
		AdminID:   creatorID,
		Members:   members,
		CreatedAt: time.Now(),
	}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *ChatService) ListGroups(ctx context.Context) ([]*domain.StudyGroup, error) {
	return s.groups.List(ctx)
}

// JoinGroup adds the user to the group's member set; joining twice is a
// no-op.
func (s *ChatService) JoinGroup(ctx context.Context, groupID, userID string) (*domain.StudyGroup, error) {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, domain.ErrNotFound
	}
	if group.HasMember(userID) {
		return group, nil
	}
	group.Members = append(group.Members, userID)
	if err := s.groups.Update(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// LeaveGroup removes the user from the member set. The admin cannot leave;
// that would break the admin-is-a-member invariant.
func (s *ChatService) LeaveGroup(ctx context.Context, groupID, userID string) (*domain.StudyGroup, error) {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, domain.ErrNotFound
	}
	if group.AdminID == userID {
		return nil, domain.ErrForbidden
	}
	kept := group.Members[:0]
	for _, m := range group.Members {
		if m != userID {
			kept = append(kept, m)
		}
	}
	group.Members = kept
	if err := s.groups.Update(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// AddStory prepends a new unviewed story, keeping most-recent-first order.
func (s *ChatService) AddStory(ctx context.Context, mediaURL, userID, username, avatar string) (*domain.Story, error) {
	if mediaURL == "" {
		return nil, fmt.Errorf("%w: media url is required", domain.ErrInvalidInput)
	}
	story := &domain.Story{
		ID:        uuid.NewString(),
		UserID:    userID,
		Username:  username,
		Avatar:    avatar,
		MediaURL:  mediaURL,
		Timestamp: time.Now(),
		IsViewed:  false,
	}
	if err := s.stories.Prepend(ctx, story); err != nil {
		return nil, err
	}
	return story, nil
}

func (s *ChatService) ListStories(ctx context.Context) ([]*domain.Story, error) {
	return s.stories.List(ctx)
}

func (s *ChatService) MarkStoryViewed(ctx context.Context, storyID string) error {
	return s.stories.MarkViewed(ctx, storyID)
}

// Run sweeps expired stories on a fixed interval until the context is
// cancelled.
func (s *ChatService) Run(ctx context.Context) {
	if s.storyTTL <= 0 || s.sweepEvery <= 0 {
		return
	}
	ticker := time.NewTicker(s.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.stories.PruneOlderThan(ctx, time.Now().Add(-s.storyTTL))
			if err != nil {
				log.Printf("story sweep: %v", err)
				continue
			}
			if removed > 0 {
				log.Printf("story sweep: pruned %d expired stories", removed)
			}
		}
	}
}
