package memory

import (
	"context"
	"time"

	"studyvibe/internal/domain"
	"studyvibe/internal/security"
)

// SeedDirectory populates the directory with the demo accounts.
func SeedDirectory(ctx context.Context, repo domain.DirectoryRepository, hasher *security.PasswordHasher) error {
	accounts := []struct {
		id, username, bio, password string
	}{
		{"1", "demo", "Demo user", "demo"},
		{"2", "alice", "Student at MIT", "password"},
		{"3", "bob", "CS Major", "password"},
	}
	for _, a := range accounts {
		hashed, err := hasher.Hash(a.password)
		if err != nil {
			return err
		}
		entry := &domain.DirectoryEntry{
			ID:             a.id,
			Username:       a.username,
			Bio:            a.bio,
			HashedPassword: hashed,
		}
		if err := repo.Append(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

// SeedFriends populates the demo user's friends list.
func SeedFriends(ctx context.Context, repo domain.FriendRepository) error {
	friends := []*domain.Friend{
		{
			ID:       "2",
			Username: "alice",
			Avatar:   domain.AvatarURL("alice"),
			Bio:      "Student at MIT",
			IsOnline: true,
		},
		{
			ID:       "3",
			Username: "bob",
			Avatar:   domain.AvatarURL("bob"),
			Bio:      "CS Major",
			IsOnline: false,
			LastSeen: "2 hours ago",
		},
		{
			ID:       "4",
			Username: "carol",
			Avatar:   domain.AvatarURL("carol"),
			Bio:      "Math enthusiast",
			IsOnline: true,
		},
	}
	for _, f := range friends {
		if err := repo.Add(ctx, f); err != nil {
			return err
		}
	}
	return nil
}

// SeedStories populates the story carousel with the demo fixtures.
func SeedStories(ctx context.Context, repo domain.StoryRepository) error {
	now := time.Now()
	stories := []*domain.Story{
		{
			ID:        "1",
			UserID:    "2",
			Username:  "alice",
			Avatar:    domain.AvatarURL("alice"),
			MediaURL:  "https://images.unsplash.com/photo-1571019613454-1cb2f99b2d8b?w=400",
			Timestamp: now.Add(-2 * time.Hour),
		},
		{
			ID:        "2",
			UserID:    "3",
			Username:  "bob",
			Avatar:    domain.AvatarURL("bob"),
			MediaURL:  "https://images.unsplash.com/photo-1522202176988-66273c2fd55f?w=400",
			Timestamp: now.Add(-1 * time.Hour),
		},
	}
	// Prepend in reverse so the newest story ends up first.
	for i := len(stories) - 1; i >= 0; i-- {
		if err := repo.Prepend(ctx, stories[i]); err != nil {
			return err
		}
	}
	return nil
}

// SeedGoals populates the demo goals.
func SeedGoals(ctx context.Context, repo domain.GoalRepository) error {
	now := time.Now()
	goals := []*domain.Goal{
		{
			ID:           "1",
			Title:        "Complete Data Structures Course",
			Description:  "Finish all modules and practice problems",
			TargetHours:  40,
			CurrentHours: 28,
			Deadline:     now.Add(14 * 24 * time.Hour),
			Category:     "Computer Science",
			CreatedAt:    now.Add(-7 * 24 * time.Hour),
		},
		{
			ID:           "2",
			Title:        "Math Exam Preparation",
			Description:  "Prepare for calculus final exam",
			TargetHours:  30,
			CurrentHours: 22,
			Deadline:     now.Add(21 * 24 * time.Hour),
			Category:     "Mathematics",
			CreatedAt:    now.Add(-10 * 24 * time.Hour),
		},
	}
	for i := len(goals) - 1; i >= 0; i-- {
		if err := repo.Prepend(ctx, goals[i]); err != nil {
			return err
		}
	}
	return nil
}
