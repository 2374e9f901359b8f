package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyvibe/internal/domain"
	"studyvibe/internal/store/memory"
)

func TestChatRepoTimestampClamp(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewChatRepo()

	base := time.Now()
	require.NoError(t, repo.Append(ctx, "2", &domain.Message{ID: "a", Content: "first", Timestamp: base}))
	// Simulates a wall clock that stepped backwards between sends.
	require.NoError(t, repo.Append(ctx, "2", &domain.Message{ID: "b", Content: "second", Timestamp: base.Add(-time.Minute)}))

	chat, err := repo.GetByFriend(ctx, "2")
	require.NoError(t, err)
	require.Len(t, chat.Messages, 2)
	assert.False(t, chat.Messages[1].Timestamp.Before(chat.Messages[0].Timestamp))
	assert.Equal(t, "b", chat.LastMessage.ID)
}

func TestChatRepoCopyOnReturn(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewChatRepo()

	require.NoError(t, repo.Append(ctx, "2", &domain.Message{ID: "a", Content: "hello", Timestamp: time.Now()}))

	chat, err := repo.GetByFriend(ctx, "2")
	require.NoError(t, err)
	chat.Messages[0].Content = "tampered"

	fresh, err := repo.GetByFriend(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "hello", fresh.Messages[0].Content)
}

func TestStoryRepoPrune(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStoryRepo()

	now := time.Now()
	require.NoError(t, repo.Prepend(ctx, &domain.Story{ID: "old", Timestamp: now.Add(-25 * time.Hour)}))
	require.NoError(t, repo.Prepend(ctx, &domain.Story{ID: "fresh", Timestamp: now.Add(-time.Hour)}))

	removed, err := repo.PruneOlderThan(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	stories, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, "fresh", stories[0].ID)

	// Nothing left to prune.
	removed, err = repo.PruneOlderThan(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, removed)
}
