package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyvibe/internal/domain"
	"studyvibe/internal/service"
	"studyvibe/internal/store/memory"
)

func newStudyService() *service.StudyService {
	return service.NewStudyService(
		memory.NewStudySessionRepo(),
		memory.NewGoalRepo(),
		memory.NewEventRepo(),
	)
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("StartThenEnd", func(t *testing.T) {
		svc := newStudyService()

		started, err := svc.StartSession(ctx, "1", "Mathematics", "integrals")
		require.NoError(t, err)
		assert.Equal(t, domain.SessionActive, started.State)
		assert.Equal(t, "Mathematics", started.Subject)

		current, err := svc.CurrentSession(ctx, "1")
		require.NoError(t, err)
		require.NotNil(t, current)
		assert.Equal(t, started.ID, current.ID)

		rating := 5
		ended, err := svc.EndSession(ctx, "1", &rating, "went well")
		require.NoError(t, err)
		// Ended moments after starting, so whole-minute duration floors to 0.
		assert.Equal(t, 0, ended.Duration)
		assert.Equal(t, "went well", ended.Notes)
		require.NotNil(t, ended.Rating)
		assert.Equal(t, 5, *ended.Rating)

		current, err = svc.CurrentSession(ctx, "1")
		require.NoError(t, err)
		assert.Nil(t, current)

		history, err := svc.ListSessions(ctx, "1")
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, started.ID, history[0].ID)
	})

	t.Run("StartWhileActiveRejected", func(t *testing.T) {
		svc := newStudyService()

		_, err := svc.StartSession(ctx, "1", "Physics", "")
		require.NoError(t, err)

		_, err = svc.StartSession(ctx, "1", "Chemistry", "")
		assert.ErrorIs(t, err, domain.ErrSessionActive)
	})

	t.Run("PauseAndResume", func(t *testing.T) {
		svc := newStudyService()

		_, err := svc.StartSession(ctx, "1", "History", "")
		require.NoError(t, err)

		paused, err := svc.PauseSession(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, domain.SessionPaused, paused.State)

		// Pausing a paused session is invalid.
		_, err = svc.PauseSession(ctx, "1")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		resumed, err := svc.ResumeSession(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, domain.SessionActive, resumed.State)

		_, err = svc.ResumeSession(ctx, "1")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("EndWithoutSession", func(t *testing.T) {
		svc := newStudyService()

		_, err := svc.EndSession(ctx, "1", nil, "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("EmptySubjectRejected", func(t *testing.T) {
		svc := newStudyService()

		_, err := svc.StartSession(ctx, "1", "", "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("HistoryIsNewestFirst", func(t *testing.T) {
		svc := newStudyService()

		first, err := svc.StartSession(ctx, "1", "Biology", "")
		require.NoError(t, err)
		_, err = svc.EndSession(ctx, "1", nil, "")
		require.NoError(t, err)

		second, err := svc.StartSession(ctx, "1", "Chemistry", "")
		require.NoError(t, err)
		_, err = svc.EndSession(ctx, "1", nil, "")
		require.NoError(t, err)

		history, err := svc.ListSessions(ctx, "1")
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, second.ID, history[0].ID)
		assert.Equal(t, first.ID, history[1].ID)
	})

	t.Run("SessionsAreScopedPerUser", func(t *testing.T) {
		svc := newStudyService()

		_, err := svc.StartSession(ctx, "1", "Math", "")
		require.NoError(t, err)

		other, err := svc.CurrentSession(ctx, "2")
		require.NoError(t, err)
		assert.Nil(t, other)

		_, err = svc.StartSession(ctx, "2", "Art", "")
		assert.NoError(t, err)
	})
}

func TestGoals(t *testing.T) {
	ctx := context.Background()
	svc := newStudyService()

	deadline := time.Now().Add(30 * 24 * time.Hour)

	goal, err := svc.AddGoal(ctx, service.AddGoalInput{
		Title:       "Finish calculus course",
		Description: "All 12 chapters",
		TargetHours: 40,
		Deadline:    deadline,
		Category:    "Mathematics",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, goal.ID)
	assert.Zero(t, goal.CurrentHours)
	assert.False(t, goal.IsCompleted)

	t.Run("NewestFirst", func(t *testing.T) {
		second, err := svc.AddGoal(ctx, service.AddGoalInput{Title: "Read two papers"})
		require.NoError(t, err)

		goals, err := svc.ListGoals(ctx)
		require.NoError(t, err)
		require.Len(t, goals, 2)
		assert.Equal(t, second.ID, goals[0].ID)
	})

	t.Run("PartialUpdate", func(t *testing.T) {
		hours := 12.5
		done := true
		updated, err := svc.UpdateGoal(ctx, goal.ID, service.UpdateGoalInput{
			CurrentHours: &hours,
			IsCompleted:  &done,
		})
		require.NoError(t, err)
		assert.Equal(t, 12.5, updated.CurrentHours)
		assert.True(t, updated.IsCompleted)
		// Untouched fields keep their values.
		assert.Equal(t, "Finish calculus course", updated.Title)
		assert.Equal(t, 40.0, updated.TargetHours)
	})

	t.Run("UpdateUnknownGoal", func(t *testing.T) {
		title := "x"
		_, err := svc.UpdateGoal(ctx, "missing", service.UpdateGoalInput{Title: &title})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, svc.DeleteGoal(ctx, goal.ID))

		goals, err := svc.ListGoals(ctx)
		require.NoError(t, err)
		for _, g := range goals {
			assert.NotEqual(t, goal.ID, g.ID)
		}
	})

	t.Run("EmptyTitleRejected", func(t *testing.T) {
		_, err := svc.AddGoal(ctx, service.AddGoalInput{Title: ""})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestEvents(t *testing.T) {
	ctx := context.Background()
	svc := newStudyService()

	start := time.Now().Add(time.Hour)

	event, err := svc.AddEvent(ctx, service.AddEventInput{
		Title:     "Linear algebra exam",
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
		Type:      "exam",
		Subject:   "Mathematics",
		Location:  "Room 204",
		Attendees: []string{"1", "2"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.EventExam, event.Type)

	t.Run("DefaultTypeIsStudy", func(t *testing.T) {
		ev, err := svc.AddEvent(ctx, service.AddEventInput{Title: "Library block"})
		require.NoError(t, err)
		assert.Equal(t, domain.EventStudy, ev.Type)
	})

	t.Run("UnknownTypeRejected", func(t *testing.T) {
		_, err := svc.AddEvent(ctx, service.AddEventInput{Title: "x", Type: "party"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("PartialUpdate", func(t *testing.T) {
		loc := "Room 110"
		kind := "assignment"
		updated, err := svc.UpdateEvent(ctx, event.ID, service.UpdateEventInput{
			Location: &loc,
			Type:     &kind,
		})
		require.NoError(t, err)
		assert.Equal(t, "Room 110", updated.Location)
		assert.Equal(t, domain.EventAssignment, updated.Type)
		assert.Equal(t, "Linear algebra exam", updated.Title)
	})

	t.Run("UpdateWithBadType", func(t *testing.T) {
		kind := "rave"
		_, err := svc.UpdateEvent(ctx, event.ID, service.UpdateEventInput{Type: &kind})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, svc.DeleteEvent(ctx, event.ID))

		events, err := svc.ListEvents(ctx)
		require.NoError(t, err)
		for _, e := range events {
			assert.NotEqual(t, event.ID, e.ID)
		}
	})
}
