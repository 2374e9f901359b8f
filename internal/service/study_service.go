package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"studyvibe/internal/domain"
)

// StudyService owns study sessions, goals, and calendar events.
//
// Session lifecycle per user: idle -> active -> (paused <-> active) -> idle,
// emitting a completed record into the history on the way back to idle.
type StudyService struct {
	sessions domain.StudySessionRepository
	goals    domain.GoalRepository
	events   domain.EventRepository
}

func NewStudyService(
	sessions domain.StudySessionRepository,
	goals domain.GoalRepository,
	events domain.EventRepository,
) *StudyService {
	return &StudyService{
		sessions: sessions,
		goals:    goals,
		events:   events,
	}
}

// StartSession begins a new active session. Starting while a session is
// active or paused is rejected; ending the running session first is required.
func (s *StudyService) StartSession(ctx context.Context, userID, subject, notes string) (*domain.StudySession, error) {
	if subject == "" {
		return nil, fmt.Errorf("%w: subject is required", domain.ErrInvalidInput)
	}

	current, err := s.sessions.GetCurrent(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get current session: %w", err)
	}
	if current != nil {
		return nil, domain.ErrSessionActive
	}

	now := time.Now()
	session := &domain.StudySession{
		ID:        uuid.NewString(),
		UserID:    userID,
		Subject:   subject,
		StartTime: now,
		EndTime:   now, // placeholder until ended
		Notes:     notes,
		State:     domain.SessionActive,
	}
	if err := s.sessions.SetCurrent(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *StudyService) PauseSession(ctx context.Context, userID string) (*domain.StudySession, error) {
	current, err := s.sessions.GetCurrent(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get current session: %w", err)
	}
	if current == nil || current.State != domain.SessionActive {
		return nil, fmt.Errorf("%w: no active session to pause", domain.ErrInvalidInput)
	}
	current.State = domain.SessionPaused
	if err := s.sessions.SetCurrent(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *StudyService) ResumeSession(ctx context.Context, userID string) (*domain.StudySession, error) {
	current, err := s.sessions.GetCurrent(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get current session: %w", err)
	}
	if current == nil || current.State != domain.SessionPaused {
		return nil, fmt.Errorf("%w: no paused session to resume", domain.ErrInvalidInput)
	}
	current.State = domain.SessionActive
	if err := s.sessions.SetCurrent(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// EndSession finalizes the current session, computes its duration in whole
// minutes from wall-clock elapsed time, and prepends it to the history.
func (s *StudyService) EndSession(ctx context.Context, userID string, rating *int, notes string) (*domain.StudySession, error) {
	current, err := s.sessions.GetCurrent(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get current session: %w", err)
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	current.EndTime = now
	current.Duration = int(now.Sub(current.StartTime).Seconds()) / 60
	if current.Duration < 0 {
		current.Duration = 0
	}
	current.Rating = rating
	if notes != "" {
		current.Notes = notes
	}
	current.State = ""

	if err := s.sessions.PrependHistory(ctx, current); err != nil {
		return nil, err
	}
	if err := s.sessions.ClearCurrent(ctx, userID); err != nil {
		return nil, err
	}
	return current, nil
}

// CurrentSession returns the active or paused session, or (nil, nil) when
// the user is idle.
func (s *StudyService) CurrentSession(ctx context.Context, userID string) (*domain.StudySession, error) {
	return s.sessions.GetCurrent(ctx, userID)
}

func (s *StudyService) ListSessions(ctx context.Context, userID string) ([]*domain.StudySession, error) {
	return s.sessions.ListHistory(ctx, userID)
}

type AddGoalInput struct {
	Title       string
	Description string
	TargetHours float64
	Deadline    time.Time
	Category    string
}

type UpdateGoalInput struct {
	Title        *string
	Description  *string
	TargetHours  *float64
	CurrentHours *float64
	Deadline     *time.Time
	Category     *string
	IsCompleted  *bool
}

func (s *StudyService) AddGoal(ctx context.Context, in AddGoalInput) (*domain.Goal, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: goal title is required", domain.ErrInvalidInput)
	}
	goal := &domain.Goal{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		TargetHours: in.TargetHours,
		Deadline:    in.Deadline,
		Category:    in.Category,
		CreatedAt:   time.Now(),
	}
	if err := s.goals.Prepend(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// UpdateGoal merges the non-nil fields into the stored goal.
func (s *StudyService) UpdateGoal(ctx context.Context, id string, in UpdateGoalInput) (*domain.Goal, error) {
	goal, err := s.goals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, domain.ErrNotFound
	}

	if in.Title != nil {
		goal.Title = *in.Title
	}
	if in.Description != nil {
		goal.Description = *in.Description
	}
	if in.TargetHours != nil {
		goal.TargetHours = *in.TargetHours
	}
	if in.CurrentHours != nil {
		goal.CurrentHours = *in.CurrentHours
	}
	if in.Deadline != nil {
		goal.Deadline = *in.Deadline
	}
	if in.Category != nil {
		goal.Category = *in.Category
	}
	if in.IsCompleted != nil {
		goal.IsCompleted = *in.IsCompleted
	}

	if err := s.goals.Update(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *StudyService) DeleteGoal(ctx context.Context, id string) error {
	return s.goals.Delete(ctx, id)
}

func (s *StudyService) ListGoals(ctx context.Context) ([]*domain.Goal, error) {
	return s.goals.List(ctx)
}

type AddEventInput struct {
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Type        string
	Subject     string
	Location    string
	Attendees   []string
}

type UpdateEventInput struct {
	Title       *string
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
	Type        *string
	Subject     *string
	Location    *string
	Attendees   []string
}

func (s *StudyService) AddEvent(ctx context.Context, in AddEventInput) (*domain.Event, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: event title is required", domain.ErrInvalidInput)
	}
	eventType, err := domain.ParseEventType(in.Type)
	if err != nil {
		return nil, err
	}
	event := &domain.Event{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Type:        eventType,
		Subject:     in.Subject,
		Location:    in.Location,
		Attendees:   in.Attendees,
	}
	if err := s.events.Prepend(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// UpdateEvent merges the non-nil fields into the stored event.
func (s *StudyService) UpdateEvent(ctx context.Context, id string, in UpdateEventInput) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, domain.ErrNotFound
	}

	if in.Title != nil {
		event.Title = *in.Title
	}
	if in.Description != nil {
		event.Description = *in.Description
	}
	if in.StartTime != nil {
		event.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		event.EndTime = *in.EndTime
	}
	if in.Type != nil {
		eventType, err := domain.ParseEventType(*in.Type)
		if err != nil {
			return nil, err
		}
		event.Type = eventType
	}
	if in.Subject != nil {
		event.Subject = *in.Subject
	}
	if in.Location != nil {
		event.Location = *in.Location
	}
	if in.Attendees != nil {
		event.Attendees = in.Attendees
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *StudyService) DeleteEvent(ctx context.Context, id string) error {
	return s.events.Delete(ctx, id)
}

func (s *StudyService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	return s.events.List(ctx)
}
