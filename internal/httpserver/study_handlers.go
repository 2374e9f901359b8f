package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"studyvibe/internal/service"
	"studyvibe/internal/ws"
)

type startSessionRequest struct {
	Subject string `json:"subject"`
	Notes   string `json:"notes"`
}

type endSessionRequest struct {
	Rating *int   `json:"rating"`
	Notes  string `json:"notes"`
}

type addGoalRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TargetHours float64   `json:"target_hours"`
	Deadline    time.Time `json:"deadline"`
	Category    string    `json:"category"`
}

type updateGoalRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	TargetHours  *float64   `json:"target_hours"`
	CurrentHours *float64   `json:"current_hours"`
	Deadline     *time.Time `json:"deadline"`
	Category     *string    `json:"category"`
	IsCompleted  *bool      `json:"is_completed"`
}

type addEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Type        string    `json:"type"`
	Subject     string    `json:"subject"`
	Location    string    `json:"location"`
	Attendees   []string  `json:"attendees"`
}

type updateEventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Type        *string    `json:"type"`
	Subject     *string    `json:"subject"`
	Location    *string    `json:"location"`
	Attendees   []string   `json:"attendees"`
}

func handleStartSession(studySvc *service.StudyService, hub *ws.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)
		if user == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		var req startSessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}

		session, err := studySvc.StartSession(r.Context(), user.ID, req.Subject, req.Notes)
		if err != nil {
			writeError(w, err)
			return
		}
		hub.BroadcastToUsers([]string{user.ID}, map[string]any{
			"type":       "session_started",
			"session_id": session.ID,
			"subject":    session.Subject,
			"start_time": session.StartTime,
		})
		writeJSON(w, http.StatusCreated, session)
	}
}

func handlePauseSession(studySvc *service.StudyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)
		if user == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		session, err := studySvc.PauseSession(r.Context(), user.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, session)
	}
}

func handleResumeSession(studySvc *service.StudyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)
		if user == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		session, err := studySvc.ResumeSession(r.Context(), user.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, session)
	}
}

func handleEndSession(studySvc *service.StudyService, hub *ws.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)
		if user == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		var req endSessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}

		session, err := studySvc.EndSession(r.Context(), user.ID, req.Rating, req.Notes)
		if err != nil {
			writeError(w, err)
			return
		}
		hub.BroadcastToUsers([]string{user.ID}, map[string]any{
			"type":       "session_ended",
			"session_id": session.ID,
			"subject":    session.Subject,
			"duration":   session.Duration,
		})
		writeJSON(w, http.StatusOK, session)
	}
}

func handleCurrentSession(studySvc *service.StudyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)
		if user == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		session, err := studySvc.CurrentSession(r.Context(), user.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		if session == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no session in progress"})
			return
		}
		writeJSON(w, http.StatusOK, session)
	}
}

func handleListSessions(studySvc *service.StudyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r)
		if user == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		sessions, err := studySvc.ListSessions(r.Context(), user.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sessions)
	}
}

func handleListGoals(studySvc *service.StudyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		goals, err := studySvc.ListGoals(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, goals)
	}
}

func handleAddGoal(studySvc *service.StudyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addGoalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}
		goal, err := studySvc.AddGoal(r.Context(), service.AddGoalInput{
			Title:       req.Title,
			Description: req.Description,
			TargetHours: req.TargetHours,
			Deadline:    req.Deadline,
			Category:    req.Category,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, goal)
	}
}

func handleUpdateGoal(studySvc *service.StudyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		goalID := chi.URLParam(r, "goalID")
		var req updateGoalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}
		goal, err := studySvc.UpdateGoal(r.Context(), goalID, service.UpdateGoalInput{
			Title:        req.Title,
			Description:  req.Description,
			TargetHours:  req.TargetHours,
			CurrentHours: req.CurrentHours,
			Deadline:     req.Deadline,
			Category:     req.Category,
			IsCompleted:  req.IsCompleted,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, goal)
	}
}

func handleDeleteGoal(studySvc *service.StudyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		goalID := chi.URLParam(r, "goalID")
		if err := studySvc.DeleteGoal(r.Context(), goalID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleListEvents(studySvc *service.StudyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := studySvc.ListEvents(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, events)
	}
}

func handleAddEvent(studySvc *service.StudyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}
		event, err := studySvc.AddEvent(r.Context(), service.AddEventInput{
			Title:       req.Title,
			Description: req.Description,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			Type:        req.Type,
			Subject:     req.Subject,
			Location:    req.Location,
			Attendees:   req.Attendees,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, event)
	}
}

func handleUpdateEvent(studySvc *service.StudyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := chi.URLParam(r, "eventID")
		var req updateEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}
		event, err := studySvc.UpdateEvent(r.Context(), eventID, service.UpdateEventInput{
			Title:       req.Title,
			Description: req.Description,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			Type:        req.Type,
			Subject:     req.Subject,
			Location:    req.Location,
			Attendees:   req.Attendees,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, event)
	}
}

func handleDeleteEvent(studySvc *service.StudyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := chi.URLParam(r, "eventID")
		if err := studySvc.DeleteEvent(r.Context(), eventID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
