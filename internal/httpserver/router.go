package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"studyvibe/internal/config"
	"studyvibe/internal/domain"
	"studyvibe/internal/security"
	"studyvibe/internal/service"
	"studyvibe/internal/ws"
)

// NewRouter constructs the main HTTP router and wires routes, services, and
// middleware.
func NewRouter(
	cfg *config.Config,
	hub *ws.Hub,
	tokenSvc *security.TokenService,
	authSvc *service.AuthService,
	chatSvc *service.ChatService,
	studySvc *service.StudyService,
) http.Handler {
	r := chi.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message":"StudyVibe API","version":"1.0.0"}`))
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Auth routes (no auth required)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", handleSignup(authSvc))
			r.Post("/login", handleLogin(authSvc))
		})

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(tokenSvc, authSvc))

			// Authenticated auth endpoints
			r.Post("/auth/logout", handleLogout(authSvc))
			r.Get("/auth/me", handleMe())
			r.Patch("/auth/profile", handleUpdateProfile(authSvc))

			// Friends
			r.Route("/friends", func(r chi.Router) {
				r.Get("/", handleListFriends(chatSvc))
				r.Post("/", handleAddFriend(chatSvc))
				r.Delete("/{friendID}", handleRemoveFriend(chatSvc))
			})

			// Chats and messages
			r.Route("/chats", func(r chi.Router) {
				r.Get("/", handleListChats(chatSvc))
				r.Get("/{friendID}", handleGetChat(chatSvc))
				r.Post("/{friendID}/messages", handleSendMessage(chatSvc, hub))
				r.Post("/{friendID}/read", handleMarkChatRead(chatSvc, hub))
			})

			// Study groups
			r.Route("/groups", func(r chi.Router) {
				r.Get("/", handleListGroups(chatSvc))
				r.Post("/", handleCreateGroup(chatSvc))
				r.Post("/{groupID}/join", handleJoinGroup(chatSvc))
				r.Post("/{groupID}/leave", handleLeaveGroup(chatSvc))
			})

			// Stories
			r.Route("/stories", func(r chi.Router) {
				r.Get("/", handleListStories(chatSvc))
				r.Post("/", handleAddStory(chatSvc, hub))
				r.Post("/{storyID}/view", handleViewStory(chatSvc))
			})

			// Study sessions, goals, and calendar
			r.Route("/study", func(r chi.Router) {
				r.Post("/sessions/start", handleStartSession(studySvc, hub))
				r.Post("/sessions/pause", handlePauseSession(studySvc))
				r.Post("/sessions/resume", handleResumeSession(studySvc))
				r.Post("/sessions/end", handleEndSession(studySvc, hub))
				r.Get("/sessions/current", handleCurrentSession(studySvc))
				r.Get("/sessions", handleListSessions(studySvc))

				r.Route("/goals", func(r chi.Router) {
					r.Get("/", handleListGoals(studySvc))
					r.Post("/", handleAddGoal(studySvc))
					r.Patch("/{goalID}", handleUpdateGoal(studySvc))
					r.Delete("/{goalID}", handleDeleteGoal(studySvc))
				})

				r.Route("/events", func(r chi.Router) {
					r.Get("/", handleListEvents(studySvc))
					r.Post("/", handleAddEvent(studySvc))
					r.Patch("/{eventID}", handleUpdateEvent(studySvc))
					r.Delete("/{eventID}", handleDeleteEvent(studySvc))
				})
			})
		})
	})

	// WebSocket endpoint
	r.Get("/ws", ws.MakeHandler(hub, tokenSvc, authSvc, chatSvc, cfg.CORSOrigins))

	return r
}

// writeJSON is a small helper to send JSON responses.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError maps sentinel errors to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrSessionActive):
		status = http.StatusConflict
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
