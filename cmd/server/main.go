package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"studyvibe/internal/config"
	"studyvibe/internal/httpserver"
	"studyvibe/internal/security"
	"studyvibe/internal/service"
	"studyvibe/internal/store/memory"
	"studyvibe/internal/store/sqlite"
	"studyvibe/internal/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Durable session store
	db, err := sqlite.Open(cfg.SessionDBPath)
	if err != nil {
		log.Fatalf("failed to open session store: %v", err)
	}
	defer db.Close()

	if err := sqlite.Migrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Security components
	tokenSvc := security.NewTokenService(cfg.JWTSecret, time.Duration(cfg.AccessTokenMinutes)*time.Minute)
	passwordHasher := security.NewPasswordHasher(0)
	encryptor, err := security.NewEncryptor([]byte(cfg.SessionEncKey), cfg.LegacyEncKeys)
	if err != nil {
		log.Fatalf("failed to init session encryptor: %v", err)
	}

	// In-memory stores, seeded with the demo fixtures
	directoryRepo := memory.NewDirectoryRepo()
	friendRepo := memory.NewFriendRepo()
	chatRepo := memory.NewChatRepo()
	groupRepo := memory.NewGroupRepo()
	storyRepo := memory.NewStoryRepo()
	studySessionRepo := memory.NewStudySessionRepo()
	goalRepo := memory.NewGoalRepo()
	eventRepo := memory.NewEventRepo()

	seedCtx := context.Background()
	if err := memory.SeedDirectory(seedCtx, directoryRepo, passwordHasher); err != nil {
		log.Fatalf("failed to seed directory: %v", err)
	}
	if err := memory.SeedFriends(seedCtx, friendRepo); err != nil {
		log.Fatalf("failed to seed friends: %v", err)
	}
	if err := memory.SeedStories(seedCtx, storyRepo); err != nil {
		log.Fatalf("failed to seed stories: %v", err)
	}
	if err := memory.SeedGoals(seedCtx, goalRepo); err != nil {
		log.Fatalf("failed to seed goals: %v", err)
	}

	// Services
	sessionRepo := sqlite.NewSessionRepo(db, encryptor)
	authSvc := service.NewAuthService(directoryRepo, sessionRepo, tokenSvc, passwordHasher, cfg.LoginDelay)
	chatSvc := service.NewChatService(friendRepo, chatRepo, groupRepo, storyRepo, cfg.StoryTTL, cfg.StorySweepPeriod)
	studySvc := service.NewStudyService(studySessionRepo, goalRepo, eventRepo)

	// Story-expiry sweep, cancelled on shutdown
	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	defer cancelSweep()
	go chatSvc.Run(sweepCtx)

	// WebSocket hub
	hub := ws.NewHub()

	// Build HTTP router
	router := httpserver.NewRouter(cfg, hub, tokenSvc, authSvc, chatSvc, studySvc)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		log.Printf("Starting StudyVibe server on %s\n", cfg.HTTPAddr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server...")
	cancelSweep()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
