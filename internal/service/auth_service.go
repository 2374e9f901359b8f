package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"studyvibe/internal/domain"
	"studyvibe/internal/security"
)

// AuthService handles signup, login, logout, and profile updates against the
// account directory. The authenticated session is the only durably stored
// piece of state.
type AuthService struct {
	directory domain.DirectoryRepository
	sessions  domain.SessionRepository
	tokens    *security.TokenService
	hash      *security.PasswordHasher

	// loginDelay simulates upstream latency on login/signup; zero disables it.
	loginDelay time.Duration
}

func NewAuthService(
	directory domain.DirectoryRepository,
	sessions domain.SessionRepository,
	tokens *security.TokenService,
	hash *security.PasswordHasher,
	loginDelay time.Duration,
) *AuthService {
	return &AuthService{
		directory:  directory,
		sessions:   sessions,
		tokens:     tokens,
		hash:       hash,
		loginDelay: loginDelay,
	}
}

type LoginInput struct {
	Username string
	Password string
}

type SignupInput struct {
	Username string
	Password string
}

type UpdateProfileInput struct {
	Username *string
	Bio      *string
	Avatar   *string
}

type TokenResponse struct {
	AccessToken string
	TokenType   string
	User        *domain.User
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*TokenResponse, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	entry, err := s.directory.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("get directory entry: %w", err)
	}
	if entry == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := s.hash.Verify(in.Password, entry.HashedPassword); err != nil {
		return nil, domain.ErrUnauthorized
	}

	user := &domain.User{
		ID:       entry.ID,
		Username: entry.Username,
		Bio:      entry.Bio,
		Avatar:   domain.AvatarURL(entry.Username),
	}
	if err := s.sessions.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	return s.tokenResponse(user)
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*TokenResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}

	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	existing, err := s.directory.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}

	hashed, err := s.hash.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	entry := &domain.DirectoryEntry{
		ID:             uuid.NewString(),
		Username:       in.Username,
		Bio:            "New to StudyVibe.io",
		HashedPassword: hashed,
	}
	if err := s.directory.Append(ctx, entry); err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:       entry.ID,
		Username: entry.Username,
		Bio:      entry.Bio,
		Avatar:   domain.AvatarURL(entry.Username),
	}
	if err := s.sessions.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	return s.tokenResponse(user)
}

// Logout clears the durable session; calling it without one is a no-op.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.sessions.Delete(ctx, userID)
}

// UpdateProfile merges the non-nil fields into the current session and
// re-persists it. Without a session it does nothing and returns nil.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*domain.User, error) {
	user, err := s.sessions.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if user == nil {
		return nil, nil
	}

	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.Avatar != nil {
		user.Avatar = *in.Avatar
	}

	if err := s.sessions.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return user, nil
}

// CurrentSession restores the persisted session, if any.
func (s *AuthService) CurrentSession(ctx context.Context, userID string) (*domain.User, error) {
	return s.sessions.Load(ctx, userID)
}

func (s *AuthService) tokenResponse(user *domain.User) (*TokenResponse, error) {
	token, err := s.tokens.CreateForUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}
	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	}, nil
}

func (s *AuthService) simulateLatency(ctx context.Context) error {
	if s.loginDelay <= 0 {
		return nil
	}
	select {
	case <-time.After(s.loginDelay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
