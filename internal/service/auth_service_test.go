package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"studyvibe/internal/domain"
	"studyvibe/internal/security"
	"studyvibe/internal/service"
)

type MockDirectoryRepo struct {
	mock.Mock
}

func (m *MockDirectoryRepo) Append(ctx context.Context, e *domain.DirectoryEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockDirectoryRepo) GetByID(ctx context.Context, id string) (*domain.DirectoryEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DirectoryEntry), args.Error(1)
}

func (m *MockDirectoryRepo) GetByUsername(ctx context.Context, username string) (*domain.DirectoryEntry, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DirectoryEntry), args.Error(1)
}

type MockSessionRepo struct {
	mock.Mock
}

func (m *MockSessionRepo) Save(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockSessionRepo) Load(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockSessionRepo) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func newAuthService(directory *MockDirectoryRepo, sessions *MockSessionRepo) *service.AuthService {
	tokenSvc := security.NewTokenService("secret", time.Hour)
	hasher := security.NewPasswordHasher(4) // low cost for tests
	return service.NewAuthService(directory, sessions, tokenSvc, hasher, 0)
}

func TestLogin(t *testing.T) {
	hasher := security.NewPasswordHasher(4)
	hashed, err := hasher.Hash("demo")
	assert.NoError(t, err)

	demoEntry := &domain.DirectoryEntry{
		ID:             "1",
		Username:       "demo",
		Bio:            "Demo user",
		HashedPassword: hashed,
	}

	t.Run("Success", func(t *testing.T) {
		directory := new(MockDirectoryRepo)
		sessions := new(MockSessionRepo)
		svc := newAuthService(directory, sessions)

		directory.On("GetByUsername", mock.Anything, "demo").Return(demoEntry, nil)
		sessions.On("Save", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.ID == "1" && u.Username == "demo"
		})).Return(nil)

		resp, err := svc.Login(context.Background(), service.LoginInput{Username: "demo", Password: "demo"})
		assert.NoError(t, err)
		assert.NotNil(t, resp)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "bearer", resp.TokenType)
		assert.Equal(t, "demo", resp.User.Username)
		sessions.AssertCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		directory := new(MockDirectoryRepo)
		sessions := new(MockSessionRepo)
		svc := newAuthService(directory, sessions)

		directory.On("GetByUsername", mock.Anything, "demo").Return(demoEntry, nil)

		resp, err := svc.Login(context.Background(), service.LoginInput{Username: "demo", Password: "wrong"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.Nil(t, resp)
		sessions.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		directory := new(MockDirectoryRepo)
		sessions := new(MockSessionRepo)
		svc := newAuthService(directory, sessions)

		directory.On("GetByUsername", mock.Anything, "ghost").Return(nil, nil)

		resp, err := svc.Login(context.Background(), service.LoginInput{Username: "ghost", Password: "demo"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.Nil(t, resp)
	})
}

func TestSignup(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		directory := new(MockDirectoryRepo)
		sessions := new(MockSessionRepo)
		svc := newAuthService(directory, sessions)

		directory.On("GetByUsername", mock.Anything, "newuser").Return(nil, nil)
		directory.On("Append", mock.Anything, mock.MatchedBy(func(e *domain.DirectoryEntry) bool {
			return e.Username == "newuser" && e.ID != "" && e.HashedPassword != "secret1"
		})).Return(nil)
		sessions.On("Save", mock.Anything, mock.Anything).Return(nil)

		resp, err := svc.Signup(context.Background(), service.SignupInput{Username: "newuser", Password: "secret1"})
		assert.NoError(t, err)
		assert.NotNil(t, resp)
		assert.Equal(t, "newuser", resp.User.Username)
		assert.Equal(t, "New to StudyVibe.io", resp.User.Bio)
		assert.Contains(t, resp.User.Avatar, "seed=newuser")
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		directory := new(MockDirectoryRepo)
		sessions := new(MockSessionRepo)
		svc := newAuthService(directory, sessions)

		existing := &domain.DirectoryEntry{ID: "1", Username: "demo"}
		directory.On("GetByUsername", mock.Anything, "demo").Return(existing, nil)

		resp, err := svc.Signup(context.Background(), service.SignupInput{Username: "demo", Password: "whatever"})
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.Nil(t, resp)
		directory.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("MissingFields", func(t *testing.T) {
		directory := new(MockDirectoryRepo)
		sessions := new(MockSessionRepo)
		svc := newAuthService(directory, sessions)

		resp, err := svc.Signup(context.Background(), service.SignupInput{Username: "", Password: ""})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Nil(t, resp)
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("MergesPartialFields", func(t *testing.T) {
		directory := new(MockDirectoryRepo)
		sessions := new(MockSessionRepo)
		svc := newAuthService(directory, sessions)

		current := &domain.User{ID: "1", Username: "demo", Bio: "Demo user", Avatar: "a"}
		sessions.On("Load", mock.Anything, "1").Return(current, nil)
		sessions.On("Save", mock.Anything, mock.Anything).Return(nil)

		bio := "Focused on finals"
		updated, err := svc.UpdateProfile(context.Background(), "1", service.UpdateProfileInput{Bio: &bio})
		assert.NoError(t, err)
		assert.Equal(t, "Focused on finals", updated.Bio)
		assert.Equal(t, "demo", updated.Username)
	})

	t.Run("NoSessionIsNoop", func(t *testing.T) {
		directory := new(MockDirectoryRepo)
		sessions := new(MockSessionRepo)
		svc := newAuthService(directory, sessions)

		sessions.On("Load", mock.Anything, "1").Return(nil, nil)

		bio := "whatever"
		updated, err := svc.UpdateProfile(context.Background(), "1", service.UpdateProfileInput{Bio: &bio})
		assert.NoError(t, err)
		assert.Nil(t, updated)
		sessions.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
