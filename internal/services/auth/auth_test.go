package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edushield/edushield/internal/lib/password"
	"github.com/edushield/edushield/internal/models"
	"github.com/edushield/edushield/internal/services/auth"
	"github.com/edushield/edushield/internal/storage/repository"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Мок для SessionStore
type SessionStoreMock struct {
	mock.Mock
}

func (m *SessionStoreMock) Create(ctx context.Context, identity *models.Identity) (string, error) {
	args := m.Called(ctx, identity)
	return args.String(0), args.Error(1)
}

func (m *SessionStoreMock) Get(ctx context.Context, token string) (*models.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Identity), args.Error(1)
}

func (m *SessionStoreMock) Destroy(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(r *UserRepoMock, s *SessionStoreMock)
		wantUID    string
		wantToken  string
		wantErr    error
	}{
		{
			name: "successful registration opens session",
			setupMocks: func(r *UserRepoMock, s *SessionStoreMock) {
				r.On("RegisterUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
					return user.Email == "test@example.com" &&
						user.Username == "testuser" &&
						user.PasswordHash != "" &&
						user.PasswordHash != "password123" &&
						user.Role == models.RoleUser &&
						user.SubscriptionStatus == models.TierFree
				})).Return("some-uuid-string", nil).Once()
				s.On("Create", mock.Anything, mock.MatchedBy(func(id *models.Identity) bool {
					return id.UID == "some-uuid-string" && id.Username == "testuser"
				})).Return("session-token", nil).Once()
			},
			wantUID:   "some-uuid-string",
			wantToken: "session-token",
		},
		{
			name: "duplicate username yields conflict",
			setupMocks: func(r *UserRepoMock, s *SessionStoreMock) {
				r.On("RegisterUser", mock.Anything, mock.Anything).
					Return("", repository.ErrAlreadyExists).Once()
			},
			wantErr: auth.ErrAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			sessions := new(SessionStoreMock)
			svc := auth.NewAuthService(repo, sessions)

			tt.setupMocks(repo, sessions)

			user, token, err := svc.Register(context.Background(),
				"testuser", "password123", "Test User", "test@example.com")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantUID, user.UID)
				assert.Equal(t, tt.wantToken, token)
				assert.Empty(t, user.PasswordHash)
			}

			repo.AssertExpectations(t)
			sessions.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	rawPassword := "correctpassword"
	hash, err := password.GetHash(rawPassword)
	require.NoError(t, err)

	storedUser := func() *models.User {
		return &models.User{
			UID:                "uid-1",
			Username:           "alice",
			Name:               "Alice",
			Email:              "alice@example.com",
			PasswordHash:       hash,
			Role:               models.RoleUser,
			SubscriptionStatus: models.TierPremium,
		}
	}

	t.Run("successful login", func(t *testing.T) {
		repo := new(UserRepoMock)
		sessions := new(SessionStoreMock)
		repo.On("GetUserByUsername", mock.Anything, "alice").Return(storedUser(), nil).Once()
		sessions.On("Create", mock.Anything, mock.MatchedBy(func(id *models.Identity) bool {
			return id.UID == "uid-1" && id.Role == models.RoleUser
		})).Return("session-token", nil).Once()

		svc := auth.NewAuthService(repo, sessions)
		user, token, err := svc.Login(context.Background(), "alice", rawPassword)
		require.NoError(t, err)
		assert.Equal(t, "session-token", token)
		assert.Empty(t, user.PasswordHash)
		repo.AssertExpectations(t)
		sessions.AssertExpectations(t)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		repo := new(UserRepoMock)
		sessions := new(SessionStoreMock)
		repo.On("GetUserByUsername", mock.Anything, "alice").Return(storedUser(), nil).Once()
		repo.On("GetUserByUsername", mock.Anything, "nobody").
			Return(nil, repository.ErrNotFound).Once()

		svc := auth.NewAuthService(repo, sessions)

		_, _, errWrongPassword := svc.Login(context.Background(), "alice", "wrongpassword")
		_, _, errUnknownUser := svc.Login(context.Background(), "nobody", "whatever")

		assert.ErrorIs(t, errWrongPassword, auth.ErrInvalidCredentials)
		assert.ErrorIs(t, errUnknownUser, auth.ErrInvalidCredentials)
		assert.Equal(t, errWrongPassword.Error(), errUnknownUser.Error())
		repo.AssertExpectations(t)
	})

	t.Run("repository failure is not invalid credentials", func(t *testing.T) {
		repo := new(UserRepoMock)
		sessions := new(SessionStoreMock)
		repo.On("GetUserByUsername", mock.Anything, "alice").
			Return(nil, errors.New("db down")).Once()

		svc := auth.NewAuthService(repo, sessions)
		_, _, err := svc.Login(context.Background(), "alice", rawPassword)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("destroys session", func(t *testing.T) {
		repo := new(UserRepoMock)
		sessions := new(SessionStoreMock)
		sessions.On("Destroy", mock.Anything, "tok").Return(nil).Once()

		svc := auth.NewAuthService(repo, sessions)
		assert.NoError(t, svc.Logout(context.Background(), "tok"))
		sessions.AssertExpectations(t)
	})

	t.Run("empty token is a no-op", func(t *testing.T) {
		svc := auth.NewAuthService(new(UserRepoMock), new(SessionStoreMock))
		assert.NoError(t, svc.Logout(context.Background(), ""))
	})
}

func TestAuthService_CurrentUser(t *testing.T) {
	repo := new(UserRepoMock)
	sessions := new(SessionStoreMock)
	identity := &models.Identity{UID: "uid-1", Username: "alice"}
	sessions.On("Get", mock.Anything, "tok").Return(identity, nil).Once()

	svc := auth.NewAuthService(repo, sessions)
	got, err := svc.CurrentUser(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, identity, got)
}
