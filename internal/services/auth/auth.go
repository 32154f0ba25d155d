// Package auth содержит бизнес-логику регистрации, входа и работы
// с серверными сессиями.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/edushield/edushield/internal/lib/password"
	"github.com/edushield/edushield/internal/models"
	"github.com/edushield/edushield/internal/storage/repository"
)

// ErrInvalidCredentials возвращается и при неизвестном username,
// и при неверном пароле: ответ не должен позволять перебор имен.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrAlreadyExists возвращается при регистрации на занятые username или email.
var ErrAlreadyExists = errors.New("username or email already taken")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// SessionStore описывает контракт серверного хранилища сессий.
type SessionStore interface {
	Create(ctx context.Context, identity *models.Identity) (string, error)
	Get(ctx context.Context, token string) (*models.Identity, error)
	Destroy(ctx context.Context, token string) error
}

// AuthService отвечает за регистрацию, вход, выход и чтение текущей сессии.
type AuthService struct {
	users    UserRepository
	sessions SessionStore
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, sessions SessionStore) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
	}
}

// Register создает нового пользователя с хэшированием пароля, ролью user
// и подпиской free, затем открывает для него сессию. Возвращает запись
// пользователя без хэша пароля и токен сессии.
func (s *AuthService) Register(ctx context.Context, username, rawPassword, name, email string) (*models.User, string, error) {
	const op = "auth.Register"

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		Username:           username,
		Name:               name,
		Email:              email,
		PasswordHash:       hashed,
		Role:               models.RoleUser, // дефолтная роль при регистрации
		SubscriptionStatus: models.TierFree,
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, "", ErrAlreadyExists
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	user.UID = uid
	user.PasswordHash = ""

	token, err := s.sessions.Create(ctx, models.SnapshotOf(&user))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return &user, token, nil
}

// Login проверяет учетные данные и открывает сессию. Несуществующий
// пользователь и неверный пароль неразличимы снаружи: в обоих случаях
// возвращается ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (*models.User, string, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	user.PasswordHash = ""

	token, err := s.sessions.Create(ctx, models.SnapshotOf(user))
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return user, token, nil
}

// Logout уничтожает сессию. Выход с уже истекшей сессией — не ошибка.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	const op = "auth.Logout"
	if token == "" {
		return nil
	}
	if err := s.sessions.Destroy(ctx, token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CurrentUser возвращает снимок пользователя из сессии.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.Identity, error) {
	return s.sessions.Get(ctx, token)
}
