// Package session реализует серверное хранилище сессий поверх Redis.
// Сессия идентифицируется непрозрачным токеном из cookie и хранит
// денормализованный снимок пользователя на момент входа. Время жизни —
// абсолютное с момента выдачи, продления по активности нет.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/edushield/edushield/internal/config"
	"github.com/edushield/edushield/internal/models"
)

// ErrNoSession возвращается, когда сессия отсутствует или истекла.
// Для читающих обработчиков это анонимный зритель, а не сбой.
var ErrNoSession = errors.New("no session")

const keyPrefix = "session:"

// Store инкапсулирует подключение к Redis и время жизни сессий.
type Store struct {
	Db  *redis.Client
	ttl time.Duration
}

// InitServer подключается к Redis и возвращает готовое хранилище сессий.
func InitServer(ctx context.Context, cfg config.RedisConnection, ttl time.Duration) (*Store, error) {
	const op = "session.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{Db: db, ttl: ttl}, nil
}

// Create создаёт сессию с новым непрозрачным токеном и сохраняет в ней
// снимок пользователя. Возвращает токен для установки в cookie.
func (s *Store) Create(ctx context.Context, identity *models.Identity) (string, error) {
	const op = "session.Create"
	token := uuid.New().String()
	data, err := json.Marshal(identity)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := s.Db.Set(ctx, keyPrefix+token, data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// Get возвращает снимок пользователя по токену сессии.
// Отсутствующая или истекшая сессия — ErrNoSession.
func (s *Store) Get(ctx context.Context, token string) (*models.Identity, error) {
	const op = "session.Get"
	val, err := s.Db.Get(ctx, keyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var identity models.Identity
	if err := json.Unmarshal([]byte(val), &identity); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &identity, nil
}

// Destroy удаляет сессию. Удаление уже истекшей или отсутствующей
// сессии ошибкой не считается — выход идемпотентен.
func (s *Store) Destroy(ctx context.Context, token string) error {
	const op = "session.Destroy"
	if err := s.Db.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// TTL возвращает настроенное время жизни сессий.
func (s *Store) TTL() time.Duration {
	return s.ttl
}
