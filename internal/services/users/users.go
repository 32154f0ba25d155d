// Package users содержит бизнес-логику административного управления
// учетными записями: смену уровня подписки пользователя.
package users

import (
	"context"
	"fmt"
	"time"

	"github.com/edushield/edushield/internal/audit"
)

// UserRepository описывает контракт хранилища пользователей.
type UserRepository interface {
	// UpdateSubscription обновляет уровень подписки и дату ее истечения.
	UpdateSubscription(ctx context.Context, userUID, status string, expiry *time.Time) error
}

// UsersService реализует административные операции над учетными записями.
type UsersService struct {
	repo  UserRepository
	audit *audit.Publisher
}

// NewUsersService создает новый экземпляр UsersService.
// Публикатор аудита может быть nil — тогда события не отправляются.
func NewUsersService(repo UserRepository, auditPub *audit.Publisher) *UsersService {
	return &UsersService{
		repo:  repo,
		audit: auditPub,
	}
}

// UpdateSubscription переводит пользователя на указанный уровень подписки.
// expiry == nil означает бессрочную подписку. Открытые сессии пользователя
// не трогаются: проверки доступа читают актуальную запись из базы.
func (s *UsersService) UpdateSubscription(ctx context.Context, actorUID, userUID, status string, expiry *time.Time) error {
	const op = "users.UpdateSubscription"

	if err := s.repo.UpdateSubscription(ctx, userUID, status, expiry); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.audit.Publish(audit.Event{
		Type:     audit.EventTierChanged,
		UserUID:  userUID,
		ActorUID: actorUID,
	})
	return nil
}
