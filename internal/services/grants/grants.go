// Package grants содержит бизнес-логику журнала выданных доступов:
// выдачу, отзыв и просмотр грантов с публикацией событий аудита.
package grants

import (
	"context"
	"fmt"
	"time"

	"github.com/edushield/edushield/internal/audit"
	"github.com/edushield/edushield/internal/models"
)

// GrantRepository описывает контракт хранилища грантов.
type GrantRepository interface {
	CreateGrant(ctx context.Context, grant models.Grant) (*models.Grant, error)
	DeactivateGrants(ctx context.Context, userUID string, courseID int) (int, error)
	ListGrantsByUser(ctx context.Context, userUID string) ([]models.Grant, error)
}

// GrantService реализует операции над журналом доступов.
type GrantService struct {
	repo  GrantRepository
	audit *audit.Publisher
}

// NewGrantService создает новый экземпляр GrantService.
// Публикатор аудита может быть nil — тогда события не отправляются.
func NewGrantService(repo GrantRepository, auditPub *audit.Publisher) *GrantService {
	return &GrantService{
		repo:  repo,
		audit: auditPub,
	}
}

// Grant выдает пользователю доступ к курсу. Существующие гранты той же
// пары не проверяются: допускается несколько параллельных записей.
func (s *GrantService) Grant(ctx context.Context, actorUID, userUID string, courseID int, accessType string, expiry *time.Time) (*models.Grant, error) {
	const op = "grants.Grant"

	created, err := s.repo.CreateGrant(ctx, models.Grant{
		UserUID:    userUID,
		CourseID:   courseID,
		AccessType: accessType,
		ExpiryDate: expiry,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.audit.Publish(audit.Event{
		Type:     audit.EventGrantIssued,
		UserUID:  userUID,
		CourseID: courseID,
		ActorUID: actorUID,
	})
	return created, nil
}

// Revoke снимает активность со всех действующих грантов пары.
// Возвращает false, если отзывать было нечего. История сохраняется.
func (s *GrantService) Revoke(ctx context.Context, actorUID, userUID string, courseID int) (bool, error) {
	const op = "grants.Revoke"

	affected, err := s.repo.DeactivateGrants(ctx, userUID, courseID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return false, nil
	}

	s.audit.Publish(audit.Event{
		Type:     audit.EventGrantRevoked,
		UserUID:  userUID,
		CourseID: courseID,
		ActorUID: actorUID,
	})
	return true, nil
}

// ListByUser возвращает все гранты пользователя, включая отозванные.
func (s *GrantService) ListByUser(ctx context.Context, userUID string) ([]models.Grant, error) {
	const op = "grants.ListByUser"

	grants, err := s.repo.ListGrantsByUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return grants, nil
}
