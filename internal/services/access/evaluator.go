// Package access реализует серверную проверку прав на просмотр
// и скачивание контента. Это единственная авторитетная граница
// авторизации: клиентские блокировки поверх нее — только UX.
package access

import (
	"context"
	"time"

	"github.com/edushield/edushield/internal/models"
)

// GrantSource описывает контракт чтения действующих грантов
// для пары пользователь-курс.
type GrantSource interface {
	// ListActiveGrants возвращает активные гранты пары; истечение срока
	// не проверяет — это забота вызывающего.
	ListActiveGrants(ctx context.Context, userUID string, courseID int) ([]models.Grant, error)
}

// Evaluator принимает решения о доступе, комбинируя роль, уровень
// подписки, уровень доступа ресурса и явные гранты.
type Evaluator struct {
	grants GrantSource
	now    func() time.Time
}

// NewEvaluator создает Evaluator с системными часами.
func NewEvaluator(grants GrantSource) *Evaluator {
	return &Evaluator{
		grants: grants,
		now:    time.Now,
	}
}

// NewEvaluatorWithClock создает Evaluator с внедренными часами.
// Используется в тестах для проверки истечения грантов.
func NewEvaluatorWithClock(grants GrantSource, now func() time.Time) *Evaluator {
	return &Evaluator{
		grants: grants,
		now:    now,
	}
}

// CanAccess решает, разрешен ли пользователю просмотр курса.
// user == nil означает анонимного зрителя. Порядок правил фиксирован,
// срабатывает первое подошедшее:
//  1. аноним: только free-курсы;
//  2. администратор: всегда да;
//  3. free-курс: да;
//  4. premium-курс при подписке premium или vip: да;
//  5. vip-курс при подписке vip: да;
//  6. любой действующий грант на пару (пользователь, курс): да;
//  7. иначе нет.
func (e *Evaluator) CanAccess(ctx context.Context, user *models.User, course *models.Course) (bool, error) {
	if user == nil {
		return course.AccessLevel == models.TierFree, nil
	}
	if user.Role == models.RoleAdmin {
		return true, nil
	}
	if course.AccessLevel == models.TierFree {
		return true, nil
	}
	if course.AccessLevel == models.TierPremium &&
		(user.SubscriptionStatus == models.TierPremium || user.SubscriptionStatus == models.TierVIP) {
		return true, nil
	}
	if course.AccessLevel == models.TierVIP && user.SubscriptionStatus == models.TierVIP {
		return true, nil
	}
	return e.hasUsableGrant(ctx, user.UID, course.ID)
}

// CanDownload решает, разрешено ли скачивание. Администратору — всегда.
// Остальным нужно право просмотра и подписка premium или vip: грант
// сам по себе скачивание не дает, это сознательное продуктовое решение.
func (e *Evaluator) CanDownload(ctx context.Context, user *models.User, course *models.Course) (bool, error) {
	if user != nil && user.Role == models.RoleAdmin {
		return true, nil
	}
	ok, err := e.CanAccess(ctx, user, course)
	if err != nil || !ok {
		return false, err
	}
	if user == nil {
		return false, nil
	}
	return user.SubscriptionStatus == models.TierPremium ||
		user.SubscriptionStatus == models.TierVIP, nil
}

func (e *Evaluator) hasUsableGrant(ctx context.Context, userUID string, courseID int) (bool, error) {
	grants, err := e.grants.ListActiveGrants(ctx, userUID, courseID)
	if err != nil {
		return false, err
	}
	now := e.now()
	for _, g := range grants {
		if g.Usable(now) {
			return true, nil
		}
	}
	return false, nil
}
