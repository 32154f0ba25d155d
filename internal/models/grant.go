package models

import "time"

// Типы выдачи доступа к курсу.
const (
	AccessTypeGranted   = "granted"
	AccessTypePurchased = "purchased"
	AccessTypeTrial     = "trial"
)

// Grant — явное исключение из правил подписки: выданный администратором
// доступ одного пользователя к одному курсу. Уникальности пары
// (user_uid, course_id) нет, допускается несколько записей; при проверке
// доступа достаточно любой активной и не истекшей. Отзыв не удаляет
// запись, а снимает флаг активности — история сохраняется.
type Grant struct {
	ID         int        `json:"id"`
	UserUID    string     `json:"user_uid"`
	CourseID   int        `json:"course_id"`
	AccessType string     `json:"access_type"` // granted, purchased, trial
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Usable сообщает, дает ли грант доступ в момент времени now:
// он должен быть активен и либо бессрочен, либо еще не истек.
func (g *Grant) Usable(now time.Time) bool {
	if !g.IsActive {
		return false
	}
	if g.ExpiryDate == nil {
		return true
	}
	return !g.ExpiryDate.Before(now)
}
