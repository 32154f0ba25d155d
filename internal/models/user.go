// Package models содержит доменные структуры платформы учебного контента:
// пользователей, курсы с политиками доступа, выданные вручную доступы (гранты)
// и директивы защиты контента. Структуры используются в бизнес-логике
// и при работе с хранилищем.
package models

import "time"

// Роли пользователей.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Уровни подписки пользователя и уровни доступа ресурса.
// Значения совпадают намеренно: уровень ресурса сравнивается
// с уровнем подписки напрямую.
const (
	TierFree    = "free"
	TierPremium = "premium"
	TierVIP     = "vip"
)

// User представляет зарегистрированного пользователя платформы.
type User struct {
	UID                string     `json:"uid"`                 // Уникальный идентификатор пользователя
	Username           string     `json:"username"`            // Имя пользователя (уникальное)
	Name               string     `json:"name"`                // Отображаемое имя
	Email              string     `json:"email"`               // Электронная почта (уникальная)
	PasswordHash       string     `json:"-"`                   // Хэш пароля, наружу не отдается
	Role               string     `json:"role"`                // Роль пользователя: admin или user
	SubscriptionStatus string     `json:"subscription_status"` // Уровень подписки: free, premium, vip
	SubscriptionExpiry *time.Time `json:"subscription_expiry,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// IsAdmin сообщает, имеет ли пользователь роль администратора.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Identity — денормализованный снимок пользователя, который хранится
// в серверной сессии с момента входа и до выхода или истечения сессии.
// Снимок является кэшем, а не источником истины: изменения роли или
// подписки после входа не попадают в уже существующую сессию.
type Identity struct {
	UID      string `json:"uid"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// SnapshotOf формирует Identity из записи пользователя.
func SnapshotOf(u *User) *Identity {
	return &Identity{
		UID:      u.UID,
		Username: u.Username,
		Role:     u.Role,
		Name:     u.Name,
		Email:    u.Email,
	}
}
