package models

import "time"

// Уровни защиты контента, управляющие агрессивностью клиентских мер.
const (
	ProtectionNone   = "none"
	ProtectionBasic  = "basic"
	ProtectionStrict = "strict"
)

// Course представляет защищаемый ресурс платформы вместе с его
// политикой доступа. Политика — статические атрибуты, выставляемые
// администратором; от того, кто просматривает курс, они не зависят.
type Course struct {
	ID              int       `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Body            string    `json:"body,omitempty"` // Закрытый контент курса
	AccessLevel     string    `json:"access_level"`   // free, premium, vip
	AllowDownload   bool      `json:"allow_download"`
	AllowScreenshot bool      `json:"allow_screenshot"`
	AllowCopy       bool      `json:"allow_copy"`
	AllowPrint      bool      `json:"allow_print"`
	WatermarkText   *string   `json:"watermark_text,omitempty"`
	ProtectionLevel string    `json:"protection_level"` // none, basic, strict
	CreatedAt       time.Time `json:"created_at"`
}

// CourseSummary — облегченное представление курса для списков.
// Закрытое тело курса в списки не попадает никогда.
type CourseSummary struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	AccessLevel string `json:"access_level"`
}

// Причины, по которым просмотр курса заблокирован для текущего зрителя.
const (
	ReasonLoginRequired   = "login_required"
	ReasonUpgradeRequired = "upgrade_required"
)

// CourseView — представление курса в ответе на запрос просмотра.
// Для зрителя без права доступа Body всегда пустое, Locked — true,
// а Reason подсказывает клиенту, что показать: приглашение войти
// или предложение повысить подписку. Сервер не отправляет контент,
// который зритель не вправе получить; клиентская блокировка поверх
// этого — только UX.
type CourseView struct {
	ID            int                   `json:"id"`
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	AccessLevel   string                `json:"access_level"`
	Locked        bool                  `json:"locked"`
	Reason        string                `json:"reason,omitempty"`
	Body          string                `json:"body,omitempty"`
	AllowDownload bool                  `json:"allow_download"`
	Protection    *ProtectionDirectives `json:"protection,omitempty"`
}
