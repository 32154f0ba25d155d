package models

// ProtectionDirectives — набор мер сдерживания, который сервер отдает
// клиенту вместе с контентом. Клиент устанавливает перехватчики на
// перечисленные события на время жизни контента (навешивает при
// монтировании, снимает при размонтировании) и рисует водяной знак
// поверх контента. Все меры обходимы и границей безопасности не
// являются: граница — серверная проверка доступа, контент без права
// доступа на клиент просто не отправляется.
type ProtectionDirectives struct {
	BlockedEvents []string      `json:"blocked_events,omitempty"` // Браузерные события, подлежащие перехвату
	Watermark     string        `json:"watermark,omitempty"`      // Текст водяного знака поверх контента
	DevtoolsPoll  *DevtoolsPoll `json:"devtools_poll,omitempty"`  // Параметры эвристики обнаружения devtools
}

// DevtoolsPoll описывает периодическую эвристику обнаружения открытых
// инструментов разработчика: клиент сравнивает размеры viewport и окна
// раз в IntervalMS, считая расхождение больше ThresholdPX признаком
// открытых devtools. WarnOnce требует показывать предупреждение только
// на переходе false→true, а не на каждом тике опроса.
type DevtoolsPoll struct {
	IntervalMS  int  `json:"interval_ms"`
	ThresholdPX int  `json:"threshold_px"`
	WarnOnce    bool `json:"warn_once"`
}
