// Package protection вычисляет директивы сдерживания для клиента
// по политике защиты курса. Сдерживание — не граница безопасности:
// все меры обходимы отключением скриптов или чтением DOM, и стоит им
// сломаться, страница обязана продолжать работать. Сервер лишь
// сообщает клиенту, какие перехватчики установить.
package protection

import "github.com/edushield/edushield/internal/models"

// Браузерные события и сочетания клавиш, которые клиент перехватывает
// по указанию сервера.
var (
	copyEvents = []string{"contextmenu", "copy", "cut", "selectstart"}

	printEvents = []string{"beforeprint", "keydown:ctrl+p"}

	screenshotEvents = []string{
		"keydown:printscreen",
		"keydown:f12",
		"keydown:ctrl+shift+i",
		"keydown:ctrl+shift+j",
		"keydown:ctrl+shift+c",
		"keydown:ctrl+u",
		"keydown:ctrl+s",
	}
)

// Параметры эвристики обнаружения devtools на уровне strict.
const (
	devtoolsPollIntervalMS  = 1000
	devtoolsPollThresholdPX = 160
)

// Directives строит директивы сдерживания для курса.
//
// Уровень none отключает перехват событий полностью. На уровне basic
// перехватываются только события, запрещенные флагами политики.
// Уровень strict блокирует все перечисленные события независимо от
// флагов и добавляет периодическую эвристику обнаружения devtools.
// Водяной знак не зависит от уровня: он рисуется всегда, когда задан
// текст. Если директив нет вовсе, возвращается nil.
func Directives(course *models.Course) *models.ProtectionDirectives {
	d := &models.ProtectionDirectives{}

	if course.WatermarkText != nil {
		d.Watermark = *course.WatermarkText
	}

	switch course.ProtectionLevel {
	case models.ProtectionNone:
		// только водяной знак, если задан
	case models.ProtectionStrict:
		d.BlockedEvents = append(d.BlockedEvents, copyEvents...)
		d.BlockedEvents = append(d.BlockedEvents, printEvents...)
		d.BlockedEvents = append(d.BlockedEvents, screenshotEvents...)
		d.DevtoolsPoll = &models.DevtoolsPoll{
			IntervalMS:  devtoolsPollIntervalMS,
			ThresholdPX: devtoolsPollThresholdPX,
			WarnOnce:    true,
		}
	default: // basic
		if !course.AllowCopy {
			d.BlockedEvents = append(d.BlockedEvents, copyEvents...)
		}
		if !course.AllowPrint {
			d.BlockedEvents = append(d.BlockedEvents, printEvents...)
		}
		if !course.AllowScreenshot {
			d.BlockedEvents = append(d.BlockedEvents, screenshotEvents...)
		}
	}

	if len(d.BlockedEvents) == 0 && d.Watermark == "" && d.DevtoolsPoll == nil {
		return nil
	}
	return d
}
