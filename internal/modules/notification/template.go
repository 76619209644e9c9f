package notification

import (
	"regexp"
	"strings"
)

// Подписи событий в сообщениях.
var eventLabels = map[string]string{
	"created":     "Новая запись",
	"rescheduled": "Запись перенесена",
	"cancelled":   "Запись отменена",
	"confirmed":   "Запись подтверждена",
	"status":      "Обновление записи",
}

var defaultTelegramTemplate = strings.Join([]string{
	"🗓 {event}",
	"Время: {datetime}",
	"Услуга: {service}",
	"Мастер: {barber}",
	"Клиент: {client}",
	"Телефон: {client_phone}",
	"Салон: {location}",
	"Адрес: {address}",
}, "\n")

const defaultSMSTemplate = "{event} · {date} {time} · {service} · {barber}"

var (
	placeholderRe = regexp.MustCompile(`\{(\w+)\}`)
	smsNewlineRe  = regexp.MustCompile(`\s*\n\s*`)
	spaceRe       = regexp.MustCompile(`\s+`)
	nonDigitRe    = regexp.MustCompile(`[^\d]`)
)

func eventLabel(event string) string {
	if label, ok := eventLabels[event]; ok {
		return label
	}
	return eventLabels["status"]
}

// renderTemplate substitutes {key} placeholders; unknown keys render as
// an empty string rather than leaking the placeholder.
func renderTemplate(template string, context map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(template, func(m string) string {
		key := m[1 : len(m)-1]
		return context[key]
	})
}

// sanitizeSMS flattens a multi-line template into one line for the SMS
// gateway.
func sanitizeSMS(text string) string {
	text = smsNewlineRe.ReplaceAllString(text, " · ")
	text = spaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// normalizePhone brings Russian numbers to the 7XXXXXXXXXX form the SMS
// gateway expects. Anything else passes through digits-only.
func normalizePhone(input string) string {
	digits := nonDigitRe.ReplaceAllString(input, "")
	switch {
	case digits == "":
		return ""
	case len(digits) == 10:
		return "7" + digits
	case len(digits) == 11 && strings.HasPrefix(digits, "8"):
		return "7" + digits[1:]
	default:
		return digits
	}
}
