// Package isodur кодек ограниченного подмножества длительностей ISO-8601,
// которое использует Roomly API: PT(nH)?(nM)?.
package isodur

import (
	"fmt"
	"regexp"
	"strconv"
)

// DefaultMinutes длительность по умолчанию при некорректном входе.
// Парсер никогда не возвращает ошибку: UI всегда должен что-то показать.
const DefaultMinutes = 60

// Unit единица измерения для кодирования длительности
type Unit string

const (
	UnitMinutes Unit = "minutes"
	UnitHours   Unit = "hours"
	UnitDays    Unit = "days"
)

var durationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?$`)

// Parse разбирает длительность вида "PT1H30M" в минуты.
// Пустая строка, нераспознанный формат и "PT" без компонентов дают DefaultMinutes.
// Дневные токены (P1D) в эту сторону не поддерживаются.
func Parse(s string) int {
	if s == "" {
		return DefaultMinutes
	}

	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return DefaultMinutes
	}

	hours, minutes := 0, 0
	if m[1] != "" {
		hours, _ = strconv.Atoi(m[1])
	}
	if m[2] != "" {
		minutes, _ = strconv.Atoi(m[2])
	}

	if hours == 0 && minutes == 0 {
		return DefaultMinutes
	}

	return hours*60 + minutes
}

// Format кодирует значение в строку длительности ISO-8601.
// Дни кодируются как часы (PT{value*24}H), токен D на выходе не используется —
// намеренная асимметрия с парсером под формат, который принимает Roomly API.
func Format(value int, unit Unit) string {
	switch unit {
	case UnitHours:
		return fmt.Sprintf("PT%dH", value)
	case UnitDays:
		return fmt.Sprintf("PT%dH", value*24)
	default:
		if value >= 60 && value%60 == 0 {
			return fmt.Sprintf("PT%dH", value/60)
		}
		if value > 60 {
			return fmt.Sprintf("PT%dH%dM", value/60, value%60)
		}
		return fmt.Sprintf("PT%dM", value)
	}
}
