// Package tzoffset разрешает имена таймзон IANA в смещения UTC
// для конкретной даты. Замена литеральной таблицы вида
// {"Asia/Hong_Kong": "+08:00"} — смещение зависит от даты из-за
// переходов на летнее время.
package tzoffset

import (
	"fmt"
	"time"
)

// Resolve возвращает смещение UTC ("+08:00") для зоны на указанную дату.
// Смещение берется на полдень локального дня, чтобы не попасть
// на сам момент перевода часов.
func Resolve(zoneName string, date time.Time) (string, error) {
	loc, err := time.LoadLocation(zoneName)
	if err != nil {
		return "", fmt.Errorf("tzoffset: unknown zone %q: %w", zoneName, err)
	}

	noon := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, loc)
	_, offsetSeconds := noon.Zone()

	sign := "+"
	if offsetSeconds < 0 {
		sign = "-"
		offsetSeconds = -offsetSeconds
	}

	return fmt.Sprintf("%s%02d:%02d", sign, offsetSeconds/3600, (offsetSeconds%3600)/60), nil
}

// Location возвращает *time.Location для зоны с fallback на UTC.
// Используется там, где ошибка разрешения зоны не должна ронять запрос.
func Location(zoneName string) *time.Location {
	loc, err := time.LoadLocation(zoneName)
	if err != nil {
		return time.UTC
	}
	return loc
}
