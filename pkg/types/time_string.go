package types

import (
	"errors"
	"fmt"
	"time"
)

// TimeString тип для хранения времени суток в формате "HH:MM" (24 часа).
// Используется вместо time.Time там, где дата не имеет значения:
// окна расписания, времена слотов, рабочие часы.
type TimeString string

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("invalid time string format, expected HH:MM")

const timeStringLayout = "15:04"

// NewTimeString создает TimeString из time.Time (отбрасывает дату и секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeStringLayout))
}

// NewTimeStringFromString парсит строку "HH:MM" в TimeString
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(timeStringLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return NewTimeString(t), nil
}

// String возвращает строковое представление времени
func (ts TimeString) String() string {
	return string(ts)
}

// IsZero проверяет, что значение не задано
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// Validate проверяет корректность формата
func (ts TimeString) Validate() error {
	_, err := time.Parse(timeStringLayout, string(ts))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, ts)
	}
	return nil
}

// Minutes возвращает количество минут с начала суток
func (ts TimeString) Minutes() (int, error) {
	t, err := time.Parse(timeStringLayout, string(ts))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, ts)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// AddMinutes прибавляет минуты ко времени суток.
// Переход через полночь заворачивается по модулю 24 часов, дата не меняется:
// AddMinutes("23:50", 20) == "00:10".
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	total, err := ts.Minutes()
	if err != nil {
		return "", err
	}

	total = (total + minutes) % (24 * 60)
	if total < 0 {
		total += 24 * 60
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore проверяет, что время строго раньше other.
// Некорректные значения считаются равными (сравнение не падает).
func (ts TimeString) IsBefore(other TimeString) bool {
	a, err := ts.Minutes()
	if err != nil {
		return false
	}
	b, err := other.Minutes()
	if err != nil {
		return false
	}
	return a < b
}

// IsAfter проверяет, что время строго позже other
func (ts TimeString) IsAfter(other TimeString) bool {
	return other.IsBefore(ts)
}

// Format12Hour возвращает время в 12-часовом формате ("2:05 PM").
// Для некорректных значений возвращает исходную строку — вызывающая
// сторона всегда должна иметь что отрисовать.
func (ts TimeString) Format12Hour() string {
	t, err := time.Parse(timeStringLayout, string(ts))
	if err != nil {
		return string(ts)
	}
	return t.Format("3:04 PM")
}

// ParseFrom12Hour парсит время из 12-часового формата ("2:05 PM") в TimeString
func ParseFrom12Hour(s string) (TimeString, error) {
	t, err := time.Parse("3:04 PM", s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return NewTimeString(t), nil
}
