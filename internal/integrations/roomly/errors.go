package roomly

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInternal возвращается при внутренних ошибках клиента (сборка запроса, сеть)
	ErrInternal = errors.New("roomly client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе платформы
	ErrInvalidResponse = errors.New("roomly client: invalid response")
)

// ErrorKind закрытый набор категорий отказов платформы.
// Сопоставление текстов ошибок сервера категориям живет ТОЛЬКО здесь,
// на границе клиента: оркестратор работает с категориями, а не с подстроками.
type ErrorKind string

const (
	// KindScheduleMissing у ресурса нет открытого расписания на запрошенное время
	KindScheduleMissing ErrorKind = "schedule_missing"

	// KindScheduleCollision запрошенный блок расписания уже существует.
	// Для секвенсора это положительный сигнал (покрытие есть), не ошибка.
	KindScheduleCollision ErrorKind = "schedule_collision"

	// KindSlotInvalid запрошенное окно не совпадает ни с одним бронируемым слотом
	KindSlotInvalid ErrorKind = "slot_invalid"

	// KindNotFound сущность не найдена
	KindNotFound ErrorKind = "not_found"

	// KindTransient любой нераспознанный отказ (сеть, 5xx, неизвестное сообщение)
	KindTransient ErrorKind = "transient"
)

// APIError ошибка платформы, классифицированная по ErrorKind.
// Message хранит исходный текст сервера для логов; наружу пользователю
// он не показывается.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("roomly api error (%s, status %d): %s", e.Kind, e.StatusCode, e.Message)
}

// KindOf возвращает категорию ошибки платформы.
// Для любых других ошибок (в том числе сетевых) возвращает KindTransient.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindTransient
}

// IsKind проверяет, что ошибка относится к указанной категории
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// classify сопоставляет статус и тело ответа категории.
// Известные сигнатуры сообщений платформы:
//   - "collides" / "already exists"          -> KindScheduleCollision
//   - "does not have an open schedule"       -> KindScheduleMissing
//   - "does not match a valid bookable slot" -> KindSlotInvalid
func classify(statusCode int, message string) *APIError {
	lower := strings.ToLower(message)

	kind := KindTransient
	switch {
	case strings.Contains(lower, "collides") || strings.Contains(lower, "already exists"):
		kind = KindScheduleCollision
	case strings.Contains(lower, "does not have an open schedule"):
		kind = KindScheduleMissing
	case strings.Contains(lower, "does not match a valid bookable slot"):
		kind = KindSlotInvalid
	case statusCode == 404:
		kind = KindNotFound
	}

	return &APIError{
		Kind:       kind,
		StatusCode: statusCode,
		Message:    message,
	}
}
