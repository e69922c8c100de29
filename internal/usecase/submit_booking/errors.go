package submit_booking

import "errors"

// Терминальные ошибки оркестратора. Наружу уходят только они и ошибки
// валидации — сырой текст платформы пользователю не показывается никогда.
var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_booking: invalid input data")

	// ErrInvalidDate возвращается, когда дата бронирования в прошлом
	ErrInvalidDate = errors.New("submit_booking: booking date is in the past")

	// ErrInvalidTimeRange возвращается, когда начало не раньше конца
	ErrInvalidTimeRange = errors.New("submit_booking: start time must be before end time")

	// ErrOutsideOperatingHours возвращается, когда окно выходит за рабочие часы
	ErrOutsideOperatingHours = errors.New("submit_booking: time window is outside operating hours")

	// ErrImageUpload возвращается при отказе загрузки вложения.
	// Бронирование при этом не отправляется вовсе: без своей картинки
	// бронирование не создается.
	ErrImageUpload = errors.New("submit_booking: image upload failed")

	// ErrScheduleUnrepairable возвращается, когда у ресурса нет открытого
	// расписания даже после ремонта и повторной отправки
	ErrScheduleUnrepairable = errors.New("submit_booking: resource has no open schedule even after repair")

	// ErrSlotUnavailable возвращается, когда слот занят или недоступен
	// после повторной отправки по сигналу коллизии
	ErrSlotUnavailable = errors.New("submit_booking: requested slot is unavailable")

	// ErrSlotStillInvalid возвращается, когда окно не совпадает с бронируемым
	// слотом даже после создания блока точно под него
	ErrSlotStillInvalid = errors.New("submit_booking: requested window still does not match a bookable slot")

	// ErrSlotConflict возвращается, когда повторная отправка точного окна
	// уперлась в конфликт с существующим бронированием
	ErrSlotConflict = errors.New("submit_booking: requested window conflicts with an existing booking")

	// ErrInternal возвращается при нераспознанных отказах платформы;
	// пользователю предлагается повторить попытку позже
	ErrInternal = errors.New("submit_booking: internal error")
)
