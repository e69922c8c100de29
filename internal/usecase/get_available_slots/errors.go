package get_available_slots

import "errors"

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден на платформе
	ErrResourceNotFound = errors.New("get_available_slots: resource not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
