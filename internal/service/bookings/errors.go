package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено на платформе
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings service: internal error")
)
