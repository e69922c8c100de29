package mediastore

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mediastore client: internal error")

	// ErrUploadFailed возвращается, когда хранилище отклонило загрузку.
	// Для бронирования с вложением это фатально: бронирование без своей
	// картинки не отправляется.
	ErrUploadFailed = errors.New("mediastore client: upload failed")

	// ErrInvalidResponse возвращается, когда в ответе хранилища нет URL
	ErrInvalidResponse = errors.New("mediastore client: invalid response")
)
