package cancel_booking

// CancelBookingRequest HTTP request model.
// ResourceID нужен для сброса кэша списков по ресурсу.
type CancelBookingRequest struct {
	ResourceID int64 `json:"resourceId"`
}
