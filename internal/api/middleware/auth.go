package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/RMS-BookingGateway/internal/api/handlers"
)

type contextKey string

const adminIDKey contextKey = "adminID"

const (
	headerAdminID = "X-Admin-ID"

	msgMissingAdminID = "требуется заголовок X-Admin-ID"
	msgInvalidAdminID = "некорректный X-Admin-ID"
)

// Auth проверяет наличие валидного заголовка X-Admin-ID и кладет
// идентификатор администратора в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(headerAdminID)
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingAdminID)
			return
		}

		adminID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || adminID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidAdminID)
			return
		}

		ctx := context.WithValue(r.Context(), adminIDKey, adminID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminIDFromContext возвращает идентификатор администратора из контекста
func AdminIDFromContext(ctx context.Context) (int64, bool) {
	adminID, ok := ctx.Value(adminIDKey).(int64)
	return adminID, ok
}
