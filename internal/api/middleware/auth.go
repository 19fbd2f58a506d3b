package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/atsuki-sakai/bocker-scheduling/internal/api/handlers"
)

// HeaderCustomerID заголовок с идентификатором клиента
const HeaderCustomerID = "X-Customer-ID"

type customerIDKey struct{}

// Auth проверяет наличие корректного заголовка X-Customer-ID
// и кладет идентификатор клиента в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderCustomerID)
		if raw == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-Customer-ID")
			return
		}

		customerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || customerID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок X-Customer-ID")
			return
		}

		ctx := context.WithValue(r.Context(), customerIDKey{}, customerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetCustomerID извлекает идентификатор клиента из контекста
func GetCustomerID(ctx context.Context) (int64, bool) {
	customerID, ok := ctx.Value(customerIDKey{}).(int64)
	return customerID, ok
}
