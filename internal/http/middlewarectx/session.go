// Package middlewarectx содержит HTTP-middleware и ключи контекста запроса.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/EgorCode/businessform-sub002/internal/http/response"
)

// ctxKey — тип ключей контекста пакета, защищает от коллизий.
type ctxKey string

// SessionID — ключ контекста с идентификатором сессии мастера.
const SessionID ctxKey = "session_id"

// HeaderSessionID — заголовок, в котором клиент передаёт идентификатор
// сессии, выданный при старте мастера.
const HeaderSessionID = "X-Session-ID"

// SessionMiddleware извлекает идентификатор сессии из заголовка и кладёт
// его в контекст запроса. Запрос без идентификатора отклоняется: все
// защищённые этим middleware маршруты работают только в рамках сессии.
func SessionMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(HeaderSessionID)
			if sessionID == "" {
				log.Error("missing session id header")
				w.WriteHeader(http.StatusBadRequest)
				render.JSON(w, r, response.Error("missing session id"))
				return
			}
			ctx := context.WithValue(r.Context(), SessionID, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionIDFromContext возвращает идентификатор сессии из контекста.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(SessionID).(string)
	return id, ok && id != ""
}
