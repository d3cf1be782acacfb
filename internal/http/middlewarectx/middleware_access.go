package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/courseforge/course-platform/internal/http/response"
	"github.com/courseforge/course-platform/internal/lib/sl"
	"github.com/courseforge/course-platform/internal/trial"
)

// AccessServiceInterface определяет интерфейс проверки доступа к учебным материалам.
type AccessServiceInterface interface {
	Check(ctx context.Context, userUID string) (trial.Decision, error)
}

// AccessMiddleware создает middleware, который пропускает запрос только если
// у пользователя есть доступ к платному контенту: активная подписка или
// непросроченный пробный период. Администраторы проходят без проверки.
func AccessMiddleware(log *slog.Logger, accessService AccessServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if role, ok := r.Context().Value(Role).(string); ok && role == "admin" {
				next.ServeHTTP(w, r)
				return
			}

			userUID, ok := r.Context().Value(UserUID).(string)
			if !ok || userUID == "" {
				log.Error("user identification missing")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error(trial.Message(trial.Unauthenticated())))
				return
			}

			decision, err := accessService.Check(r.Context(), userUID)
			if err != nil {
				log.Error("failed to check access", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			if !decision.HasAccess {
				log.Info("access denied",
					slog.String("user_uid", userUID),
					slog.String("reason", string(decision.Reason)))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error(trial.Message(decision)))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
