// Package dashboard обрабатывает запрос сводки личного кабинета:
// статус доступа и прогресс по курсам текущего пользователя.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/courseforge/course-platform/internal/http/middlewarectx"
	"github.com/courseforge/course-platform/internal/http/response"
	"github.com/courseforge/course-platform/internal/lib/sl"
	"github.com/courseforge/course-platform/internal/models"
)

// TrialService определяет интерфейс получения статуса доступа.
type TrialService interface {
	Status(ctx context.Context, userUID string) (*models.TrialStatus, error)
}

// ProgressService определяет интерфейс получения прогресса обучения.
type ProgressService interface {
	Summary(ctx context.Context, userUID string) ([]*models.CourseProgress, error)
}

// Handler обрабатывает запросы личного кабинета.
type Handler struct {
	log             *slog.Logger
	trialService    TrialService
	progressService ProgressService
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, ts TrialService, ps ProgressService) *Handler {
	return &Handler{
		log:             log,
		trialService:    ts,
		progressService: ps,
	}
}

// ServeHTTP godoc
// @Summary Личный кабинет
// @Description Возвращает статус доступа и прогресс по курсам текущего пользователя.
// @Tags Dashboard
// @Produce  json
// @Success 200 {object} map[string]any "Сводка личного кабинета"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user UID not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	username, _ := r.Context().Value(middlewarectx.User).(string)

	status, err := h.trialService.Status(r.Context(), userUID)
	if err != nil {
		log.Error("failed to get access status", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	progress, err := h.progressService.Summary(r.Context(), userUID)
	if err != nil {
		log.Error("failed to get progress summary", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("dashboard assembled", slog.String("username", username))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"username": username,
		"access":   status,
		"progress": progress,
	}))
}
