// Package summary реализует HTTP-обработчик сводки прогресса обучения.
package summary

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

// Service описывает интерфейс бизнес-логики сводки прогресса.
type Service interface {
	Summary(ctx context.Context, userUID string) ([]*models.CourseProgress, error)
}

// Handler обрабатывает запросы сводки прогресса.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Прогресс по курсам
// @Description Возвращает прогресс текущего пользователя по каждому начатому курсу.
// @Tags Progress
// @Produce  json
// @Success 200 {object} map[string]any "Сводка прогресса"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /progress [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.progress.summary"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	items, err := h.service.Summary(r.Context(), userUID)
	if err != nil {
		log.Error("failed to get progress summary", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get progress summary"))
		return
	}

	log.Info("progress summary", slog.String("user_uid", userUID), slog.Int("courses", len(items)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"progress": items,
	}))
}
