// Package stats обрабатывает запрос административной статистики платформы.
package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/courseforge/course-platform/internal/http/response"
	"github.com/courseforge/course-platform/internal/lib/sl"
	"github.com/courseforge/course-platform/internal/models"
)

// Service определяет интерфейс сбора статистики.
type Service interface {
	CountUsersStats(ctx context.Context) (*models.AdminStats, error)
}

// Handler обрабатывает запросы статистики.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Статистика платформы
// @Description Возвращает счётчики пользователей, пробных периодов, подписчиков и опубликованного контента. Доступно только администраторам.
// @Tags Admin
// @Produce  json
// @Success 200 {object} models.AdminStats "Статистика платформы"
// @Failure 403 {object} response.ErrorResponse "Доступ только для администраторов"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /admin/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.stats"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	adminStats, err := h.service.CountUsersStats(r.Context())
	if err != nil {
		log.Error("failed to collect stats", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("stats collected", slog.Int("total_users", adminStats.TotalUsers))
	render.JSON(w, r, response.OKWithData(adminStats))
}
