// Package list реализует HTTP-обработчик списка уроков курса.
//
// Возвращает уроки в порядке позиций. Список содержит только метаданные,
// ссылки на видео выдаёт обработчик чтения урока с проверкой доступа.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/courseforge/course-platform/internal/http/response"
	"github.com/courseforge/course-platform/internal/lib/sl"
	"github.com/courseforge/course-platform/internal/models"
)

// Service описывает интерфейс бизнес-логики списка уроков.
type Service interface {
	ListLessons(ctx context.Context, courseID int) ([]*models.Lesson, error)
}

// Handler обрабатывает запросы списка уроков курса.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Уроки курса
// @Description Возвращает уроки курса в порядке позиций.
// @Tags Lessons
// @Produce  json
// @Param id path int true "ID курса"
// @Success 200 {object} map[string]any "Список уроков"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /courses/{id}/lessons [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lesson.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	courseID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	lessons, err := h.service.ListLessons(r.Context(), courseID)
	if err != nil {
		log.Error("failed to list lessons", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list lessons"))
		return
	}

	log.Info("lessons listed", slog.Int("course_id", courseID), slog.Int("count", len(lessons)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"lessons": lessons,
	}))
}
