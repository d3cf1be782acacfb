// Package complete реализует HTTP-обработчик отметки урока завершённым.
//
// Повторная отметка того же урока идемпотентна и не считается ошибкой.
package complete

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/courseforge/course-platform/internal/http/middlewarectx"
	"github.com/courseforge/course-platform/internal/http/response"
	"github.com/courseforge/course-platform/internal/lib/sl"
	"github.com/courseforge/course-platform/internal/services/progress"
)

// Service описывает интерфейс бизнес-логики завершения урока.
type Service interface {
	Complete(ctx context.Context, userUID string, lessonID int) error
}

// Handler обрабатывает запросы на завершение уроков.
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
// @Summary Отметить урок завершённым
// @Description Записывает завершение урока текущим пользователем. Повторная отметка идемпотентна.
// @Tags Progress
// @Produce  json
// @Param id path int true "ID урока"
// @Success 200 {object} map[string]any "Урок отмечен"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Урок не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /lessons/{id}/complete [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.progress.complete"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	lessonID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.Complete(r.Context(), userUID, lessonID); err != nil {
		if errors.Is(err, progress.ErrLessonNotFound) {
			log.Info("lesson not found", slog.Int("lesson_id", lessonID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("lesson not found"))
			return
		}
		log.Error("failed to complete lesson", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not complete lesson"))
		return
	}

	log.Info("lesson completed",
		slog.String("user_uid", userUID), slog.Int("lesson_id", lessonID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"lesson_id": lessonID,
		"completed": true,
	}))
}
