// Package read реализует HTTP-обработчик чтения урока.
//
// Уроки с пометкой preview открыты любому авторизованному пользователю,
// остальные требуют действующего пробного периода или подписки. Проверка
// выполняется здесь, а не в middleware, чтобы preview-уроки оставались
// доступными после окончания пробного периода.
package read

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/courseforge/course-platform/internal/http/middlewarectx"
	"github.com/courseforge/course-platform/internal/http/response"
	"github.com/courseforge/course-platform/internal/lib/sl"
	"github.com/courseforge/course-platform/internal/models"
	"github.com/courseforge/course-platform/internal/trial"
)

// Service описывает интерфейс бизнес-логики чтения урока.
type Service interface {
	ReadLesson(ctx context.Context, id int) (*models.Lesson, error)
}

// AccessService описывает проверку доступа к платному контенту.
type AccessService interface {
	Check(ctx context.Context, userUID string) (trial.Decision, error)
}

// Handler обрабатывает запросы на чтение урока.
type Handler struct {
	log     *slog.Logger
	service Service
	access  AccessService
}

// New создает новый Handler с переданными логгером и сервисами.
func New(log *slog.Logger, service Service, access AccessService) *Handler {
	return &Handler{
		log:     log,
		service: service,
		access:  access,
	}
}

// ServeHTTP godoc
// @Summary Получить урок
// @Description Возвращает урок с ссылкой на видео. Не-preview уроки требуют действующего пробного периода или подписки.
// @Tags Lessons
// @Produce  json
// @Param id path int true "ID урока"
// @Success 200 {object} map[string]any "Данные урока"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 403 {object} response.ErrorResponse "Пробный период истёк"
// @Failure 404 {object} response.ErrorResponse "Урок не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /lessons/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.lesson.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	lesson, err := h.service.ReadLesson(r.Context(), id)
	if err != nil {
		log.Error("failed to read lesson", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read lesson"))
		return
	}
	if lesson == nil {
		log.Info("lesson not found", slog.Int("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("lesson not found"))
		return
	}

	if !lesson.IsPreview {
		role, _ := r.Context().Value(middlewarectx.Role).(string)
		if role != "admin" {
			userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
			if !ok || userUID == "" {
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error(trial.Message(trial.Unauthenticated())))
				return
			}
			decision, err := h.access.Check(r.Context(), userUID)
			if err != nil {
				log.Error("failed to check access", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}
			if !decision.HasAccess {
				log.Info("lesson access denied",
					slog.String("user_uid", userUID),
					slog.String("reason", string(decision.Reason)))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error(trial.Message(decision)))
				return
			}
		}
	}

	log.Info("lesson read", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"lesson": lesson,
	}))
}
