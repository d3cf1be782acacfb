// Package status реализует HTTP-обработчик статуса пробного периода.
//
// Handler возвращает решение о доступе и данные для баннера: оставшиеся дни,
// даты окна, прогресс и текст предупреждения. Статус вычисляется на каждый
// запрос и нигде не сохраняется.
package status

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

// Service описывает интерфейс бизнес-логики статуса пробного периода.
type Service interface {
	Status(ctx context.Context, userUID string) (*models.TrialStatus, error)
}

// Handler обрабатывает запросы статуса пробного периода.
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
// @Summary Статус пробного периода
// @Description Возвращает решение о доступе текущего пользователя и данные для баннера пробного периода.
// @Tags Trial
// @Produce  json
// @Success 200 {object} models.TrialStatus "Статус пробного периода"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /trial/status [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.trial.status"

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

	status, err := h.service.Status(r.Context(), userUID)
	if err != nil {
		log.Error("failed to get trial status", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get trial status"))
		return
	}

	log.Info("trial status resolved",
		slog.String("user_uid", userUID),
		slog.Bool("has_access", status.HasAccess))
	render.JSON(w, r, response.OKWithData(status))
}
