// Package read реализует HTTP-обработчик чтения записи блога по слагу.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/courseforge/course-platform/internal/http/response"
	"github.com/courseforge/course-platform/internal/lib/sl"
	"github.com/courseforge/course-platform/internal/models"
)

// Service описывает интерфейс бизнес-логики чтения записи блога.
type Service interface {
	Read(ctx context.Context, slug string) (*models.BlogPost, error)
}

// Handler обрабатывает запросы чтения записи блога.
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
// @Summary Получить запись блога
// @Description Возвращает опубликованную запись блога по слагу.
// @Tags Blog
// @Produce  json
// @Param slug path string true "Слаг записи"
// @Success 200 {object} map[string]any "Запись блога"
// @Failure 404 {object} response.ErrorResponse "Запись не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /blog/{slug} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.blog.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	slug := chi.URLParam(r, "slug")
	if slug == "" {
		log.Error("missing slug in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing slug in url"))
		return
	}

	post, err := h.service.Read(r.Context(), slug)
	if err != nil {
		log.Error("failed to read blog post", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read blog post"))
		return
	}
	if post == nil {
		log.Info("blog post not found", slog.String("slug", slug))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("blog post not found"))
		return
	}

	log.Info("blog post read", slog.String("slug", slug))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"post": post,
	}))
}
