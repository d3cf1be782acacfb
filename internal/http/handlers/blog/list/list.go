// Package list реализует HTTP-обработчик списка записей блога.
//
// Блог публичный: список отдаётся без аутентификации и содержит
// только анонсы без полного текста.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/courseforge/course-platform/internal/http/response"
	"github.com/courseforge/course-platform/internal/lib/sl"
	"github.com/courseforge/course-platform/internal/models"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Service описывает интерфейс бизнес-логики списка записей блога.
type Service interface {
	List(ctx context.Context, limit, offset int) ([]*models.BlogPost, error)
}

// Handler обрабатывает запросы списка записей блога.
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
// @Summary Список записей блога
// @Description Возвращает страницу опубликованных записей блога с анонсами.
// @Tags Blog
// @Produce  json
// @Param limit query int false "Размер страницы (по умолчанию 20, максимум 100)"
// @Param offset query int false "Смещение"
// @Success 200 {object} map[string]any "Список записей"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /blog [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.blog.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit := defaultLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := 0
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}

	posts, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list blog posts", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list blog posts"))
		return
	}

	log.Info("blog posts listed", slog.Int("count", len(posts)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"posts":  posts,
		"limit":  limit,
		"offset": offset,
	}))
}
