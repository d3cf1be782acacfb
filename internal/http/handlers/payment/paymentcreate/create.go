// Package paymentcreate обрабатывает создание платежа за месячную подписку.
package paymentcreate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/courseforge/course-platform/internal/http/middlewarectx"
	"github.com/courseforge/course-platform/internal/http/response"
	"github.com/courseforge/course-platform/internal/lib/sl"
	"github.com/courseforge/course-platform/internal/paymentprovider"
)

// CreatePaymentRequestApp представляет запрос на оплату подписки.
type CreatePaymentRequestApp struct {
	PaymentMethodToken string `json:"payment_method_token" validate:"required"`
}

// Service определяет интерфейс платёжной бизнес-логики.
type Service interface {
	CreateSubscriptionPayment(ctx context.Context, userUID, token string) (*paymentprovider.CreatePaymentResponse, error)
}

// Handler обрабатывает запросы на создание платежей.
type Handler struct {
	log            *slog.Logger
	paymentService Service
	validate       *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, ps Service) *Handler {
	return &Handler{
		log:            log,
		paymentService: ps,
		validate:       validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Оплатить подписку
// @Description Создает у платёжного провайдера платёж за месячную подписку по платёжному токену.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body CreatePaymentRequestApp true "Данные для создания платежа"
// @Success 200 {object} paymentprovider.CreatePaymentResponse "Платёж создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании платежа"
// @Security BearerAuth
// @Router /payment [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req CreatePaymentRequestApp
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user UID not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	paymentResp, err := h.paymentService.CreateSubscriptionPayment(r.Context(), userUID, req.PaymentMethodToken)
	if err != nil {
		log.Error("failed to create payment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("payment provider error"))
		return
	}

	log.Info("payment created",
		slog.String("payment_id", paymentResp.ID), slog.String("status", paymentResp.Status))
	render.JSON(w, r, response.OKWithData(paymentResp))
}
