// Package paymentwebhook обрабатывает уведомления платёжного провайдера.
//
// Подпись уведомления проверяется по HMAC-SHA256 от тела запроса
// (заголовок X-Api-Signature, base64). Уведомления с неизвестными
// событиями подтверждаются без обработки, чтобы провайдер их не повторял.
package paymentwebhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/courseforge/course-platform/internal/lib/sl"
	"github.com/courseforge/course-platform/internal/models"
)

// Service описывает интерфейс применения платежа.
type Service interface {
	ApplyPayment(ctx context.Context, payment models.Payment) error
}

// Handler обрабатывает webhook-уведомления провайдера.
type Handler struct {
	log           *slog.Logger
	service       Service
	webhookSecret string
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, secret string) *Handler {
	return &Handler{
		log:           log,
		service:       service,
		webhookSecret: secret,
	}
}

// Payload — тело уведомления провайдера.
type Payload struct {
	Event  string `json:"event"`
	Object struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Amount struct {
			Value    string `json:"value"`
			Currency string `json:"currency"`
		} `json:"amount"`
		PaymentMethod struct {
			ID string `json:"id"`
		} `json:"payment_method"`
		Metadata map[string]string `json:"metadata"`
	} `json:"object"`
}

// Проверка подписи webhook (X-Api-Signature)
func (h *Handler) verifySignature(secret string, body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expectedSig := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expectedSig), []byte(signature))
}

// ServeHTTP обрабатывает уведомление: проверяет подпись, разбирает тело
// и применяет платёж к подписке пользователя.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.webhook"
	log := h.log.With(slog.String("op", op))

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("failed to read webhook body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	signature := r.Header.Get("X-Api-Signature")
	if signature == "" || !h.verifySignature(h.webhookSecret, body, signature) {
		log.Error("invalid or missing webhook signature")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Error("failed to unmarshal webhook payload", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	const (
		PaymentSucceeded = "payment.succeeded"
		PaymentCanceled  = "payment.canceled"
		PaymentRefunded  = "payment.refunded"
	)

	switch strings.ToLower(payload.Event) {
	case PaymentSucceeded, PaymentCanceled, PaymentRefunded:
		payment, err := paymentFromPayload(&payload)
		if err != nil {
			log.Error("failed to convert webhook payload", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if err := h.service.ApplyPayment(r.Context(), payment); err != nil {
			log.Error("failed to apply payment", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	default:
		log.Info("ignored webhook event", slog.String("event", payload.Event))
	}

	log.Info("webhook processed successfully",
		slog.String("event", payload.Event), slog.String("payment_id", payload.Object.ID))
	w.WriteHeader(http.StatusOK)
}

func paymentFromPayload(p *Payload) (models.Payment, error) {
	userUID := p.Object.Metadata["user_uid"]
	if userUID == "" {
		return models.Payment{}, fmt.Errorf("webhook payload has no user_uid metadata")
	}
	amount, err := parseAmount(p.Object.Amount.Value)
	if err != nil {
		return models.Payment{}, err
	}
	return models.Payment{
		ExternalID: p.Object.ID,
		UserUID:    userUID,
		Status:     p.Object.Status,
		Amount:     amount,
		Currency:   p.Object.Amount.Currency,
	}, nil
}

// parseAmount переводит сумму вида "999.00" в минорные единицы.
func parseAmount(value string) (int64, error) {
	parts := strings.SplitN(value, ".", 2)
	major, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	var minor int64
	if len(parts) == 2 {
		frac := parts[1]
		if len(frac) > 2 {
			frac = frac[:2]
		}
		for len(frac) < 2 {
			frac += "0"
		}
		minor, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q: %w", value, err)
		}
	}
	return major*100 + minor, nil
}
