// Package payment содержит бизнес-логику оплаты подписки: платёжные токены,
// создание платежей у провайдера и обработка уведомлений об оплате.
package payment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/courseforge/course-platform/internal/models"
	"github.com/courseforge/course-platform/internal/paymentprovider"
)

// Месячная подписка на платформу.
const (
	subscriptionPrice    = "999.00"
	subscriptionCurrency = "RUB"
)

// Repository определяет методы хранилища, нужные платёжному сервису.
type Repository interface {
	FindPaymentToken(ctx context.Context, userUID string, token string) (int, bool, error)
	CreatePaymentToken(ctx context.Context, userUID string, token string) (int, error)
	ListPaymentTokens(ctx context.Context, userUID string) ([]*models.PaymentToken, error)
	SavePayment(ctx context.Context, payment models.Payment) (int, error)
	ListPayments(ctx context.Context, userUID string) ([]*models.Payment, error)
	ActivateSubscription(ctx context.Context, userUID string) error
	DeactivateTrial(ctx context.Context, userUID string) error
}

// ProviderClient описывает клиента платёжного провайдера.
type ProviderClient interface {
	CreatePayment(req paymentprovider.CreatePaymentRequest) (*paymentprovider.CreatePaymentResponse, error)
}

// AccessInvalidator сбрасывает закешированное решение о доступе пользователя.
type AccessInvalidator interface {
	InvalidateTrial(userUID string)
}

// Service реализует платёжную бизнес-логику.
type Service struct {
	repo     Repository
	provider ProviderClient
	access   AccessInvalidator
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, provider ProviderClient, access AccessInvalidator, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		provider: provider,
		access:   access,
		log:      log,
	}
}

// GetOrCreatePaymentToken возвращает ID существующего токена или создает новый.
func (s *Service) GetOrCreatePaymentToken(ctx context.Context, userUID string, token string) (int, error) {
	res, found, err := s.repo.FindPaymentToken(ctx, userUID, token)
	if err != nil {
		return 0, fmt.Errorf("failed to find token: %w", err)
	}
	if found {
		return res, nil
	}
	res, err = s.repo.CreatePaymentToken(ctx, userUID, token)
	if err != nil {
		return 0, fmt.Errorf("failed to create token: %w", err)
	}
	return res, nil
}

// ListPaymentTokens возвращает список токенов платежей пользователя.
func (s *Service) ListPaymentTokens(ctx context.Context, userUID string) ([]*models.PaymentToken, error) {
	return s.repo.ListPaymentTokens(ctx, userUID)
}

// ListPayments возвращает платежи пользователя.
func (s *Service) ListPayments(ctx context.Context, userUID string) ([]*models.Payment, error) {
	return s.repo.ListPayments(ctx, userUID)
}

// CreateSubscriptionPayment создает у провайдера платёж за месячную подписку
// по сохранённому платёжному токену.
func (s *Service) CreateSubscriptionPayment(ctx context.Context, userUID, token string) (*paymentprovider.CreatePaymentResponse, error) {
	if _, err := s.GetOrCreatePaymentToken(ctx, userUID, token); err != nil {
		return nil, err
	}

	req := paymentprovider.CreatePaymentRequest{
		Amount: paymentprovider.Amount{
			Value:    subscriptionPrice,
			Currency: subscriptionCurrency,
		},
		Capture:           true,
		PaymentMethodID:   token,
		SavePaymentMethod: true,
		Description:       "Monthly subscription",
	}
	req.Metadata.UserUID = userUID

	resp, err := s.provider.CreatePayment(req)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	s.log.Info("created payment",
		slog.String("payment_id", resp.ID), slog.String("status", resp.Status))
	return resp, nil
}

// ApplyPayment сохраняет платёж из уведомления провайдера. Успешный платёж
// активирует подписку, гасит пробный период и сбрасывает кэш решения о доступе.
func (s *Service) ApplyPayment(ctx context.Context, payment models.Payment) error {
	if _, err := s.repo.SavePayment(ctx, payment); err != nil {
		return fmt.Errorf("failed to save payment: %w", err)
	}

	if payment.Status != "succeeded" {
		s.log.Info("payment not succeeded, subscription unchanged",
			slog.String("payment_id", payment.ExternalID),
			slog.String("status", payment.Status))
		return nil
	}

	if err := s.repo.ActivateSubscription(ctx, payment.UserUID); err != nil {
		return fmt.Errorf("failed to activate subscription: %w", err)
	}
	if err := s.repo.DeactivateTrial(ctx, payment.UserUID); err != nil {
		return fmt.Errorf("failed to deactivate trial: %w", err)
	}
	s.access.InvalidateTrial(payment.UserUID)

	s.log.Info("subscription activated",
		slog.String("user_uid", payment.UserUID),
		slog.String("payment_id", payment.ExternalID))
	return nil
}
