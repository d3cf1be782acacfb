// Package scheduler периодически находит пользователей с заканчивающимся
// пробным периодом и публикует уведомления в RabbitMQ.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/courseforge/course-platform/internal/lib/rabbitmq"
	"github.com/courseforge/course-platform/internal/lib/sl"
	"github.com/courseforge/course-platform/internal/models"
)

// TrialRepository определяет выборку заканчивающихся пробных периодов.
type TrialRepository interface {
	// FindTrialsExpiringOn возвращает пользователей, чей пробный период
	// заканчивается через daysAhead календарных дней (UTC), без активной подписки.
	FindTrialsExpiringOn(ctx context.Context, daysAhead int) ([]*models.TrialNotice, error)
}

// Channel описывает публикацию сообщений в RabbitMQ.
type Channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Service публикует уведомления о заканчивающихся пробных периодах.
type Service struct {
	repo TrialRepository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo TrialRepository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// NotifyUpcomingExpirations раз в 12 часов рассылает предупреждения тем,
// у кого пробный период заканчивается завтра.
func (s *Service) NotifyUpcomingExpirations(ctx context.Context, channel Channel) {
	s.runNotify(ctx, channel, 1, "trial.upcoming")

	ticker := time.NewTicker(12 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runNotify(ctx, channel, 1, "trial.upcoming")
		}
	}
}

// NotifyFinalExpirations раз в сутки рассылает последние уведомления тем,
// у кого пробный период заканчивается сегодня.
func (s *Service) NotifyFinalExpirations(ctx context.Context, channel Channel) {
	s.runNotify(ctx, channel, 0, "trial.final")

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runNotify(ctx, channel, 0, "trial.final")
		}
	}
}

func (s *Service) runNotify(ctx context.Context, channel Channel, daysAhead int, routingKey string) {
	s.log.Info("starting expiring trials scan", slog.String("routing_key", routingKey))
	notices, err := s.repo.FindTrialsExpiringOn(ctx, daysAhead)
	if err != nil {
		s.log.Error("failed to find expiring trials", sl.Err(err))
		return
	}
	if len(notices) == 0 {
		s.log.Info("no expiring trials found")
		return
	}
	s.log.Info("found expiring trials", slog.Int("count", len(notices)))
	for _, notice := range notices {
		if err := publish(channel, routingKey, notice); err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}

func publish(channel Channel, routingKey string, notice *models.TrialNotice) error {
	// Тот же формат, что у rabbitmq.PublishMessage, но через интерфейс канала
	return rabbitmq.PublishTo(channel, rabbitmq.NotificationsExchange, routingKey, notice)
}
