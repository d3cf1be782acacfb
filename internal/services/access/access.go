// Package access содержит бизнес-логику проверки доступа к учебным материалам:
// разрешение записи пробного периода, решение о доступе с учётом подписки
// и кеширование записей.
package access

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/courseforge/course-platform/internal/lib/sl"
	"github.com/courseforge/course-platform/internal/models"
	"github.com/courseforge/course-platform/internal/trial"
)

// UserRepository описывает методы чтения пользователей из хранилища.
type UserRepository interface {
	// GetUser возвращает пользователя по его UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// TrialRepository описывает методы работы с записями пробного периода.
type TrialRepository interface {
	// GetTrial возвращает запись пробного периода или (nil, nil), если её нет.
	GetTrial(ctx context.Context, userUID string) (*trial.Record, error)
	// CreateTrial вставляет запись, конкурирующие вставки сходятся к первой.
	CreateTrial(ctx context.Context, rec trial.Record) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

const trialCacheTTL = time.Hour

// Service реализует проверку доступа и ленивую инициализацию пробного периода.
type Service struct {
	users  UserRepository
	trials TrialRepository
	cache  Cache
	log    *slog.Logger
}

// New создает новый экземпляр Service.
func New(users UserRepository, trials TrialRepository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		users:  users,
		trials: trials,
		cache:  cache,
		log:    log,
	}
}

func trialCacheKey(userUID string) string {
	return "trial:" + userUID
}

// Check возвращает решение о доступе пользователя к учебным материалам.
// Отсутствие или повреждение записи пробного периода не является ошибкой:
// решение в таких случаях — отказ в доступе.
func (s *Service) Check(ctx context.Context, userUID string) (trial.Decision, error) {
	const op = "access.Check"
	now := time.Now().UTC()

	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return trial.Decision{}, fmt.Errorf("%s: %w", op, err)
	}

	rec, err := s.resolveRecord(ctx, user)
	if err != nil {
		// Запись не разрешилась: доступ закрыт, но решение выносим
		s.log.Warn("failed to resolve trial record",
			slog.String("user_uid", userUID), sl.Err(err))
		rec = nil
	}

	return trial.Evaluate(now, rec, subscriptionActive(user, now)), nil
}

// Status возвращает полные данные о пробном периоде для интерфейса:
// решение, даты, прогресс и текст баннера.
func (s *Service) Status(ctx context.Context, userUID string) (*models.TrialStatus, error) {
	const op = "access.Status"
	now := time.Now().UTC()

	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rec, err := s.resolveRecord(ctx, user)
	if err != nil {
		s.log.Warn("failed to resolve trial record",
			slog.String("user_uid", userUID), sl.Err(err))
		rec = nil
	}

	decision := trial.Evaluate(now, rec, subscriptionActive(user, now))
	status := &models.TrialStatus{
		HasAccess:     decision.HasAccess,
		DaysRemaining: decision.DaysRemaining,
		Reason:        string(decision.Reason),
		Warning:       decision.Warning,
		Message:       trial.Message(decision),
	}
	if rec != nil {
		start := rec.StartDate
		end := rec.EndDate
		status.StartDate = &start
		status.EndDate = &end
		status.ProgressPercent = trial.ProgressPercent(*rec, now)
	}
	return status, nil
}

// InvalidateTrial сбрасывает кэш записи пользователя, например после
// оформления подписки.
func (s *Service) InvalidateTrial(userUID string) {
	if err := s.cache.Invalidate(trialCacheKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate trial cache",
			slog.String("user_uid", userUID), sl.Err(err))
	}
}

// resolveRecord возвращает запись пробного периода пользователя, создавая её
// при первом обращении. Результат детерминирован от created_at, поэтому
// конкурирующие вызовы сходятся к одной записи.
func (s *Service) resolveRecord(ctx context.Context, user *models.User) (*trial.Record, error) {
	const op = "access.resolveRecord"

	key := trialCacheKey(user.UUID)
	var cached trial.Record
	found, err := s.cache.Get(key, &cached)
	if err != nil {
		s.log.Warn("failed to read trial cache", slog.String("key", key), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	existing, err := s.trials.GetTrial(ctx, user.UUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rec, err := trial.Resolve(user.UUID, user.CreatedAt, existing)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if existing == nil {
		if err := s.trials.CreateTrial(ctx, rec); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := s.cache.Set(key, rec, trialCacheTTL); err != nil {
		s.log.Warn("failed to cache trial record", slog.String("key", key), sl.Err(err))
	}
	return &rec, nil
}

// subscriptionActive сообщает, действует ли оплаченная подписка в момент now.
func subscriptionActive(user *models.User, now time.Time) bool {
	if user.SubscriptionStatus != models.SubscriptionStatusActive {
		return false
	}
	return user.SubscriptionExpiry == nil || now.Before(*user.SubscriptionExpiry)
}
