package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/courseforge/course-platform/internal/models"
	"github.com/courseforge/course-platform/internal/trial"
)

// CreateTrial вставляет запись пробного периода. Повторная вставка для того же
// пользователя не является ошибкой: действует первая запись, конкурирующие
// запросы сходятся к одному результату.
func (s *Storage) CreateTrial(ctx context.Context, rec trial.Record) error {
	const op = "storage.CreateTrial"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO trials (user_uid, start_date, end_date, is_active)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (user_uid) DO NOTHING`
	_, err := s.DB.ExecContext(ctx, query, rec.UserUID, rec.StartDate, rec.EndDate, rec.IsActive)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetTrial возвращает запись пробного периода пользователя,
// либо (nil, nil), если записи нет.
func (s *Storage) GetTrial(ctx context.Context, userUID string) (*trial.Record, error) {
	const op = "storage.GetTrial"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_uid, start_date, end_date, is_active
			  FROM trials
			  WHERE user_uid = $1`
	var rec trial.Record
	err := s.DB.QueryRowContext(ctx, query, userUID).Scan(
		&rec.UserUID, &rec.StartDate, &rec.EndDate, &rec.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rec.StartDate = rec.StartDate.UTC()
	rec.EndDate = rec.EndDate.UTC()
	return &rec, nil
}

// DeactivateTrial помечает пробный период неактивным, например после
// оформления подписки.
func (s *Storage) DeactivateTrial(ctx context.Context, userUID string) error {
	const op = "storage.DeactivateTrial"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE trials SET is_active = FALSE WHERE user_uid = $1`
	_, err := s.DB.ExecContext(ctx, query, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// FindTrialsExpiringOn находит пользователей, у которых пробный период
// заканчивается в указанную календарную дату (UTC) и нет активной подписки.
func (s *Storage) FindTrialsExpiringOn(ctx context.Context, daysAhead int) ([]*models.TrialNotice, error) {
	const op = "storage.FindTrialsExpiringOn"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.email, u.username, t.end_date
			  FROM trials t
			  JOIN users u ON u.uid = t.user_uid
		      WHERE t.is_active
			    AND u.subscription_status <> 'active'
			    AND (t.end_date AT TIME ZONE 'UTC')::DATE = (NOW() AT TIME ZONE 'UTC')::DATE + $1;`
	rows, err := s.DB.QueryContext(ctx, query, daysAhead)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.TrialNotice
	for rows.Next() {
		var n models.TrialNotice
		if err = rows.Scan(&n.Email, &n.Username, &n.EndDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		n.EndDate = n.EndDate.UTC()
		result = append(result, &n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
