package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/courseforge/course-platform/internal/models"
)

// RegisterUser сохраняет нового пользователя и возвращает его UID
// и время создания аккаунта, от которого отсчитывается пробный период.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, time.Time, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", time.Time{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	var createdAt time.Time
	query := `INSERT INTO users (email, username, password_hash, role, subscription_status)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING uid, created_at;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.Username, user.PasswordHash, user.Role,
		user.SubscriptionStatus).Scan(&newID, &createdAt); err != nil {
		return "", time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	return newID, createdAt, nil
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, username, password_hash, role,
			      subscription_status, subscription_expiry, created_at
			  FROM users
			  WHERE username = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, username), op)
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, username, password_hash, role,
			      subscription_status, subscription_expiry, created_at
			  FROM users
			  WHERE uid = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, userUID), op)
}

func (s *Storage) scanUser(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}
	var subscriptionExpiry sql.NullTime
	if err := row.Scan(&u.UUID, &u.Email, &u.Username, &u.PasswordHash,
		&u.Role, &u.SubscriptionStatus, &subscriptionExpiry, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if subscriptionExpiry.Valid {
		u.SubscriptionExpiry = &subscriptionExpiry.Time
	}
	return u, nil
}

// ActivateSubscription включает оплаченную подписку пользователя
// и продлевает её на месяц от текущей даты истечения (или от текущего
// момента, если подписки ещё не было).
func (s *Storage) ActivateSubscription(ctx context.Context, userUID string) error {
	const op = "storage.ActivateSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
		      SET subscription_status = 'active',
			      subscription_expiry = GREATEST(COALESCE(subscription_expiry, NOW()), NOW()) + INTERVAL '1 month'
			  WHERE uid = $1`
	_, err := s.DB.ExecContext(ctx, query, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ExpireSubscription переводит подписку пользователя в статус expired.
func (s *Storage) ExpireSubscription(ctx context.Context, userUID string) error {
	const op = "storage.ExpireSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET subscription_status = 'expired'
		      WHERE uid = $1`
	_, err := s.DB.ExecContext(ctx, query, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CountUsersStats собирает сводку для административной панели.
func (s *Storage) CountUsersStats(ctx context.Context) (*models.AdminStats, error) {
	const op = "storage.CountUsersStats"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      (SELECT COUNT(*) FROM users),
			      (SELECT COUNT(*) FROM trials WHERE is_active AND end_date > NOW()),
			      (SELECT COUNT(*) FROM users WHERE subscription_status = 'active'),
			      (SELECT COUNT(*) FROM courses WHERE is_published),
			      (SELECT COUNT(*) FROM blog_posts WHERE published)`
	var stats models.AdminStats
	if err := s.DB.QueryRowContext(ctx, query).Scan(&stats.TotalUsers, &stats.ActiveTrials,
		&stats.ActiveSubscribers, &stats.PublishedCourses, &stats.PublishedPosts); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &stats, nil
}
