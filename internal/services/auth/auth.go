// Package auth содержит логику бизнес-уровня для работы с пользователями
// и аутентификацией.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/courseforge/course-platform/internal/lib/jwt"
	"github.com/courseforge/course-platform/internal/lib/password"
	"github.com/courseforge/course-platform/internal/lib/sl"
	"github.com/courseforge/course-platform/internal/models"
	"github.com/courseforge/course-platform/internal/trial"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя, возвращает его UID и время создания.
	RegisterUser(ctx context.Context, user models.User) (string, time.Time, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// TrialRepository описывает создание записи пробного периода.
type TrialRepository interface {
	CreateTrial(ctx context.Context, rec trial.Record) error
}

// Service отвечает за регистрацию, авторизацию и валидацию JWT.
type Service struct {
	users    UserRepository
	trials   TrialRepository
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(users UserRepository, trials TrialRepository, jwtMaker jwt.Maker, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		trials:   trials,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Register создает нового пользователя с хэшированием пароля и дефолтной ролью "user",
// затем инициализирует его пробный период. Ошибка инициализации пробного периода
// не срывает регистрацию: запись будет создана при первой проверке доступа.
func (s *Service) Register(ctx context.Context, email, username, rawPassword string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		Email:              email,
		Username:           username,
		PasswordHash:       hashed,
		Role:               "user", // дефолтная роль при регистрации
		SubscriptionStatus: models.SubscriptionStatusTrial,
	}
	uid, createdAt, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return "", err
	}

	rec, err := trial.Resolve(uid, createdAt, nil)
	if err == nil {
		err = s.trials.CreateTrial(ctx, rec)
	}
	if err != nil {
		s.log.Warn("failed to init trial on signup",
			slog.String("user_uid", uid), sl.Err(err))
	}
	return uid, nil
}

// Login проверяет пароль пользователя и генерирует JWT (доступ + refresh token).
func (s *Service) Login(ctx context.Context, username, rawPassword string) (token, refresh, role string, err error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", "", "", errors.New("invalid credentials")
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", "", errors.New("invalid credentials")
	}
	token, err = s.jwtMaker.GenerateToken(user.Username, user.Role, user.UUID)
	if err != nil {
		return "", "", "", err
	}
	refresh = "refresh-token-placeholder"
	return token, refresh, user.Role, nil
}

// ValidateToken проверяет JWT и возвращает информацию о пользователе, роль и признак валидности.
func (s *Service) ValidateToken(_ context.Context, token string) (*models.User, string, bool, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, "", false, err
	}
	user := &models.User{
		Username: claims.Username,
		Role:     claims.Role,
		UUID:     claims.UserUID,
	}
	return user, claims.Role, true, nil
}
