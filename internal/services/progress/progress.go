// Package progress содержит бизнес-логику учёта прогресса обучения.
package progress

import (
	"context"
	"errors"
	"log/slog"

	"github.com/courseforge/course-platform/internal/models"
)

// ErrLessonNotFound возвращается при попытке завершить несуществующий урок.
var ErrLessonNotFound = errors.New("lesson not found")

// Repository определяет методы для работы с прогрессом в хранилище.
type Repository interface {
	CompleteLesson(ctx context.Context, userUID string, lessonID int) error
	GetCourseProgress(ctx context.Context, userUID string) ([]*models.CourseProgress, error)
	ReadLesson(ctx context.Context, id int) (*models.Lesson, error)
}

// Service реализует бизнес-логику прогресса обучения.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Complete отмечает урок завершённым. Повторное завершение идемпотентно.
func (s *Service) Complete(ctx context.Context, userUID string, lessonID int) error {
	lesson, err := s.repo.ReadLesson(ctx, lessonID)
	if err != nil {
		return err
	}
	if lesson == nil {
		return ErrLessonNotFound
	}
	if err := s.repo.CompleteLesson(ctx, userUID, lessonID); err != nil {
		return err
	}
	s.log.Info("lesson completed",
		slog.String("user_uid", userUID), slog.Int("lesson_id", lessonID))
	return nil
}

// Summary возвращает сводку прогресса пользователя по курсам.
func (s *Service) Summary(ctx context.Context, userUID string) ([]*models.CourseProgress, error) {
	return s.repo.GetCourseProgress(ctx, userUID)
}
