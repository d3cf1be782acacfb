// Package course содержит бизнес-логику каталога курсов и уроков,
// включая кеширование карточек курсов.
package course

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/courseforge/course-platform/internal/lib/sl"
	"github.com/courseforge/course-platform/internal/models"
)

// Repository определяет методы для работы с курсами и уроками в хранилище.
type Repository interface {
	// CreateCourse добавляет новый курс и возвращает его ID.
	CreateCourse(ctx context.Context, course models.DummyCourse) (int, error)
	// UpdateCourse обновляет курс по ID, возвращает количество изменённых строк.
	UpdateCourse(ctx context.Context, id int, course models.DummyCourse) (int, error)
	// RemoveCourse удаляет курс по ID, возвращает количество удалённых строк.
	RemoveCourse(ctx context.Context, id int) (int, error)
	// ReadCourse возвращает курс по ID или (nil, nil), если курса нет.
	ReadCourse(ctx context.Context, id int) (*models.Course, error)
	// ListCourses возвращает страницу опубликованных курсов.
	ListCourses(ctx context.Context, limit, offset int) ([]*models.Course, error)
	// ReadLesson возвращает урок по ID или (nil, nil), если урока нет.
	ReadLesson(ctx context.Context, id int) (*models.Lesson, error)
	// ListLessons возвращает уроки курса в порядке позиций.
	ListLessons(ctx context.Context, courseID int) ([]*models.Lesson, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует бизнес-логику каталога курсов.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create создает новый курс и возвращает его ID.
func (s *Service) Create(ctx context.Context, req models.DummyCourse) (int, error) {
	id, err := s.repo.CreateCourse(ctx, req)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new course", slog.Int("id", id), slog.String("slug", req.Slug))
	return id, nil
}

// Update обновляет курс и инвалидирует его кеш.
func (s *Service) Update(ctx context.Context, id int, req models.DummyCourse) (int, error) {
	count, err := s.repo.UpdateCourse(ctx, id, req)
	if err != nil {
		return 0, err
	}
	s.invalidate(id)
	return count, nil
}

// Remove удаляет курс и инвалидирует его кеш.
func (s *Service) Remove(ctx context.Context, id int) (int, error) {
	count, err := s.repo.RemoveCourse(ctx, id)
	if err != nil {
		return 0, err
	}
	s.invalidate(id)
	return count, nil
}

// Read возвращает курс по ID, используя кеш или репозиторий.
func (s *Service) Read(ctx context.Context, id int) (*models.Course, error) {
	cacheKey := courseCacheKey(id)
	var cached models.Course
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read course cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	result, err := s.repo.ReadCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	if result != nil {
		if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
			s.log.Warn("failed to cache course", slog.String("key", cacheKey), sl.Err(err))
		}
	}
	return result, nil
}

// List возвращает страницу опубликованных курсов.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.Course, error) {
	return s.repo.ListCourses(ctx, limit, offset)
}

// ReadLesson возвращает урок по ID.
func (s *Service) ReadLesson(ctx context.Context, id int) (*models.Lesson, error) {
	return s.repo.ReadLesson(ctx, id)
}

// ListLessons возвращает уроки курса.
func (s *Service) ListLessons(ctx context.Context, courseID int) ([]*models.Lesson, error) {
	return s.repo.ListLessons(ctx, courseID)
}

func (s *Service) invalidate(id int) {
	cacheKey := courseCacheKey(id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate course cache", slog.String("key", cacheKey), sl.Err(err))
	}
}

func courseCacheKey(id int) string {
	return fmt.Sprintf("course:%d", id)
}
