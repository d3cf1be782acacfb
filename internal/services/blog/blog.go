// Package blog содержит бизнес-логику публичного блога платформы.
package blog

import (
	"context"
	"log/slog"
	"time"

	"github.com/courseforge/course-platform/internal/lib/sl"
	"github.com/courseforge/course-platform/internal/models"
)

// Repository определяет методы для работы с записями блога в хранилище.
type Repository interface {
	CreateBlogPost(ctx context.Context, post models.DummyBlogPost) (int, error)
	ReadBlogPost(ctx context.Context, slug string) (*models.BlogPost, error)
	ListBlogPosts(ctx context.Context, limit, offset int) ([]*models.BlogPost, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует бизнес-логику блога.
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

// Create создает запись блога и возвращает её ID.
func (s *Service) Create(ctx context.Context, req models.DummyBlogPost) (int, error) {
	id, err := s.repo.CreateBlogPost(ctx, req)
	if err != nil {
		return 0, err
	}
	if err := s.cache.Invalidate(postCacheKey(req.Slug)); err != nil {
		s.log.Warn("failed to invalidate post cache", slog.String("slug", req.Slug), sl.Err(err))
	}
	s.log.Info("created new blog post", slog.Int("id", id), slog.String("slug", req.Slug))
	return id, nil
}

// Read возвращает опубликованную запись блога по слагу, используя кеш.
func (s *Service) Read(ctx context.Context, slug string) (*models.BlogPost, error) {
	cacheKey := postCacheKey(slug)
	var cached models.BlogPost
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read post cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	result, err := s.repo.ReadBlogPost(ctx, slug)
	if err != nil {
		return nil, err
	}
	if result != nil {
		if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
			s.log.Warn("failed to cache post", slog.String("key", cacheKey), sl.Err(err))
		}
	}
	return result, nil
}

// List возвращает страницу опубликованных записей блога.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.BlogPost, error) {
	return s.repo.ListBlogPosts(ctx, limit, offset)
}

func postCacheKey(slug string) string {
	return "blogpost:" + slug
}
