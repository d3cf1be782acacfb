package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/courseforge/course-platform/internal/models"
)

// CreateBlogPost вставляет новую запись блога и возвращает её ID.
func (s *Storage) CreateBlogPost(ctx context.Context, post models.DummyBlogPost) (int, error) {
	const op = "storage.CreateBlogPost"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO blog_posts (slug, title, excerpt, content, author, published, published_at)
			  VALUES ($1, $2, $3, $4, $5, $6, CASE WHEN $6 THEN NOW() ELSE NULL END)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		post.Slug, post.Title, post.Excerpt, post.Content, post.Author, post.Published).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadBlogPost возвращает опубликованную запись блога по слагу.
func (s *Storage) ReadBlogPost(ctx context.Context, slug string) (*models.BlogPost, error) {
	const op = "storage.ReadBlogPost"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, slug, title, excerpt, content, author, published, published_at
			  FROM blog_posts
			  WHERE slug = $1 AND published`
	var p models.BlogPost
	var publishedAt sql.NullTime
	err := s.DB.QueryRowContext(ctx, query, slug).Scan(&p.ID, &p.Slug, &p.Title,
		&p.Excerpt, &p.Content, &p.Author, &p.Published, &publishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if publishedAt.Valid {
		p.PublishedAt = &publishedAt.Time
	}
	return &p, nil
}

// ListBlogPosts возвращает страницу опубликованных записей блога,
// свежие записи первыми. Содержимое не включается, только анонсы.
func (s *Storage) ListBlogPosts(ctx context.Context, limit, offset int) ([]*models.BlogPost, error) {
	const op = "storage.ListBlogPosts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, slug, title, excerpt, '', author, published, published_at
			  FROM blog_posts
			  WHERE published
			  ORDER BY published_at DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.BlogPost
	for rows.Next() {
		var p models.BlogPost
		var publishedAt sql.NullTime
		if err = rows.Scan(&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.Content,
			&p.Author, &p.Published, &publishedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if publishedAt.Valid {
			p.PublishedAt = &publishedAt.Time
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
