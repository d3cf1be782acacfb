package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/courseforge/course-platform/internal/models"
)

// CreateCourse вставляет новый курс и возвращает его ID.
func (s *Storage) CreateCourse(ctx context.Context, course models.DummyCourse) (int, error) {
	const op = "storage.CreateCourse"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO courses (title, slug, description, category, level,
			      thumbnail_url, is_published)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		course.Title, course.Slug, course.Description, course.Category, course.Level,
		course.ThumbnailURL, course.IsPublished).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// UpdateCourse обновляет курс по ID и возвращает количество изменённых строк.
func (s *Storage) UpdateCourse(ctx context.Context, id int, course models.DummyCourse) (int, error) {
	const op = "storage.UpdateCourse"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE courses
			  SET title = $1, slug = $2, description = $3, category = $4,
			      level = $5, thumbnail_url = $6, is_published = $7
			  WHERE id = $8`
	result, err := s.DB.ExecContext(ctx, query,
		course.Title, course.Slug, course.Description, course.Category, course.Level,
		course.ThumbnailURL, course.IsPublished, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveCourse удаляет курс по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveCourse(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveCourse"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM courses WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ReadCourse возвращает курс по его ID.
func (s *Storage) ReadCourse(ctx context.Context, id int) (*models.Course, error) {
	const op = "storage.ReadCourse"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT c.id, c.title, c.slug, c.description, c.category, c.level,
			      COALESCE(c.thumbnail_url, ''),
			      (SELECT COUNT(*) FROM lessons l WHERE l.course_id = c.id),
			      c.is_published, c.created_at
			  FROM courses c WHERE c.id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Course
	err := row.Scan(&result.ID, &result.Title, &result.Slug, &result.Description,
		&result.Category, &result.Level, &result.ThumbnailURL, &result.LessonsCount,
		&result.IsPublished, &result.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListCourses возвращает страницу опубликованных курсов.
func (s *Storage) ListCourses(ctx context.Context, limit, offset int) ([]*models.Course, error) {
	const op = "storage.ListCourses"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT c.id, c.title, c.slug, c.description, c.category, c.level,
			      COALESCE(c.thumbnail_url, ''),
			      (SELECT COUNT(*) FROM lessons l WHERE l.course_id = c.id),
			      c.is_published, c.created_at
			  FROM courses c
			  WHERE c.is_published
			  ORDER BY c.id
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Course
	for rows.Next() {
		var c models.Course
		if err = rows.Scan(&c.ID, &c.Title, &c.Slug, &c.Description, &c.Category,
			&c.Level, &c.ThumbnailURL, &c.LessonsCount, &c.IsPublished, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
