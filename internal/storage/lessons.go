package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/courseforge/course-platform/internal/models"
)

// CreateLesson вставляет новый урок курса и возвращает его ID.
func (s *Storage) CreateLesson(ctx context.Context, courseID int, lesson models.DummyLesson) (int, error) {
	const op = "storage.CreateLesson"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO lessons (course_id, title, position, video_url,
			      duration_minutes, is_preview)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		courseID, lesson.Title, lesson.Position, lesson.VideoURL,
		lesson.DurationMinutes, lesson.IsPreview).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadLesson возвращает урок по его ID.
func (s *Storage) ReadLesson(ctx context.Context, id int) (*models.Lesson, error) {
	const op = "storage.ReadLesson"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, course_id, title, position, video_url, duration_minutes, is_preview
			  FROM lessons WHERE id = $1`
	var l models.Lesson
	err := s.DB.QueryRowContext(ctx, query, id).Scan(&l.ID, &l.CourseID, &l.Title,
		&l.Position, &l.VideoURL, &l.DurationMinutes, &l.IsPreview)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &l, nil
}

// ListLessons возвращает уроки курса в порядке их позиций.
func (s *Storage) ListLessons(ctx context.Context, courseID int) ([]*models.Lesson, error) {
	const op = "storage.ListLessons"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, course_id, title, position, video_url, duration_minutes, is_preview
			  FROM lessons
			  WHERE course_id = $1
			  ORDER BY position`
	rows, err := s.DB.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Lesson
	for rows.Next() {
		var l models.Lesson
		if err = rows.Scan(&l.ID, &l.CourseID, &l.Title, &l.Position,
			&l.VideoURL, &l.DurationMinutes, &l.IsPreview); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &l)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
