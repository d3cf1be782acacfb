package storage

import (
	"context"
	"fmt"

	"github.com/courseforge/course-platform/internal/models"
)

// CompleteLesson отмечает урок завершённым для пользователя.
// Повторное завершение того же урока не создаёт дубликата.
func (s *Storage) CompleteLesson(ctx context.Context, userUID string, lessonID int) error {
	const op = "storage.CompleteLesson"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO lesson_progress (user_uid, lesson_id)
			  VALUES ($1, $2)
			  ON CONFLICT (user_uid, lesson_id) DO NOTHING`
	_, err := s.DB.ExecContext(ctx, query, userUID, lessonID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetCourseProgress возвращает сводку прогресса пользователя по всем курсам,
// в которых он завершил хотя бы один урок.
func (s *Storage) GetCourseProgress(ctx context.Context, userUID string) ([]*models.CourseProgress, error) {
	const op = "storage.GetCourseProgress"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT c.id, c.title,
			      COUNT(l.id) AS total_lessons,
			      COUNT(lp.lesson_id) AS completed_lessons
			  FROM courses c
			  JOIN lessons l ON l.course_id = c.id
			  LEFT JOIN lesson_progress lp ON lp.lesson_id = l.id AND lp.user_uid = $1
			  GROUP BY c.id, c.title
			  HAVING COUNT(lp.lesson_id) > 0
			  ORDER BY c.id`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.CourseProgress
	for rows.Next() {
		var p models.CourseProgress
		if err = rows.Scan(&p.CourseID, &p.CourseTitle, &p.TotalLessons, &p.CompletedLessons); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if p.TotalLessons > 0 {
			p.Percent = p.CompletedLessons * 100 / p.TotalLessons
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
