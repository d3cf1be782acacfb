package models

import "time"

// LessonProgress — отметка о завершении урока пользователем.
// Пара (user_uid, lesson_id) уникальна, повторное завершение не дублируется.
type LessonProgress struct {
	UserUID     string    `json:"user_uid"`
	LessonID    int       `json:"lesson_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// CourseProgress — сводка прогресса пользователя по одному курсу.
type CourseProgress struct {
	CourseID         int    `json:"course_id"`
	CourseTitle      string `json:"course_title"`
	TotalLessons     int    `json:"total_lessons"`
	CompletedLessons int    `json:"completed_lessons"`
	Percent          int    `json:"percent"`
}
