package models

import "time"

// Course представляет курс из каталога платформы.
type Course struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Level        string    `json:"level"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	LessonsCount int       `json:"lessons_count"`
	IsPublished  bool      `json:"is_published"`
	CreatedAt    time.Time `json:"created_at"`
}

// DummyCourse используется для приёма данных курса из JSON-запроса
// до валидации и сохранения.
type DummyCourse struct {
	Title        string `json:"title" validate:"required,min=3,max=200"`        // Название курса
	Slug         string `json:"slug" validate:"required,min=3,max=200"`         // Уникальный слаг для URL
	Description  string `json:"description" validate:"required"`                // Описание курса
	Category     string `json:"category" validate:"required"`                   // Категория, например web-development
	Level        string `json:"level" validate:"required,oneof=beginner intermediate advanced"` // Уровень сложности
	ThumbnailURL string `json:"thumbnail_url" validate:"omitempty,url"`         // Обложка курса
	IsPublished  bool   `json:"is_published"`                                   // Показывать ли курс в каталоге
}
