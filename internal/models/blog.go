package models

import "time"

// BlogPost представляет запись блога платформы.
type BlogPost struct {
	ID          int        `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content"`
	Author      string     `json:"author"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// DummyBlogPost используется для приёма записи блога из JSON-запроса.
type DummyBlogPost struct {
	Slug      string `json:"slug" validate:"required,min=3,max=200"`  // Уникальный слаг для URL
	Title     string `json:"title" validate:"required,min=3,max=200"` // Заголовок
	Excerpt   string `json:"excerpt" validate:"required"`             // Краткое описание для списка
	Content   string `json:"content" validate:"required"`             // Полный текст записи
	Author    string `json:"author" validate:"required"`              // Автор
	Published bool   `json:"published"`                               // Публиковать ли сразу
}
