package models

// Lesson представляет урок внутри курса. VideoURL хранит только ссылку
// на встраиваемое видео, собственного стриминга у платформы нет.
type Lesson struct {
	ID              int    `json:"id"`
	CourseID        int    `json:"course_id"`
	Title           string `json:"title"`
	Position        int    `json:"position"`
	VideoURL        string `json:"video_url"`
	DurationMinutes int    `json:"duration_minutes"`
	IsPreview       bool   `json:"is_preview"`
}

// DummyLesson используется для приёма данных урока из JSON-запроса.
type DummyLesson struct {
	Title           string `json:"title" validate:"required,min=3,max=200"` // Название урока
	Position        int    `json:"position" validate:"required,gt=0"`       // Порядковый номер в курсе
	VideoURL        string `json:"video_url" validate:"required,url"`       // Ссылка на видео
	DurationMinutes int    `json:"duration_minutes" validate:"gte=0"`       // Длительность в минутах
	IsPreview       bool   `json:"is_preview"`                              // Доступен ли без подписки
}
