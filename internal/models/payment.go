package models

import "time"

// PaymentToken представляет токен платёжного метода пользователя.
type PaymentToken struct {
	ID        int       `json:"id"`
	UserUID   string    `json:"user_uid"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// Payment — сохранённый результат платежа, полученный через webhook провайдера.
type Payment struct {
	ID         int       `json:"id"`
	ExternalID string    `json:"external_id"` // ID платежа на стороне провайдера
	UserUID    string    `json:"user_uid"`
	Status     string    `json:"status"`
	Amount     int64     `json:"amount"` // Сумма в минорных единицах
	Currency   string    `json:"currency"`
	CreatedAt  time.Time `json:"created_at"`
}

// AdminStats — сводка для административной панели.
type AdminStats struct {
	TotalUsers        int `json:"total_users"`
	ActiveTrials      int `json:"active_trials"`
	ActiveSubscribers int `json:"active_subscribers"`
	PublishedCourses  int `json:"published_courses"`
	PublishedPosts    int `json:"published_posts"`
}
