// Package models содержит доменные структуры платформы онлайн-курсов:
// пользователей, курсы, уроки, записи блога, прогресс обучения и платежи.
// Структуры используются в бизнес-логике и при работе с хранилищем.
package models

import "time"

// Статусы подписки пользователя.
const (
	// SubscriptionStatusTrial — доступ только по пробному периоду.
	SubscriptionStatusTrial = "trial"
	// SubscriptionStatusActive — оплаченная подписка активна.
	SubscriptionStatusActive = "active"
	// SubscriptionStatusExpired — подписка была, но закончилась.
	SubscriptionStatusExpired = "expired"
)

// User представляет зарегистрированного пользователя платформы.
type User struct {
	UUID               string     // Уникальный идентификатор пользователя
	Email              string     // Электронная почта
	Username           string     // Имя пользователя (уникальное)
	PasswordHash       string     // Хэш пароля пользователя
	Role               string     // Роль пользователя, admin или user
	SubscriptionStatus string     // Статус подписки: trial, active или expired
	SubscriptionExpiry *time.Time // Дата истечения оплаченной подписки, nil — без ограничения
	CreatedAt          time.Time  // Дата создания аккаунта, от неё отсчитывается пробный период
}
