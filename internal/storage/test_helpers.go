package storage

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его UID
func (f *TestDataFactory) CreateUser(t *testing.T, username, email, passwordHash, role string) string {
	uid := uuid.New().String()
	_, err := f.storage.DB.Exec(`INSERT INTO users (uid, username, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)`,
		uid, username, email, passwordHash, role)
	require.NoError(t, err)
	return uid
}

// CreateUserWithSubscription создает пользователя с заданным статусом подписки
func (f *TestDataFactory) CreateUserWithSubscription(t *testing.T, username, email, status string,
	subscriptionExpiry *time.Time) string {
	uid := uuid.New().String()
	_, err := f.storage.DB.Exec(`INSERT INTO users
		(uid, username, email, password_hash, role, subscription_status, subscription_expiry)
		VALUES ($1, $2, $3, 'hash', 'user', $4, $5)`,
		uid, username, email, status, subscriptionExpiry)
	require.NoError(t, err)
	return uid
}

// CreateCourse создает тестовый курс и возвращает его ID
func (f *TestDataFactory) CreateCourse(t *testing.T, title, slug string, published bool) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO courses
		(title, slug, description, category, level, is_published)
		VALUES ($1, $2, 'test description', 'test', 'beginner', $3) RETURNING id`,
		title, slug, published).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateLesson создает тестовый урок и возвращает его ID
func (f *TestDataFactory) CreateLesson(t *testing.T, courseID, position int, title string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO lessons
		(course_id, title, position, video_url, duration_minutes)
		VALUES ($1, $2, $3, 'https://video.example.com/1', 10) RETURNING id`,
		courseID, title, position).Scan(&id)
	require.NoError(t, err)
	return id
}
