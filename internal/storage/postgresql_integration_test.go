package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/courseforge/course-platform/internal/migrations"
	"github.com/courseforge/course-platform/internal/models"
	"github.com/courseforge/course-platform/internal/trial"
)

func setupTestStorage(t *testing.T) *Storage {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx)
	require.NoError(t, err)

	st, err := New(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.DB.Close() })

	require.NoError(t, migrations.Run(st.DB, "../../migrations"))
	require.NoError(t, CheckDatabaseReady(st))
	return st
}

func TestRegisterAndGetUser(t *testing.T) {
	st := setupTestStorage(t)
	ctx := context.Background()

	uid, createdAt, err := st.RegisterUser(ctx, models.User{
		Email:              "student@example.com",
		Username:           "student",
		PasswordHash:       "hash",
		Role:               "user",
		SubscriptionStatus: models.SubscriptionStatusTrial,
	})
	require.NoError(t, err)
	require.NotEmpty(t, uid)
	assert.WithinDuration(t, time.Now(), createdAt, time.Minute)

	u, err := st.GetUser(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "student", u.Username)
	assert.Equal(t, models.SubscriptionStatusTrial, u.SubscriptionStatus)
	assert.Nil(t, u.SubscriptionExpiry)

	byName, err := st.GetUserByUsername(ctx, "student")
	require.NoError(t, err)
	assert.Equal(t, uid, byName.UUID)

	// email уникален
	_, _, err = st.RegisterUser(ctx, models.User{
		Email:              "student@example.com",
		Username:           "student2",
		PasswordHash:       "hash",
		Role:               "user",
		SubscriptionStatus: models.SubscriptionStatusTrial,
	})
	require.Error(t, err)
}

func TestCreateTrial_Convergence(t *testing.T) {
	st := setupTestStorage(t)
	ctx := context.Background()
	factory := NewTestDataFactory(st)

	uid := factory.CreateUser(t, "trialuser", "trial@example.com", "hash", "user")

	createdAt := time.Date(2026, time.January, 1, 10, 0, 0, 0, time.UTC)
	rec, err := trial.Resolve(uid, createdAt, nil)
	require.NoError(t, err)
	require.NoError(t, st.CreateTrial(ctx, rec))

	// Конкурирующая запись с другими датами не перетирает первую
	later := rec
	later.StartDate = rec.StartDate.Add(time.Hour)
	later.EndDate = rec.EndDate.Add(time.Hour)
	require.NoError(t, st.CreateTrial(ctx, later))

	got, err := st.GetTrial(ctx, uid)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.StartDate.Equal(rec.StartDate))
	assert.True(t, got.EndDate.Equal(rec.EndDate))
	assert.True(t, got.IsActive)

	require.NoError(t, st.DeactivateTrial(ctx, uid))
	got, err = st.GetTrial(ctx, uid)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestGetTrial_NotFound(t *testing.T) {
	st := setupTestStorage(t)

	got, err := st.GetTrial(context.Background(), "00000000-0000-0000-0000-000000000099")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindTrialsExpiringOn(t *testing.T) {
	st := setupTestStorage(t)
	ctx := context.Background()
	factory := NewTestDataFactory(st)

	endOfToday := time.Now().UTC().Truncate(24 * time.Hour).Add(24*time.Hour - time.Millisecond)

	// Пробный период кончается сегодня, подписки нет
	expiring := factory.CreateUserWithSubscription(t, "expiring", "expiring@example.com", "trial", nil)
	require.NoError(t, st.CreateTrial(ctx, trial.Record{
		UserUID:   expiring,
		StartDate: endOfToday.AddDate(0, 0, -7),
		EndDate:   endOfToday,
		IsActive:  true,
	}))

	// Тот же срок, но подписка активна: письмо не нужно
	subscribed := factory.CreateUserWithSubscription(t, "subscribed", "subscribed@example.com", "active", nil)
	require.NoError(t, st.CreateTrial(ctx, trial.Record{
		UserUID:   subscribed,
		StartDate: endOfToday.AddDate(0, 0, -7),
		EndDate:   endOfToday,
		IsActive:  true,
	}))

	// Кончается завтра
	tomorrow := factory.CreateUserWithSubscription(t, "tomorrow", "tomorrow@example.com", "trial", nil)
	require.NoError(t, st.CreateTrial(ctx, trial.Record{
		UserUID:   tomorrow,
		StartDate: endOfToday.AddDate(0, 0, -6),
		EndDate:   endOfToday.AddDate(0, 0, 1),
		IsActive:  true,
	}))

	today, err := st.FindTrialsExpiringOn(ctx, 0)
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.Equal(t, "expiring@example.com", today[0].Email)

	upcoming, err := st.FindTrialsExpiringOn(ctx, 1)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "tomorrow@example.com", upcoming[0].Email)
}

func TestCourseCRUDAndLessons(t *testing.T) {
	st := setupTestStorage(t)
	ctx := context.Background()

	id, err := st.CreateCourse(ctx, models.DummyCourse{
		Title:       "Go for Backend Engineers",
		Slug:        "go-for-backend-engineers",
		Description: "From net/http to production services.",
		Category:    "programming",
		Level:       "intermediate",
		IsPublished: true,
	})
	require.NoError(t, err)

	lessonID, err := st.CreateLesson(ctx, id, models.DummyLesson{
		Title:           "Intro",
		Position:        1,
		VideoURL:        "https://video.example.com/intro",
		DurationMinutes: 12,
		IsPreview:       true,
	})
	require.NoError(t, err)

	course, err := st.ReadCourse(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, course)
	assert.Equal(t, 1, course.LessonsCount)

	lessons, err := st.ListLessons(ctx, id)
	require.NoError(t, err)
	require.Len(t, lessons, 1)
	assert.Equal(t, lessonID, lessons[0].ID)

	n, err := st.UpdateCourse(ctx, id, models.DummyCourse{
		Title:       "Go for Backend Engineers, 2nd edition",
		Slug:        "go-for-backend-engineers",
		Description: "Updated.",
		Category:    "programming",
		Level:       "advanced",
		IsPublished: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = st.RemoveCourse(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	gone, err := st.ReadCourse(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestLessonProgress(t *testing.T) {
	st := setupTestStorage(t)
	ctx := context.Background()
	factory := NewTestDataFactory(st)

	uid := factory.CreateUser(t, "learner", "learner@example.com", "hash", "user")
	courseID := factory.CreateCourse(t, "Test Course", "test-course", true)
	first := factory.CreateLesson(t, courseID, 1, "Lesson 1")
	factory.CreateLesson(t, courseID, 2, "Lesson 2")

	require.NoError(t, st.CompleteLesson(ctx, uid, first))
	// Повторное завершение не дублируется
	require.NoError(t, st.CompleteLesson(ctx, uid, first))

	progress, err := st.GetCourseProgress(ctx, uid)
	require.NoError(t, err)
	require.Len(t, progress, 1)
	assert.Equal(t, 2, progress[0].TotalLessons)
	assert.Equal(t, 1, progress[0].CompletedLessons)
	assert.Equal(t, 50, progress[0].Percent)
}

func TestPayments(t *testing.T) {
	st := setupTestStorage(t)
	ctx := context.Background()
	factory := NewTestDataFactory(st)

	uid := factory.CreateUser(t, "payer", "payer@example.com", "hash", "user")

	tokenID, err := st.CreatePaymentToken(ctx, uid, "tok_abc")
	require.NoError(t, err)
	assert.Greater(t, tokenID, 0)

	foundID, found, err := st.FindPaymentToken(ctx, uid, "tok_abc")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, tokenID, foundID)

	_, found, err = st.FindPaymentToken(ctx, uid, "tok_missing")
	require.NoError(t, err)
	assert.False(t, found)

	_, err = st.SavePayment(ctx, models.Payment{
		ExternalID: "pay-1",
		UserUID:    uid,
		Status:     "succeeded",
		Amount:     99900,
		Currency:   "RUB",
	})
	require.NoError(t, err)

	payments, err := st.ListPayments(ctx, uid)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "pay-1", payments[0].ExternalID)

	require.NoError(t, st.ActivateSubscription(ctx, uid))
	u, err := st.GetUser(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusActive, u.SubscriptionStatus)
	require.NotNil(t, u.SubscriptionExpiry)
	assert.WithinDuration(t, time.Now().AddDate(0, 1, 0), *u.SubscriptionExpiry, time.Hour)

	require.NoError(t, st.ExpireSubscription(ctx, uid))
	u, err = st.GetUser(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusExpired, u.SubscriptionStatus)
}

func TestCountUsersStats(t *testing.T) {
	st := setupTestStorage(t)
	ctx := context.Background()
	factory := NewTestDataFactory(st)

	uid := factory.CreateUser(t, "statuser", "stat@example.com", "hash", "user")
	require.NoError(t, st.CreateTrial(ctx, trial.Record{
		UserUID:   uid,
		StartDate: time.Now().UTC(),
		EndDate:   time.Now().UTC().AddDate(0, 0, 7),
		IsActive:  true,
	}))

	stats, err := st.CountUsersStats(ctx)
	require.NoError(t, err)
	// admin из миграций + statuser
	assert.GreaterOrEqual(t, stats.TotalUsers, 2)
	assert.GreaterOrEqual(t, stats.ActiveTrials, 1)
	// три курса из сидов миграции
	assert.GreaterOrEqual(t, stats.PublishedCourses, 3)
}
