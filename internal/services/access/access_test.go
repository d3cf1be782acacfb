package access

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/courseforge/course-platform/internal/models"
	"github.com/courseforge/course-platform/internal/trial"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockTrialRepository struct {
	mock.Mock
}

func (m *MockTrialRepository) GetTrial(ctx context.Context, userUID string) (*trial.Record, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trial.Record), args.Error(1)
}

func (m *MockTrialRepository) CreateTrial(ctx context.Context, rec trial.Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	if args.Bool(0) {
		*(result.(*trial.Record)) = args.Get(2).(trial.Record)
	}
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

const testUID = "3f1c2b44-9a7e-4a2e-8a58-0c1d2e3f4a5b"

func activeTrialUser() *models.User {
	return &models.User{
		UUID:               testUID,
		Email:              "student@example.com",
		Username:           "student",
		Role:               "user",
		SubscriptionStatus: models.SubscriptionStatusTrial,
		CreatedAt:          time.Now().UTC().Add(-48 * time.Hour),
	}
}

func TestCheck_CreatesTrialOnFirstAccess(t *testing.T) {
	users := new(MockUserRepository)
	trials := new(MockTrialRepository)
	cache := new(MockCache)

	user := activeTrialUser()
	users.On("GetUser", mock.Anything, testUID).Return(user, nil)
	cache.On("Get", "trial:"+testUID, mock.Anything).Return(false, nil)
	trials.On("GetTrial", mock.Anything, testUID).Return(nil, nil)
	trials.On("CreateTrial", mock.Anything, mock.MatchedBy(func(rec trial.Record) bool {
		return rec.UserUID == testUID && rec.IsActive && rec.EndDate.After(rec.StartDate)
	})).Return(nil)
	cache.On("Set", "trial:"+testUID, mock.Anything, time.Hour).Return(nil)

	svc := New(users, trials, cache, newNoopLogger())
	decision, err := svc.Check(context.Background(), testUID)
	require.NoError(t, err)

	assert.True(t, decision.HasAccess)
	assert.Equal(t, trial.ReasonTrialActive, decision.Reason)
	assert.Equal(t, 5, decision.DaysRemaining)

	trials.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestCheck_UsesCachedRecord(t *testing.T) {
	users := new(MockUserRepository)
	trials := new(MockTrialRepository)
	cache := new(MockCache)

	user := activeTrialUser()
	rec := trial.Record{
		UserUID:   testUID,
		StartDate: user.CreatedAt,
		EndDate:   user.CreatedAt.Add(7 * 24 * time.Hour),
		IsActive:  true,
	}
	users.On("GetUser", mock.Anything, testUID).Return(user, nil)
	cache.On("Get", "trial:"+testUID, mock.Anything).Return(true, nil, rec)

	svc := New(users, trials, cache, newNoopLogger())
	decision, err := svc.Check(context.Background(), testUID)
	require.NoError(t, err)

	assert.True(t, decision.HasAccess)
	trials.AssertNotCalled(t, "GetTrial", mock.Anything, mock.Anything)
}

func TestCheck_SubscriptionShortCircuitsExpiredTrial(t *testing.T) {
	users := new(MockUserRepository)
	trials := new(MockTrialRepository)
	cache := new(MockCache)

	user := activeTrialUser()
	user.SubscriptionStatus = models.SubscriptionStatusActive
	user.CreatedAt = time.Now().UTC().Add(-30 * 24 * time.Hour)
	rec := trial.Record{
		UserUID:   testUID,
		StartDate: user.CreatedAt,
		EndDate:   user.CreatedAt.Add(7 * 24 * time.Hour),
		IsActive:  true,
	}
	users.On("GetUser", mock.Anything, testUID).Return(user, nil)
	cache.On("Get", "trial:"+testUID, mock.Anything).Return(true, nil, rec)

	svc := New(users, trials, cache, newNoopLogger())
	decision, err := svc.Check(context.Background(), testUID)
	require.NoError(t, err)

	assert.True(t, decision.HasAccess)
	assert.Equal(t, trial.ReasonSubscribed, decision.Reason)
}

func TestCheck_ExpiredSubscriptionFallsBackToTrial(t *testing.T) {
	users := new(MockUserRepository)
	trials := new(MockTrialRepository)
	cache := new(MockCache)

	user := activeTrialUser()
	user.SubscriptionStatus = models.SubscriptionStatusActive
	expired := time.Now().UTC().Add(-time.Hour)
	user.SubscriptionExpiry = &expired
	rec := trial.Record{
		UserUID:   testUID,
		StartDate: user.CreatedAt,
		EndDate:   user.CreatedAt.Add(7 * 24 * time.Hour),
		IsActive:  true,
	}
	users.On("GetUser", mock.Anything, testUID).Return(user, nil)
	cache.On("Get", "trial:"+testUID, mock.Anything).Return(true, nil, rec)

	svc := New(users, trials, cache, newNoopLogger())
	decision, err := svc.Check(context.Background(), testUID)
	require.NoError(t, err)

	// Подписка истекла, но пробный период ещё действует
	assert.True(t, decision.HasAccess)
	assert.Equal(t, trial.ReasonTrialActive, decision.Reason)
}

func TestCheck_FailsClosedOnTrialRepoError(t *testing.T) {
	users := new(MockUserRepository)
	trials := new(MockTrialRepository)
	cache := new(MockCache)

	user := activeTrialUser()
	users.On("GetUser", mock.Anything, testUID).Return(user, nil)
	cache.On("Get", "trial:"+testUID, mock.Anything).Return(false, nil)
	trials.On("GetTrial", mock.Anything, testUID).Return(nil, errors.New("db down"))

	svc := New(users, trials, cache, newNoopLogger())
	decision, err := svc.Check(context.Background(), testUID)
	require.NoError(t, err)

	assert.False(t, decision.HasAccess)
	assert.Equal(t, trial.ReasonNoTrial, decision.Reason)
}

func TestCheck_UserNotFound(t *testing.T) {
	users := new(MockUserRepository)
	trials := new(MockTrialRepository)
	cache := new(MockCache)

	users.On("GetUser", mock.Anything, testUID).Return(nil, errors.New("no rows"))

	svc := New(users, trials, cache, newNoopLogger())
	_, err := svc.Check(context.Background(), testUID)
	assert.Error(t, err)
}

func TestStatus_ReturnsBannerData(t *testing.T) {
	users := new(MockUserRepository)
	trials := new(MockTrialRepository)
	cache := new(MockCache)

	user := activeTrialUser()
	user.CreatedAt = time.Now().UTC().Add(-6 * 24 * time.Hour)
	users.On("GetUser", mock.Anything, testUID).Return(user, nil)
	cache.On("Get", "trial:"+testUID, mock.Anything).Return(false, nil)
	trials.On("GetTrial", mock.Anything, testUID).Return(nil, nil)
	trials.On("CreateTrial", mock.Anything, mock.Anything).Return(nil)
	cache.On("Set", "trial:"+testUID, mock.Anything, time.Hour).Return(nil)

	svc := New(users, trials, cache, newNoopLogger())
	status, err := svc.Status(context.Background(), testUID)
	require.NoError(t, err)

	assert.True(t, status.HasAccess)
	assert.Equal(t, "trial-active", status.Reason)
	assert.NotEmpty(t, status.Warning)
	assert.NotEmpty(t, status.Message)
	require.NotNil(t, status.StartDate)
	require.NotNil(t, status.EndDate)
	assert.Greater(t, status.ProgressPercent, 50)
}

func TestInvalidateTrial(t *testing.T) {
	users := new(MockUserRepository)
	trials := new(MockTrialRepository)
	cache := new(MockCache)

	cache.On("Invalidate", "trial:"+testUID).Return(nil)

	svc := New(users, trials, cache, newNoopLogger())
	svc.InvalidateTrial(testUID)

	cache.AssertExpectations(t)
}
