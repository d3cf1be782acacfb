package dashboard

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/courseforge/course-platform/internal/http/middlewarectx"
	"github.com/courseforge/course-platform/internal/models"
)

type MockTrialService struct {
	mock.Mock
}

func (m *MockTrialService) Status(ctx context.Context, userUID string) (*models.TrialStatus, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TrialStatus), args.Error(1)
}

type MockProgressService struct {
	mock.Mock
}

func (m *MockProgressService) Summary(ctx context.Context, userUID string) ([]*models.CourseProgress, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CourseProgress), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestDashboardHandler(t *testing.T) {
	tests := []struct {
		name           string
		userUID        string
		setupMocks     func(*MockTrialService, *MockProgressService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "dashboard assembled",
			userUID: "user-uuid-123",
			setupMocks: func(ts *MockTrialService, ps *MockProgressService) {
				ts.On("Status", mock.Anything, "user-uuid-123").Return(&models.TrialStatus{
					HasAccess:     true,
					DaysRemaining: 5,
					Reason:        "trial_active",
				}, nil).Once()
				ps.On("Summary", mock.Anything, "user-uuid-123").Return([]*models.CourseProgress{
					{CourseID: 1, CourseTitle: "Go Basics", TotalLessons: 10, CompletedLessons: 4, Percent: 40},
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"has_access":true`,
		},
		{
			name:           "missing user uid",
			userUID:        "",
			setupMocks:     func(_ *MockTrialService, _ *MockProgressService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:    "status error",
			userUID: "user-uuid-123",
			setupMocks: func(ts *MockTrialService, _ *MockProgressService) {
				ts.On("Status", mock.Anything, "user-uuid-123").Return(nil, assert.AnError).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"internal error"`,
		},
		{
			name:    "progress error",
			userUID: "user-uuid-123",
			setupMocks: func(ts *MockTrialService, ps *MockProgressService) {
				ts.On("Status", mock.Anything, "user-uuid-123").Return(&models.TrialStatus{
					HasAccess: true,
				}, nil).Once()
				ps.On("Summary", mock.Anything, "user-uuid-123").Return(nil, assert.AnError).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"internal error"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTrial := new(MockTrialService)
			mockProgress := new(MockProgressService)
			tt.setupMocks(mockTrial, mockProgress)

			handler := New(newNoopLogger(), mockTrial, mockProgress)

			req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			ctx := req.Context()
			if tt.userUID != "" {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, tt.userUID)
				ctx = context.WithValue(ctx, middlewarectx.User, "testuser")
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockTrial.AssertExpectations(t)
			mockProgress.AssertExpectations(t)
		})
	}
}
