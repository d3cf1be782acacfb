package status

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/courseforge/course-platform/internal/http/middlewarectx"
	"github.com/courseforge/course-platform/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Status(ctx context.Context, userUID string) (*models.TrialStatus, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TrialStatus), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestStatusHandler(t *testing.T) {
	start := time.Date(2026, time.January, 1, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.January, 8, 23, 59, 59, 999_000_000, time.UTC)

	tests := []struct {
		name           string
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "active trial with banner data",
			userUID: "user-uuid-123",
			setupMock: func(m *MockService) {
				m.On("Status", mock.Anything, "user-uuid-123").
					Return(&models.TrialStatus{
						HasAccess:       true,
						DaysRemaining:   5,
						Reason:          "trial-active",
						Message:         "You have 5 days left in your free trial",
						StartDate:       &start,
						EndDate:         &end,
						ProgressPercent: 28,
					}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"days_remaining":5`,
		},
		{
			name:    "expired trial",
			userUID: "user-uuid-123",
			setupMock: func(m *MockService) {
				m.On("Status", mock.Anything, "user-uuid-123").
					Return(&models.TrialStatus{
						HasAccess: false,
						Reason:    "trial-expired",
						Message:   "Your 7-day trial has expired. Subscribe to continue learning!",
					}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"has_access":false`,
		},
		{
			name:           "missing user uid",
			userUID:        "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:    "service error",
			userUID: "user-uuid-123",
			setupMock: func(m *MockService) {
				m.On("Status", mock.Anything, "user-uuid-123").
					Return(nil, assert.AnError).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not get trial status"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(newNoopLogger(), mockService)

			req := httptest.NewRequest(http.MethodGet, "/trial/status", nil)
			if tt.userUID != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.UserUID, tt.userUID)
				req = req.WithContext(ctx)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
