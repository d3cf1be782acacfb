package complete

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/courseforge/course-platform/internal/http/middlewarectx"
	"github.com/courseforge/course-platform/internal/services/progress"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Complete(ctx context.Context, userUID string, lessonID int) error {
	args := m.Called(ctx, userUID, lessonID)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCompleteHandler(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "lesson completed",
			id:      "5",
			userUID: "user-uuid-123",
			setupMock: func(m *MockService) {
				m.On("Complete", mock.Anything, "user-uuid-123", 5).Return(nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"completed":true`,
		},
		{
			name:    "lesson not found",
			id:      "99",
			userUID: "user-uuid-123",
			setupMock: func(m *MockService) {
				m.On("Complete", mock.Anything, "user-uuid-123", 99).
					Return(progress.ErrLessonNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"lesson not found"`,
		},
		{
			name:           "missing user uid",
			id:             "5",
			userUID:        "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:           "invalid id",
			id:             "abc",
			userUID:        "user-uuid-123",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"failed to decode id from url"`,
		},
		{
			name:    "service error",
			id:      "5",
			userUID: "user-uuid-123",
			setupMock: func(m *MockService) {
				m.On("Complete", mock.Anything, "user-uuid-123", 5).
					Return(assert.AnError).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not complete lesson"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(newNoopLogger(), mockService)

			req := httptest.NewRequest(http.MethodPost, "/lessons/"+tt.id+"/complete", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			if tt.userUID != "" {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, tt.userUID)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
