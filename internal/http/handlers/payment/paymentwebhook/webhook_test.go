package paymentwebhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/courseforge/course-platform/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ApplyPayment(ctx context.Context, payment models.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

const testSecret = "webhook_secret"

func sign(t *testing.T, body string) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(testSecret))
	_, err := mac.Write([]byte(body))
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

const succeededBody = `{
	"event": "payment.succeeded",
	"object": {
		"id": "pay-123",
		"status": "succeeded",
		"amount": {"value": "999.00", "currency": "RUB"},
		"metadata": {"user_uid": "user-uuid-123"}
	}
}`

func TestWebhookHandler_Succeeded(t *testing.T) {
	mockService := new(MockService)
	mockService.On("ApplyPayment", mock.Anything, models.Payment{
		ExternalID: "pay-123",
		UserUID:    "user-uuid-123",
		Status:     "succeeded",
		Amount:     99900,
		Currency:   "RUB",
	}).Return(nil).Once()

	handler := New(newNoopLogger(), mockService, testSecret)

	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(succeededBody))
	req.Header.Set("X-Api-Signature", sign(t, succeededBody))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestWebhookHandler_InvalidSignature(t *testing.T) {
	mockService := new(MockService)

	handler := New(newNoopLogger(), mockService, testSecret)

	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(succeededBody))
	req.Header.Set("X-Api-Signature", "bm90LXRoZS1yaWdodC1zaWduYXR1cmU=")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertNotCalled(t, "ApplyPayment", mock.Anything, mock.Anything)
}

func TestWebhookHandler_MissingSignature(t *testing.T) {
	mockService := new(MockService)

	handler := New(newNoopLogger(), mockService, testSecret)

	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(succeededBody))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebhookHandler_UnknownEventIgnored(t *testing.T) {
	body := `{"event": "payment.waiting_for_capture", "object": {"id": "pay-9"}}`

	mockService := new(MockService)

	handler := New(newNoopLogger(), mockService, testSecret)

	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(body))
	req.Header.Set("X-Api-Signature", sign(t, body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertNotCalled(t, "ApplyPayment", mock.Anything, mock.Anything)
}

func TestWebhookHandler_MissingUserUID(t *testing.T) {
	body := `{
		"event": "payment.succeeded",
		"object": {"id": "pay-5", "status": "succeeded", "amount": {"value": "999.00", "currency": "RUB"}}
	}`

	mockService := new(MockService)

	handler := New(newNoopLogger(), mockService, testSecret)

	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(body))
	req.Header.Set("X-Api-Signature", sign(t, body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookHandler_ServiceError(t *testing.T) {
	mockService := new(MockService)
	mockService.On("ApplyPayment", mock.Anything, mock.Anything).Return(assert.AnError).Once()

	handler := New(newNoopLogger(), mockService, testSecret)

	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", strings.NewReader(succeededBody))
	req.Header.Set("X-Api-Signature", sign(t, succeededBody))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "999.00", want: 99900},
		{in: "999", want: 99900},
		{in: "0.50", want: 50},
		{in: "10.5", want: 1050},
		{in: "abc", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseAmount(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
