package sender

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/courseforge/course-platform/internal/lib/smtp"
	"github.com/courseforge/course-platform/internal/models"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) GetSMTPUser() string {
	args := m.Called()
	return args.String(0)
}

type MockSMTPClient struct {
	mock.Mock
}

func (m *MockSMTPClient) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *MockSMTPClient) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *MockSMTPClient) Quit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSMTPClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

type captureWriteCloser struct {
	data []byte
}

func (w *captureWriteCloser) Write(p []byte) (int, error) {
	w.data = append(w.data, p...)
	return len(p), nil
}

func (w *captureWriteCloser) Close() error { return nil }

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func noticeBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(models.TrialNotice{
		Email:    "student@example.com",
		Username: "student",
		EndDate:  time.Date(2026, time.January, 7, 23, 59, 59, 0, time.UTC),
	})
	require.NoError(t, err)
	return body
}

func TestSendUpcomingExpiration(t *testing.T) {
	writer := &captureWriteCloser{}
	client := new(MockSMTPClient)
	client.On("Mail", "notify@example.com").Return(nil)
	client.On("Rcpt", "student@example.com").Return(nil)
	client.On("Data").Return(writer, nil)
	client.On("Quit").Return(nil)
	client.On("Close").Return(nil)

	transport := new(MockTransport)
	transport.On("Connect").Return(client, nil)
	transport.On("GetSMTPUser").Return("notify@example.com")

	svc := New(transport, newNoopLogger())
	require.NoError(t, svc.SendUpcomingExpiration(noticeBody(t)))

	sent := string(writer.data)
	assert.Contains(t, sent, "To: student@example.com")
	assert.Contains(t, sent, "Subject: Your free trial ends tomorrow")
	assert.Contains(t, sent, "Hi student!")
	assert.Contains(t, sent, "January 7, 2026")

	client.AssertExpectations(t)
}

func TestSendFinalExpiration(t *testing.T) {
	writer := &captureWriteCloser{}
	client := new(MockSMTPClient)
	client.On("Mail", "notify@example.com").Return(nil)
	client.On("Rcpt", "student@example.com").Return(nil)
	client.On("Data").Return(writer, nil)
	client.On("Quit").Return(nil)
	client.On("Close").Return(nil)

	transport := new(MockTransport)
	transport.On("Connect").Return(client, nil)
	transport.On("GetSMTPUser").Return("notify@example.com")

	svc := New(transport, newNoopLogger())
	require.NoError(t, svc.SendFinalExpiration(noticeBody(t)))

	sent := string(writer.data)
	assert.Contains(t, sent, "Subject: Your free trial expires today")
	assert.Contains(t, sent, "Your trial expires today! Subscribe now to keep learning.")
}

func TestSend_InvalidBody(t *testing.T) {
	transport := new(MockTransport)

	svc := New(transport, newNoopLogger())
	err := svc.SendUpcomingExpiration([]byte("not-json"))
	assert.Error(t, err)

	err = svc.SendFinalExpiration([]byte("{"))
	assert.Error(t, err)

	transport.AssertNotCalled(t, "Connect")
}

func TestSend_ConnectError(t *testing.T) {
	transport := new(MockTransport)
	transport.On("GetSMTPUser").Return("notify@example.com")
	transport.On("Connect").Return(nil, errors.New("dial failed"))

	svc := New(transport, newNoopLogger())
	err := svc.SendUpcomingExpiration(noticeBody(t))
	assert.Error(t, err)
}
