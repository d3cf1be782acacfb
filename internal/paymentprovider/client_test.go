package paymentprovider

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("Idempotence-Key"))
		assert.Contains(t, r.Header.Get("Authorization"), "Basic ")

		var req CreatePaymentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "999.00", req.Amount.Value)
		assert.Equal(t, "uid-1", req.Metadata.UserUID)

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(CreatePaymentResponse{
			ID:     "pay-123",
			Status: "succeeded",
			Amount: req.Amount,
		})
	}))
	defer srv.Close()

	client := NewClient("shop", "secret", srv.URL)
	req := CreatePaymentRequest{
		Amount:  Amount{Value: "999.00", Currency: "RUB"},
		Capture: true,
	}
	req.Metadata.UserUID = "uid-1"

	resp, err := client.CreatePayment(req)
	require.NoError(t, err)
	assert.Equal(t, "pay-123", resp.ID)
	assert.Equal(t, "succeeded", resp.Status)
}

func TestCreatePayment_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient("shop", "wrong", srv.URL)
	_, err := client.CreatePayment(CreatePaymentRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}
