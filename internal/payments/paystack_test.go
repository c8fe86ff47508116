package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestPaystackInitialize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_secret", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", gjson.GetBytes(body, "email").String())
		assert.Equal(t, int64(507500), gjson.GetBytes(body, "amount").Int())

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"status": true,
			"message": "Authorization URL created",
			"data": {
				"authorization_url": "https://checkout.paystack.com/abc123",
				"access_code": "abc123",
				"reference": "DVC-20260828-ABCDEF"
			}
		}`)
	}))
	defer server.Close()

	client := NewPaystackClient("sk_test_secret", server.URL)
	result, err := client.Initialize(context.Background(), "ada@example.com", 507500, "DVC-20260828-ABCDEF", "")
	require.NoError(t, err)

	assert.Equal(t, "https://checkout.paystack.com/abc123", result.AuthorizationURL)
	assert.Equal(t, "DVC-20260828-ABCDEF", result.Reference)
}

func TestPaystackVerify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/verify/DVC-20260828-ABCDEF", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"status": true,
			"message": "Verification successful",
			"data": {
				"status": "success",
				"reference": "DVC-20260828-ABCDEF",
				"amount": 507500,
				"channel": "card",
				"paid_at": "2026-08-28T10:00:00.000Z"
			}
		}`)
	}))
	defer server.Close()

	client := NewPaystackClient("sk_test_secret", server.URL)
	result, err := client.Verify(context.Background(), "DVC-20260828-ABCDEF")
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, int64(507500), result.AmountKobo)
	assert.Equal(t, 5075.0, result.Amount)
	assert.Equal(t, "card", result.Channel)
}

func TestPaystackVerifyFailedCharge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"status": true,
			"message": "Verification successful",
			"data": {"status": "failed", "reference": "REF-1", "amount": 1000}
		}`)
	}))
	defer server.Close()

	client := NewPaystackClient("sk_test_secret", server.URL)
	result, err := client.Verify(context.Background(), "REF-1")
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestVerifyWebhookSignature(t *testing.T) {
	client := NewPaystackClient("sk_test_secret", "https://api.paystack.co")
	body := []byte(`{"event":"charge.success","data":{"reference":"DVC-20260828-ABCDEF"}}`)

	mac := hmac.New(sha512.New, []byte("sk_test_secret"))
	mac.Write(body)
	signature := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, client.VerifyWebhookSignature(body, signature))
	assert.False(t, client.VerifyWebhookSignature(body, "deadbeef"))
	assert.False(t, client.VerifyWebhookSignature([]byte(`tampered`), signature))
}
