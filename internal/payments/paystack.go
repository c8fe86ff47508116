package payments

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

var (
	ErrPaymentNotSuccessful = errors.New("payment was not successful")
	ErrAmountMismatch       = errors.New("settled amount does not match booking total")
	ErrBadSignature         = errors.New("webhook signature verification failed")
)

// PaystackClient talks to the Paystack REST API. Amounts are in kobo, the
// gateway's minor currency unit.
type PaystackClient struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

func NewPaystackClient(secretKey, baseURL string) *PaystackClient {
	return &PaystackClient{
		secretKey: secretKey,
		baseURL:   baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type InitializeResult struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type VerifyResult struct {
	Success    bool    `json:"success"`
	Status     string  `json:"status"`
	Reference  string  `json:"reference"`
	AmountKobo int64   `json:"amount_kobo"`
	Amount     float64 `json:"amount"`
	Channel    string  `json:"channel"`
	PaidAt     string  `json:"paid_at"`
}

// Initialize creates a Paystack transaction and returns the hosted checkout
// URL the customer is redirected to.
func (c *PaystackClient) Initialize(ctx context.Context, email string, amountKobo int64, reference, callbackURL string) (*InitializeResult, error) {
	payload := map[string]interface{}{
		"email":     email,
		"amount":    amountKobo,
		"reference": reference,
	}
	if callbackURL != "" {
		payload["callback_url"] = callbackURL
	}

	body, err := c.post(ctx, "/transaction/initialize", payload)
	if err != nil {
		return nil, err
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.Get("status").Bool() {
		return nil, fmt.Errorf("paystack initialize failed: %s", parsed.Get("message").String())
	}

	data := parsed.Get("data")
	return &InitializeResult{
		AuthorizationURL: data.Get("authorization_url").String(),
		AccessCode:       data.Get("access_code").String(),
		Reference:        data.Get("reference").String(),
	}, nil
}

// Verify fetches the settled state of a transaction by reference.
func (c *PaystackClient) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	body, err := c.get(ctx, "/transaction/verify/"+reference)
	if err != nil {
		return nil, err
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.Get("status").Bool() {
		return nil, fmt.Errorf("paystack verify failed: %s", parsed.Get("message").String())
	}

	data := parsed.Get("data")
	amountKobo := data.Get("amount").Int()
	return &VerifyResult{
		Success:    data.Get("status").String() == "success",
		Status:     data.Get("status").String(),
		Reference:  data.Get("reference").String(),
		AmountKobo: amountKobo,
		Amount:     float64(amountKobo) / 100,
		Channel:    data.Get("channel").String(),
		PaidAt:     data.Get("paid_at").String(),
	}, nil
}

// VerifyWebhookSignature checks the x-paystack-signature header: a hex
// HMAC-SHA512 of the raw request body keyed with the secret key.
func (c *PaystackClient) VerifyWebhookSignature(body []byte, signature string) bool {
	mac := hmac.New(sha512.New, []byte(c.secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (c *PaystackClient) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode paystack request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *PaystackClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *PaystackClient) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paystack request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read paystack response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("paystack returned %d: %s", resp.StatusCode, gjson.GetBytes(body, "message").String())
	}
	return body, nil
}
