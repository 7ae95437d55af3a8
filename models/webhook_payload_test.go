package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckWebhookBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"object", `{"amount": 1000}`, nil},
		{"non empty array", `[1]`, nil},
		{"empty body", ``, ErrPayloadNotJSON},
		{"not json", `amount=1000`, ErrPayloadNotJSON},
		{"truncated", `{"amount":`, ErrPayloadNotJSON},
		{"empty object", `{}`, ErrPayloadEmpty},
		{"empty array", `[]`, ErrPayloadEmpty},
		{"null", `null`, ErrPayloadEmpty},
		{"false", `false`, ErrPayloadEmpty},
		{"zero", `0`, ErrPayloadEmpty},
		{"empty string", `""`, ErrPayloadEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckWebhookBody([]byte(tt.body)))
		})
	}
}

func TestDecodeWebhookPayload_Fields(t *testing.T) {
	body := []byte(`{
		"payment_hash": "abc123",
		"payment_request": "lnbc10n1...",
		"amount": 1000,
		"comment": "test",
		"webhook_data": "extra",
		"lnurlp": "lnurlp-id",
		"body": {"note": "hi"},
		"zap_receipt": null,
		"unknown": true
	}`)

	payload, err := DecodeWebhookPayload(body)
	require.NoError(t, err)

	assert.Equal(t, "abc123", *payload.PaymentHash)
	assert.Equal(t, "lnbc10n1...", *payload.PaymentRequest)
	assert.Equal(t, int64(1000), *payload.Amount)
	assert.Equal(t, "test", *payload.Comment)
	assert.Equal(t, "extra", *payload.WebhookData)
	assert.Equal(t, "lnurlp-id", *payload.Lnurlp)
	assert.Equal(t, `{"note":"hi"}`, *payload.Body)
	assert.Nil(t, payload.ZapReceipt)
	assert.Empty(t, payload.Unparsed)
}

func TestDecodeWebhookPayload_MissingFieldsAreNil(t *testing.T) {
	payload, err := DecodeWebhookPayload([]byte(`{"comment": "only"}`))
	require.NoError(t, err)

	assert.Equal(t, "only", *payload.Comment)
	assert.Nil(t, payload.PaymentHash)
	assert.Nil(t, payload.PaymentRequest)
	assert.Nil(t, payload.Amount)
	assert.Nil(t, payload.WebhookData)
	assert.Nil(t, payload.Lnurlp)
	assert.Nil(t, payload.Body)
	assert.Nil(t, payload.ZapReceipt)
}

func TestDecodeWebhookPayload_Amount(t *testing.T) {
	tests := []struct {
		raw      string
		want     *int64
		unparsed bool
	}{
		{`1000`, int64Ptr(1000), false},
		{`1000.0`, int64Ptr(1000), false},
		{`"2500"`, int64Ptr(2500), false},
		{`-5`, int64Ptr(-5), false},
		{`1e3`, int64Ptr(1000), false},
		{`9223372036854775808`, nil, true},
		{`null`, nil, false},
		{`10.5`, nil, true},
		{`"ten"`, nil, true},
		{`{"sats": 1}`, nil, true},
		{`true`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			payload, err := DecodeWebhookPayload([]byte(`{"amount": ` + tt.raw + `}`))
			require.NoError(t, err)
			assert.Equal(t, tt.want, payload.Amount)
			if tt.unparsed {
				assert.Equal(t, []string{"amount"}, payload.Unparsed)
			} else {
				assert.Empty(t, payload.Unparsed)
			}
		})
	}
}

func TestDecodeWebhookPayload_NotObject(t *testing.T) {
	for _, body := range []string{`[1, 2]`, `"text"`, `42`, `null`} {
		_, err := DecodeWebhookPayload([]byte(body))
		assert.ErrorIs(t, err, ErrPayloadNotObject, body)
	}
}

func TestPrettyJSON(t *testing.T) {
	assert.Equal(t, "{\n  \"amount\": 1\n}", PrettyJSON([]byte(`{"amount":1}`)))
	assert.Equal(t, "[\n  1,\n  2\n]", PrettyJSON([]byte(`[1,2]`)))
	assert.Equal(t, "not json", PrettyJSON([]byte("not json")))
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2024, 3, 9, 8, 7, 6, 5000, time.FixedZone("CET", 3600))
	assert.Equal(t, "2024-03-09T07:07:06.000005+00:00", FormatTimestamp(ts))

	earlier := FormatTimestamp(time.Date(2024, 3, 9, 7, 7, 6, 0, time.UTC))
	later := FormatTimestamp(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	assert.Less(t, earlier, later)
}

func TestWalletBalance_Sats(t *testing.T) {
	assert.Equal(t, int64(123), WalletBalance{Balance: 123456}.Sats())
	assert.Equal(t, int64(0), WalletBalance{Balance: 999}.Sats())
	assert.Equal(t, int64(5), WalletBalance{Balance: 5000}.Sats())
}

func int64Ptr(v int64) *int64 {
	return &v
}
