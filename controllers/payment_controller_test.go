package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lnbits-apfel/paycode-webhook/models"
	"github.com/lnbits-apfel/paycode-webhook/testutil"
)

func getJSON(t *testing.T, app *testApp, path string) testutil.TestResponse {
	return testutil.MakeTestRequest(t, app.router, testutil.TestRequest{Method: http.MethodGet, Path: path})
}

func TestGetLatestPayment_NoRecords(t *testing.T) {
	app := newTestApp(t, nil)

	resp := getJSON(t, app, "/api/payment_webhook")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error": "No payment found"}`, string(resp.Body))
}

func TestGetLatestPayment_ReturnsNewest(t *testing.T) {
	app := newTestApp(t, nil)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	deliveries := []struct {
		offset time.Duration
		amount int64
	}{
		{0, 100},
		{2 * time.Hour, 300},
		{time.Hour, 200},
	}
	for _, d := range deliveries {
		amount := d.amount
		lnurlp := "lnurlp"
		payload := &models.WebhookPayload{Amount: &amount, Lnurlp: &lnurlp}
		require.NoError(t, app.db.Create(models.NewWebhookRecord("apfel", base.Add(d.offset), payload)).Error)
	}

	resp := getJSON(t, app, "/api/payment_webhook")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	resp.JSON(t, &body)
	assert.Equal(t, map[string]interface{}{
		"amount":      float64(300),
		"received_at": "2024-05-01T14:00:00.000000+00:00",
	}, body)
}

func TestGetLatestPayment_NullAmount(t *testing.T) {
	app := newTestApp(t, nil)
	comment := "no amount"
	require.NoError(t, app.db.Create(models.NewWebhookRecord("apfel", time.Now(), &models.WebhookPayload{Comment: &comment})).Error)

	resp := getJSON(t, app, "/api/payment_webhook")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	resp.JSON(t, &body)
	assert.Contains(t, body, "amount")
	assert.Nil(t, body["amount"])
}

func TestGetLatestPayment_AfterWebhook(t *testing.T) {
	app := newTestApp(t, nil)

	before := models.FormatTimestamp(time.Now())
	testutil.AssertEmptyResponse(t, app.postWebhook(t, `{"amount": 1000, "comment": "test"}`, "application/json"), http.StatusOK)
	after := models.FormatTimestamp(time.Now())

	resp := getJSON(t, app, "/api/payment_webhook")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Amount     int64  `json:"amount"`
		ReceivedAt string `json:"received_at"`
	}
	resp.JSON(t, &body)
	assert.Equal(t, int64(1000), body.Amount)
	assert.GreaterOrEqual(t, body.ReceivedAt, before)
	assert.LessOrEqual(t, body.ReceivedAt, after)
}

func TestGetBalances_ConvertsToSats(t *testing.T) {
	app := newTestApp(t, nil)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, app.db.Create(models.NewWalletBalance("w1", "Apfel", 123456, base)).Error)
	require.NoError(t, app.db.Create(models.NewWalletBalance("w2", "Birne", 999, base.Add(time.Minute))).Error)

	resp := getJSON(t, app, "/api/balance_webhook")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[
		{"wallet_name": "Birne", "balance": 0},
		{"wallet_name": "Apfel", "balance": 123}
	]`, string(resp.Body))
}

func TestGetBalances_Empty(t *testing.T) {
	app := newTestApp(t, nil)

	resp := getJSON(t, app, "/api/balance_webhook")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(resp.Body))
}

func TestQueryEndpoints_StorageFailure(t *testing.T) {
	app := newTestApp(t, nil)
	sqlDB, err := app.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	for _, path := range []string{"/api/payment_webhook", "/api/balance_webhook"} {
		resp := getJSON(t, app, path)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode, path)
		assert.JSONEq(t, `{"error": "Server error"}`, string(resp.Body), path)
	}
}

func TestReceiveWebhook_StorageFailureStillSucceeds(t *testing.T) {
	app := newTestApp(t, nil)
	app.walletsOnline()
	sqlDB, err := app.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	resp := app.postWebhook(t, `{"amount": 1000}`, "application/json")
	testutil.AssertEmptyResponse(t, resp, http.StatusOK)
	assert.Len(t, app.api.Requests(), 2)
}
