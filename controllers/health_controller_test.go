package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	app := newTestApp(t, nil)

	resp := getJSON(t, app, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status": "ok"}`, string(resp.Body))
}

func TestReady(t *testing.T) {
	app := newTestApp(t, nil)

	resp := getJSON(t, app, "/readyz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status": "ready"}`, string(resp.Body))

	sqlDB, err := app.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	resp = getJSON(t, app, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
