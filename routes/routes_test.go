package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/lnbits-apfel/paycode-webhook/controllers"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return SetupRouter(Controllers{
		Webhook: &controllers.WebhookController{},
		Payment: &controllers.PaymentController{},
		Health:  &controllers.HealthController{},
	})
}

func TestSetupRouter_Metrics(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "paycode_http_requests_total")
}

func TestSetupRouter_Preflight(t *testing.T) {
	router := newTestRouter()

	for _, path := range []string{"/webhook_apfel", "/api/payment_webhook", "/api/balance_webhook"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, path, nil))
		assert.Equal(t, http.StatusNoContent, w.Code, path)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"), path)
	}
}

func TestSetupRouter_UnknownRoute(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
