package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lnbits-apfel/paycode-webhook/controllers"
	"github.com/lnbits-apfel/paycode-webhook/utils"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Webhook *controllers.WebhookController
	Payment *controllers.PaymentController
	Health  *controllers.HealthController
}

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter(ctrl Controllers) *gin.Engine {
	router := gin.New()

	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	router.POST("/webhook_apfel", ctrl.Webhook.ReceiveWebhook)

	api := router.Group("/api")
	{
		api.GET("/payment_webhook", ctrl.Payment.GetLatestPayment)
		api.GET("/balance_webhook", ctrl.Payment.GetBalances)
	}

	router.GET("/healthz", ctrl.Health.Health)
	router.GET("/readyz", ctrl.Health.Ready)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
