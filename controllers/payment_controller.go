package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lnbits-apfel/paycode-webhook/models"
	"github.com/lnbits-apfel/paycode-webhook/repositories"
	"github.com/lnbits-apfel/paycode-webhook/utils"
)

// PaymentController serves the read endpoints polled by the frontend
type PaymentController struct {
	webhooks repositories.WebhookRepository
	balances repositories.WalletBalanceRepository
}

func NewPaymentController(webhooks repositories.WebhookRepository, balances repositories.WalletBalanceRepository) *PaymentController {
	return &PaymentController{webhooks: webhooks, balances: balances}
}

// GET /api/payment_webhook
func (pc *PaymentController) GetLatestPayment(c *gin.Context) {
	record, err := pc.webhooks.GetLatestWebhook(c.Request.Context())
	if err != nil {
		if errors.Is(err, repositories.ErrNoWebhook) {
			utils.NotFound(c, utils.ErrNoPaymentFound)
			return
		}
		utils.LogError("Error in /api/payment_webhook: %v", err)
		utils.InternalServerError(c)
		return
	}

	c.JSON(http.StatusOK, models.PaymentResponse{
		Amount:     record.Amount,
		ReceivedAt: record.ReceivedAt,
	})
}

// GET /api/balance_webhook
func (pc *PaymentController) GetBalances(c *gin.Context) {
	balances, err := pc.balances.ListWalletBalances(c.Request.Context())
	if err != nil {
		utils.LogError("Error in /api/balance_webhook: %v", err)
		utils.InternalServerError(c)
		return
	}

	response := make([]models.BalanceResponse, 0, len(balances))
	for _, balance := range balances {
		response = append(response, models.BalanceResponse{
			WalletName: balance.WalletName,
			Balance:    balance.Sats(),
		})
	}
	c.JSON(http.StatusOK, response)
}
