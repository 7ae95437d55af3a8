package controllers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lnbits-apfel/paycode-webhook/config"
	"github.com/lnbits-apfel/paycode-webhook/metrics"
	"github.com/lnbits-apfel/paycode-webhook/models"
	"github.com/lnbits-apfel/paycode-webhook/repositories"
	"github.com/lnbits-apfel/paycode-webhook/utils"
)

// BalanceRefresher updates the stored balances of the given wallets
type BalanceRefresher interface {
	RefreshAll(ctx context.Context, wallets []config.WalletCredentials)
}

// WebhookController receives paycode payment webhooks
type WebhookController struct {
	cfg       *config.Config
	webhooks  repositories.WebhookRepository
	refresher BalanceRefresher
	now       func() time.Time
	pending   sync.WaitGroup
}

func NewWebhookController(cfg *config.Config, webhooks repositories.WebhookRepository, refresher BalanceRefresher) *WebhookController {
	return &WebhookController{
		cfg:       cfg,
		webhooks:  webhooks,
		refresher: refresher,
		now:       time.Now,
	}
}

// POST /webhook_apfel
func (wc *WebhookController) ReceiveWebhook(c *gin.Context) {
	body, err := readWebhookBody(c)
	if err != nil {
		if utils.IsBadRequestError(err) {
			utils.LogWarn("Webhook rejected: %v", err)
			metrics.RecordWebhook(metrics.WebhookRejected)
		} else {
			utils.LogError("Error processing webhook: %v", err)
		}
		utils.EmptyStatus(c, utils.StatusCode(err))
		return
	}
	metrics.RecordWebhook(metrics.WebhookAccepted)
	utils.LogInfo("Webhook received")
	utils.LogDebug("Payload:\n%s", models.PrettyJSON(body))

	wc.storeWebhook(c.Request.Context(), body)

	if wc.cfg.AsyncRefresh {
		wc.pending.Add(1)
		go func() {
			defer wc.pending.Done()
			defer func() {
				if r := recover(); r != nil {
					utils.LogErrorWithStack(fmt.Errorf("balance refresh: %v", r), debug.Stack())
				}
			}()
			wc.settleAndRefresh(context.Background())
		}()
		utils.EmptyStatus(c, http.StatusOK)
		return
	}

	// the refresh must finish even if the caller hangs up
	wc.settleAndRefresh(context.WithoutCancel(c.Request.Context()))
	utils.EmptyStatus(c, http.StatusOK)
}

// Wait blocks until background balance refreshes finish or ctx is done
func (wc *WebhookController) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		wc.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func readWebhookBody(c *gin.Context) ([]byte, error) {
	if !isJSONContentType(c.ContentType()) {
		return nil, utils.BadRequestError("content type is not JSON", nil)
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, utils.InternalError("failed to read request body", err)
	}

	if err := models.CheckWebhookBody(body); err != nil {
		return nil, utils.BadRequestError("invalid webhook payload", err)
	}
	return body, nil
}

func isJSONContentType(contentType string) bool {
	contentType = strings.ToLower(contentType)
	return contentType == "application/json" ||
		(strings.HasPrefix(contentType, "application/") && strings.HasSuffix(contentType, "+json"))
}

// storeWebhook logs and swallows every failure; the balance refresh runs regardless
func (wc *WebhookController) storeWebhook(ctx context.Context, body []byte) {
	payload, err := models.DecodeWebhookPayload(body)
	if err != nil {
		utils.LogError("Failed to store webhook: %v", err)
		metrics.RecordWebhook(metrics.WebhookStoreErr)
		return
	}
	for _, key := range payload.Unparsed {
		utils.LogWarn("Webhook field %q is not an integer and is stored as null", key)
	}

	record := models.NewWebhookRecord(wc.cfg.PaycodeID, wc.now(), payload)
	if err := wc.webhooks.StoreWebhook(ctx, record); err != nil {
		utils.LogError("Failed to store webhook: %v", err)
		metrics.RecordWebhook(metrics.WebhookStoreErr)
		return
	}
	metrics.RecordWebhook(metrics.WebhookStored)
	utils.LogInfo("Webhook stored for paycode_id=%s", wc.cfg.PaycodeID)
}

// settleAndRefresh waits for the upstream ledger to settle, then refreshes both wallets
func (wc *WebhookController) settleAndRefresh(ctx context.Context) {
	if delay := wc.cfg.SettleDelay; delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			utils.LogWarn("Balance refresh abandoned: %v", ctx.Err())
			return
		}
	}
	wc.refresher.RefreshAll(ctx, wc.cfg.Wallets)
}
