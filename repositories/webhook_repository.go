package repositories

import (
	"context"
	"errors"

	"github.com/lnbits-apfel/paycode-webhook/models"
)

// ErrNoWebhook is returned when no webhook has been stored yet
var ErrNoWebhook = errors.New("no webhook stored")

type WebhookRepository interface {
	StoreWebhook(ctx context.Context, record *models.WebhookRecord) error
	GetLatestWebhook(ctx context.Context) (*models.WebhookRecord, error)
	CountWebhooks(ctx context.Context) (int64, error)
}
