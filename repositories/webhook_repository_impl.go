package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/lnbits-apfel/paycode-webhook/models"
)

type webhookRepository struct {
	db *gorm.DB
}

func NewWebhookRepository(db *gorm.DB) WebhookRepository {
	return &webhookRepository{db: db}
}

func (r *webhookRepository) StoreWebhook(ctx context.Context, record *models.WebhookRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("insert webhook: %w", err)
	}
	return nil
}

func (r *webhookRepository) GetLatestWebhook(ctx context.Context) (*models.WebhookRecord, error) {
	var record models.WebhookRecord
	err := r.db.WithContext(ctx).
		Order("received_at DESC").
		Order("id DESC").
		Take(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoWebhook
		}
		return nil, fmt.Errorf("select latest webhook: %w", err)
	}
	return &record, nil
}

func (r *webhookRepository) CountWebhooks(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.WebhookRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count webhooks: %w", err)
	}
	return count, nil
}
