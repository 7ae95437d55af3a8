package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lnbits-apfel/paycode-webhook/models"
)

type walletBalanceRepository struct {
	db *gorm.DB
}

func NewWalletBalanceRepository(db *gorm.DB) WalletBalanceRepository {
	return &walletBalanceRepository{db: db}
}

// UpsertWalletBalance inserts the row or overwrites name, balance and timestamp of an existing wallet
func (r *walletBalanceRepository) UpsertWalletBalance(ctx context.Context, balance *models.WalletBalance) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "wallet_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"wallet_name", "balance", "updated_at"}),
	}).Create(balance).Error
	if err != nil {
		return fmt.Errorf("upsert wallet balance %s: %w", balance.WalletID, err)
	}
	return nil
}

// GetWalletBalance returns nil without error when the wallet has no row yet
func (r *walletBalanceRepository) GetWalletBalance(ctx context.Context, walletID string) (*models.WalletBalance, error) {
	var balance models.WalletBalance
	err := r.db.WithContext(ctx).Where("wallet_id = ?", walletID).Take(&balance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("select wallet balance %s: %w", walletID, err)
	}
	return &balance, nil
}

func (r *walletBalanceRepository) ListWalletBalances(ctx context.Context) ([]models.WalletBalance, error) {
	var balances []models.WalletBalance
	if err := r.db.WithContext(ctx).Order("updated_at DESC").Find(&balances).Error; err != nil {
		return nil, fmt.Errorf("select wallet balances: %w", err)
	}
	if balances == nil {
		balances = []models.WalletBalance{}
	}
	return balances, nil
}
