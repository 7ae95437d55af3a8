package repositories

import (
	"context"

	"github.com/lnbits-apfel/paycode-webhook/models"
)

type WalletBalanceRepository interface {
	UpsertWalletBalance(ctx context.Context, balance *models.WalletBalance) error
	GetWalletBalance(ctx context.Context, walletID string) (*models.WalletBalance, error)
	ListWalletBalances(ctx context.Context) ([]models.WalletBalance, error)
}
