package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lnbits-apfel/paycode-webhook/config"
	"github.com/lnbits-apfel/paycode-webhook/lnbits"
	"github.com/lnbits-apfel/paycode-webhook/metrics"
	"github.com/lnbits-apfel/paycode-webhook/models"
	"github.com/lnbits-apfel/paycode-webhook/repositories"
	"github.com/lnbits-apfel/paycode-webhook/utils"
)

// ErrWalletMismatch means the admin key answered for a different wallet than configured
var ErrWalletMismatch = errors.New("returned wallet id does not match the expected wallet")

// WalletFetcher reads wallet details with an admin key
type WalletFetcher interface {
	GetWallet(ctx context.Context, adminKey string) (*lnbits.Wallet, error)
}

// BalanceService fetches wallet balances from LNbits and stores the latest value
type BalanceService struct {
	fetcher  WalletFetcher
	balances repositories.WalletBalanceRepository
	now      func() time.Time
}

func NewBalanceService(fetcher WalletFetcher, balances repositories.WalletBalanceRepository) *BalanceService {
	return &BalanceService{
		fetcher:  fetcher,
		balances: balances,
		now:      time.Now,
	}
}

// RefreshWallet fetches one wallet and upserts its balance.
// Storage is left untouched when the fetch fails or the wallet id does not match.
func (s *BalanceService) RefreshWallet(ctx context.Context, wallet config.WalletCredentials) (*models.WalletBalance, error) {
	details, err := s.fetcher.GetWallet(ctx, wallet.AdminKey)
	if err != nil {
		metrics.RecordWalletRefresh(wallet.ID, metrics.RefreshFetchErr)
		return nil, utils.WrapError(err, "fetch wallet")
	}

	if details.ID != wallet.ID {
		metrics.RecordWalletRefresh(wallet.ID, metrics.RefreshMismatch)
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrWalletMismatch, wallet.ID, details.ID)
	}

	balance := models.NewWalletBalance(details.ID, details.Name, details.Balance, s.now())
	if err := s.balances.UpsertWalletBalance(ctx, balance); err != nil {
		metrics.RecordWalletRefresh(wallet.ID, metrics.RefreshStoreErr)
		return nil, err
	}

	metrics.RecordWalletRefresh(wallet.ID, metrics.RefreshUpdated)
	metrics.SetWalletBalance(wallet.ID, details.Balance)
	return balance, nil
}

// RefreshAll refreshes each wallet in order. Failures are logged and skipped.
func (s *BalanceService) RefreshAll(ctx context.Context, wallets []config.WalletCredentials) {
	for _, wallet := range wallets {
		balance, err := s.RefreshWallet(ctx, wallet)
		switch {
		case errors.Is(err, ErrWalletMismatch):
			utils.LogWarn("Wallet %s skipped: %v", wallet.ID, err)
		case err != nil:
			utils.LogError("Failed to refresh balance for wallet %s: %v", wallet.ID, err)
		default:
			utils.LogInfo("Wallet balance stored for %s (ID: %s)", balance.WalletName, balance.WalletID)
		}
	}
}
