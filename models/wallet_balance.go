package models

import "time"

// MsatPerSat is the number of millisatoshis in one satoshi
const MsatPerSat = 1000

// WalletBalance is the latest known balance of one LNbits wallet
type WalletBalance struct {
	WalletID   string `gorm:"column:wallet_id;primaryKey" json:"wallet_id"`
	WalletName string `gorm:"column:wallet_name" json:"wallet_name"`
	Balance    int64  `gorm:"column:balance" json:"balance"` // millisatoshis
	UpdatedAt  string `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`
}

func (WalletBalance) TableName() string {
	return "wallet_balances"
}

// NewWalletBalance builds a balance row stamped with updatedAt
func NewWalletBalance(walletID, name string, balanceMsat int64, updatedAt time.Time) *WalletBalance {
	return &WalletBalance{
		WalletID:   walletID,
		WalletName: name,
		Balance:    balanceMsat,
		UpdatedAt:  FormatTimestamp(updatedAt),
	}
}

// Sats converts the stored millisatoshi balance to whole satoshis, dropping the remainder
func (w WalletBalance) Sats() int64 {
	return w.Balance / MsatPerSat
}

// BalanceResponse is the public shape of a wallet balance
type BalanceResponse struct {
	WalletName string `json:"wallet_name"`
	Balance    int64  `json:"balance"`
}

// PaymentResponse is the public shape of the latest payment
type PaymentResponse struct {
	Amount     *int64 `json:"amount"`
	ReceivedAt string `json:"received_at"`
}
