package models

import "time"

// TimestampLayout is the fixed-width ISO-8601 layout used for stored timestamps.
// Fixed width keeps lexicographic order equal to chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000000-07:00"

// FormatTimestamp renders t in UTC using TimestampLayout
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// WebhookRecord is one received paycode webhook. Rows are never updated or deleted.
type WebhookRecord struct {
	ID             uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	PaycodeID      string  `gorm:"column:paycode_id" json:"paycode_id"`
	ReceivedAt     string  `gorm:"column:received_at;index" json:"received_at"`
	PaymentHash    *string `gorm:"column:payment_hash" json:"payment_hash"`
	PaymentRequest *string `gorm:"column:payment_request" json:"payment_request"`
	Amount         *int64  `gorm:"column:amount" json:"amount"`
	Comment        *string `gorm:"column:comment" json:"comment"`
	WebhookData    *string `gorm:"column:webhook_data" json:"webhook_data"`
	Lnurlp         *string `gorm:"column:lnurlp" json:"lnurlp"`
	Body           *string `gorm:"column:body" json:"body"`
	ZapReceipt     *string `gorm:"column:zap_receipt" json:"zap_receipt"`
}

// TableName keeps the table name used by existing paycode databases
func (WebhookRecord) TableName() string {
	return "webhook_eingang"
}

// NewWebhookRecord builds the row stored for a decoded payload
func NewWebhookRecord(paycodeID string, receivedAt time.Time, payload *WebhookPayload) *WebhookRecord {
	return &WebhookRecord{
		PaycodeID:      paycodeID,
		ReceivedAt:     FormatTimestamp(receivedAt),
		PaymentHash:    payload.PaymentHash,
		PaymentRequest: payload.PaymentRequest,
		Amount:         payload.Amount,
		Comment:        payload.Comment,
		WebhookData:    payload.WebhookData,
		Lnurlp:         payload.Lnurlp,
		Body:           payload.Body,
		ZapReceipt:     payload.ZapReceipt,
	}
}
