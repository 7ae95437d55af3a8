package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	minInt64 = decimal.NewFromInt(math.MinInt64)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

var (
	ErrPayloadNotJSON   = errors.New("payload is not valid JSON")
	ErrPayloadEmpty     = errors.New("payload is empty")
	ErrPayloadNotObject = errors.New("payload is not a JSON object")
)

// WebhookPayload holds the fields read from an LNbits paycode webhook.
// Every field is optional; nil means the key was absent or null.
type WebhookPayload struct {
	PaymentHash    *string
	PaymentRequest *string
	Amount         *int64
	Comment        *string
	WebhookData    *string
	Lnurlp         *string
	Body           *string
	ZapReceipt     *string

	// Unparsed lists keys whose values were present but could not be stored as-is
	Unparsed []string
}

// CheckWebhookBody rejects bodies that are not JSON or decode to a falsy value
// (null, false, 0, "", [] or {}).
func CheckWebhookBody(body []byte) error {
	if len(bytes.TrimSpace(body)) == 0 || !json.Valid(body) {
		return ErrPayloadNotJSON
	}
	if isFalsyJSON(body) {
		return ErrPayloadEmpty
	}
	return nil
}

func isFalsyJSON(body []byte) bool {
	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return true
	}

	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	case string:
		return t == ""
	case []interface{}:
		return len(t) == 0
	case map[string]interface{}:
		return len(t) == 0
	}
	return false
}

// DecodeWebhookPayload extracts the known fields from a JSON object body
func DecodeWebhookPayload(body []byte) (*WebhookPayload, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, ErrPayloadNotObject
	}

	payload := &WebhookPayload{
		PaymentHash:    textField(fields["payment_hash"]),
		PaymentRequest: textField(fields["payment_request"]),
		Comment:        textField(fields["comment"]),
		WebhookData:    textField(fields["webhook_data"]),
		Lnurlp:         textField(fields["lnurlp"]),
		Body:           textField(fields["body"]),
		ZapReceipt:     textField(fields["zap_receipt"]),
	}

	amount, ok := integerField(fields["amount"])
	if !ok {
		payload.Unparsed = append(payload.Unparsed, "amount")
	}
	payload.Amount = amount

	return payload, nil
}

// PrettyJSON indents a JSON body for debug logging and returns invalid input unchanged
func PrettyJSON(body []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		return string(body)
	}
	return buf.String()
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// textField stores strings unquoted and any other JSON value as compact JSON text
func textField(raw json.RawMessage) *string {
	if isNull(raw) {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return &s
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		s = string(raw)
		return &s
	}
	s = buf.String()
	return &s
}

// integerField accepts integers, integral floats and decimal strings.
// The bool is false when a value was present but not an integer.
func integerField(raw json.RawMessage) (*int64, bool) {
	if isNull(raw) {
		return nil, true
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		var num json.Number
		if err := json.Unmarshal(raw, &num); err != nil {
			return nil, false
		}
		text = num.String()
	}

	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil || !d.IsInteger() || d.LessThan(minInt64) || d.GreaterThan(maxInt64) {
		return nil, false
	}
	n := d.IntPart()
	return &n, true
}
