package lnbits

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const walletPath = "/api/v1/wallet"

// Client talks to the LNbits wallet API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Wallet is the subset of the LNbits wallet details used here
type Wallet struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Balance int64  `json:"balance"` // millisatoshis
}

// ErrIncompleteWallet means a 2xx response lacked the id, name or balance
var ErrIncompleteWallet = errors.New("wallet response is missing fields")

// walletResponse keeps absent and null fields distinguishable from zero values
type walletResponse struct {
	ID      *string `json:"id"`
	Name    *string `json:"name"`
	Balance *int64  `json:"balance"`
}

// APIError is returned for non-2xx responses
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("lnbits API error (%d): %s", e.Status, e.Body)
}

func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// GetWallet returns the wallet the admin key belongs to
func (c *Client) GetWallet(ctx context.Context, adminKey string) (*Wallet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+walletPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-API-KEY", adminKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}

	var wallet walletResponse
	if err := json.Unmarshal(body, &wallet); err != nil {
		return nil, fmt.Errorf("failed to decode wallet: %w", err)
	}
	if wallet.ID == nil || wallet.Name == nil || wallet.Balance == nil {
		return nil, fmt.Errorf("%w: %s", ErrIncompleteWallet, body)
	}
	return &Wallet{ID: *wallet.ID, Name: *wallet.Name, Balance: *wallet.Balance}, nil
}
