// Package testutil holds helpers shared by the package tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lnbits-apfel/paycode-webhook/config"
	"github.com/lnbits-apfel/paycode-webhook/lnbits"
)

const (
	Wallet1ID  = "wallet-one"
	Wallet1Key = "admin-key-one"
	Wallet2ID  = "wallet-two"
	Wallet2Key = "admin-key-two"
	PaycodeID  = "paycode-test"
)

// NewTestDB opens a migrated SQLite database in a temporary directory
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "paycodes.db")
	db, err := gorm.Open(sqlite.Open("file:"+path+"?_busy_timeout=5000"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	t.Cleanup(func() {
		_ = config.CloseDB(db)
	})
	return db
}

// NewTestConfig returns a valid configuration pointing at lnbitsURL with no settle delay
func NewTestConfig(lnbitsURL string) *config.Config {
	return &config.Config{
		Env:       "test",
		HTTPHost:  "127.0.0.1",
		HTTPPort:  "5013",
		PaycodeID: PaycodeID,
		LNbitsURL: lnbitsURL,
		Wallets: []config.WalletCredentials{
			{ID: Wallet1ID, AdminKey: Wallet1Key},
			{ID: Wallet2ID, AdminKey: Wallet2Key},
		},
		DBPath:        "paycodes.db",
		WalletTimeout: 2 * time.Second,
	}
}

// FakeWalletAPI serves GET /api/v1/wallet keyed by the X-API-KEY header
type FakeWalletAPI struct {
	Server *httptest.Server

	mu       sync.Mutex
	wallets  map[string]lnbits.Wallet
	statuses map[string]int
	raw      map[string]string
	requests []string
}

// NewFakeWalletAPI starts a fake LNbits server that is closed with the test
func NewFakeWalletAPI(t *testing.T) *FakeWalletAPI {
	t.Helper()

	f := &FakeWalletAPI{
		wallets:  make(map[string]lnbits.Wallet),
		statuses: make(map[string]int),
		raw:      make(map[string]string),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the base URL of the fake server
func (f *FakeWalletAPI) URL() string {
	return f.Server.URL
}

// SetWallet makes adminKey answer with wallet
func (f *FakeWalletAPI) SetWallet(adminKey string, wallet lnbits.Wallet) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.wallets[adminKey] = wallet
	delete(f.statuses, adminKey)
	delete(f.raw, adminKey)
}

// SetRawResponse makes adminKey answer 200 with body as-is
func (f *FakeWalletAPI) SetRawResponse(adminKey, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.raw[adminKey] = body
	delete(f.statuses, adminKey)
}

// SetStatus makes adminKey answer with an error status
func (f *FakeWalletAPI) SetStatus(adminKey string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[adminKey] = status
}

// Requests returns the admin keys seen so far, in order
func (f *FakeWalletAPI) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *FakeWalletAPI) serve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet || r.URL.Path != "/api/v1/wallet" {
		http.NotFound(w, r)
		return
	}

	key := r.Header.Get("X-API-KEY")

	f.mu.Lock()
	f.requests = append(f.requests, key)
	status, failing := f.statuses[key]
	wallet, known := f.wallets[key]
	raw, hasRaw := f.raw[key]
	f.mu.Unlock()

	if failing {
		http.Error(w, `{"detail":"failure"}`, status)
		return
	}
	if hasRaw {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(raw))
		return
	}
	if !known {
		http.Error(w, `{"detail":"Invalid key"}`, http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(wallet)
}

// TestRequest represents a test HTTP request
type TestRequest struct {
	Method      string
	Path        string
	Body        string
	ContentType string
	Headers     map[string]string
}

// TestResponse represents a test HTTP response
type TestResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// JSON decodes the response body into v
func (r TestResponse) JSON(t *testing.T, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, v), "body: %s", r.Body)
}

// MakeTestRequest sends req through the router and records the response
func MakeTestRequest(t *testing.T, router *gin.Engine, req TestRequest) TestResponse {
	t.Helper()

	httpReq, err := http.NewRequest(req.Method, req.Path, bytes.NewBufferString(req.Body))
	require.NoError(t, err)

	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httpReq)

	return TestResponse{
		StatusCode: w.Code,
		Header:     w.Header(),
		Body:       w.Body.Bytes(),
	}
}

// AssertEmptyResponse asserts the status and that no body was written
func AssertEmptyResponse(t *testing.T, response TestResponse, expectedStatusCode int) {
	t.Helper()
	assert.Equal(t, expectedStatusCode, response.StatusCode)
	assert.Empty(t, response.Body)
}
