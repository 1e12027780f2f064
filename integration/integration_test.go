//go:build integration

package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	rielpay "github.com/rielpay/client-go"
)

var (
	apiKey  string
	origin  string
	baseURL string
)

func TestMain(m *testing.M) {
	// Load .env file if it exists (won't error if missing)
	if err := godotenv.Load("../.env"); err != nil {
		os.Stderr.WriteString("Note: .env file not found at project root\n")
	}

	apiKey = os.Getenv("RIELPAY_API_KEY")
	origin = os.Getenv("RIELPAY_ORIGIN")
	baseURL = os.Getenv("RIELPAY_URL")

	if apiKey == "" {
		os.Stderr.WriteString("Skipping integration tests: RIELPAY_API_KEY not set\n")
		os.Exit(0)
	}

	if origin == "" {
		os.Stderr.WriteString("Skipping integration tests: RIELPAY_ORIGIN not set\n")
		os.Exit(0)
	}

	os.Stderr.WriteString("Running integration tests...\n")
	if baseURL != "" {
		os.Stderr.WriteString("API URL: " + baseURL + "\n")
	}

	os.Exit(m.Run())
}

func newClient(t *testing.T) *rielpay.Client {
	t.Helper()

	opts := []rielpay.Option{
		rielpay.WithAPIKey(apiKey),
		rielpay.WithOrigin(origin),
		rielpay.WithMode(rielpay.ModeSandbox),
		rielpay.WithTimeout(30 * time.Second),
	}
	if baseURL != "" {
		opts = append(opts, rielpay.WithBaseURL(baseURL))
	}

	client, err := rielpay.New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	return client
}

func TestIntegration_Connect(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	identity, err := client.Connect(ctx)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	t.Logf("Connected as: %s", identity.URN)

	if identity.URN == "" {
		t.Error("URN is empty")
	}
	if client.AccessToken() == "" {
		t.Error("AccessToken() is empty after Connect")
	}
}

func TestIntegration_ListAccounts(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	if _, err := client.Connect(ctx); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	accounts, err := client.ListAccounts(ctx, nil)
	if err != nil {
		t.Fatalf("ListAccounts() error = %v", err)
	}

	t.Logf("Found %d accounts", len(accounts))

	for _, account := range accounts {
		if account.ID == "" {
			t.Error("account ID is empty")
			continue
		}
		balance, err := client.GetBalance(ctx, account.ID)
		if err != nil {
			t.Errorf("GetBalance(%s) error = %v", account.ID, err)
			continue
		}
		t.Logf("%s %s available=%s", account.ID, account.Asset, balance.Available)
	}
}

func TestIntegration_SwapOrderLifecycle(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	if _, err := client.Connect(ctx); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	order, err := client.CreateSwapOrder(ctx, rielpay.SwapOrderParams{
		FromAsset: "USDC",
		ToAsset:   "COP",
		Amount:    "1.00",
		Reference: "integration-test",
	})
	if err != nil {
		t.Fatalf("CreateSwapOrder() error = %v", err)
	}

	t.Logf("Created order: %s (%s)", order.ID, order.Status)

	fetched, err := client.GetOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("GetOrder() error = %v", err)
	}
	if fetched.ID != order.ID {
		t.Errorf("GetOrder() ID = %s, want %s", fetched.ID, order.ID)
	}
}

func TestIntegration_UnauthorizedKey(t *testing.T) {
	opts := []rielpay.Option{
		rielpay.WithAPIKey("rp_sandbox_invalid"),
		rielpay.WithOrigin(origin),
		rielpay.WithMode(rielpay.ModeSandbox),
	}
	if baseURL != "" {
		opts = append(opts, rielpay.WithBaseURL(baseURL))
	}

	client, err := rielpay.New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx := context.Background()
	if _, err := client.Connect(ctx); err == nil {
		t.Error("Connect() with invalid key = nil error")
	}
}
