package rielpay

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusSettling  OrderStatus = "settling"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusFailed    OrderStatus = "failed"
)

// supportedAssets is the asset set accepted for swap orders. Domain
// validation happens here, before the transport is ever reached.
var supportedAssets = map[string]bool{
	"USDC": true,
	"USDT": true,
	"COP":  true,
	"USD":  true,
	"MXN":  true,
}

// Order is a currency-swap or payment-rail order.
type Order struct {
	ID          string
	URN         string
	Status      OrderStatus
	FromAsset   string
	ToAsset     string
	FromAmount  string
	ToAmount    string
	Rail        string
	Reference   string
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// SwapOrderParams are the inputs for CreateSwapOrder.
type SwapOrderParams struct {
	FromAsset string
	ToAsset   string
	// Amount is a decimal string in the source asset.
	Amount string
	// Reference is an optional caller-side reference.
	Reference string
}

// PSEOrderParams are the inputs for CreatePSEOrder (Colombian PSE bank
// transfer rail).
type PSEOrderParams struct {
	// Amount is a decimal string in COP.
	Amount string
	// BankCode identifies the payer's bank.
	BankCode string
	// RedirectURL is where the payer lands after checkout.
	RedirectURL string
	Reference   string
}

type createSwapOrderRequest struct {
	URN       string `json:"urn"`
	FromAsset string `json:"from_asset"`
	ToAsset   string `json:"to_asset"`
	Amount    string `json:"amount"`
	Reference string `json:"reference,omitempty"`
}

type createPSEOrderRequest struct {
	URN         string `json:"urn"`
	Amount      string `json:"amount"`
	BankCode    string `json:"bank_code"`
	RedirectURL string `json:"redirect_url"`
	Reference   string `json:"reference,omitempty"`
}

type orderResponse struct {
	ID          string     `json:"id"`
	URN         string     `json:"urn"`
	Status      string     `json:"status"`
	FromAsset   string     `json:"from_asset"`
	ToAsset     string     `json:"to_asset"`
	FromAmount  string     `json:"from_amount"`
	ToAmount    string     `json:"to_amount"`
	Rail        string     `json:"rail"`
	Reference   string     `json:"reference"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

func (r *orderResponse) toOrder() *Order {
	return &Order{
		ID:          r.ID,
		URN:         r.URN,
		Status:      OrderStatus(r.Status),
		FromAsset:   r.FromAsset,
		ToAsset:     r.ToAsset,
		FromAmount:  r.FromAmount,
		ToAmount:    r.ToAmount,
		Rail:        r.Rail,
		Reference:   r.Reference,
		CreatedAt:   r.CreatedAt,
		CompletedAt: r.CompletedAt,
	}
}

// CreateSwapOrder creates a currency-swap order for the session URN.
// An idempotency key is attached so a retried request cannot create a
// duplicate order.
func (c *Client) CreateSwapOrder(ctx context.Context, params SwapOrderParams) (*Order, error) {
	urn := c.URN()
	if urn == "" {
		return nil, fmt.Errorf("URN is required: connect before creating orders")
	}
	if !supportedAssets[params.FromAsset] {
		return nil, fmt.Errorf("unsupported asset %q", params.FromAsset)
	}
	if !supportedAssets[params.ToAsset] {
		return nil, fmt.Errorf("unsupported asset %q", params.ToAsset)
	}
	if params.Amount == "" {
		return nil, fmt.Errorf("amount is required")
	}

	req := &Request{
		Method: http.MethodPost,
		Path:   "/v1/orders/swap",
		Body: createSwapOrderRequest{
			URN:       urn,
			FromAsset: params.FromAsset,
			ToAsset:   params.ToAsset,
			Amount:    params.Amount,
			Reference: params.Reference,
		},
		Header: http.Header{"X-Idempotency-Key": []string{uuid.NewString()}},
	}

	var resp orderResponse
	if err := c.Execute(ctx, req, &resp); err != nil {
		return nil, err
	}
	return resp.toOrder(), nil
}

// CreatePSEOrder creates a PSE bank-transfer order for the session URN.
func (c *Client) CreatePSEOrder(ctx context.Context, params PSEOrderParams) (*Order, error) {
	urn := c.URN()
	if urn == "" {
		return nil, fmt.Errorf("URN is required: connect before creating orders")
	}
	if params.Amount == "" {
		return nil, fmt.Errorf("amount is required")
	}
	if params.BankCode == "" {
		return nil, fmt.Errorf("bank code is required")
	}

	req := &Request{
		Method: http.MethodPost,
		Path:   "/v1/orders/pse",
		Body: createPSEOrderRequest{
			URN:         urn,
			Amount:      params.Amount,
			BankCode:    params.BankCode,
			RedirectURL: params.RedirectURL,
			Reference:   params.Reference,
		},
		Header: http.Header{"X-Idempotency-Key": []string{uuid.NewString()}},
	}

	var resp orderResponse
	if err := c.Execute(ctx, req, &resp); err != nil {
		return nil, err
	}
	return resp.toOrder(), nil
}

// GetOrder fetches a single order by ID.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	if orderID == "" {
		return nil, fmt.Errorf("order ID is required")
	}
	var resp orderResponse
	path := fmt.Sprintf("/v1/orders/%s", url.PathEscape(orderID))
	if err := c.Do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.toOrder(), nil
}
