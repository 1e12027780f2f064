package rielpay

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Account is a wallet or bank account held on the platform.
type Account struct {
	ID        string
	URN       string
	Asset     string
	Network   string
	Alias     string
	CreatedAt time.Time
}

// Balance is the funds available on an account, expressed as a decimal
// string in the account's asset.
type Balance struct {
	AccountID string
	Asset     string
	Available string
	Pending   string
}

type accountResponse struct {
	ID        string    `json:"id"`
	URN       string    `json:"urn"`
	Asset     string    `json:"asset"`
	Network   string    `json:"network"`
	Alias     string    `json:"alias"`
	CreatedAt time.Time `json:"created_at"`
}

type balanceResponse struct {
	AccountID string `json:"account_id"`
	Asset     string `json:"asset"`
	Available string `json:"available"`
	Pending   string `json:"pending"`
}

func (r *accountResponse) toAccount() *Account {
	return &Account{
		ID:        r.ID,
		URN:       r.URN,
		Asset:     r.Asset,
		Network:   r.Network,
		Alias:     r.Alias,
		CreatedAt: r.CreatedAt,
	}
}

// ListAccountsParams filter the account listing. A nil value lists the
// accounts of the session URN.
type ListAccountsParams struct {
	URN   string
	Asset string
}

// GetAccount fetches a single account by ID.
func (c *Client) GetAccount(ctx context.Context, accountID string) (*Account, error) {
	if accountID == "" {
		return nil, fmt.Errorf("account ID is required")
	}
	var resp accountResponse
	path := fmt.Sprintf("/v1/accounts/%s", url.PathEscape(accountID))
	if err := c.Do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.toAccount(), nil
}

// ListAccounts lists accounts scoped to a URN. The query string is
// built here; the transport never manipulates queries.
func (c *Client) ListAccounts(ctx context.Context, params *ListAccountsParams) ([]*Account, error) {
	urn := c.URN()
	asset := ""
	if params != nil {
		if params.URN != "" {
			urn = params.URN
		}
		asset = params.Asset
	}
	if urn == "" {
		return nil, fmt.Errorf("URN is required: connect first or pass ListAccountsParams.URN")
	}

	q := url.Values{}
	q.Set("urn", urn)
	if asset != "" {
		q.Set("asset", asset)
	}

	var resp []accountResponse
	if err := c.Do(ctx, http.MethodGet, "/v1/accounts?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	accounts := make([]*Account, 0, len(resp))
	for i := range resp {
		accounts = append(accounts, resp[i].toAccount())
	}
	return accounts, nil
}

// GetBalance fetches the balance of an account.
func (c *Client) GetBalance(ctx context.Context, accountID string) (*Balance, error) {
	if accountID == "" {
		return nil, fmt.Errorf("account ID is required")
	}
	var resp balanceResponse
	path := fmt.Sprintf("/v1/accounts/%s/balance", url.PathEscape(accountID))
	if err := c.Do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &Balance{
		AccountID: resp.AccountID,
		Asset:     resp.Asset,
		Available: resp.Available,
		Pending:   resp.Pending,
	}, nil
}
