package rielpay

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Identity is a registered identity on the platform.
type Identity struct {
	URN       string
	Alias     string
	Origin    string
	CreatedAt time.Time
}

// RegisterIdentityParams are the inputs for RegisterIdentity.
type RegisterIdentityParams struct {
	// Origin is the tenant origin to register under. Defaults to the
	// client's configured origin.
	Origin string
	// Alias is the human-readable alias for the identity.
	Alias string
	// PublicKey is the identity's public key, base64-encoded.
	PublicKey string
}

type registerIdentityRequest struct {
	Origin    string `json:"origin"`
	Alias     string `json:"alias,omitempty"`
	PublicKey string `json:"public_key,omitempty"`
}

type identityResponse struct {
	URN       string    `json:"urn"`
	Alias     string    `json:"alias"`
	Origin    string    `json:"origin"`
	CreatedAt time.Time `json:"created_at"`
}

type connectResponse struct {
	AccessToken string `json:"access_token"`
	URN         string `json:"urn"`
	ExpiresIn   int    `json:"expires_in"`
}

func (r *identityResponse) toIdentity() *Identity {
	return &Identity{
		URN:       r.URN,
		Alias:     r.Alias,
		Origin:    r.Origin,
		CreatedAt: r.CreatedAt,
	}
}

// RegisterIdentity registers a new identity under an origin. This is a
// public endpoint: no Authorization header is sent.
func (c *Client) RegisterIdentity(ctx context.Context, params RegisterIdentityParams) (*Identity, error) {
	origin := params.Origin
	if origin == "" {
		origin = c.Origin()
	}
	if origin == "" {
		return nil, fmt.Errorf("origin is required to register an identity")
	}

	req := registerIdentityRequest{
		Origin:    origin,
		Alias:     params.Alias,
		PublicKey: params.PublicKey,
	}

	var resp identityResponse
	if err := c.Do(ctx, http.MethodPost, "/v1/identities/register", req, &resp); err != nil {
		return nil, err
	}
	return resp.toIdentity(), nil
}

// Connect exchanges the configured API key for a session access token
// and resolves the identity URN. On success the token and URN are
// installed in the session, so subsequent requests authenticate as the
// connected identity.
func (c *Client) Connect(ctx context.Context) (*Identity, error) {
	var resp connectResponse
	if err := c.Do(ctx, http.MethodPost, "/v1/identities/connect", nil, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" || resp.URN == "" {
		return nil, fmt.Errorf("connect response missing access_token or urn")
	}

	c.SetAccessToken(resp.AccessToken)
	c.SetURN(resp.URN)

	return &Identity{URN: resp.URN, Origin: c.Origin()}, nil
}
