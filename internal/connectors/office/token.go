package office

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/raksonibs/waffle/internal/core/domain"
)

// TokenExchanger exchanges authorization codes for token bundles at the
// provider's token endpoint.
type TokenExchanger struct {
	cfg    OAuthConfig
	client *http.Client
}

// NewTokenExchanger creates a token exchanger for the given OAuth config.
func NewTokenExchanger(cfg OAuthConfig) *TokenExchanger {
	return &TokenExchanger{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Exchange posts an authorization code to the token endpoint and returns the
// resulting token bundle. Failures carry the response status and a body
// excerpt for diagnostics.
func (t *TokenExchanger) Exchange(ctx context.Context, code string) (*domain.TokenBundle, error) {
	data := url.Values{}
	data.Set("client_id", t.cfg.ClientID)
	data.Set("client_secret", t.cfg.ClientSecret)
	data.Set("code", code)
	data.Set("grant_type", "authorization_code")

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, t.cfg.TokenURL(), strings.NewReader(data.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", ErrTokenExchange, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenExchange, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrTokenExchange, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d: %s",
			ErrTokenExchange, resp.StatusCode, excerpt(body))
	}

	var bundle domain.TokenBundle
	if err := json.Unmarshal(body, &bundle); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrTokenExchange, err)
	}

	return &bundle, nil
}

// excerpt truncates a response body for error messages.
func excerpt(body []byte) string {
	const limit = 256
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}

// EmailFromIDToken extracts the preferred_username claim from an OpenID
// Connect id_token. The signature is not verified; the token arrived over an
// app-owned redirect and is only used as a display identity.
func EmailFromIDToken(idToken string) (string, error) {
	parts := strings.Split(idToken, ".")
	if len(parts) < 2 {
		return "", fmt.Errorf("office: malformed id_token")
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("office: decode id_token payload: %w", err)
	}

	var claims struct {
		PreferredUsername string `json:"preferred_username"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return "", fmt.Errorf("office: decode id_token claims: %w", err)
	}

	if claims.PreferredUsername == "" {
		return "", fmt.Errorf("office: id_token carries no preferred_username")
	}

	return claims.PreferredUsername, nil
}
