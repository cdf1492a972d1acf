package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"docflow/internal/config"
)

// tokenRefreshSkew is how long before expiry a cached token is replaced.
const tokenRefreshSkew = time.Minute

// TokenSource supplies bearer tokens for remote calls.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed bearer token.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	if t == "" {
		return "", errors.New("no bearer token configured")
	}
	return string(t), nil
}

// ClientCredentials obtains tokens with the OAuth2 client credentials grant
// and caches each one until shortly before it expires.
type ClientCredentials struct {
	tokenURL     string
	clientID     string
	clientSecret string
	scope        string
	client       *http.Client
	now          func() time.Time

	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewClientCredentials creates a ClientCredentials token source.
func NewClientCredentials(cfg *config.RemoteConfig, client *http.Client) *ClientCredentials {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &ClientCredentials{
		tokenURL:     cfg.IdentityURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		scope:        cfg.Scope,
		client:       client,
		now:          time.Now,
	}
}

// NewTokenSource picks client credentials when configured and the static
// bearer token otherwise.
func NewTokenSource(cfg *config.RemoteConfig) TokenSource {
	if cfg.IdentityURL != "" && cfg.ClientID != "" {
		return NewClientCredentials(cfg, nil)
	}
	return StaticToken(cfg.BearerToken)
}

func (c *ClientCredentials) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.expires.Add(-tokenRefreshSkew)) {
		return c.token, nil
	}

	token, expires, err := c.fetch(ctx)
	if err != nil {
		return "", err
	}
	c.token = token
	c.expires = expires
	log.Debug().Time("expires", expires).Msg("clientCredentials.Token: obtained new access token")
	return token, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

func (c *ClientCredentials) fetch(ctx context.Context) (string, time.Time, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}
	if c.scope != "" {
		form.Set("scope", c.scope)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("requesting access token: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("reading token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", time.Time{}, &APIError{
			Method:     http.MethodPost,
			URL:        c.tokenURL,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(body), 500),
		}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", time.Time{}, fmt.Errorf("decoding token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", time.Time{}, errors.New("token response has no access_token")
	}
	return tr.AccessToken, c.expiry(tr), nil
}

// expiry prefers the token's own exp claim, then expires_in, then one hour.
func (c *ClientCredentials) expiry(tr tokenResponse) time.Time {
	if exp, ok := jwtExpiry(tr.AccessToken); ok {
		return exp
	}
	if tr.ExpiresIn > 0 {
		return c.now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}
	return c.now().Add(time.Hour)
}

// jwtExpiry reads the exp claim without verifying the signature; the token
// is only inspected to schedule its own refresh.
func jwtExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
