package zohoclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	zohodomain "github.com/indubai/portal-api/infrastructure/integrator/zoho/domain"
	"github.com/indubai/portal-api/internal/config"
	"github.com/indubai/portal-api/internal/metrics"
	"github.com/indubai/portal-api/pkg/clock"
)

// defaultExpiresIn is used when the provider omits expires_in. Zoho tokens live one hour.
const defaultExpiresIn = 3600

// TokenProvider hands out a valid Zoho access token.
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

// TokenStore persists the access token outside the process so several instances share one
// refresh. Load returns nil without error when nothing is stored.
type TokenStore interface {
	Load(ctx context.Context) (*zohodomain.AccessToken, error)
	Save(ctx context.Context, token zohodomain.AccessToken) error
}

// TokenManager caches the Zoho access token and refreshes it with the long-lived refresh
// token once it is within the safety margin of its expiry.
type TokenManager struct {
	cfg        config.Zoho
	httpClient *http.Client
	clock      clock.Clock
	store      TokenStore

	mu    sync.Mutex
	token *zohodomain.AccessToken
}

// NewTokenManager builds a token cache. store may be nil.
func NewTokenManager(cfg *config.Config, httpClient *http.Client, clk clock.Clock, store TokenStore) *TokenManager {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Zoho.HTTPTimeout}
	}
	if clk == nil {
		clk = clock.SystemClock{}
	}

	return &TokenManager{
		cfg:        cfg.Zoho,
		httpClient: httpClient,
		clock:      clk,
		store:      store,
	}
}

// AccessToken returns the cached token while now < expiresAt - margin, otherwise it
// refreshes. Callers waiting on the lock reuse the token obtained by the first refresh.
func (tm *TokenManager) AccessToken(ctx context.Context) (string, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.usable(tm.token) {
		return tm.token.Value, nil
	}

	if tm.store != nil {
		stored, err := tm.store.Load(ctx)
		if err != nil {
			logrus.WithError(err).Warn("Could not read Zoho token from the shared store")
		} else if tm.usable(stored) {
			tm.token = stored
			return stored.Value, nil
		}
	}

	token, err := tm.refresh(ctx)
	if err != nil {
		metrics.ZohoTokenRefreshes.WithLabelValues(metrics.ResultError).Inc()
		return "", err
	}
	metrics.ZohoTokenRefreshes.WithLabelValues(metrics.ResultSuccess).Inc()

	tm.token = token

	if tm.store != nil {
		if err := tm.store.Save(ctx, *token); err != nil {
			logrus.WithError(err).Warn("Could not write Zoho token to the shared store")
		}
	}

	logrus.WithField("expires_at", token.ExpiresAt.Format(time.RFC3339)).Info("Zoho access token refreshed")

	return token.Value, nil
}

// Invalidate drops the cached token so the next call refreshes.
func (tm *TokenManager) Invalidate() {
	tm.mu.Lock()
	tm.token = nil
	tm.mu.Unlock()
}

func (tm *TokenManager) usable(token *zohodomain.AccessToken) bool {
	if token == nil || token.Value == "" {
		return false
	}
	return tm.clock.Now().Before(token.ExpiresAt.Add(-tm.cfg.SafetyMargin))
}

func (tm *TokenManager) refresh(ctx context.Context) (*zohodomain.AccessToken, error) {
	form := url.Values{}
	form.Set("refresh_token", tm.cfg.RefreshToken)
	form.Set("client_id", tm.cfg.ClientID)
	form.Set("client_secret", tm.cfg.ClientSecret)
	form.Set("grant_type", "refresh_token")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tm.cfg.AccountsURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &zohodomain.AuthError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	requestedAt := tm.clock.Now()

	resp, err := tm.httpClient.Do(req)
	if err != nil {
		return nil, &zohodomain.AuthError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &zohodomain.AuthError{StatusCode: resp.StatusCode, Err: err}
	}

	var tokenResp zohodomain.TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, &zohodomain.AuthError{
			StatusCode: resp.StatusCode,
			Response:   string(body),
			Err:        fmt.Errorf("decoding token response: %w", err),
		}
	}

	if tokenResp.AccessToken == "" {
		return nil, &zohodomain.AuthError{StatusCode: resp.StatusCode, Response: string(body)}
	}

	expiresIn := tokenResp.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = defaultExpiresIn
	}

	return &zohodomain.AccessToken{
		Value:     tokenResp.AccessToken,
		ExpiresAt: requestedAt.Add(time.Duration(expiresIn) * time.Second),
	}, nil
}
