package tokenmanager

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"
	"time"

	retry "github.com/appleboy/go-httpretry"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tamkadin/osdu-viewer/internal/config"
	"github.com/tamkadin/osdu-viewer/internal/logger"
	"github.com/tamkadin/osdu-viewer/internal/metrics"
	"github.com/tamkadin/osdu-viewer/internal/tokenstore"
)

const (
	// GrantTypeRefreshToken exchanges a long-lived refresh token for an access token.
	GrantTypeRefreshToken = "refresh_token"

	// GrantTypeClientCredentials authenticates with the client id and secret alone.
	GrantTypeClientCredentials = "client_credentials"

	// expirySafetyMargin is subtracted from the token lifetime so a token
	// is refreshed before it can expire mid-request.
	expirySafetyMargin = 300 * time.Second

	// defaultExpiresIn applies when the endpoint omits expires_in and the
	// token carries no readable exp claim.
	defaultExpiresIn = 3600 * time.Second
)

// grantResponse is the OAuth token endpoint response subset we consume.
type grantResponse struct {
	AccessToken  string `json:"access_token"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
}

// Manager acquires and caches OSDU access tokens. A single mutex
// serializes all token operations so concurrent callers never trigger
// duplicate grant requests.
type Manager struct {
	cfg         *config.Config
	store       tokenstore.Store
	retryClient *retry.Client
	metrics     metrics.Recorder

	mu           sync.Mutex
	accessToken  string
	expiry       time.Time
	refreshToken string
}

// New creates a Manager. The store may be nil, in which case tokens are
// held in memory only.
func New(cfg *config.Config, store tokenstore.Store, retryClient *retry.Client, recorder metrics.Recorder) (*Manager, error) {
	if cfg.TokenEndpoint == "" || cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("%w: token endpoint, client id, and client secret are required", ErrMissingConfig)
	}
	if recorder == nil {
		recorder = metrics.NewNoopMetrics()
	}

	return &Manager{
		cfg:          cfg,
		store:        store,
		retryClient:  retryClient,
		metrics:      recorder,
		refreshToken: cfg.RefreshToken,
	}, nil
}

// GetValidToken returns a usable access token, reusing the cached one
// when it is still inside the safety margin and acquiring a fresh token
// otherwise.
func (m *Manager) GetValidToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.usableLocked() {
		return m.accessToken, nil
	}

	// Bootstrap from the persisted cache before going to the network.
	if m.store != nil && m.accessToken == "" {
		if rec, err := m.store.Load(ctx); err == nil {
			expiry := time.Unix(rec.Expiry, 0)
			if time.Now().Before(expiry.Add(-expirySafetyMargin)) {
				m.accessToken = rec.AccessToken
				m.expiry = expiry
				logger.L().WithField("expiry", expiry).Debug("adopted persisted token")
				return m.accessToken, nil
			}
		}
	}

	if err := m.acquireLocked(ctx); err != nil {
		return "", err
	}
	return m.accessToken, nil
}

// usableLocked reports whether the in-memory token is still inside the
// safety margin. Callers must hold mu.
func (m *Manager) usableLocked() bool {
	return m.accessToken != "" && time.Now().Before(m.expiry.Add(-expirySafetyMargin))
}

// acquireLocked runs the grant ladder: refresh token first when one is
// held, then client credentials. Callers must hold mu.
func (m *Manager) acquireLocked(ctx context.Context) error {
	var refreshErr error
	if m.refreshToken != "" {
		resp, err := m.grant(ctx, GrantTypeRefreshToken)
		m.metrics.RecordTokenAcquisition(GrantTypeRefreshToken, err == nil)
		if err == nil {
			m.adoptLocked(ctx, resp)
			return nil
		}
		refreshErr = err
		logger.L().WithError(err).Warn("refresh token grant failed, falling back to client credentials")
	}

	resp, err := m.grant(ctx, GrantTypeClientCredentials)
	m.metrics.RecordTokenAcquisition(GrantTypeClientCredentials, err == nil)
	if err != nil {
		if refreshErr != nil {
			return fmt.Errorf("%w: refresh token grant: %v; client credentials grant: %v", ErrAuthFailed, refreshErr, err)
		}
		return fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	m.adoptLocked(ctx, resp)
	return nil
}

// grant posts a single form-encoded grant request to the token endpoint.
func (m *Manager) grant(ctx context.Context, grantType string) (*grantResponse, error) {
	form := url.Values{}
	form.Set("grant_type", grantType)
	form.Set("client_id", m.cfg.ClientID)
	form.Set("client_secret", m.cfg.ClientSecret)
	if grantType == GrantTypeRefreshToken {
		form.Set("refresh_token", m.refreshToken)
	}

	resp, err := m.retryClient.Post(
		ctx,
		m.cfg.TokenEndpoint,
		retry.WithBody("application/x-www-form-urlencoded", strings.NewReader(form.Encode())),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGrantRejected, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response", ErrInvalidGrantResponse)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: HTTP %d - %s", ErrGrantRejected, resp.StatusCode, bodyPreview(body))
	}

	var parsed grantResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGrantResponse, err)
	}
	if parsed.AccessToken == "" {
		return nil, fmt.Errorf("%w: missing access_token", ErrInvalidGrantResponse)
	}
	return &parsed, nil
}

// adoptLocked installs a grant response as the current token, rotating
// the refresh token when the endpoint issued a new one, and writes the
// token through to the persistent store. Callers must hold mu.
func (m *Manager) adoptLocked(ctx context.Context, resp *grantResponse) {
	lifetime := defaultExpiresIn
	if resp.ExpiresIn > 0 {
		lifetime = time.Duration(resp.ExpiresIn) * time.Second
	} else if exp, ok := jwtExpiry(resp.AccessToken); ok {
		lifetime = time.Until(exp)
	}

	m.accessToken = resp.AccessToken
	m.expiry = time.Now().Add(lifetime)
	if resp.RefreshToken != "" {
		m.refreshToken = resp.RefreshToken
	}

	if m.store == nil {
		return
	}
	rec := &tokenstore.Record{
		AccessToken: m.accessToken,
		Expiry:      m.expiry.Unix(),
		CachedAt:    time.Now().Unix(),
	}
	if err := m.store.Save(ctx, rec); err != nil {
		logger.L().WithError(err).Warn("failed to persist token cache")
	}
}

// ClearCache drops the in-memory token and the persisted cache entry.
// It is safe to call repeatedly; a missing cache entry is not an error.
func (m *Manager) ClearCache(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.accessToken = ""
	m.expiry = time.Time{}

	if m.store == nil {
		return
	}
	if err := m.store.Clear(ctx); err != nil {
		logger.L().WithError(err).Warn("failed to clear token cache")
	}
}

// IsTokenValid reports whether the currently held token is inside the
// safety margin. It never triggers a network call.
func (m *Manager) IsTokenValid() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.usableLocked()
}

// jwtExpiry extracts the exp claim from a JWT access token without
// verifying the signature. Opaque tokens return ok=false.
func jwtExpiry(token string) (time.Time, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func bodyPreview(body []byte) string {
	preview := string(body)
	if len(preview) > 200 {
		preview = preview[:200] + "..."
	}
	return preview
}
