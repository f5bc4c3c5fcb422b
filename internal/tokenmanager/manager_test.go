package tokenmanager

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	retry "github.com/appleboy/go-httpretry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamkadin/osdu-viewer/internal/client"
	"github.com/tamkadin/osdu-viewer/internal/config"
	"github.com/tamkadin/osdu-viewer/internal/tokenstore"
)

func newTestRetryClient(t *testing.T) *retry.Client {
	t.Helper()
	rc, err := client.NewRetryClient(5*time.Second, true, 0, time.Millisecond, time.Millisecond)
	require.NoError(t, err)
	return rc
}

func testConfig(endpoint, refreshToken string) *config.Config {
	return &config.Config{
		TokenEndpoint: endpoint,
		ClientID:      "test-client",
		ClientSecret:  "test-secret",
		RefreshToken:  refreshToken,
	}
}

func grantHandler(t *testing.T, calls *atomic.Int64, respond func(grantType string, w http.ResponseWriter)) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "test-client", r.PostFormValue("client_id"))
		assert.Equal(t, "test-secret", r.PostFormValue("client_secret"))
		respond(r.PostFormValue("grant_type"), w)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewMissingConfig(t *testing.T) {
	_, err := New(&config.Config{ClientID: "id"}, nil, newTestRetryClient(t), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingConfig)
}

func TestGetValidTokenRefreshGrant(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(grantHandler(t, &calls, func(grantType string, w http.ResponseWriter) {
		assert.Equal(t, GrantTypeRefreshToken, grantType)
		writeJSON(w, http.StatusOK, grantResponse{AccessToken: "refresh-issued", ExpiresIn: 3600})
	}))
	defer srv.Close()

	mgr, err := New(testConfig(srv.URL, "my-refresh"), nil, newTestRetryClient(t), nil)
	require.NoError(t, err)

	token, err := mgr.GetValidToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "refresh-issued", token)
	assert.EqualValues(t, 1, calls.Load())

	// Second call must reuse the cached token without another grant.
	token, err = mgr.GetValidToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "refresh-issued", token)
	assert.EqualValues(t, 1, calls.Load())
	assert.True(t, mgr.IsTokenValid())
}

func TestGetValidTokenFallsBackToClientCredentials(t *testing.T) {
	var grants []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		grantType := r.PostFormValue("grant_type")
		grants = append(grants, grantType)
		if grantType == GrantTypeRefreshToken {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_grant"})
			return
		}
		writeJSON(w, http.StatusOK, grantResponse{AccessToken: "cc-token", ExpiresIn: 1800})
	}))
	defer srv.Close()

	mgr, err := New(testConfig(srv.URL, "stale-refresh"), nil, newTestRetryClient(t), nil)
	require.NoError(t, err)

	token, err := mgr.GetValidToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cc-token", token)
	assert.Equal(t, []string{GrantTypeRefreshToken, GrantTypeClientCredentials}, grants)
}

func TestGetValidTokenAllGrantsFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid_client"})
	}))
	defer srv.Close()

	mgr, err := New(testConfig(srv.URL, "my-refresh"), nil, newTestRetryClient(t), nil)
	require.NoError(t, err)

	_, err = mgr.GetValidToken(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthFailed)
	assert.False(t, mgr.IsTokenValid())
}

func TestRefreshTokenRotation(t *testing.T) {
	var refreshTokens []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		refreshTokens = append(refreshTokens, r.PostFormValue("refresh_token"))
		writeJSON(w, http.StatusOK, grantResponse{
			AccessToken:  "short-lived",
			ExpiresIn:    1, // inside the safety margin, so the next call re-acquires
			RefreshToken: "rotated-refresh",
		})
	}))
	defer srv.Close()

	mgr, err := New(testConfig(srv.URL, "original-refresh"), nil, newTestRetryClient(t), nil)
	require.NoError(t, err)

	_, err = mgr.GetValidToken(context.Background())
	require.NoError(t, err)
	_, err = mgr.GetValidToken(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"original-refresh", "rotated-refresh"}, refreshTokens)
}

func TestBootstrapFromPersistedCache(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(grantHandler(t, &calls, func(_ string, w http.ResponseWriter) {
		writeJSON(w, http.StatusOK, grantResponse{AccessToken: "network-token", ExpiresIn: 3600})
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), ".token_cache")
	store := tokenstore.NewFileStore(path)
	require.NoError(t, store.Save(context.Background(), &tokenstore.Record{
		AccessToken: "persisted-token",
		Expiry:      time.Now().Add(time.Hour).Unix(),
		CachedAt:    time.Now().Unix(),
	}))

	mgr, err := New(testConfig(srv.URL, ""), store, newTestRetryClient(t), nil)
	require.NoError(t, err)

	token, err := mgr.GetValidToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "persisted-token", token)
	assert.EqualValues(t, 0, calls.Load(), "a valid persisted token must not trigger a grant")
}

func TestExpiredPersistedCacheTriggersGrant(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, grantResponse{AccessToken: "fresh-token", ExpiresIn: 3600})
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), ".token_cache")
	store := tokenstore.NewFileStore(path)
	require.NoError(t, store.Save(context.Background(), &tokenstore.Record{
		AccessToken: "expired-token",
		Expiry:      time.Now().Add(-time.Hour).Unix(),
		CachedAt:    time.Now().Add(-2 * time.Hour).Unix(),
	}))

	mgr, err := New(testConfig(srv.URL, ""), store, newTestRetryClient(t), nil)
	require.NoError(t, err)

	token, err := mgr.GetValidToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token)
}

func TestAcquiredTokenIsPersisted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No expires_in and an opaque token, so the default lifetime applies.
		writeJSON(w, http.StatusOK, grantResponse{AccessToken: "opaque-token"})
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), ".token_cache")
	store := tokenstore.NewFileStore(path)

	mgr, err := New(testConfig(srv.URL, ""), store, newTestRetryClient(t), nil)
	require.NoError(t, err)

	_, err = mgr.GetValidToken(context.Background())
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var rec tokenstore.Record
	require.NoError(t, json.Unmarshal(raw, &rec))
	assert.Equal(t, "opaque-token", rec.AccessToken)
	assert.WithinDuration(t, time.Now().Add(defaultExpiresIn), time.Unix(rec.Expiry, 0), 10*time.Second)
}

func TestClearCacheIsIdempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, grantResponse{AccessToken: "token", ExpiresIn: 3600})
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), ".token_cache")
	store := tokenstore.NewFileStore(path)

	mgr, err := New(testConfig(srv.URL, ""), store, newTestRetryClient(t), nil)
	require.NoError(t, err)

	_, err = mgr.GetValidToken(context.Background())
	require.NoError(t, err)
	require.True(t, mgr.IsTokenValid())

	mgr.ClearCache(context.Background())
	mgr.ClearCache(context.Background())

	assert.False(t, mgr.IsTokenValid())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

type failingSaveStore struct{}

func (failingSaveStore) Load(context.Context) (*tokenstore.Record, error) {
	return nil, tokenstore.ErrNoToken
}

func (failingSaveStore) Save(context.Context, *tokenstore.Record) error {
	return errors.New("disk full")
}

func (failingSaveStore) Clear(context.Context) error { return nil }

func TestPersistFailureDoesNotFailAcquisition(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, grantResponse{AccessToken: "token", ExpiresIn: 3600})
	}))
	defer srv.Close()

	mgr, err := New(testConfig(srv.URL, ""), failingSaveStore{}, newTestRetryClient(t), nil)
	require.NoError(t, err)

	token, err := mgr.GetValidToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token", token)
}

func TestJWTExpiry(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	token := buildUnsignedJWT(t, exp)

	got, ok := jwtExpiry(token)
	require.True(t, ok)
	assert.Equal(t, exp.Unix(), got.Unix())

	_, ok = jwtExpiry("not-a-jwt")
	assert.False(t, ok)
}

func TestJWTExpiryUsedWhenExpiresInAbsent(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	jwtToken := buildUnsignedJWT(t, exp)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, grantResponse{AccessToken: jwtToken})
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), ".token_cache")
	store := tokenstore.NewFileStore(path)

	mgr, err := New(testConfig(srv.URL, ""), store, newTestRetryClient(t), nil)
	require.NoError(t, err)

	_, err = mgr.GetValidToken(context.Background())
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var rec tokenstore.Record
	require.NoError(t, json.Unmarshal(raw, &rec))
	assert.WithinDuration(t, exp, time.Unix(rec.Expiry, 0), 10*time.Second)
}

func buildUnsignedJWT(t *testing.T, exp time.Time) string {
	t.Helper()
	encode := func(v any) string {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		return base64.RawURLEncoding.EncodeToString(raw)
	}
	header := encode(map[string]string{"alg": "none", "typ": "JWT"})
	claims := encode(map[string]int64{"exp": exp.Unix()})
	return header + "." + claims + "."
}
