// Package client builds the outbound HTTP clients used to talk to the
// identity provider and the OSDU platform.
package client

import (
	"fmt"
	"net/http"
	"time"

	httpclient "github.com/appleboy/go-httpclient"
	retry "github.com/appleboy/go-httpretry"
)

// NewHTTPClient creates the base HTTP client for OSDU API calls. TLS
// verification is user-configurable because development deployments
// commonly run behind self-signed certificates.
func NewHTTPClient(timeout time.Duration, verifySSL bool) (*http.Client, error) {
	c, err := httpclient.NewAuthClient(
		httpclient.AuthModeNone, "",
		httpclient.WithTimeout(timeout),
		httpclient.WithInsecureSkipVerify(!verifySSL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http client: %w", err)
	}
	return c, nil
}

// NewRetryClient wraps the base client with retry support for token grant
// requests, which may hit a briefly unavailable identity provider.
func NewRetryClient(
	timeout time.Duration,
	verifySSL bool,
	maxRetries int,
	retryDelay, maxRetryDelay time.Duration,
) (*retry.Client, error) {
	c, err := NewHTTPClient(timeout, verifySSL)
	if err != nil {
		return nil, err
	}

	retryClient, err := retry.NewRealtimeClient(
		retry.WithHTTPClient(c),
		retry.WithMaxRetries(maxRetries),
		retry.WithInitialRetryDelay(retryDelay),
		retry.WithMaxRetryDelay(maxRetryDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create retry client: %w", err)
	}

	return retryClient, nil
}
