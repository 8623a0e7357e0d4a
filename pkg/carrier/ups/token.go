package ups

import (
	"context"
	"sync"
	"time"

	"github.com/Jatin123lodhi/shipping-carrier-integration-service/pkg/carrier"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const (
	// refreshBuffer is the lead time before true expiry at which a cached
	// token is treated as stale, so a request never goes out with a token
	// that expires mid-flight.
	refreshBuffer = 5 * time.Minute

	// defaultTokenLifetime applies when the token endpoint omits expires_in
	// or reports a non-positive value.
	defaultTokenLifetime = 3600 * time.Second
)

// TokenStore owns the cached UPS credential and decides reuse vs. refresh.
//
// The mutex guards the credential field for memory safety only; the
// acquisition exchange itself is not single-flight. Concurrent callers that
// each observe a stale or absent token each perform their own exchange and
// each overwrite the cache with their result, last write wins. Failures are
// never cached: a failed exchange leaves the store without a token so the
// next caller exchanges again.
type TokenStore struct {
	apiClient APIClient
	logger    *otelzap.Logger
	now       func() time.Time

	mu   sync.Mutex
	cred *carrier.Credential
}

// NewTokenStore creates a token store backed by the given API client.
func NewTokenStore(apiClient APIClient, logger *otelzap.Logger) *TokenStore {
	return &TokenStore{
		apiClient: apiClient,
		logger:    logger,
		now:       time.Now,
	}
}

// NewTokenStoreWithClock is like NewTokenStore with an injected clock.
// Tests use it to walk a credential toward expiry without sleeping.
func NewTokenStoreWithClock(apiClient APIClient, logger *otelzap.Logger, now func() time.Time) *TokenStore {
	s := NewTokenStore(apiClient, logger)
	s.now = now
	return s
}

// GetValidToken returns a credential that is valid for at least the refresh
// buffer, exchanging client credentials for a fresh one when needed.
func (s *TokenStore) GetValidToken(ctx context.Context) carrier.Result[carrier.Credential] {
	if cred := s.cached(); cred != nil {
		return carrier.Ok(*cred)
	}

	resp, cerr := s.apiClient.ExchangeToken(ctx)
	if cerr != nil {
		s.logger.Warn("UPS token exchange failed",
			zap.String("code", cerr.Code),
			zap.String("severity", string(cerr.Severity)),
		)
		return carrier.Fail[carrier.Credential](cerr)
	}

	if err := resp.Validate(); err != nil {
		return carrier.Fail[carrier.Credential](
			carrier.FromValidationError(err).WithCarrier(carrierName))
	}

	lifetime := time.Duration(resp.ExpiresIn) * time.Second
	if lifetime <= 0 {
		lifetime = defaultTokenLifetime
	}

	cred := &carrier.Credential{
		AccessToken: resp.AccessToken,
		TokenType:   resp.TokenType,
		ExpiresAt:   s.now().Add(lifetime),
	}

	s.mu.Lock()
	s.cred = cred
	s.mu.Unlock()

	s.logger.Debug("UPS token refreshed",
		zap.Time("expires_at", cred.ExpiresAt),
	)
	return carrier.Ok(*cred)
}

// ClearCache forces the store back to the no-token state. The next
// GetValidToken always performs an acquisition exchange.
func (s *TokenStore) ClearCache() {
	s.mu.Lock()
	s.cred = nil
	s.mu.Unlock()
}

// cached returns the stored credential when it is still comfortably inside
// its lifetime, nil otherwise.
func (s *TokenStore) cached() *carrier.Credential {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cred != nil && s.cred.ExpiresAt.After(s.now().Add(refreshBuffer)) {
		return s.cred
	}
	return nil
}
