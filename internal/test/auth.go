package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/pkg/auth"
)

// StrategyStub implements auth.Strategy for tests.
type StrategyStub struct {
	IssueFn func(int64) (string, error)
	ParseFn func(string) (*auth.Claims, error)
	NameFn  func() string
}

func (s StrategyStub) IssueToken(userID int64) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(userID)
	}
	return "", nil
}

func (s StrategyStub) ParseToken(token string) (*auth.Claims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return nil, auth.ErrInvalidToken
}

func (s StrategyStub) Name() string {
	if s.NameFn != nil {
		return s.NameFn()
	}
	return "stub"
}

// IdentityProviderStub implements the OAuth identity provider.
type IdentityProviderStub struct {
	AuthCodeURLFn func(state string) string
	ExchangeFn    func(ctx context.Context, code string) (*model.ExternalIdentity, error)
}

func (s IdentityProviderStub) AuthCodeURL(state string) string {
	if s.AuthCodeURLFn != nil {
		return s.AuthCodeURLFn(state)
	}
	return "https://provider.test/authorize?state=" + state
}

func (s IdentityProviderStub) Exchange(ctx context.Context, code string) (*model.ExternalIdentity, error) {
	if s.ExchangeFn != nil {
		return s.ExchangeFn(ctx, code)
	}
	return nil, domainErrors.ErrUnauthenticated
}

// SessionStoreStub keeps login states and revoked tokens in memory.
type SessionStoreStub struct {
	mu      sync.Mutex
	states  map[string]string
	revoked map[string]time.Duration

	SaveErr   error
	RevokeErr error
}

// NewSessionStoreStub constructs an empty session store.
func NewSessionStoreStub() *SessionStoreStub {
	return &SessionStoreStub{states: map[string]string{}, revoked: map[string]time.Duration{}}
}

func (s *SessionStoreStub) SaveLoginState(ctx context.Context, state, referralCode string, ttl time.Duration) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state] = referralCode
	return nil
}

func (s *SessionStoreStub) ConsumeLoginState(ctx context.Context, state string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, ok := s.states[state]
	if !ok {
		return "", domainErrors.ErrNotFound
	}
	delete(s.states, state)
	return code, nil
}

func (s *SessionStoreStub) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if s.RevokeErr != nil {
		return s.RevokeErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenID] = ttl
	return nil
}

func (s *SessionStoreStub) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[tokenID]
	return ok, nil
}

// RevokedTTL reports the ttl a token was revoked with.
func (s *SessionStoreStub) RevokedTTL(tokenID string) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ttl, ok := s.revoked[tokenID]
	return ttl, ok
}
