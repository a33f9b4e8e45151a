package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
	"github.com/polkiloo/storefront/internal/pkg/auth"
)

const (
	loginStateTTL       = 10 * time.Minute
	referralCodeLength  = 8
	maxReferralAttempts = 10
	referralAlphabet    = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

var errReferralCodeExhausted = errors.New("could not allocate a unique referral code")

// IdentityProvider performs the OAuth authorization code flow.
type IdentityProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*model.ExternalIdentity, error)
}

// SessionStore keeps short-lived login state and revoked token ids.
// ConsumeLoginState returns ErrNotFound for unknown or expired states.
type SessionStore interface {
	SaveLoginState(ctx context.Context, state, referralCode string, ttl time.Duration) error
	ConsumeLoginState(ctx context.Context, state string) (string, error)
	RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}

// LoginResult is produced by a completed OAuth callback.
type LoginResult struct {
	Token   string
	User    *model.User
	Created bool
}

// AuthSettings tunes user provisioning.
type AuthSettings struct {
	StartingCredits float64
}

// AuthUseCase provisions users from the identity provider and manages tokens.
type AuthUseCase struct {
	store    repository.Store
	provider IdentityProvider
	sessions SessionStore
	tokens   auth.Strategy
	notifier Notifier
	logger   *slog.Logger
	settings AuthSettings
	now      func() time.Time
	newState func() string
	newCode  func() string
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(store repository.Store, provider IdentityProvider, sessions SessionStore, tokens auth.Strategy, notifier Notifier, logger *slog.Logger, settings AuthSettings) *AuthUseCase {
	return &AuthUseCase{
		store:    store,
		provider: provider,
		sessions: sessions,
		tokens:   tokens,
		notifier: notifier,
		logger:   logger,
		settings: settings,
		now:      time.Now,
		newState: uuid.NewString,
		newCode:  randomReferralCode,
	}
}

// BeginLogin stores a one-time state and returns the provider authorize URL.
func (u *AuthUseCase) BeginLogin(ctx context.Context, referralCode string) (string, error) {
	state := u.newState()
	if err := u.sessions.SaveLoginState(ctx, state, referralCode, loginStateTTL); err != nil {
		return "", fmt.Errorf("save login state: %w", err)
	}
	return u.provider.AuthCodeURL(state), nil
}

// CompleteLogin validates the state, exchanges the code and issues a token.
func (u *AuthUseCase) CompleteLogin(ctx context.Context, code, state string) (*LoginResult, error) {
	if code == "" || state == "" {
		return nil, domainErrors.ErrUnauthenticated
	}
	referralCode, err := u.sessions.ConsumeLoginState(ctx, state)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUnauthenticated
		}
		return nil, err
	}

	identity, err := u.provider.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Join(domainErrors.ErrUnauthenticated, err)
	}

	user, created, err := u.Upsert(ctx, identity, referralCode)
	if err != nil {
		return nil, err
	}

	token, err := u.tokens.IssueToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user, Created: created}, nil
}

// Upsert creates the user on first login and refreshes the profile afterwards.
// Referral code and referrer are assigned once, at creation.
func (u *AuthUseCase) Upsert(ctx context.Context, identity *model.ExternalIdentity, referralCode string) (*model.User, bool, error) {
	now := u.now()
	existing, err := u.store.Users().GetByDiscordID(ctx, identity.ID)
	switch {
	case err == nil:
		existing.Username = identity.Username
		existing.Discriminator = identity.Discriminator
		existing.Avatar = identity.Avatar
		existing.Email = identity.Email
		existing.LastLogin = now
		if err := u.store.Users().UpdateProfile(ctx, existing); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	case !errors.Is(err, domainErrors.ErrNotFound):
		return nil, false, err
	}

	code, err := u.uniqueReferralCode(ctx)
	if err != nil {
		return nil, false, err
	}

	user := &model.User{
		DiscordID:     identity.ID,
		Username:      identity.Username,
		Discriminator: identity.Discriminator,
		Avatar:        identity.Avatar,
		Email:         identity.Email,
		Credits:       u.settings.StartingCredits,
		ReferralCode:  code,
		Role:          model.RoleClient,
		LastLogin:     now,
	}
	if referralCode != "" {
		referrer, err := u.store.Users().GetByReferralCode(ctx, referralCode)
		switch {
		case err == nil:
			user.ReferredBy = &referrer.ID
		case errors.Is(err, domainErrors.ErrNotFound):
			u.logger.Info("unknown referral code at registration", slog.String("code", referralCode))
		default:
			return nil, false, err
		}
	}

	if err := u.store.Users().Create(ctx, user); err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			// concurrent first login for the same account
			if again, lookupErr := u.store.Users().GetByDiscordID(ctx, identity.ID); lookupErr == nil {
				return again, false, nil
			}
		}
		return nil, false, err
	}

	u.notifier.Notify(registrationMessage(user, now))
	return user, true, nil
}

func (u *AuthUseCase) uniqueReferralCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxReferralAttempts; attempt++ {
		code := u.newCode()
		exists, err := u.store.Users().ReferralCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", errReferralCodeExhausted
}

// Authenticate resolves the token to the current user record.
func (u *AuthUseCase) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := u.tokens.ParseToken(token)
	if err != nil {
		return nil, domainErrors.ErrUnauthenticated
	}
	revoked, err := u.sessions.IsTokenRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domainErrors.ErrUnauthenticated
	}
	user, err := u.store.Users().GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

// Logout revokes the token for the rest of its lifetime.
func (u *AuthUseCase) Logout(ctx context.Context, token string) error {
	claims, err := u.tokens.ParseToken(token)
	if err != nil {
		return nil
	}
	ttl := claims.ExpiresAt.Sub(u.now())
	if ttl <= 0 {
		return nil
	}
	return u.sessions.RevokeToken(ctx, claims.TokenID, ttl)
}

// randomReferralCode returns 8 characters of [0-9A-Z].
func randomReferralCode() string {
	code := make([]byte, 0, referralCodeLength)
	buf := make([]byte, referralCodeLength*2)
	for len(code) < referralCodeLength {
		// crypto/rand.Read never returns an error.
		_, _ = rand.Read(buf)
		for _, b := range buf {
			// 252 is the largest multiple of 36 below 256; higher bytes would bias the draw.
			if b >= 252 || len(code) == referralCodeLength {
				continue
			}
			code = append(code, referralAlphabet[b%byte(len(referralAlphabet))])
		}
	}
	return string(code)
}
