package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"cgmd/internal/libreview"
	"cgmd/internal/models"
	"cgmd/internal/providers"
)

// ErrMissingCredentials means no email/password is configured. It is
// non-retryable until the configuration changes and must never cause a
// network call.
var ErrMissingCredentials = errors.New("email and password are not configured")

type AuthServiceInterface interface {
	// EnsureValidSession returns the current session untouched when it is
	// still valid, otherwise logs in with the given credentials. The bool
	// reports whether a new session was created and needs persisting.
	EnsureValidSession(ctx context.Context, session models.Session, creds models.Credentials) (models.Session, bool, error)
	Login(ctx context.Context, creds models.Credentials) (models.Session, error)
}

type AuthService struct {
	client  libreview.ClientInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewAuthService(client libreview.ClientInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) AuthServiceInterface {
	return &AuthService{
		client:  client,
		logger:  logger,
		metrics: metrics,
	}
}

// HashAccountID returns the SHA-256 hex digest of the raw vendor account id.
// Only the digest ever leaves this package; the vendor expects it in the
// account-id header.
func HashAccountID(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func (as *AuthService) EnsureValidSession(ctx context.Context, session models.Session, creds models.Credentials) (models.Session, bool, error) {
	if session.Valid(time.Now()) {
		return session, false, nil
	}

	fresh, err := as.Login(ctx, creds)
	if err != nil {
		return models.Session{}, false, err
	}
	return fresh, true, nil
}

func (as *AuthService) Login(ctx context.Context, creds models.Credentials) (models.Session, error) {
	if !creds.Complete() {
		return models.Session{}, ErrMissingCredentials
	}

	result, err := as.client.Login(ctx, creds)
	if err != nil {
		as.metrics.IncLoginsTotal("failure")
		return models.Session{}, err
	}
	as.metrics.IncLoginsTotal("success")
	as.logger.Infof(providers.TypeApp, "session established, expires at %d", result.ExpiresAt)

	return models.Session{
		Token:         result.Token,
		ExpiresAt:     result.ExpiresAt,
		AccountIDHash: HashAccountID(result.AccountID),
	}, nil
}
