package ports

import (
	"context"

	"github.com/99minutos/auth-gateway/internal/core/domain"
)

// IdentityProvider is the managed identity backend seen by the use cases.
type IdentityProvider interface {
	// CreateAccount registers the account using its derived credentials. The provider
	// must not send any welcome notification and must reject an existing username.
	CreateAccount(ctx context.Context, account domain.Account) error
	// Authenticate logs the account in and returns an opaque bearer token.
	Authenticate(ctx context.Context, account domain.Account) (string, error)
}
