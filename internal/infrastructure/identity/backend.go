// Package identity adapts a managed identity backend to ports.IdentityProvider.
//
// Backends expose the raw three-outcome login (token, new-password challenge,
// error). Provider turns that into the two-operation port and owns the
// first-login challenge handshake.
package identity

import (
	"context"

	"github.com/99minutos/auth-gateway/internal/core/domain"
)

// Attributes are stored with the account at creation time.
type Attributes struct {
	Name  string
	Role  domain.Role
	CPF   string // empty when absent
	Email string // empty when absent
}

// OutcomeKind tells a successful login apart from a pending challenge.
type OutcomeKind int

const (
	OutcomeToken OutcomeKind = iota
	OutcomeNewPasswordRequired
)

func (k OutcomeKind) String() string {
	if k == OutcomeNewPasswordRequired {
		return "NEW_PASSWORD_REQUIRED"
	}
	return "TOKEN"
}

// AuthOutcome is the non-error result of Backend.Authenticate. Token is set for
// OutcomeToken; Session is set for OutcomeNewPasswordRequired and must be handed
// back to CompleteNewPassword.
type AuthOutcome struct {
	Kind    OutcomeKind
	Token   string
	Session string
}

// Backend is the contract a concrete identity service implements.
type Backend interface {
	// CreateUser registers username with a temporary password, without sending
	// any notification. It fails if username already exists.
	CreateUser(ctx context.Context, creds domain.Credentials, attrs Attributes) error
	Authenticate(ctx context.Context, creds domain.Credentials) (AuthOutcome, error)
	// CompleteNewPassword answers a NEW_PASSWORD_REQUIRED challenge.
	CompleteNewPassword(ctx context.Context, session, username, newPassword string) error
}

// AttributesOf extracts the creation attributes of an account.
func AttributesOf(account domain.Account) Attributes {
	attrs := Attributes{Name: account.Name, Role: account.Role}
	if account.CPF != nil {
		attrs.CPF = account.CPF.Value()
	}
	if account.Email != nil {
		attrs.Email = account.Email.Value()
	}
	return attrs
}
