package ports

import "context"

// SignUpInput carries the raw, not yet validated sign-up fields.
type SignUpInput struct {
	Name  string
	Role  string
	Email string // optional
	CPF   string // optional
}

// SignInInput carries the raw sign-in identifiers; at least one must be set.
type SignInInput struct {
	Email string
	CPF   string
}

// AuthResult is returned by both use cases.
type AuthResult struct {
	Token string `json:"token"`
}

type AuthService interface {
	SignUp(ctx context.Context, in SignUpInput) (*AuthResult, error)
	SignIn(ctx context.Context, in SignInInput) (*AuthResult, error)
}
