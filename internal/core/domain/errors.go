package domain

import (
	"errors"
	"fmt"
)

// ErrMissingIdentifier is returned when an account carries neither a CPF nor an email,
// so no username can be derived from it.
var ErrMissingIdentifier = errors.New("at least one of email or cpf must be provided")

// ErrUnexpectedChallenge is returned when the identity provider asks for a new password
// again right after the first challenge was answered.
var ErrUnexpectedChallenge = errors.New("unexpected second new-password challenge")

// ValidationError reports raw input that failed an identifier or role rule.
// Its message is safe to return to clients.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ProviderError wraps any failure returned by the identity backend. Error() stays
// generic so backend details never reach the caller; Unwrap exposes the cause for logs.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	switch e.Op {
	case OpCreateAccount:
		return "could not create user"
	case OpCompleteChallenge:
		return "could not set the user's password"
	default:
		return "could not authenticate user"
	}
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Identity provider operations, used as ProviderError.Op and metric labels.
const (
	OpCreateAccount     = "create_account"
	OpAuthenticate      = "authenticate"
	OpCompleteChallenge = "complete_challenge"
)

// IsValidation reports whether err is (or wraps) a client-correctable input error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) || errors.Is(err, ErrMissingIdentifier)
}
