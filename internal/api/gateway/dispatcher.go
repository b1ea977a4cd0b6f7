// Package gateway holds the transport-independent part of the entry adapter:
// the {action, data} envelope, request validation, dispatch to the use cases,
// and the mapping of errors to status codes. Both the HTTP server and the
// Lambda handler sit on top of it.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/99minutos/auth-gateway/internal/core/domain"
	"github.com/99minutos/auth-gateway/internal/core/ports"
)

var (
	// ErrUnknownAction is returned for a missing or unsupported action.
	ErrUnknownAction = errors.New("unknown action")
	// ErrMalformedRequest is returned when the body or its data is not valid JSON.
	ErrMalformedRequest = errors.New("invalid payload")
)

// Request is the envelope every call arrives in.
type Request struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

// ParseRequest decodes a raw body into a Request and checks the action name.
func ParseRequest(body []byte) (Request, error) {
	var req Request
	if len(bytes.TrimSpace(body)) == 0 {
		return req, ErrMalformedRequest
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return req, ErrMalformedRequest
	}
	if !KnownAction(req.Action) {
		return req, ErrUnknownAction
	}
	return req, nil
}

func KnownAction(action string) bool {
	switch action {
	case ActionSignUp, ActionSignIn, ActionPing:
		return true
	}
	return false
}

type Dispatcher struct {
	auth      ports.AuthService
	validator *requestValidator
}

func NewDispatcher(auth ports.AuthService) *Dispatcher {
	return &Dispatcher{auth: auth, validator: newRequestValidator()}
}

// Dispatch runs the use case named by req.Action and returns the response body.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (any, error) {
	switch req.Action {
	case ActionPing:
		return MessageResponse{Message: "Pong"}, nil

	case ActionSignUp:
		var in signUpRequest
		if err := d.decode(req.Data, &in); err != nil {
			return nil, err
		}
		res, err := d.auth.SignUp(ctx, ports.SignUpInput{Name: in.Name, Role: in.Role, Email: in.Email, CPF: in.CPF})
		if err != nil {
			return nil, err
		}
		return TokenResponse{Token: res.Token}, nil

	case ActionSignIn:
		var in signInRequest
		if err := d.decode(req.Data, &in); err != nil {
			return nil, err
		}
		res, err := d.auth.SignIn(ctx, ports.SignInInput{Email: in.Email, CPF: in.CPF})
		if err != nil {
			return nil, err
		}
		return TokenResponse{Token: res.Token}, nil
	}
	return nil, ErrUnknownAction
}

func (d *Dispatcher) decode(data json.RawMessage, dst any) error {
	if len(data) > 0 && string(data) != "null" {
		if err := json.Unmarshal(data, dst); err != nil {
			return ErrMalformedRequest
		}
	}
	return d.validator.Validate(dst)
}

// Resolve maps an error to a status code and a client-safe message. expected is
// false for errors nobody has logged yet; callers should log those.
func Resolve(err error) (status int, message string, expected bool) {
	var (
		ve *domain.ValidationError
		pe *domain.ProviderError
	)
	switch {
	case errors.Is(err, ErrUnknownAction):
		return http.StatusBadRequest, "Action must be provided", true
	case errors.Is(err, ErrMalformedRequest):
		return http.StatusBadRequest, err.Error(), true
	case domain.IsValidation(err):
		if errors.As(err, &ve) {
			return http.StatusBadRequest, ve.Msg, true
		}
		return http.StatusBadRequest, domain.ErrMissingIdentifier.Error(), true
	case errors.As(err, &pe):
		// Already logged with its cause by the identity provider.
		return http.StatusInternalServerError, "Internal Server Error", true
	}
	return http.StatusInternalServerError, "Internal Server Error", false
}
