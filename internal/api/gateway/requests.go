package gateway

import (
	"reflect"
	"strings"
)

// Action names accepted in the request envelope.
const (
	ActionSignUp = "SignUp"
	ActionSignIn = "SignIn"
	ActionPing   = "Ping"
)

type signUpRequest struct {
	Name  string `json:"name"  validate:"required,max=256"`
	Role  string `json:"role"  validate:"required,oneof=CUSTOMER ADMIN APP"`
	Email string `json:"email" validate:"required_without=CPF,max=256"`
	CPF   string `json:"cpf"   validate:"required_without=Email,max=32"`
}

type signInRequest struct {
	Email string `json:"email" validate:"required_without=CPF,max=256"`
	CPF   string `json:"cpf"   validate:"required_without=Email,max=32"`
}

// TokenResponse is returned by SignUp and SignIn.
type TokenResponse struct {
	Token string `json:"token"`
}

// MessageResponse is returned by Ping and by every error.
type MessageResponse struct {
	Message string `json:"message"`
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}
