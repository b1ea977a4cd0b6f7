package lambda

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"

	"github.com/99minutos/auth-gateway/internal/api/gateway"
	"github.com/99minutos/auth-gateway/internal/core/ports"
)

type stubAuthService struct {
	signInErr error
	signIns   []ports.SignInInput
}

func (s *stubAuthService) SignUp(_ context.Context, in ports.SignUpInput) (*ports.AuthResult, error) {
	return &ports.AuthResult{Token: "signup-token"}, nil
}

func (s *stubAuthService) SignIn(_ context.Context, in ports.SignInInput) (*ports.AuthResult, error) {
	s.signIns = append(s.signIns, in)
	if s.signInErr != nil {
		return nil, s.signInErr
	}
	return &ports.AuthResult{Token: "signin-token"}, nil
}

func invoke(t *testing.T, svc ports.AuthService, event events.APIGatewayProxyRequest) (int, map[string]string) {
	t.Helper()
	h := NewHandler(gateway.NewDispatcher(svc), zerolog.Nop())

	resp, err := h.Handle(context.Background(), event)
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if resp.Headers["Content-Type"] != "application/json" {
		t.Fatalf("missing content type: %v", resp.Headers)
	}
	var body map[string]string
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		t.Fatalf("invalid json %q: %v", resp.Body, err)
	}
	return resp.StatusCode, body
}

func TestHandle_SignUp(t *testing.T) {
	code, body := invoke(t, &stubAuthService{}, events.APIGatewayProxyRequest{
		Body: `{"action":"SignUp","data":{"name":"Ana","role":"CUSTOMER","email":"ana@example.com"}}`,
	})
	if code != http.StatusOK || body["token"] != "signup-token" {
		t.Fatalf("unexpected response: %d %v", code, body)
	}
}

func TestHandle_Base64Body(t *testing.T) {
	svc := &stubAuthService{}
	raw := `{"action":"SignIn","data":{"cpf":"529.982.247-25"}}`

	code, body := invoke(t, svc, events.APIGatewayProxyRequest{
		Body:            base64.StdEncoding.EncodeToString([]byte(raw)),
		IsBase64Encoded: true,
	})
	if code != http.StatusOK || body["token"] != "signin-token" {
		t.Fatalf("unexpected response: %d %v", code, body)
	}
	if len(svc.signIns) != 1 || svc.signIns[0].CPF != "529.982.247-25" {
		t.Fatalf("unexpected sign-in input: %+v", svc.signIns)
	}
}

func TestHandle_InvalidAction(t *testing.T) {
	code, body := invoke(t, &stubAuthService{}, events.APIGatewayProxyRequest{Body: `{"action":"Drop"}`})
	if code != http.StatusBadRequest || body["message"] != "Action must be provided" {
		t.Fatalf("unexpected response: %d %v", code, body)
	}
}

func TestHandle_ServerErrorIsGeneric(t *testing.T) {
	svc := &stubAuthService{signInErr: errors.New("dial tcp: connection refused")}

	code, body := invoke(t, svc, events.APIGatewayProxyRequest{Body: `{"action":"SignIn","data":{"email":"ana@example.com"}}`})
	if code != http.StatusInternalServerError || body["message"] != "Internal Server Error" {
		t.Fatalf("unexpected response: %d %v", code, body)
	}
}

func TestHandle_Ping(t *testing.T) {
	code, body := invoke(t, &stubAuthService{}, events.APIGatewayProxyRequest{Body: `{"action":"Ping"}`})
	if code != http.StatusOK || body["message"] != "Pong" {
		t.Fatalf("unexpected response: %d %v", code, body)
	}
}
