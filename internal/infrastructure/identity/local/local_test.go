package local

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/auth-gateway/internal/core/domain"
	"github.com/99minutos/auth-gateway/internal/infrastructure/identity"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	b, err := New("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b.cost = bcrypt.MinCost
	return b
}

var anaCreds = domain.Credentials{Username: "52998224725", Password: domain.MD5Hasher.Derive("52998224725")}

func TestNew_RequiresSigningKey(t *testing.T) {
	if _, err := New("", time.Hour); !errors.Is(err, ErrMissingSigningKey) {
		t.Fatalf("expected ErrMissingSigningKey, got %v", err)
	}
}

func TestBackend_CreateUser_Duplicate(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	if err := b.CreateUser(ctx, anaCreds, identity.Attributes{Name: "Ana"}); err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if err := b.CreateUser(ctx, anaCreds, identity.Attributes{Name: "Ana"}); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestBackend_FirstLoginRaisesChallenge(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()
	_ = b.CreateUser(ctx, anaCreds, identity.Attributes{Name: "Ana", Role: domain.RoleCustomer, CPF: "52998224725"})

	out, err := b.Authenticate(ctx, anaCreds)
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if out.Kind != identity.OutcomeNewPasswordRequired || out.Session == "" {
		t.Fatalf("expected challenge, got %+v", out)
	}

	if err := b.CompleteNewPassword(ctx, "wrong-session", anaCreds.Username, anaCreds.Password); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
	if err := b.CompleteNewPassword(ctx, out.Session, anaCreds.Username, anaCreds.Password); err != nil {
		t.Fatalf("CompleteNewPassword returned error: %v", err)
	}
	if err := b.CompleteNewPassword(ctx, out.Session, anaCreds.Username, anaCreds.Password); !errors.Is(err, ErrChallengeNotActive) {
		t.Fatalf("expected ErrChallengeNotActive, got %v", err)
	}

	out, err = b.Authenticate(ctx, anaCreds)
	if err != nil || out.Kind != identity.OutcomeToken {
		t.Fatalf("expected token after challenge, got %+v %v", out, err)
	}

	claims, err := b.parseToken(out.Token)
	if err != nil {
		t.Fatalf("parseToken: %v", err)
	}
	if claims.Username != "52998224725" || claims.Role != "CUSTOMER" || claims.Name != "Ana" || claims.Subject == "" || claims.TokenUse != "id" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestBackend_WrongPassword(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()
	_ = b.CreateUser(ctx, anaCreds, identity.Attributes{})

	_, err := b.Authenticate(ctx, domain.Credentials{Username: anaCreds.Username, Password: "nope"})
	if !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
	if _, err := b.Authenticate(ctx, domain.Credentials{Username: "ghost", Password: "x"}); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized for unknown user, got %v", err)
	}
}

func TestBackend_TokenExpires(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	_ = b.CreateUser(ctx, anaCreds, identity.Attributes{})
	out, _ := b.Authenticate(ctx, anaCreds)
	_ = b.CompleteNewPassword(ctx, out.Session, anaCreds.Username, anaCreds.Password)
	out, err := b.Authenticate(ctx, anaCreds)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}

	now = now.Add(2 * time.Hour)
	if _, err := b.parseToken(out.Token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

// The full first-login handshake through identity.Provider: sign-up style
// create + authenticate yields a token, and later logins skip the challenge.
func TestBackend_WithProvider(t *testing.T) {
	b := newTestBackend(t)
	p := identity.NewProvider(b, zerolog.Nop())
	ctx := context.Background()

	email, _ := domain.NewEmail("ana@example.com")
	account := domain.NewAccount("Ana", domain.RoleApp, nil, &email, nil)

	if err := p.CreateAccount(ctx, account); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	first, err := p.Authenticate(ctx, account)
	if err != nil || first == "" {
		t.Fatalf("first Authenticate: %q %v", first, err)
	}
	second, err := p.Authenticate(ctx, domain.NewAccount("", domain.RoleNone, nil, &email, nil))
	if err != nil || second == "" {
		t.Fatalf("second Authenticate: %q %v", second, err)
	}

	var pe *domain.ProviderError
	if err := p.CreateAccount(ctx, account); !errors.As(err, &pe) || !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ProviderError wrapping ErrUserExists, got %v", err)
	}
}
