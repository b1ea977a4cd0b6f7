// Package local is an in-memory identity.Backend for development and tests.
// It follows the same contract as the Cognito user pool: administratively
// created users must answer a new-password challenge on first login, and
// successful logins return a signed ID token.
package local

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/auth-gateway/internal/core/domain"
	"github.com/99minutos/auth-gateway/internal/infrastructure/identity"
)

var (
	ErrUserExists         = errors.New("local: user already exists")
	ErrNotAuthorized      = errors.New("local: incorrect username or password")
	ErrInvalidSession     = errors.New("local: invalid challenge session")
	ErrMissingSigningKey  = errors.New("local: signing key is required")
	ErrChallengeNotActive = errors.New("local: user has no pending challenge")
)

const defaultTokenTTL = time.Hour

type user struct {
	sub          string
	passwordHash []byte
	attrs        identity.Attributes
	// temporary is true until the first new-password challenge is answered.
	temporary bool
	session   string
}

type Backend struct {
	mu    sync.Mutex
	users map[string]*user

	signingKey []byte
	tokenTTL   time.Duration
	issuer     string
	cost       int
	now        func() time.Time
}

var _ identity.Backend = (*Backend)(nil)

// New returns an empty Backend signing HS256 tokens with signingKey.
func New(signingKey string, tokenTTL time.Duration) (*Backend, error) {
	if signingKey == "" {
		return nil, ErrMissingSigningKey
	}
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &Backend{
		users:      make(map[string]*user),
		signingKey: []byte(signingKey),
		tokenTTL:   tokenTTL,
		issuer:     "auth-gateway-local",
		cost:       bcrypt.DefaultCost,
		now:        time.Now,
	}, nil
}

func (b *Backend) CreateUser(_ context.Context, creds domain.Credentials, attrs identity.Attributes) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), b.cost)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.users[creds.Username]; exists {
		return ErrUserExists
	}
	b.users[creds.Username] = &user{
		sub:          uuid.NewString(),
		passwordHash: hash,
		attrs:        attrs,
		temporary:    true,
	}
	return nil
}

func (b *Backend) Authenticate(_ context.Context, creds domain.Credentials) (identity.AuthOutcome, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	u, ok := b.users[creds.Username]
	if !ok || bcrypt.CompareHashAndPassword(u.passwordHash, []byte(creds.Password)) != nil {
		return identity.AuthOutcome{}, ErrNotAuthorized
	}

	if u.temporary {
		u.session = uuid.NewString()
		return identity.AuthOutcome{Kind: identity.OutcomeNewPasswordRequired, Session: u.session}, nil
	}

	token, err := b.issue(creds.Username, u)
	if err != nil {
		return identity.AuthOutcome{}, err
	}
	return identity.AuthOutcome{Kind: identity.OutcomeToken, Token: token}, nil
}

func (b *Backend) CompleteNewPassword(_ context.Context, session, username, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), b.cost)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	u, ok := b.users[username]
	if !ok {
		return ErrNotAuthorized
	}
	if !u.temporary {
		return ErrChallengeNotActive
	}
	if session == "" || session != u.session {
		return ErrInvalidSession
	}
	u.passwordHash = hash
	u.temporary = false
	u.session = ""
	return nil
}

// IDTokenClaims mirrors the user pool attributes carried in a Cognito ID token.
type IDTokenClaims struct {
	Username string `json:"cognito:username"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"custom:role,omitempty"`
	CPF      string `json:"custom:cpf,omitempty"`
	TokenUse string `json:"token_use"`
	jwt.RegisteredClaims
}

func (b *Backend) issue(username string, u *user) (string, error) {
	now := b.now()
	claims := IDTokenClaims{
		Username: username,
		Name:     u.attrs.Name,
		Email:    u.attrs.Email,
		Role:     u.attrs.Role.String(),
		CPF:      u.attrs.CPF,
		TokenUse: "id",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.sub,
			Issuer:    b.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(b.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(b.signingKey)
}

// parseToken verifies a token issued by this backend.
func (b *Backend) parseToken(token string) (*IDTokenClaims, error) {
	claims := &IDTokenClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return b.signingKey, nil
	}, jwt.WithTimeFunc(b.now))
	if err != nil {
		return nil, err
	}
	return claims, nil
}
