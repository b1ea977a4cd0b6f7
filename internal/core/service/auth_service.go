package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/auth-gateway/internal/core/domain"
	"github.com/99minutos/auth-gateway/internal/core/ports"
	"github.com/99minutos/auth-gateway/internal/pkg/metrics"
)

// AuthService implements sign-up and sign-in against an identity provider.
type AuthService struct {
	provider ports.IdentityProvider
	hasher   domain.PasswordHasher
	log      zerolog.Logger
}

// NewAuthService returns an AuthService. A nil hasher selects MD5, matching the
// passwords of accounts created before the digest became configurable.
func NewAuthService(provider ports.IdentityProvider, hasher domain.PasswordHasher, log zerolog.Logger) *AuthService {
	if hasher == nil {
		hasher = domain.MD5Hasher
	}
	return &AuthService{provider: provider, hasher: hasher, log: log}
}

// SignUp creates the account and then logs it in. A failed create is terminal.
// A failed login after a successful create leaves the account in place.
func (s *AuthService) SignUp(ctx context.Context, in ports.SignUpInput) (*ports.AuthResult, error) {
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		metrics.SignUpsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		return nil, err
	}
	account, kind, err := s.account(in.Name, role, in.CPF, in.Email)
	if err != nil {
		metrics.SignUpsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		return nil, err
	}

	if err := s.provider.CreateAccount(ctx, account); err != nil {
		metrics.SignUpsTotal.WithLabelValues(metrics.ResultFailed).Inc()
		return nil, fmt.Errorf("sign up: %w", err)
	}

	token, err := s.provider.Authenticate(ctx, account)
	if err != nil {
		s.log.Warn().Err(err).
			Str("identifier", string(kind)).
			Msg("account created but sign-up authentication failed")
		metrics.SignUpsTotal.WithLabelValues(metrics.ResultPartial).Inc()
		return nil, fmt.Errorf("sign up: %w", err)
	}

	metrics.SignUpsTotal.WithLabelValues(metrics.ResultOK).Inc()
	s.log.Info().Str("identifier", string(kind)).Str("role", role.String()).Msg("user signed up")
	return &ports.AuthResult{Token: token}, nil
}

// SignIn authenticates an existing account by its identifiers only.
func (s *AuthService) SignIn(ctx context.Context, in ports.SignInInput) (*ports.AuthResult, error) {
	account, kind, err := s.account("", domain.RoleNone, in.CPF, in.Email)
	if err != nil {
		metrics.SignInsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		return nil, err
	}

	token, err := s.provider.Authenticate(ctx, account)
	if err != nil {
		metrics.SignInsTotal.WithLabelValues(metrics.ResultFailed).Inc()
		return nil, fmt.Errorf("sign in: %w", err)
	}

	metrics.SignInsTotal.WithLabelValues(metrics.ResultOK).Inc()
	s.log.Debug().Str("identifier", string(kind)).Msg("user signed in")
	return &ports.AuthResult{Token: token}, nil
}

// account validates the raw identifiers and checks that a username can be derived
// before anything reaches the provider.
func (s *AuthService) account(name string, role domain.Role, rawCPF, rawEmail string) (domain.Account, domain.IdentifierKind, error) {
	var (
		cpf   *domain.CPF
		email *domain.Email
	)
	if rawEmail != "" {
		e, err := domain.NewEmail(rawEmail)
		if err != nil {
			return domain.Account{}, "", err
		}
		email = &e
	}
	if rawCPF != "" {
		c, err := domain.NewCPF(rawCPF)
		if err != nil {
			return domain.Account{}, "", err
		}
		cpf = &c
	}

	account := domain.NewAccount(name, role, cpf, email, s.hasher)
	_, kind, err := account.Identifier()
	if err != nil {
		return domain.Account{}, "", err
	}
	return account, kind, nil
}
