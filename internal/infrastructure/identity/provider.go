package identity

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/auth-gateway/internal/core/domain"
	"github.com/99minutos/auth-gateway/internal/pkg/metrics"
	"github.com/99minutos/auth-gateway/pkg/logger"
)

var errEmptyToken = errors.New("empty token in successful response")

// Provider implements ports.IdentityProvider on top of a Backend.
type Provider struct {
	backend Backend
	log     zerolog.Logger
}

func NewProvider(backend Backend, log zerolog.Logger) *Provider {
	return &Provider{backend: backend, log: log}
}

func (p *Provider) CreateAccount(ctx context.Context, account domain.Account) error {
	creds, err := account.Credentials()
	if err != nil {
		return err
	}

	start := time.Now()
	err = p.backend.CreateUser(ctx, creds, AttributesOf(account))
	observe(domain.OpCreateAccount, start)
	if err != nil {
		return p.fail(ctx, domain.OpCreateAccount, err, "failed creating user")
	}
	return nil
}

// Authenticate logs the account in. A NEW_PASSWORD_REQUIRED challenge is answered
// with the same derived password, followed by exactly one more login attempt; a
// second challenge on that attempt is an error.
func (p *Provider) Authenticate(ctx context.Context, account domain.Account) (string, error) {
	creds, err := account.Credentials()
	if err != nil {
		return "", err
	}

	outcome, err := p.authenticate(ctx, creds)
	if err != nil {
		return "", err
	}
	if outcome.Kind == OutcomeToken {
		return outcome.Token, nil
	}

	start := time.Now()
	err = p.backend.CompleteNewPassword(ctx, outcome.Session, creds.Username, creds.Password)
	observe(domain.OpCompleteChallenge, start)
	if err != nil {
		metrics.ChallengesTotal.WithLabelValues(metrics.ResultFailed).Inc()
		return "", p.fail(ctx, domain.OpCompleteChallenge, err, "failed setting new user password")
	}

	outcome, err = p.authenticate(ctx, creds)
	if err != nil {
		metrics.ChallengesTotal.WithLabelValues(metrics.ResultFailed).Inc()
		return "", err
	}
	if outcome.Kind != OutcomeToken {
		metrics.ChallengesTotal.WithLabelValues(metrics.ResultFailed).Inc()
		return "", p.fail(ctx, domain.OpAuthenticate, domain.ErrUnexpectedChallenge, "failed authenticating user")
	}

	metrics.ChallengesTotal.WithLabelValues(metrics.ResultOK).Inc()
	return outcome.Token, nil
}

func (p *Provider) authenticate(ctx context.Context, creds domain.Credentials) (AuthOutcome, error) {
	start := time.Now()
	outcome, err := p.backend.Authenticate(ctx, creds)
	observe(domain.OpAuthenticate, start)
	if err != nil {
		return AuthOutcome{}, p.fail(ctx, domain.OpAuthenticate, err, "failed authenticating user")
	}
	if outcome.Kind == OutcomeToken && outcome.Token == "" {
		return AuthOutcome{}, p.fail(ctx, domain.OpAuthenticate, errEmptyToken, "failed authenticating user")
	}
	return outcome, nil
}

// fail logs the backend cause and hides it behind a ProviderError.
func (p *Provider) fail(ctx context.Context, op string, err error, msg string) error {
	logger.FromContext(ctx, p.log).Error().Err(err).Str("op", op).Msg(msg)
	return &domain.ProviderError{Op: op, Err: err}
}

func observe(op string, start time.Time) {
	metrics.ProviderCallDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
