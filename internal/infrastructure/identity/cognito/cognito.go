// Package cognito implements identity.Backend against an AWS Cognito user pool.
package cognito

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	"github.com/99minutos/auth-gateway/internal/core/domain"
	"github.com/99minutos/auth-gateway/internal/infrastructure/identity"
)

// User pool attribute names.
const (
	attrName  = "name"
	attrEmail = "email"
	attrRole  = "custom:role"
	attrCPF   = "custom:cpf"
)

var errNoAuthResult = errors.New("cognito: response carries neither a token nor a challenge")

// API is the subset of the Cognito client used by Backend.
type API interface {
	AdminCreateUser(ctx context.Context, in *cip.AdminCreateUserInput, optFns ...func(*cip.Options)) (*cip.AdminCreateUserOutput, error)
	InitiateAuth(ctx context.Context, in *cip.InitiateAuthInput, optFns ...func(*cip.Options)) (*cip.InitiateAuthOutput, error)
	RespondToAuthChallenge(ctx context.Context, in *cip.RespondToAuthChallengeInput, optFns ...func(*cip.Options)) (*cip.RespondToAuthChallengeOutput, error)
}

// Config identifies the user pool and app client.
type Config struct {
	Region     string
	UserPoolID string
	ClientID   string
	// ClientSecret is optional; when set every auth request carries a SECRET_HASH.
	ClientSecret string
}

var _ identity.Backend = (*Backend)(nil)

type Backend struct {
	api API
	cfg Config
}

// New builds a Backend from the default AWS credential chain.
func New(ctx context.Context, cfg Config) (*Backend, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("cognito: load aws config: %w", err)
	}
	return NewWithAPI(cip.NewFromConfig(awsCfg), cfg), nil
}

func NewWithAPI(api API, cfg Config) *Backend {
	return &Backend{api: api, cfg: cfg}
}

// CreateUser calls AdminCreateUser with the welcome message suppressed. The
// password becomes temporary, so the first login raises NEW_PASSWORD_REQUIRED.
func (b *Backend) CreateUser(ctx context.Context, creds domain.Credentials, attrs identity.Attributes) error {
	_, err := b.api.AdminCreateUser(ctx, &cip.AdminCreateUserInput{
		UserPoolId:        aws.String(b.cfg.UserPoolID),
		Username:          aws.String(creds.Username),
		TemporaryPassword: aws.String(creds.Password),
		MessageAction:     types.MessageActionTypeSuppress,
		UserAttributes:    userAttributes(attrs),
	})
	if err != nil {
		return fmt.Errorf("cognito: admin create user: %w", err)
	}
	return nil
}

func (b *Backend) Authenticate(ctx context.Context, creds domain.Credentials) (identity.AuthOutcome, error) {
	params := map[string]string{
		"USERNAME": creds.Username,
		"PASSWORD": creds.Password,
	}
	b.sign(params, creds.Username)

	out, err := b.api.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow:       types.AuthFlowTypeUserPasswordAuth,
		ClientId:       aws.String(b.cfg.ClientID),
		AuthParameters: params,
	})
	if err != nil {
		return identity.AuthOutcome{}, fmt.Errorf("cognito: initiate auth: %w", err)
	}

	switch {
	case out.ChallengeName == types.ChallengeNameTypeNewPasswordRequired:
		return identity.AuthOutcome{
			Kind:    identity.OutcomeNewPasswordRequired,
			Session: aws.ToString(out.Session),
		}, nil
	case out.ChallengeName != "":
		return identity.AuthOutcome{}, fmt.Errorf("cognito: unsupported challenge %s", out.ChallengeName)
	case out.AuthenticationResult == nil:
		return identity.AuthOutcome{}, errNoAuthResult
	}
	return identity.AuthOutcome{
		Kind:  identity.OutcomeToken,
		Token: aws.ToString(out.AuthenticationResult.IdToken),
	}, nil
}

func (b *Backend) CompleteNewPassword(ctx context.Context, session, username, newPassword string) error {
	responses := map[string]string{
		"USERNAME":     username,
		"NEW_PASSWORD": newPassword,
	}
	b.sign(responses, username)

	_, err := b.api.RespondToAuthChallenge(ctx, &cip.RespondToAuthChallengeInput{
		ChallengeName:      types.ChallengeNameTypeNewPasswordRequired,
		ClientId:           aws.String(b.cfg.ClientID),
		Session:            aws.String(session),
		ChallengeResponses: responses,
	})
	if err != nil {
		return fmt.Errorf("cognito: respond to new password challenge: %w", err)
	}
	return nil
}

func (b *Backend) sign(params map[string]string, username string) {
	if b.cfg.ClientSecret == "" {
		return
	}
	params["SECRET_HASH"] = SecretHash(b.cfg.ClientSecret, b.cfg.ClientID, username)
}

// SecretHash is base64(HMAC-SHA256(clientSecret, username+clientID)).
func SecretHash(clientSecret, clientID, username string) string {
	mac := hmac.New(sha256.New, []byte(clientSecret))
	mac.Write([]byte(username + clientID))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func userAttributes(attrs identity.Attributes) []types.AttributeType {
	out := make([]types.AttributeType, 0, 4)
	add := func(name, value string) {
		if value != "" {
			out = append(out, types.AttributeType{Name: aws.String(name), Value: aws.String(value)})
		}
	}
	add(attrName, attrs.Name)
	add(attrRole, attrs.Role.String())
	add(attrCPF, attrs.CPF)
	add(attrEmail, attrs.Email)
	return out
}
