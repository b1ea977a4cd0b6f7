package domain

// IdentifierKind names which identifier a username was derived from.
type IdentifierKind string

const (
	IdentifierCPF   IdentifierKind = "cpf"
	IdentifierEmail IdentifierKind = "email"
)

// Account is the per-request view of a user as the identity provider sees it.
// CPF and Email are both optional; when both are present the CPF wins as username.
type Account struct {
	Name  string
	Role  Role
	CPF   *CPF
	Email *Email

	hasher PasswordHasher
}

// NewAccount builds an account from already-validated identifiers. A nil hasher
// falls back to MD5Hasher.
func NewAccount(name string, role Role, cpf *CPF, email *Email, hasher PasswordHasher) Account {
	if hasher == nil {
		hasher = MD5Hasher
	}
	return Account{Name: name, Role: role, CPF: cpf, Email: email, hasher: hasher}
}

// Identifier returns the value used as username and the kind it came from.
func (a Account) Identifier() (string, IdentifierKind, error) {
	switch {
	case a.CPF != nil && !a.CPF.IsZero():
		return a.CPF.Value(), IdentifierCPF, nil
	case a.Email != nil && !a.Email.IsZero():
		return a.Email.Value(), IdentifierEmail, nil
	}
	return "", "", ErrMissingIdentifier
}

func (a Account) Username() (string, error) {
	u, _, err := a.Identifier()
	return u, err
}

// Password derives the login password from the username.
func (a Account) Password() (string, error) {
	u, err := a.Username()
	if err != nil {
		return "", err
	}
	h := a.hasher
	if h == nil {
		h = MD5Hasher
	}
	return h.Derive(u), nil
}

// Credentials is the username/password pair sent to the identity provider.
type Credentials struct {
	Username string
	Password string
}

func (a Account) Credentials() (Credentials, error) {
	u, err := a.Username()
	if err != nil {
		return Credentials{}, err
	}
	p, err := a.Password()
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{Username: u, Password: p}, nil
}
