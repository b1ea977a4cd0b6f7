package domain

// Role is the access tag passed through to the identity provider as an attribute.
type Role string

const (
	RoleNone     Role = ""
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
	RoleApp      Role = "APP"
)

// ParseRole accepts one of the known roles. An empty string yields RoleNone.
func ParseRole(raw string) (Role, error) {
	switch r := Role(raw); r {
	case RoleNone, RoleCustomer, RoleAdmin, RoleApp:
		return r, nil
	}
	return RoleNone, validationErrorf("%s is not a valid role", raw)
}

func (r Role) String() string {
	return string(r)
}
