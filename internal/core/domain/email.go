package domain

import "regexp"

var emailPattern = regexp.MustCompile(`^[\w\-.]+@([\w-]+\.)+[\w-]{2,4}$`)

// Email is an address that matched emailPattern. The raw input is kept unchanged.
type Email struct {
	value string
}

func NewEmail(raw string) (Email, error) {
	if raw == "" || !emailPattern.MatchString(raw) {
		return Email{}, validationErrorf("%s is not a valid email", raw)
	}
	return Email{value: raw}, nil
}

func (e Email) Value() string {
	return e.value
}

func (e Email) IsZero() bool {
	return e.value == ""
}
