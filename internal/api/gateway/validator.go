package gateway

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/99minutos/auth-gateway/internal/core/domain"
)

// requestValidator wraps go-playground/validator and reports failures as
// *domain.ValidationError so they map to client errors.
type requestValidator struct {
	v *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	return &requestValidator{v: v}
}

// Validate also satisfies echo.Validator.
func (rv *requestValidator) Validate(i any) error {
	err := rv.v.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		seen := make(map[string]bool, len(ve))
		for _, fe := range ve {
			if msg := fieldError(fe); !seen[msg] {
				seen[msg] = true
				msgs = append(msgs, msg)
			}
		}
		return &domain.ValidationError{Msg: strings.Join(msgs, "; ")}
	}
	return err
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "required_without":
		pair := []string{field, strings.ToLower(fe.Param())}
		sort.Strings(pair)
		return pair[0] + " or " + pair[1] + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
