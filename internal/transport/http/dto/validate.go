package dto

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/smarteval/auth-service/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report field names in their JSON form rather than the Go name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = validate.RegisterValidation("account_role", validateAccountRole)
}

func validateAccountRole(fl validator.FieldLevel) bool {
	return domain.IsValidRole(fl.Field().String())
}

// validateRequest runs struct tag validation and maps the first failure
// onto a domain validation error.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return domain.ErrInvalidJSON(err)
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return domain.ErrMissingField(fe.Field())
	case "account_role":
		role, _ := fe.Value().(string)
		return domain.ErrInvalidRole(role)
	default:
		return domain.ErrInvalidField(fe.Field(), "invalid value")
	}
}
