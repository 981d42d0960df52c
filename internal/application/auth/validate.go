package auth

import (
	"regexp"
	"unicode"

	"github.com/smarteval/auth-service/internal/domain"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func validateEmail(email string) error {
	if email == "" {
		return domain.ErrMissingField("email")
	}
	if !emailRe.MatchString(email) {
		return domain.ErrInvalidEmail()
	}
	return nil
}

// validatePassword enforces the registration password policy:
// at least 8 characters, one uppercase, one lowercase, one digit.
// Each violation reports its own reason so the caller can fix the input.
func validatePassword(password string) error {
	if len(password) < 8 {
		return domain.ErrWeakPassword("password must be at least 8 characters long")
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasUpper {
		return domain.ErrWeakPassword("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return domain.ErrWeakPassword("password must contain at least one lowercase letter")
	}
	if !hasDigit {
		return domain.ErrWeakPassword("password must contain at least one digit")
	}
	return nil
}
