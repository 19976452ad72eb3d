package validators

import (
	"regexp"

	"photochat/internal/errs"
	"photochat/internal/models"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func ValidateRegistration(req *models.RegisterRequestBody) []error {
	var errors []error
	if req == nil {
		errors = append(errors, errs.ErrInvalidRequestBody)
		return errors
	}

	if req.Email == "" || !ValidateEmail(req.Email) {
		errors = append(errors, errs.ErrInvalidEmail)
	}

	if !ValidatePassword(req.Password) {
		errors = append(errors, errs.ErrInvalidPassword)
	}

	if len(req.Username) < 2 {
		errors = append(errors, errs.ErrInvalidUsername)
	}
	return errors
}

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePassword requires at least 8 characters out of letters, digits and a
// small set of specials.
func ValidatePassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r == '@' || r == '#' || r == '$' || r == '%' || r == '^' || r == '&' || r == '+' || r == '=' || r == '!':
		default:
			return false
		}
	}
	return true
}
