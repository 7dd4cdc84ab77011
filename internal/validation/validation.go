// Package validation holds the request field rules shared by the services.
// Rules are registered on a go-playground validator instance and failures
// are reported as common.ErrorValidation with a client-facing message.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/technotes/internal/common"
	"github.com/go-playground/validator/v10"
)

const (
	MsgEmail    = "Invalid email address format"
	MsgPassword = "Enter valid password in range 7-15 with uppercase, lowercase, number & @"

	passwordSymbols = "!@#$%^&*"
)

var (
	emailRe    = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)
	passwordRe = regexp.MustCompile(`^[a-zA-Z0-9!@#$%^&*]{7,15}$`)
	digitRe    = regexp.MustCompile(`[0-9]`)
)

// IsEmail reports whether s looks like an email address.
func IsEmail(s string) bool {
	return emailRe.MatchString(s)
}

// IsPassword reports whether s is 7 to 15 characters from the allowed set
// and contains at least one digit and one of !@#$%^&*.
func IsPassword(s string) bool {
	return passwordRe.MatchString(s) &&
		digitRe.MatchString(s) &&
		strings.ContainsAny(s, passwordSymbols)
}

// EmailValidator backs the "emailaddr" tag.
func EmailValidator(fl validator.FieldLevel) bool {
	return IsEmail(fl.Field().String())
}

// PasswordValidator backs the "password" tag.
func PasswordValidator(fl validator.FieldLevel) bool {
	return IsPassword(fl.Field().String())
}

var tagMessages = map[string]string{
	"emailaddr": MsgEmail,
	"password":  MsgPassword,
}

// Validator wraps validator.Validate with the custom tags registered.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// registration only fails on an empty tag or nil func
	_ = v.RegisterValidation("emailaddr", EmailValidator)
	_ = v.RegisterValidation("password", PasswordValidator)

	return &Validator{validate: v}
}

// Struct validates s. A failing required or min rule yields requiredMsg,
// otherwise the message of the first failing rule is used.
func (v *Validator) Struct(s any, requiredMsg string) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate %T: %w", s, err)
	}

	for _, fe := range verrs {
		if fe.Tag() == "required" || fe.Tag() == "min" {
			return common.NewError(common.ErrorValidation, requiredMsg)
		}
	}

	fe := verrs[0]
	if msg, ok := tagMessages[fe.Tag()]; ok {
		return common.NewError(common.ErrorValidation, msg)
	}
	return common.NewError(common.ErrorValidation, fmt.Sprintf("Invalid value for %s", fe.Field()))
}
