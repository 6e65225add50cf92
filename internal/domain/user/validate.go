package user

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/weareopensource/waos-go/internal/shared/failure"
)

// Length limits
const (
	MaxNameLength     = 30
	MaxEmailLength    = 255
	MaxBioLength      = 200
	MinPasswordLength = 8
	MaxPasswordLength = 128
)

var rules = map[Field]string{
	FirstName: fmt.Sprintf("required,max=%d", MaxNameLength),
	LastName:  fmt.Sprintf("required,max=%d", MaxNameLength),
	Email:     fmt.Sprintf("required,max=%d,email", MaxEmailLength),
	Bio:       fmt.Sprintf("max=%d", MaxBioLength),
	Password:  fmt.Sprintf("required,min=%d,max=%d,nonul", MinPasswordLength, MaxPasswordLength),
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func engine() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// null bytes are rejected server side with an opaque schema error
		_ = validate.RegisterValidation("nonul", func(fl validator.FieldLevel) bool {
			return !strings.ContainsRune(fl.Field().String(), 0)
		})
	})
	return validate
}

// Result is the outcome of a field validation.
type Result struct {
	Errors []*failure.ErrorInfo
}

// Valid reports whether the value passed every rule.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// First returns the first error, or nil when valid.
func (r Result) First() *failure.ErrorInfo {
	if r.Valid() {
		return nil
	}
	return r.Errors[0]
}

// Validate checks value against the rules of f.
func Validate(f Field, value string) Result {
	tag, ok := rules[f]
	if !ok {
		return Result{Errors: []*failure.ErrorInfo{
			failure.Validation(string(f), "unknown field"),
		}}
	}

	err := engine().Var(value, tag)
	if err == nil {
		return Result{}
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Result{Errors: []*failure.ErrorInfo{failure.Validation(string(f), err.Error())}}
	}

	out := make([]*failure.ErrorInfo, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, failure.Validation(string(f), describe(f, fe)))
	}
	return Result{Errors: out}
}

func describe(f Field, fe validator.FieldError) string {
	name := label(f)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", name)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", name, fe.Param())
	case "nonul":
		return fmt.Sprintf("%s contains invalid characters", name)
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}

func label(f Field) string {
	switch f {
	case FirstName:
		return "First name"
	case LastName:
		return "Last name"
	case Email:
		return "Email"
	case Bio:
		return "Bio"
	case Password:
		return "Password"
	default:
		return string(f)
	}
}
