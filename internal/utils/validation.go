package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Validator represents a validation function
type Validator[T any] func(T) error

// ValidatorChain allows chaining multiple validators
type ValidatorChain[T any] struct {
	validators []Validator[T]
}

// NewValidatorChain creates a new validator chain
func NewValidatorChain[T any](validators ...Validator[T]) *ValidatorChain[T] {
	return &ValidatorChain[T]{validators: validators}
}

// Add adds a validator to the chain
func (vc *ValidatorChain[T]) Add(validator Validator[T]) *ValidatorChain[T] {
	vc.validators = append(vc.validators, validator)
	return vc
}

// Validate runs all validators in the chain
func (vc *ValidatorChain[T]) Validate(value T) error {
	for _, validator := range vc.validators {
		if err := validator(value); err != nil {
			return err
		}
	}
	return nil
}

// Common validation functions

// NotEmpty validates that a string is not empty
func NotEmpty(field string) Validator[string] {
	return func(value string) error {
		if value == "" {
			return ValidationError{
				Field:   field,
				Value:   value,
				Message: "cannot be empty",
			}
		}
		return nil
	}
}

// MatchesRegex validates that a string matches a regex pattern
func MatchesRegex(field, pattern string) Validator[string] {
	regex := regexp.MustCompile(pattern)
	return func(value string) error {
		if !regex.MatchString(value) {
			return ValidationError{
				Field:   field,
				Value:   value,
				Message: fmt.Sprintf("must match pattern '%s'", pattern),
			}
		}
		return nil
	}
}

// IsJavaIdentifier validates that a string is a single JVM identifier
func IsJavaIdentifier(field string) Validator[string] {
	return func(value string) error {
		if value == "" {
			return ValidationError{
				Field:   field,
				Value:   value,
				Message: "cannot be empty",
			}
		}

		if !javaIdentifier.MatchString(value) {
			return ValidationError{
				Field:   field,
				Value:   value,
				Message: "must be a valid identifier",
			}
		}

		return nil
	}
}

// ValidateEach validates each item in a slice using the provided validator
func ValidateEach[T any](field string, itemValidator Validator[T]) Validator[[]T] {
	return func(value []T) error {
		for i, item := range value {
			if err := itemValidator(item); err != nil {
				return ValidationError{
					Field:   fmt.Sprintf("%s[%d]", field, i),
					Value:   item,
					Message: err.Error(),
				}
			}
		}
		return nil
	}
}

// Custom validates using a custom function
func Custom[T any](field string, message string, validatorFunc func(T) bool) Validator[T] {
	return func(value T) error {
		if !validatorFunc(value) {
			return ValidationError{
				Field:   field,
				Value:   value,
				Message: message,
			}
		}
		return nil
	}
}

// Conditional validates only if the condition is true
func Conditional[T any](condition func(T) bool, validator Validator[T]) Validator[T] {
	return func(value T) error {
		if condition(value) {
			return validator(value)
		}
		return nil
	}
}

// IntInRange validates that an int lies within [min, max]
func IntInRange(field string, min, max int) Validator[int] {
	return func(value int) error {
		if value < min || value > max {
			return ValidationError{
				Field:   field,
				Value:   value,
				Message: fmt.Sprintf("must be between %d and %d", min, max),
			}
		}
		return nil
	}
}

// Common validation patterns for stencil manifests

var (
	javaIdentifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
	qualifiedName  = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(\.[A-Za-z_$][A-Za-z0-9_$]*)+$`)
)

// ValidateQualifiedClassName validates a dotted class name with a package,
// e.g. android.widget.ImageView
func ValidateQualifiedClassName(field string) Validator[string] {
	return NewValidatorChain(
		NotEmpty(field),
		Custom(field, "must be a fully-qualified class name", qualifiedName.MatchString),
	).Validate
}

// ValidateTraitID validates a trait identifier such as rx.text-input
func ValidateTraitID(field string) Validator[string] {
	return NewValidatorChain(
		NotEmpty(field),
		MatchesRegex(field, `^[a-z][a-z0-9]*([.\-][a-z0-9]+)*$`),
	).Validate
}

// ValidateStyleAttr validates an optional default style attribute: empty, a
// platform reference (android.R.attr.x) or a local attr name, optionally
// written as R.attr.x.
func ValidateStyleAttr(field string) Validator[string] {
	return Conditional(
		func(value string) bool { return value != "" },
		Custom(field, "must be android.R.attr.<name> or a local attr name", func(value string) bool {
			if strings.HasPrefix(value, "android.R.") {
				return qualifiedName.MatchString(value)
			}
			return javaIdentifier.MatchString(strings.TrimPrefix(value, "R.attr."))
		}),
	)
}
