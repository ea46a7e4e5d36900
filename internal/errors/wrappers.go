package errors

import "fmt"

// Common error wrapping patterns used throughout the codebase

// ConfigurationError creates a configuration error for a named subject such
// as a stencil, a manifest or a run option
func ConfigurationError(subject, message string) *BaseError {
	return New(ConfigurationErrorCode, fmt.Sprintf("invalid configuration for '%s': %s", subject, message)).
		WithContext("subject", subject)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configType, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, configType)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_type", configType).
		WithContext("operation", operation)
}

// WrapRegistrationError wraps a failure to materialize an extension point
func WrapRegistrationError(point, reason string, cause error) *BaseError {
	message := fmt.Sprintf("failed to resolve extension point '%s': %s", point, reason)
	return Wrap(RegistrationErrorCode, message, cause).
		WithContext("extension_point", point)
}

// WrapGenerationError wraps a failure while generating a stencil
func WrapGenerationError(stencil, stage string, cause error) *BaseError {
	message := fmt.Sprintf("failed to generate %s during %s", stencil, stage)
	return Wrap(GenerationErrorCode, message, cause).
		WithContext("stencil", stencil).
		WithContext("stage", stage)
}

// WrapTraitError wraps a failure raised by a trait
func WrapTraitError(stencil, trait string, cause error) *BaseError {
	message := fmt.Sprintf("trait '%s' failed for %s", trait, stencil)
	return Wrap(GenerationErrorCode, message, cause).
		WithContext("stencil", stencil).
		WithContext("trait", trait)
}

// WrapFormatError wraps a formatting failure with the offending file name
func WrapFormatError(fileName string, cause error) *BaseError {
	return Wrap(FormatErrorCode, fmt.Sprintf("error formatting %s", fileName), cause).
		WithContext("file", fileName)
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}
