package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

// Validate checks the configuration for startup-blocking problems and
// returns all of them at once. A missing hostname is the canonical fatal
// case; without it delivery URLs would be undefined.
func (c Config) Validate() error {
	var errs ValidationErrors

	if strings.TrimSpace(c.Hostname) == "" {
		errs.Add("hostname", fmt.Sprintf("is required (set %s)", EnvHostname))
	}
	if strings.TrimSpace(c.MediaDir) == "" {
		errs.Add("mediaDir", "is required")
	}
	if strings.TrimSpace(c.Tool) == "" {
		errs.Add("tool", "is required")
	}
	if err := validatePort("api.port", c.API.Port); err != nil {
		errs = append(errs, err.(ValidationError))
	}
	if err := validatePort("rtsp.port", c.RTSP.Port); err != nil {
		errs = append(errs, err.(ValidationError))
	}
	if c.Reconcile.PollInterval <= 0 {
		errs.Add("reconcile.pollInterval", "must be positive", c.Reconcile.PollInterval)
	}
	if c.Reconcile.ReapInterval <= 0 {
		errs.Add("reconcile.reapInterval", "must be positive", c.Reconcile.ReapInterval)
	}
	if c.Supervisor.StopGrace <= 0 {
		errs.Add("supervisor.stopGrace", "must be positive", c.Supervisor.StopGrace)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func validatePort(field string, port int) error {
	if port < 1 || port > 65535 {
		return ValidationError{
			Field:   field,
			Value:   port,
			Message: "must be between 1 and 65535",
		}
	}
	return nil
}
