package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validLogLevels     = []string{"debug", "info", "warn", "error", "fatal", "panic"}
	validLogFormats    = []string{"console", "text", "json"}
	validOutputFormats = []string{"text", "json", "yaml", "html"}
	validReportModes   = []string{"stats", "preview", "tree"}
)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return errors.New("configuration is nil")
	}

	validate := validator.New()
	registerOneOf(validate, "loglevel", validLogLevels)
	registerOneOf(validate, "logformat", validLogFormats)
	registerOneOf(validate, "outputformat", validOutputFormats)
	registerOneOf(validate, "reportmode", validReportModes)

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("configuration validation error: %w", err)
	}

	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		msg := fmt.Sprintf("Validation failed for '%s': rule '%s'", trimNamespace(e.StructNamespace()), e.Tag())
		if e.Param() != "" {
			msg += fmt.Sprintf(" (expected: %s)", e.Param())
		}
		if e.Value() != nil && e.Value() != "" {
			msg += fmt.Sprintf(", actual: '%v'", e.Value())
		}
		messages = append(messages, msg)
	}
	return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(messages, "\n  "))
}

// registerOneOf adds a case-insensitive enum rule. Empty values pass.
func registerOneOf(validate *validator.Validate, tag string, allowed []string) {
	_ = validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		value := strings.ToLower(fl.Field().String())
		if value == "" {
			return true
		}
		for _, a := range allowed {
			if value == a {
				return true
			}
		}
		return false
	})
}

// trimNamespace drops the root struct name, e.g. GlobalConfig.LogConfig.LogLevel -> LogConfig.LogLevel.
func trimNamespace(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
