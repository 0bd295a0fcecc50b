package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/aleister1102/pagewatch/internal/common"
	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the GlobalConfig structure. Any
// failure is returned as a *common.ConfigurationError listing every problem.
func ValidateConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return common.NewConfigurationError("", "", "configuration is nil")
	}

	validate := newValidator()
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return common.NewConfigurationError("", "", err.Error())
	}

	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, describeFieldError(e))
	}
	return common.NewConfigurationError("", "", "validation failed:\n  "+strings.Join(messages, "\n  "))
}

func newValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Report yaml key names instead of Go field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "text", "json":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("statuspolicy", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "", StatusPolicyAny, StatusPolicySuccessOnly:
			return true
		default:
			return false
		}
	})

	// Page names become baseline file names; path separators and control
	// characters are sanitized later, but an all-whitespace name is rejected.
	_ = validate.RegisterValidation("pagename", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	// Baseline files are named after pages, so names must also be unique on
	// case-insensitive filesystems.
	_ = validate.RegisterValidation("uniquepagenames", func(fl validator.FieldLevel) bool {
		pages, ok := fl.Field().Interface().([]PageConfig)
		if !ok {
			return false
		}
		seen := make(map[string]struct{}, len(pages))
		for _, p := range pages {
			key := strings.ToLower(p.Name)
			if _, dup := seen[key]; dup {
				return false
			}
			seen[key] = struct{}{}
		}
		return true
	})

	return validate
}

func describeFieldError(e validator.FieldError) string {
	field := strings.TrimPrefix(e.Namespace(), "GlobalConfig.")
	msg := fmt.Sprintf("'%s': rule '%s'", field, e.Tag())
	if e.Param() != "" {
		msg += fmt.Sprintf(" (expected: %s)", e.Param())
	}
	if v := e.Value(); v != nil && v != "" && !isSecretField(e.Field()) {
		msg += fmt.Sprintf(", actual: '%v'", v)
	}
	return msg
}

func isSecretField(name string) bool {
	return strings.Contains(strings.ToLower(name), "password")
}
