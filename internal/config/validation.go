package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	// Register custom validation functions
	_ = v.RegisterValidation("environment", oneOf("development", "staging", "production"))
	_ = v.RegisterValidation("loglevel", oneOf("debug", "info", "warn", "error"))
	_ = v.RegisterValidation("rankingsource", oneOf("wins", "elo", "manual"))
	_ = v.RegisterValidation("opponentpolicy", oneOf("favorite", "weighted"))
	_ = v.RegisterValidation("probabilitysource", oneOf("elo", "model"))

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	return NewValidator().Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	if err := cv.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	// Additional cross-field validations
	return validateCrossField(cfg)
}

func oneOf(allowed ...string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, a := range allowed {
			if value == a {
				return true
			}
		}
		return false
	}
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	roster := make(map[string]bool, len(cfg.Ledger.Roster))
	for _, team := range cfg.Ledger.Roster {
		roster[team] = true
	}

	if cfg.Features.FocusTeam != "" && !roster[cfg.Features.FocusTeam] {
		return fmt.Errorf("focus_team %q is not in the ledger roster", cfg.Features.FocusTeam)
	}

	if cfg.Standings.RankingSource == "manual" {
		if len(cfg.Standings.ManualOrder) == 0 {
			return fmt.Errorf("manual ranking source requires standings.manual_order")
		}
		seen := make(map[string]bool, len(cfg.Standings.ManualOrder))
		for _, team := range cfg.Standings.ManualOrder {
			if !roster[team] {
				return fmt.Errorf("manual_order team %q is not in the ledger roster", team)
			}
			if seen[team] {
				return fmt.Errorf("manual_order lists %q twice", team)
			}
			seen[team] = true
		}
	}

	if cfg.Predictor.Source == "model" && cfg.Predictor.URL == "" {
		return fmt.Errorf("predictor source 'model' requires predictor.url")
	}

	if cfg.Simulation.ChunkSize > cfg.Simulation.Trials {
		return fmt.Errorf("simulation chunk_size cannot exceed trials")
	}

	if cfg.Database.MinConnections > cfg.Database.MaxConnections && cfg.Database.MaxConnections > 0 {
		return fmt.Errorf("min_connections cannot exceed max_connections")
	}

	// Validate production environment requirements
	if cfg.IsProduction() && cfg.HasDatabase() && cfg.Database.SSLMode == "disable" {
		return fmt.Errorf("production environment requires SSL mode to be 'require' or 'verify-full'")
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var b strings.Builder
	for _, fieldError := range validationErrors {
		field := fieldError.StructNamespace()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required":
			fmt.Fprintf(&b, "- Field '%s' is required\n", field)
		case "url":
			fmt.Fprintf(&b, "- Field '%s' must be a valid URL, got '%v'\n", field, value)
		case "min", "max":
			fmt.Fprintf(&b, "- Field '%s' validation failed: %s constraint violated\n", field, tag)
		case "gt", "gte", "lt", "lte":
			fmt.Fprintf(&b, "- Field '%s' validation failed: numeric constraint %s violated\n", field, tag)
		case "unique":
			fmt.Fprintf(&b, "- Field '%s' must not contain duplicates\n", field)
		case "environment":
			fmt.Fprintf(&b, "- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			fmt.Fprintf(&b, "- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "rankingsource":
			fmt.Fprintf(&b, "- Field '%s' must be one of: wins, elo, manual\n", field)
		case "opponentpolicy":
			fmt.Fprintf(&b, "- Field '%s' must be one of: favorite, weighted\n", field)
		case "probabilitysource":
			fmt.Fprintf(&b, "- Field '%s' must be one of: elo, model\n", field)
		case "oneof":
			fmt.Fprintf(&b, "- Field '%s' has invalid value '%v'\n", field, value)
		default:
			fmt.Fprintf(&b, "- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", b.String())
}
