// Package config holds the resolved command-line configuration of goseal.
package config

import (
	"errors"
	"fmt"

	"github.com/idelchi/gogen/pkg/validator"

	"github.com/idelchi/goseal/internal/logger"
)

// ErrUsage indicates an error in command-line usage or configuration.
var ErrUsage = errors.New("usage error")

// Mode is the subcommand being run.
type Mode string

// Modes.
const (
	ModeSign      Mode = "sign"
	ModeVerify    Mode = "verify"
	ModeGenerate  Mode = "generate"
	ModeEncrypt   Mode = "encrypt"
	ModeDecrypt   Mode = "decrypt"
	ModeJWTSign   Mode = "jwt-sign"
	ModeJWTVerify Mode = "jwt-verify"
)

// Config is the configuration shared by all subcommands.
type Config struct {
	// Set by the subcommand.
	Mode Mode `json:"mode" label:"mode" mapstructure:"-" validate:"oneof=sign verify generate encrypt decrypt jwt-sign jwt-verify"`

	// Positional arguments.
	Inputs []string `json:"inputs,omitempty" label:"inputs" mapstructure:"-" validate:"required_unless=Mode generate Mode jwt-sign Mode jwt-verify,dive,required"` //nolint:lll // one tag

	// Common flags
	Format      string `json:"format"           label:"--format"       mapstructure:"format"       validate:"required"`
	Key         string `json:"key,omitempty"    label:"--key"          mapstructure:"key"          validate:"required_unless=Mode generate"`
	StrictInput bool   `json:"strict-input"     label:"--strict-input" mapstructure:"strict-input"`
	StrictKey   bool   `json:"strict-key"       label:"--strict-key"   mapstructure:"strict-key"`
	Parallel    int    `json:"parallel"         label:"--parallel"     mapstructure:"parallel"     validate:"min=1"`
	Quiet       bool   `json:"quiet"            label:"--quiet"        mapstructure:"quiet"        validate:"exclusive=Verbose"`
	Verbose     bool   `json:"verbose"          label:"--verbose"      mapstructure:"verbose"`
	Show        bool   `json:"-"                label:"--show"         mapstructure:"show"`
	File        string `json:"config,omitempty" label:"--config"       mapstructure:"config"`

	// Command-specific flags
	Signature string `json:"signature,omitempty" label:"--signature" mapstructure:"signature" validate:"required_if=Mode verify"`
	Exit      bool   `json:"exit,omitempty"      label:"--exit"      mapstructure:"exit"`
	Output    string `json:"output,omitempty"    label:"--output"    mapstructure:"output"    validate:"required_if=Mode generate"`
	Force     bool   `json:"force,omitempty"     label:"--force"     mapstructure:"force"`

	// Token flags
	Subject  string `json:"sub,omitempty"   label:"--sub"   mapstructure:"sub"   validate:"required_if=Mode jwt-sign"`
	Audience string `json:"aud,omitempty"   label:"--aud"   mapstructure:"aud"   validate:"required_if=Mode jwt-sign"`
	Expiry   string `json:"exp,omitempty"   label:"--exp"   mapstructure:"exp"   validate:"omitempty,expiry"`
	Token    string `json:"token,omitempty" label:"--token" mapstructure:"token" validate:"required_if=Mode jwt-verify"`

	Log logger.Settings `json:"log" mapstructure:",squash"`
}

// Display returns the value of the Show field.
func (c Config) Display() bool {
	return c.Show
}

// Validate performs configuration validation using the validator package.
// It returns a wrapped ErrUsage if any validation rules are violated.
func (c Config) Validate(config any) error {
	validator := validator.NewValidator()

	if err := registerExclusive(validator); err != nil {
		return fmt.Errorf("registering exclusive: %w", err)
	}

	if err := registerExpiry(validator); err != nil {
		return fmt.Errorf("registering expiry: %w", err)
	}

	errs := validator.Validate(config)

	switch {
	case errs == nil:
		return nil
	case len(errs) == 1:
		return fmt.Errorf("%w: %w", ErrUsage, errs[0])
	case len(errs) > 1:
		return fmt.Errorf("%ws:\n%w", ErrUsage, errors.Join(errs...))
	}

	return nil
}

// LogSettings returns the logger settings with --verbose and --quiet applied.
func (c *Config) LogSettings() logger.Settings {
	settings := c.Log

	switch {
	case c.Verbose:
		settings.Level = logger.LevelDebug
	case c.Quiet:
		settings.Level = logger.LevelError
	}

	return settings
}
