// Package commands provides the command-line interface for the goseal tool.
//
// It implements commands for:
//   - signing and verifying text
//   - generating keys
//   - encrypting and decrypting text
//   - issuing and checking JSON Web Tokens
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/gogen/pkg/stdin"
	"github.com/idelchi/goseal/internal/config"
	"github.com/idelchi/goseal/internal/input"
	"github.com/idelchi/goseal/internal/logger"
	"github.com/idelchi/goseal/internal/logic"
)

// runner is one of the logic.Run* functions.
type runner func(*config.Config, logic.Streams) error

// preRun returns a PreRunE handler that sets the positional inputs and
// validates the configuration. Commands reading input default to standard input.
func preRun(cfg *config.Config, mode config.Mode) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		cfg.Mode = mode

		switch {
		case mode == config.ModeGenerate, mode == config.ModeJWTSign, mode == config.ModeJWTVerify:
			cfg.Inputs = nil
		case len(args) == 0:
			cfg.Inputs = []string{input.Stdin}
		default:
			cfg.Inputs = args
		}

		return cobraext.Validate(cfg, cfg) //nolint:wrapcheck // validation errors are descriptive
	}
}

// run returns a RunE handler that builds the logger and hands over to the runner.
func run(cfg *config.Config, fn runner) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		settings := cfg.LogSettings()
		settings.Console = cmd.ErrOrStderr()

		log, err := logger.New(settings)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}

		log.Debug("running", "command", cfg.Mode, "format", cfg.Format, "inputs", len(cfg.Inputs))

		if waitsOnTerminal(cmd, cfg) {
			log.Info("reading standard input from the terminal, end it with Ctrl-D")
		}

		return fn(cfg, logic.Streams{
			In:  cmd.InOrStdin(),
			Out: cmd.OutOrStdout(),
			Log: log,
		})
	}
}

// loadConfigFile merges the --config file, if one is set, below flags and environment.
func loadConfigFile(_ *cobra.Command, _ []string) error {
	path := viper.GetString("config")
	if path == "" {
		return nil
	}

	return config.ReadFile(path) //nolint:wrapcheck // already names the file
}

// waitsOnTerminal reports whether a locator selects standard input while it
// is an interactive terminal rather than a pipe.
func waitsOnTerminal(cmd *cobra.Command, cfg *config.Config) bool {
	if cmd.InOrStdin() != os.Stdin || stdin.IsPiped() {
		return false
	}

	return cfg.Key == input.Stdin || slices.Contains(cfg.Inputs, input.Stdin)
}
