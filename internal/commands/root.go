package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/goseal/internal/algorithm"
	"github.com/idelchi/goseal/internal/config"
	"github.com/idelchi/goseal/internal/logger"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version, loadConfigFile)

	root.Use = "goseal [flags] command [flags]"
	root.Short = "Text signing and encryption utility"
	root.Long = `A text signing and encryption utility.
Provides commands for key generation, signing, verification, encryption,
decryption and JSON Web Tokens.

Inputs are read from standard input ("-"), from a file, or, if no such file exists,
from the argument itself. Every flag can also be set through a GOSEAL_ prefixed
environment variable or a JSON config file.`

	flags := root.PersistentFlags()
	flags.SortFlags = false

	flags.BoolP("show", "s", false, "Show the configuration and exit")
	flags.IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers when signing several inputs")
	flags.BoolP("quiet", "q", false, "Only log errors")
	flags.BoolP("verbose", "v", false, "Log debug output")
	flags.StringP("config", "c", "", "Path to a JSON config file, comments allowed")

	flags.StringP("key", "k", "", `Key locator: a file, or "-" for standard input`)
	flags.Bool("strict-input", false, "Fail on inputs that are neither a file nor standard input")
	flags.Bool("strict-key", false, "Require digest and encryption keys to be exactly 32 bytes")

	flags.String("log-level", logger.LevelInfo, "Log level, one of debug, info, warning, error")
	flags.String("log-type", logger.TypeConsole, "Log sink, one of console, file")
	flags.String("log-file", "", "Log file path for the file sink")
	flags.Int("log-max-size", 10, "Maximum log file size in megabytes before rotation")
	flags.Int("log-max-backups", 3, "Maximum number of rotated log files to keep")
	flags.Int("log-max-age", 28, "Maximum number of days to keep rotated log files")

	root.AddCommand(
		NewSignCommand(cfg),
		NewVerifyCommand(cfg),
		NewGenerateCommand(cfg),
		NewEncryptCommand(cfg),
		NewDecryptCommand(cfg),
		NewJWTCommand(cfg),
	)

	return root
}

func signFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", algorithm.Blake3.String(), "Signature format, one of "+joined(algorithm.SignTokens()))
}

func encryptFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", algorithm.ChaCha20Poly1305.String(), "Cipher format, one of "+joined(algorithm.EncryptTokens()))
}
