package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/idelchi/goseal/internal/config"
	"github.com/idelchi/goseal/internal/logic"
)

// NewSignCommand creates a new cobra command for the sign subcommand.
func NewSignCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign [flags] [inputs...]",
		Short: "Sign inputs with a keyed digest or a signature",
		Long: `Sign inputs and print base64url signatures.
With several inputs, each line is "<signature>  <input>", in input order.`,
		Args:    cobra.ArbitraryArgs,
		PreRunE: preRun(cfg, config.ModeSign),
		RunE:    run(cfg, logic.RunSign),
	}

	signFormatFlag(cmd)

	return cmd
}

// NewVerifyCommand creates a new cobra command for the verify subcommand.
func NewVerifyCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "verify [flags] [input]",
		Short:   "Verify a signature and print true or false",
		Args:    cobra.MaximumNArgs(1),
		PreRunE: preRun(cfg, config.ModeVerify),
		RunE:    run(cfg, logic.RunVerify),
	}

	signFormatFlag(cmd)
	cmd.Flags().String("signature", "", "Signature to check, base64url encoded")
	cmd.Flags().BoolP("exit", "e", false, "Exit with a non-zero status if the signature does not match")

	return cmd
}

// NewGenerateCommand creates a new cobra command for the generate subcommand.
func NewGenerateCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate [flags]",
		Aliases: []string{"gen"},
		Short:   "Generate signing keys into a directory",
		Long: `Generate keys for a signature format.
blake3 writes blake3.txt, ed25519 writes ed25519.sk and ed25519.pk.`,
		Args:    cobra.NoArgs,
		PreRunE: preRun(cfg, config.ModeGenerate),
		RunE:    run(cfg, logic.RunGenerate),
	}

	signFormatFlag(cmd)
	cmd.Flags().StringP("output", "o", ".", "Directory to write the keys to")
	cmd.Flags().Bool("force", false, "Overwrite existing key files")

	return cmd
}

func joined(tokens []string) string {
	return strings.Join(tokens, ", ")
}
