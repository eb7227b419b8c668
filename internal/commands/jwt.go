package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/goseal/internal/config"
	"github.com/idelchi/goseal/internal/logic"
	"github.com/idelchi/goseal/internal/token"
)

// NewJWTCommand creates a new cobra command grouping the token subcommands.
func NewJWTCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jwt command [flags]",
		Short: "Issue and check HMAC-signed JSON Web Tokens",
		Long: `Issue and check JSON Web Tokens signed with a shared secret.
The secret is read from --key and must be at least 32 bytes long.`,
		Args: cobra.NoArgs,
	}

	cmd.AddCommand(NewJWTSignCommand(cfg), NewJWTVerifyCommand(cfg))

	return cmd
}

// NewJWTSignCommand creates a new cobra command for the jwt sign subcommand.
func NewJWTSignCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sign [flags]",
		Short:   "Print a token for a subject and audience",
		Args:    cobra.NoArgs,
		PreRunE: preRun(cfg, config.ModeJWTSign),
		RunE:    run(cfg, logic.RunJWTSign),
	}

	tokenFormatFlag(cmd)
	cmd.Flags().String("sub", "", "Subject claim")
	cmd.Flags().StringP("aud", "a", "", "Audience claim")
	cmd.Flags().StringP("exp", "e", token.DefaultExpiry, "Lifetime, a number followed by s, m, h or d")

	return cmd
}

// NewJWTVerifyCommand creates a new cobra command for the jwt verify subcommand.
func NewJWTVerifyCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "verify [flags]",
		Short:   "Check a token and print its claims",
		Long:    "Check the signature and expiry of a token and print its claims. The audience is not checked.",
		Args:    cobra.NoArgs,
		PreRunE: preRun(cfg, config.ModeJWTVerify),
		RunE:    run(cfg, logic.RunJWTVerify),
	}

	tokenFormatFlag(cmd)
	cmd.Flags().StringP("token", "t", "", "Token to check")

	return cmd
}

func tokenFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", token.Methods()[0], "Token algorithm, one of "+joined(token.Methods()))
}
