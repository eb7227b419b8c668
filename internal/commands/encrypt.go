package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/goseal/internal/config"
	"github.com/idelchi/goseal/internal/logic"
)

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "encrypt [flags] [input]",
		Aliases: []string{"enc"},
		Short:   "Encrypt an input into a text envelope",
		Args:    cobra.MaximumNArgs(1),
		PreRunE: preRun(cfg, config.ModeEncrypt),
		RunE:    run(cfg, logic.RunEncrypt),
	}

	encryptFormatFlag(cmd)

	return cmd
}
