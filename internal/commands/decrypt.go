package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/goseal/internal/config"
	"github.com/idelchi/goseal/internal/logic"
)

// NewDecryptCommand creates a new cobra command for the decrypt subcommand.
func NewDecryptCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "decrypt [flags] [input]",
		Aliases: []string{"dec"},
		Short:   "Decrypt a text envelope",
		Args:    cobra.MaximumNArgs(1),
		PreRunE: preRun(cfg, config.ModeDecrypt),
		RunE:    run(cfg, logic.RunDecrypt),
	}

	encryptFormatFlag(cmd)

	return cmd
}
