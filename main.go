// Command goseal signs, verifies, encrypts and decrypts text.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/goseal/internal/commands"
	"github.com/idelchi/goseal/internal/config"
)

// Global variable for CI stamping.
var version = "unknown - unofficial & generated by unknown"

func main() {
	cfg := &config.Config{}

	root := commands.NewRootCommand(cfg, version)

	if err := root.Execute(); err != nil {
		if errors.Is(err, cobraext.ErrExitGracefully) {
			return
		}

		fmt.Fprintln(os.Stderr, err)

		os.Exit(1)
	}
}
