package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"github.com/tidwall/jsonc"
)

// ReadFile merges a JSON-with-comments file into the global viper instance.
// Values from the file sit below flags set on the command line and
// GOSEAL_* environment variables, and above flag defaults.
func ReadFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is from user-supplied config
	if err != nil {
		return fmt.Errorf("reading config file %q: %w", path, err)
	}

	viper.SetConfigType("json")

	if err := viper.ReadConfig(bytes.NewReader(jsonc.ToJSONInPlace(data))); err != nil {
		return fmt.Errorf("parsing config file %q: %w", path, err)
	}

	return nil
}
