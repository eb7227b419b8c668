// Package fileutil provides shared file operation helpers.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrExists is returned when a write would replace an existing file without force.
var ErrExists = errors.New("file already exists")

// TempContext holds state for an atomic file write operation.
type TempContext struct {
	TmpFile *os.File
	TmpName string
}

// NewTempContext creates a temp file next to outPath for atomic writing.
// Caller must defer CleanupOnError.
func NewTempContext(outPath string) (*TempContext, error) {
	tmpFile, err := os.CreateTemp(filepath.Dir(outPath), ".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("creating temporary file: %w", err)
	}

	return &TempContext{
		TmpFile: tmpFile,
		TmpName: tmpFile.Name(),
	}, nil
}

// CleanupOnError closes the temp file and removes it if the write failed.
func (tc *TempContext) CleanupOnError(errp *error) {
	tc.TmpFile.Close() //nolint:gosec // best-effort cleanup

	if *errp != nil {
		os.Remove(tc.TmpName) //nolint:gosec // best-effort cleanup
	}
}

// Guard returns ErrExists if outPath exists and force is not set.
func Guard(outPath string, force bool) error {
	if force {
		return nil
	}

	_, err := os.Lstat(outPath)

	switch {
	case err == nil:
		return fmt.Errorf("%w: %q, use --force to overwrite", ErrExists, outPath)
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return fmt.Errorf("stat output %q: %w", outPath, err)
	}
}

// WriteFile writes data to outPath with the given permissions through a temp
// file and a rename, so readers never see a partial file.
// An existing outPath is only replaced when force is set.
func WriteFile(outPath string, data []byte, perm fs.FileMode, force bool) (err error) {
	if err := Guard(outPath, force); err != nil {
		return err
	}

	tc, err := NewTempContext(outPath)
	if err != nil {
		return fmt.Errorf("preparing atomic write: %w", err)
	}

	defer tc.CleanupOnError(&err)

	if _, err = tc.TmpFile.Write(data); err != nil {
		return fmt.Errorf("writing content: %w", err)
	}

	if err = os.Chmod(tc.TmpName, perm); err != nil {
		return fmt.Errorf("setting file permissions: %w", err)
	}

	if err = tc.TmpFile.Close(); err != nil {
		return fmt.Errorf("closing temporary file: %w", err)
	}

	if err = os.Rename(tc.TmpName, outPath); err != nil {
		return fmt.Errorf("renaming output file: %w", err)
	}

	return nil
}
