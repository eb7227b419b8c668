// Package input resolves caller-supplied locators into byte streams.
//
// A locator is one of:
//   - "-" for standard input
//   - a path to an existing file
//   - any other string, which is used as the input itself
//
// The last case means a mistyped file name is read as literal data. Set
// Resolver.Strict to turn it into an error instead.
package input

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Stdin is the locator that selects standard input.
const Stdin = "-"

// ErrIO is returned when an input or key source cannot be read.
var ErrIO = errors.New("io failure")

// Resolver turns locators into readable streams.
type Resolver struct {
	// Stdin is read for the "-" locator. Defaults to os.Stdin.
	Stdin io.Reader

	// Strict disables the literal-data fallback for paths that do not exist.
	Strict bool

	// Logger receives a warning whenever a locator is read as literal data.
	Logger *slog.Logger
}

// Open returns a stream for the locator. The caller must close it.
// Standard input is streamed as is; cobraext.PipeOrArg and stdin.Read return it
// as a string with the trailing newline trimmed, which changes what is signed.
func (r Resolver) Open(locator string) (io.ReadCloser, error) {
	if locator == Stdin {
		return io.NopCloser(r.stdin()), nil
	}

	info, err := os.Stat(locator)

	switch {
	case err == nil:
		if info.IsDir() {
			return nil, fmt.Errorf("%w: %q is a directory", ErrIO, locator)
		}

		file, err := os.Open(filepath.Clean(locator))
		if err != nil {
			return nil, fmt.Errorf("%w: opening %q: %w", ErrIO, locator, err)
		}

		return file, nil
	case errors.Is(err, fs.ErrNotExist):
		if r.Strict {
			return nil, fmt.Errorf("%w: %w", ErrIO, err)
		}

		r.logger().Warn("no such file, reading locator as literal data", "locator", locator)

		return io.NopCloser(bytes.NewReader([]byte(locator))), nil
	default:
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
}

// ReadAll buffers the whole stream behind the locator.
func (r Resolver) ReadAll(locator string) ([]byte, error) {
	reader, err := r.Open(locator)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %q: %w", ErrIO, locator, err)
	}

	return data, nil
}

func (r Resolver) stdin() io.Reader {
	if r.Stdin != nil {
		return r.Stdin
	}

	return os.Stdin
}

func (r Resolver) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}

	return slog.Default()
}
