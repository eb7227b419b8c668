package logic

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/idelchi/goseal/internal/algorithm"
	"github.com/idelchi/goseal/internal/config"
	"github.com/idelchi/goseal/internal/fileutil"
	"github.com/idelchi/goseal/internal/input"
	"github.com/idelchi/goseal/internal/keys"
	"github.com/idelchi/goseal/internal/logger"
)

// Streams are the standard streams and logger a command runs against.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Log *slog.Logger
}

// NewEngine returns an Engine configured from cfg.
func NewEngine(cfg *config.Config, streams Streams) *Engine {
	log := streams.Log
	if log == nil {
		log = logger.Discard()
	}

	resolver := input.Resolver{Stdin: streams.In, Strict: cfg.StrictInput, Logger: log}

	return &Engine{
		Inputs: resolver,
		Keys:   keys.Store{Resolver: resolver, Strict: cfg.StrictKey},
		Logger: log,
	}
}

// RunSign signs every input and prints the base64url signatures in input order.
// A single input prints the bare signature, several print "<signature>  <input>" lines.
//
//nolint:cyclop // batch collection and reporting
func RunSign(cfg *config.Config, streams Streams) error {
	format, err := algorithm.ParseSignFormat(cfg.Format)
	if err != nil {
		return err
	}

	if err := checkStdin(append([]string{cfg.Key}, cfg.Inputs...)...); err != nil {
		return err
	}

	engine := NewEngine(cfg, streams)

	if len(cfg.Inputs) == 1 {
		signature, err := engine.Sign(cfg.Inputs[0], cfg.Key, format)
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintln(streams.Out, base64.RawURLEncoding.EncodeToString(signature)); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}

		return nil
	}

	type result struct {
		signature []byte
		err       error
	}

	// The key is read once so that "-" is drained by a single reader.
	signer, err := engine.Signer(cfg.Key, format)
	if err != nil {
		return err
	}

	results := make([]result, len(cfg.Inputs))

	group := errgroup.Group{}
	group.SetLimit(max(cfg.Parallel, 1))

	for i, locator := range cfg.Inputs {
		group.Go(func() error {
			signature, err := engine.SignWith(locator, signer)
			results[i] = result{signature: signature, err: err}

			return nil
		})
	}

	_ = group.Wait() //nolint:errcheck // workers report through results

	var errs []error

	for i, res := range results {
		locator := cfg.Inputs[i]

		if res.err != nil {
			engine.Logger.Error("signing failed", "input", locator, "error", res.err)
			errs = append(errs, fmt.Errorf("%q: %w", locator, res.err))

			continue
		}

		if _, err := fmt.Fprintf(streams.Out, "%s  %s\n", base64.RawURLEncoding.EncodeToString(res.signature), locator); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("signing %d of %d inputs failed: %w", len(errs), len(cfg.Inputs), errors.Join(errs...))
	}

	return nil
}

// RunVerify prints "true" or "false".
// A mismatch is only an error when cfg.Exit is set.
func RunVerify(cfg *config.Config, streams Streams) error {
	format, err := algorithm.ParseSignFormat(cfg.Format)
	if err != nil {
		return err
	}

	locator := cfg.Inputs[0]

	if err := checkStdin(cfg.Key, locator); err != nil {
		return err
	}

	ok, err := NewEngine(cfg, streams).VerifyText(locator, cfg.Key, format, cfg.Signature)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(streams.Out, ok); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if !ok && cfg.Exit {
		return ErrVerificationFailed
	}

	return nil
}

// RunGenerate writes fresh key files into the output directory.
// Existing files are left untouched unless cfg.Force is set.
// If a later file fails to write, the ones already written are removed.
func RunGenerate(cfg *config.Config, streams Streams) error {
	format, err := algorithm.ParseSignFormat(cfg.Format)
	if err != nil {
		return err
	}

	engine := NewEngine(cfg, streams)

	files, err := engine.Generate(format)
	if err != nil {
		return err
	}

	// Check every destination first so a keypair is never half written.
	for _, file := range files {
		if err := fileutil.Guard(filepath.Join(cfg.Output, file.Name), cfg.Force); err != nil {
			return err //nolint:wrapcheck // already names the path
		}
	}

	written := make([]string, 0, len(files))

	for _, file := range files {
		path := filepath.Join(cfg.Output, file.Name)

		if err := fileutil.WriteFile(path, file.Data, file.Mode, cfg.Force); err != nil {
			for _, done := range written {
				if rmErr := os.Remove(done); rmErr != nil {
					engine.Logger.Warn("removing partial keypair", "path", done, "error", rmErr)
				}
			}

			return fmt.Errorf("writing %s key: %w", format, err)
		}

		written = append(written, path)

		engine.Logger.Info("wrote key", "format", format, "path", path, "mode", file.Mode)
	}

	return nil
}

// RunEncrypt prints the text envelope followed by a newline.
func RunEncrypt(cfg *config.Config, streams Streams) error {
	format, err := algorithm.ParseEncryptFormat(cfg.Format)
	if err != nil {
		return err
	}

	locator := cfg.Inputs[0]

	if err := checkStdin(cfg.Key, locator); err != nil {
		return err
	}

	envelope, err := NewEngine(cfg, streams).Encrypt(locator, cfg.Key, format)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(streams.Out, "%s\n", envelope); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

// RunDecrypt writes the plaintext as is.
func RunDecrypt(cfg *config.Config, streams Streams) error {
	format, err := algorithm.ParseEncryptFormat(cfg.Format)
	if err != nil {
		return err
	}

	locator := cfg.Inputs[0]

	if err := checkStdin(cfg.Key, locator); err != nil {
		return err
	}

	plaintext, err := NewEngine(cfg, streams).Decrypt(locator, cfg.Key, format)
	if err != nil {
		return err
	}

	if _, err := streams.Out.Write(plaintext); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

// checkStdin rejects more than one locator naming standard input.
func checkStdin(locators ...string) error {
	seen := 0

	for _, locator := range locators {
		if locator == input.Stdin {
			seen++
		}
	}

	if seen > 1 {
		return ErrStdinReused
	}

	return nil
}
