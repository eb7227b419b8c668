// Package logic implements the operations behind the goseal commands.
//
// Engine exposes sign, verify, generate, encrypt and decrypt over locators.
// The Run* functions add what a command needs on top: configuration,
// output formatting and batching.
package logic

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/goseal/internal/algorithm"
	"github.com/idelchi/goseal/internal/input"
	"github.com/idelchi/goseal/internal/keys"
	"github.com/idelchi/goseal/internal/logger"
	"github.com/idelchi/goseal/internal/signing"
)

// Engine runs single operations. It holds no state between calls.
type Engine struct {
	Inputs    input.Resolver
	Keys      keys.Store
	Generator keys.Generator
	Logger    *slog.Logger
}

// KeyFile is a generated key buffer and where it belongs.
type KeyFile struct {
	Name string
	Mode fs.FileMode
	Data []byte
}

// Sign returns the signature of the input under the key.
func (e *Engine) Sign(locator, key string, format algorithm.SignFormat) ([]byte, error) {
	signer, err := e.Signer(key, format)
	if err != nil {
		return nil, err
	}

	return e.SignWith(locator, signer)
}

// Signer loads the signing key once. The returned signer is safe for concurrent use.
func (e *Engine) Signer(key string, format algorithm.SignFormat) (signing.Signer, error) {
	signer, err := format.Signer(e.Keys, key)
	if err != nil {
		return nil, fmt.Errorf("loading %s key: %w", format, err)
	}

	return signer, nil
}

// SignWith signs the input with an already loaded signer.
func (e *Engine) SignWith(locator string, signer signing.Signer) ([]byte, error) {
	data, err := e.read(locator)
	if err != nil {
		return nil, err
	}

	signature, err := signer.Sign(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("signing: %w", err)
	}

	return signature, nil
}

// Verify reports whether signature matches the input under the key.
// A mismatch is false, not an error.
func (e *Engine) Verify(locator, key string, format algorithm.SignFormat, signature []byte) (bool, error) {
	verifier, err := format.Verifier(e.Keys, key)
	if err != nil {
		return false, fmt.Errorf("loading %s key: %w", format, err)
	}

	data, err := e.read(locator)
	if err != nil {
		return false, err
	}

	ok, err := verifier.Verify(bytes.NewReader(data), signature)
	if err != nil {
		return false, fmt.Errorf("verifying: %w", err)
	}

	e.logger().Debug("verified", "format", format, "input", locator, "match", ok)

	return ok, nil
}

// VerifyText is Verify for a signature in its base64url text form.
func (e *Engine) VerifyText(locator, key string, format algorithm.SignFormat, text string) (bool, error) {
	signature, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return false, fmt.Errorf("%w: decoding base64: %w", signing.ErrMalformedSignature, err)
	}

	return e.Verify(locator, key, format, signature)
}

// Generate creates new key material for the format.
func (e *Engine) Generate(format algorithm.SignFormat) ([]KeyFile, error) {
	kind, _ := format.KeyKinds()

	buffers, err := e.Generator.Generate(kind)
	if err != nil {
		return nil, fmt.Errorf("generating %s key: %w", format, err)
	}

	names := format.KeyFiles()
	if len(names) != len(buffers) {
		return nil, fmt.Errorf("generating %s key: got %d buffers for %d files", format, len(buffers), len(names))
	}

	files := make([]KeyFile, len(buffers))
	for i, buffer := range buffers {
		files[i] = KeyFile{Name: names[i].Name, Mode: names[i].Mode, Data: buffer}
	}

	return files, nil
}

// Encrypt returns the text envelope of the input under the key.
func (e *Engine) Encrypt(locator, key string, format algorithm.EncryptFormat) ([]byte, error) {
	cipher, err := format.Cipher(e.Keys, key)
	if err != nil {
		return nil, fmt.Errorf("loading %s key: %w", format, err)
	}

	data, err := e.read(locator)
	if err != nil {
		return nil, err
	}

	envelope, err := cipher.Encrypt(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("encrypting: %w", err)
	}

	return envelope, nil
}

// Decrypt opens the text envelope read from the input.
func (e *Engine) Decrypt(locator, key string, format algorithm.EncryptFormat) ([]byte, error) {
	cipher, err := format.Cipher(e.Keys, key)
	if err != nil {
		return nil, fmt.Errorf("loading %s key: %w", format, err)
	}

	data, err := e.read(locator)
	if err != nil {
		return nil, err
	}

	plaintext, err := cipher.Decrypt(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decrypting: %w", err)
	}

	return plaintext, nil
}

func (e *Engine) read(locator string) ([]byte, error) {
	data, err := e.Inputs.ReadAll(locator)
	if err != nil {
		return nil, err
	}

	e.logger().Debug("read input", "input", locator, "size", humanize.IBytes(uint64(len(data))))

	return data, nil
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}

	return logger.Discard()
}
