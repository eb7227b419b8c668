// Package algorithm maps user-facing format tokens to key kinds and engines.
//
// It is the one place an algorithm is added: a new constant, a table entry
// below, and if needed a new key kind and engine.
package algorithm

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/idelchi/goseal/internal/encryption"
	"github.com/idelchi/goseal/internal/keys"
	"github.com/idelchi/goseal/internal/signing"
)

// ErrUnknownAlgorithm is returned for format tokens that are not registered.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// SignFormat selects a signing algorithm.
type SignFormat int

const (
	// Blake3 is a keyed BLAKE3 digest.
	Blake3 SignFormat = iota + 1
	// Ed25519 is an Ed25519 signature.
	Ed25519
)

// EncryptFormat selects an authenticated cipher.
type EncryptFormat int

const (
	// ChaCha20Poly1305 uses a 96-bit nonce.
	ChaCha20Poly1305 EncryptFormat = iota + 1
	// XChaCha20Poly1305 uses a 192-bit nonce.
	XChaCha20Poly1305
)

// KeyFile describes where a generated key buffer is written.
type KeyFile struct {
	Name string
	Mode fs.FileMode
}

type signEntry struct {
	token    string
	sign     keys.Kind
	verify   keys.Kind
	files    []KeyFile
	signer   func(keys.Store, string) (signing.Signer, error)
	verifier func(keys.Store, string) (signing.Verifier, error)
}

type encryptEntry struct {
	token  string
	key    keys.Kind
	cipher func(keys.Store, string) (encryption.Cipher, error)
}

//nolint:gochecknoglobals // registry tables
var (
	signFormats = []SignFormat{Blake3, Ed25519}

	signTable = map[SignFormat]signEntry{
		Blake3: {
			token:  "blake3",
			sign:   keys.KindDigest,
			verify: keys.KindDigest,
			files:  []KeyFile{{Name: "blake3.txt", Mode: 0o600}},
			signer: func(store keys.Store, locator string) (signing.Signer, error) {
				key, err := store.LoadDigest(locator)
				if err != nil {
					return nil, err
				}

				return signing.NewBlake3(key), nil
			},
			verifier: func(store keys.Store, locator string) (signing.Verifier, error) {
				key, err := store.LoadDigest(locator)
				if err != nil {
					return nil, err
				}

				return signing.NewBlake3(key), nil
			},
		},
		Ed25519: {
			token:  "ed25519",
			sign:   keys.KindSigning,
			verify: keys.KindVerifying,
			files: []KeyFile{
				{Name: "ed25519.sk", Mode: 0o600},
				{Name: "ed25519.pk", Mode: 0o644},
			},
			signer: func(store keys.Store, locator string) (signing.Signer, error) {
				key, err := store.LoadSigning(locator)
				if err != nil {
					return nil, err
				}

				return signing.NewEd25519Signer(key), nil
			},
			verifier: func(store keys.Store, locator string) (signing.Verifier, error) {
				key, err := store.LoadVerifying(locator)
				if err != nil {
					return nil, err
				}

				return signing.NewEd25519Verifier(key), nil
			},
		},
	}

	encryptFormats = []EncryptFormat{ChaCha20Poly1305, XChaCha20Poly1305}

	encryptTable = map[EncryptFormat]encryptEntry{
		ChaCha20Poly1305: {
			token: "chacha20poly1305",
			key:   keys.KindAEAD,
			cipher: func(store keys.Store, locator string) (encryption.Cipher, error) {
				key, err := store.LoadAEAD(locator)
				if err != nil {
					return nil, err
				}

				return encryption.NewChaCha20(key)
			},
		},
		XChaCha20Poly1305: {
			token: "xchacha20poly1305",
			key:   keys.KindAEAD,
			cipher: func(store keys.Store, locator string) (encryption.Cipher, error) {
				key, err := store.LoadAEAD(locator)
				if err != nil {
					return nil, err
				}

				return encryption.NewXChaCha20(key)
			},
		},
	}
)

// ParseSignFormat resolves a case-insensitive token such as "Blake3".
func ParseSignFormat(token string) (SignFormat, error) {
	normalized := normalize(token)

	for _, format := range signFormats {
		if signTable[format].token == normalized {
			return format, nil
		}
	}

	return 0, unknown(token, SignTokens())
}

// ParseEncryptFormat resolves a case-insensitive token such as "ChaCha20Poly1305".
func ParseEncryptFormat(token string) (EncryptFormat, error) {
	normalized := normalize(token)

	for _, format := range encryptFormats {
		if encryptTable[format].token == normalized {
			return format, nil
		}
	}

	return 0, unknown(token, EncryptTokens())
}

// SignTokens lists the valid signing tokens.
func SignTokens() []string {
	tokens := make([]string, 0, len(signFormats))
	for _, format := range signFormats {
		tokens = append(tokens, signTable[format].token)
	}

	return tokens
}

// EncryptTokens lists the valid cipher tokens.
func EncryptTokens() []string {
	tokens := make([]string, 0, len(encryptFormats))
	for _, format := range encryptFormats {
		tokens = append(tokens, encryptTable[format].token)
	}

	return tokens
}

func (f SignFormat) String() string {
	if entry, ok := signTable[f]; ok {
		return entry.token
	}

	return fmt.Sprintf("SignFormat(%d)", int(f))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *SignFormat) UnmarshalText(text []byte) error {
	format, err := ParseSignFormat(string(text))
	if err != nil {
		return err
	}

	*f = format

	return nil
}

// KeyKinds returns the key kinds used to sign and to verify.
func (f SignFormat) KeyKinds() (sign, verify keys.Kind) {
	entry := signTable[f]

	return entry.sign, entry.verify
}

// KeyFiles returns where generated keys are written, in generation order.
func (f SignFormat) KeyFiles() []KeyFile {
	return append([]KeyFile(nil), signTable[f].files...)
}

// Signer loads the signing key at locator and returns the engine for it.
func (f SignFormat) Signer(store keys.Store, locator string) (signing.Signer, error) {
	entry, ok := signTable[f]
	if !ok {
		return nil, unknown(f.String(), SignTokens())
	}

	return entry.signer(store, locator)
}

// Verifier loads the verifying key at locator and returns the engine for it.
func (f SignFormat) Verifier(store keys.Store, locator string) (signing.Verifier, error) {
	entry, ok := signTable[f]
	if !ok {
		return nil, unknown(f.String(), SignTokens())
	}

	return entry.verifier(store, locator)
}

func (f EncryptFormat) String() string {
	if entry, ok := encryptTable[f]; ok {
		return entry.token
	}

	return fmt.Sprintf("EncryptFormat(%d)", int(f))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *EncryptFormat) UnmarshalText(text []byte) error {
	format, err := ParseEncryptFormat(string(text))
	if err != nil {
		return err
	}

	*f = format

	return nil
}

// KeyKind returns the key kind the cipher loads.
func (f EncryptFormat) KeyKind() keys.Kind {
	return encryptTable[f].key
}

// Cipher loads the key at locator and returns the engine for it.
func (f EncryptFormat) Cipher(store keys.Store, locator string) (encryption.Cipher, error) {
	entry, ok := encryptTable[f]
	if !ok {
		return nil, unknown(f.String(), EncryptTokens())
	}

	return entry.cipher(store, locator)
}

func normalize(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}

func unknown(token string, valid []string) error {
	return fmt.Errorf("%w: %q, valid formats are: %s", ErrUnknownAlgorithm, token, strings.Join(valid, ", "))
}
