package keys

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/cloudflare/circl/sign/ed25519"

	"github.com/idelchi/goseal/internal/genpass"
)

// Generator creates fresh key material.
type Generator struct {
	// Rand is the entropy source. Defaults to crypto/rand.
	Rand io.Reader
}

// Generate returns new raw key buffers for the kind.
// Signing keys return the private key first and the public key second.
func (g Generator) Generate(kind Kind) ([][]byte, error) {
	switch kind {
	case KindDigest:
		return g.GenerateDigest()
	case KindSigning:
		return g.GenerateSigning()
	default:
		return nil, fmt.Errorf("%w: %s", ErrGenerateUnsupported, kind)
	}
}

// GenerateDigest returns a single 32-byte printable secret.
// gogen's key.New is not used: its raw bytes are not printable and always come from crypto/rand.
func (g Generator) GenerateDigest() ([][]byte, error) {
	secret, err := genpass.Generate(Size, genpass.All, g.rand())
	if err != nil {
		return nil, fmt.Errorf("generating digest key: %w", err)
	}

	return [][]byte{[]byte(secret)}, nil
}

// GenerateSigning returns a raw Ed25519 private key and its public key.
func (g Generator) GenerateSigning() ([][]byte, error) {
	public, private, err := ed25519.GenerateKey(g.rand())
	if err != nil {
		return nil, fmt.Errorf("generating signing key: %w", err)
	}

	return [][]byte{private.Seed(), []byte(public)}, nil
}

func (g Generator) rand() io.Reader {
	if g.Rand != nil {
		return g.Rand
	}

	return rand.Reader
}
