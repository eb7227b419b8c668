// Package signing computes and checks keyed digests and digital signatures.
//
// Inputs are buffered in full before hashing.
package signing

import (
	"crypto/hmac"
	"errors"
	"fmt"
	"io"

	"github.com/cloudflare/circl/sign/ed25519"
	"lukechampine.com/blake3"

	"github.com/idelchi/goseal/internal/keys"
)

const (
	// DigestSize is the length of a Blake3 tag.
	DigestSize = 32
	// SignatureSize is the length of an Ed25519 signature.
	SignatureSize = ed25519.SignatureSize
)

// ErrMalformedSignature is returned for signatures that cannot possibly be valid.
var ErrMalformedSignature = errors.New("malformed signature")

// Signer produces a tag or signature over a stream.
type Signer interface {
	Sign(reader io.Reader) ([]byte, error)
}

// Verifier checks a tag or signature over a stream.
// A well-formed signature that does not match is reported as false, not as an error.
type Verifier interface {
	Verify(reader io.Reader, sig []byte) (bool, error)
}

// Blake3 is a keyed BLAKE3 digest. It both signs and verifies.
type Blake3 struct {
	key keys.DigestKey
}

// NewBlake3 returns a keyed digest for key.
func NewBlake3(key keys.DigestKey) *Blake3 {
	return &Blake3{key: key}
}

// Sign returns the 32-byte keyed hash of the stream.
func (b *Blake3) Sign(reader io.Reader) ([]byte, error) {
	data, err := readAll(reader)
	if err != nil {
		return nil, err
	}

	return b.sum(data), nil
}

// Verify recomputes the keyed hash and compares it with sig.
func (b *Blake3) Verify(reader io.Reader, sig []byte) (bool, error) {
	data, err := readAll(reader)
	if err != nil {
		return false, err
	}

	return hmac.Equal(b.sum(data), sig), nil
}

func (b *Blake3) sum(data []byte) []byte {
	hasher := blake3.New(DigestSize, b.key[:])
	hasher.Write(data)

	return hasher.Sum(nil)
}

// Ed25519Signer signs with an Ed25519 private key.
type Ed25519Signer struct {
	key keys.SigningKey
}

// NewEd25519Signer returns a signer for key.
func NewEd25519Signer(key keys.SigningKey) *Ed25519Signer {
	return &Ed25519Signer{key: key}
}

// Sign returns the deterministic 64-byte signature of the stream.
func (s *Ed25519Signer) Sign(reader io.Reader) ([]byte, error) {
	data, err := readAll(reader)
	if err != nil {
		return nil, err
	}

	return ed25519.Sign(s.key.Private(), data), nil
}

// Ed25519Verifier checks Ed25519 signatures against a public key.
type Ed25519Verifier struct {
	key keys.VerifyingKey
}

// NewEd25519Verifier returns a verifier for key.
func NewEd25519Verifier(key keys.VerifyingKey) *Ed25519Verifier {
	return &Ed25519Verifier{key: key}
}

// Verify reports whether sig is a valid signature of the stream.
// Signatures that are not exactly 64 bytes fail with ErrMalformedSignature
// before the input is read. Non-canonical encodings, and a public key or R
// of small order, verify as false.
func (v *Ed25519Verifier) Verify(reader io.Reader, sig []byte) (bool, error) {
	if len(sig) != SignatureSize {
		return false, fmt.Errorf("%w: ed25519 signature must be %d bytes, got %d",
			ErrMalformedSignature, SignatureSize, len(sig))
	}

	data, err := readAll(reader)
	if err != nil {
		return false, err
	}

	if keys.CheckPoint(v.key[:]) != nil || keys.CheckPoint(sig[:ed25519.PublicKeySize]) != nil {
		return false, nil
	}

	return ed25519.Verify(v.key.PublicKey(), data, sig), nil
}

func readAll(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	return data, nil
}
