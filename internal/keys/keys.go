// Package keys loads and generates the fixed-size key material used by the
// signing and encryption engines.
//
// Key values are immutable and owned by the call that loaded them. Nothing is
// cached between calls.
package keys

import (
	"fmt"

	"github.com/cloudflare/circl/sign/ed25519"
)

// Size is the length in bytes of every key kind.
const Size = 32

// Kind identifies the shape of a key.
type Kind int

const (
	// KindDigest is a secret for keyed hashing.
	KindDigest Kind = iota + 1
	// KindSigning is the private half of a signature keypair.
	KindSigning
	// KindVerifying is the public half of a signature keypair.
	KindVerifying
	// KindAEAD is a secret for authenticated encryption.
	KindAEAD
	// KindHMAC is a variable-length secret for token MACs.
	KindHMAC
)

func (k Kind) String() string {
	switch k {
	case KindDigest:
		return "digest"
	case KindSigning:
		return "signing"
	case KindVerifying:
		return "verifying"
	case KindAEAD:
		return "aead"
	case KindHMAC:
		return "hmac"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// DigestKey is the secret of a keyed digest.
type DigestKey [Size]byte

// NewDigestKey takes the first 32 bytes of b. With strict set, b must be exactly 32 bytes long.
func NewDigestKey(b []byte, strict bool) (DigestKey, error) {
	var key DigestKey

	if err := truncate(key[:], b, KindDigest, strict); err != nil {
		return DigestKey{}, err
	}

	return key, nil
}

// AEADKey is the secret of an authenticated cipher.
type AEADKey [Size]byte

// NewAEADKey takes the first 32 bytes of b. With strict set, b must be exactly 32 bytes long.
func NewAEADKey(b []byte, strict bool) (AEADKey, error) {
	var key AEADKey

	if err := truncate(key[:], b, KindAEAD, strict); err != nil {
		return AEADKey{}, err
	}

	return key, nil
}

// SigningKey is an Ed25519 private key.
type SigningKey struct {
	private ed25519.PrivateKey
}

// NewSigningKey builds a signing key from a raw 32-byte seed.
func NewSigningKey(seed []byte) (SigningKey, error) {
	if err := exact(seed, KindSigning); err != nil {
		return SigningKey{}, err
	}

	return SigningKey{private: ed25519.NewKeyFromSeed(seed)}, nil
}

// Private returns the expanded Ed25519 private key.
func (k SigningKey) Private() ed25519.PrivateKey {
	return k.private
}

// Seed returns the raw 32-byte private key.
func (k SigningKey) Seed() []byte {
	return k.private.Seed()
}

// Public returns the matching verifying key.
func (k SigningKey) Public() VerifyingKey {
	var key VerifyingKey

	copy(key[:], k.private[ed25519.SeedSize:])

	return key
}

// VerifyingKey is an Ed25519 public key.
type VerifyingKey [Size]byte

// NewVerifyingKey builds a verifying key from exactly 32 raw bytes.
// The bytes must encode a canonical curve point that is not of small order.
func NewVerifyingKey(b []byte) (VerifyingKey, error) {
	var key VerifyingKey

	if err := exact(b, KindVerifying); err != nil {
		return key, err
	}

	if err := CheckPoint(b); err != nil {
		return key, fmt.Errorf("%w: %w", ErrMalformedKey, err)
	}

	copy(key[:], b)

	return key, nil
}

// PublicKey returns the key in the form circl expects.
func (k VerifyingKey) PublicKey() ed25519.PublicKey {
	return ed25519.PublicKey(k[:])
}

// HMACKey is the secret of a token MAC. It is used in full.
type HMACKey []byte

// NewHMACKey copies b, which must be at least 32 bytes long.
func NewHMACKey(b []byte) (HMACKey, error) {
	if len(b) < Size {
		return nil, fmt.Errorf("%w: %s key must be at least %d bytes, got %d", ErrMalformedKey, KindHMAC, Size, len(b))
	}

	return append(HMACKey{}, b...), nil
}

func truncate(dst, src []byte, kind Kind, strict bool) error {
	if len(src) < Size || (strict && len(src) != Size) {
		return fmt.Errorf("%w: %s key must be %d bytes, got %d", ErrMalformedKey, kind, Size, len(src))
	}

	copy(dst, src[:Size])

	return nil
}

func exact(b []byte, kind Kind) error {
	if len(b) != Size {
		return fmt.Errorf("%w: %s key must be exactly %d bytes, got %d", ErrMalformedKey, kind, Size, len(b))
	}

	return nil
}
