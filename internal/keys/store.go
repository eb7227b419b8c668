package keys

import (
	"github.com/idelchi/goseal/internal/input"
)

// Store reads key material from locators.
// Key locators never fall back to literal data: a missing key file is an error.
type Store struct {
	// Resolver reads the key bytes. Its Strict flag is ignored.
	Resolver input.Resolver

	// Strict rejects digest and AEAD keys longer than 32 bytes.
	Strict bool
}

// LoadDigest reads a keyed-digest secret.
func (s Store) LoadDigest(locator string) (DigestKey, error) {
	b, err := s.read(locator)
	if err != nil {
		return DigestKey{}, err
	}

	return NewDigestKey(b, s.Strict)
}

// LoadAEAD reads an authenticated-encryption secret.
func (s Store) LoadAEAD(locator string) (AEADKey, error) {
	b, err := s.read(locator)
	if err != nil {
		return AEADKey{}, err
	}

	return NewAEADKey(b, s.Strict)
}

// LoadSigning reads a raw 32-byte Ed25519 private key.
func (s Store) LoadSigning(locator string) (SigningKey, error) {
	b, err := s.read(locator)
	if err != nil {
		return SigningKey{}, err
	}

	return NewSigningKey(b)
}

// LoadVerifying reads a raw 32-byte Ed25519 public key.
func (s Store) LoadVerifying(locator string) (VerifyingKey, error) {
	b, err := s.read(locator)
	if err != nil {
		return VerifyingKey{}, err
	}

	return NewVerifyingKey(b)
}

// LoadHMAC reads a token secret. Longer secrets are kept whole.
func (s Store) LoadHMAC(locator string) (HMACKey, error) {
	b, err := s.read(locator)
	if err != nil {
		return nil, err
	}

	return NewHMACKey(b)
}

func (s Store) read(locator string) ([]byte, error) {
	resolver := s.Resolver
	resolver.Strict = true

	return resolver.ReadAll(locator)
}
