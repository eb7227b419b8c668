package encryption

import (
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/idelchi/goseal/internal/keys"
)

// Cipher seals a stream into a text envelope and opens it again.
type Cipher interface {
	// Encrypt returns the text envelope for the stream's contents.
	Encrypt(reader io.Reader) ([]byte, error)
	// Decrypt reads a text envelope from the stream and returns the plaintext.
	Decrypt(reader io.Reader) ([]byte, error)
}

// ChaCha20 is ChaCha20-Poly1305 with a 96-bit random nonce.
type ChaCha20 struct {
	aead cipher.AEAD
	rand io.Reader
}

// Option configures a ChaCha20 cipher.
type Option func(*ChaCha20)

// WithRand sets the nonce source. The default is crypto/rand.
func WithRand(r io.Reader) Option {
	return func(c *ChaCha20) {
		c.rand = r
	}
}

// NewChaCha20 returns a ChaCha20-Poly1305 cipher for key.
func NewChaCha20(key keys.AEADKey, opts ...Option) (*ChaCha20, error) {
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	c := &ChaCha20{aead: aead, rand: rand.Reader}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Encrypt seals the stream under a fresh nonce.
func (c *ChaCha20) Encrypt(reader io.Reader) ([]byte, error) {
	plaintext, err := readAll(reader)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, chacha20poly1305.NonceSize)
	if _, err := io.ReadFull(c.rand, nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}

	envelope := Envelope{
		Ciphertext: c.aead.Seal(nil, nonce, plaintext, nil),
		Nonce:      nonce,
	}

	return []byte(envelope.String()), nil
}

// Decrypt opens a text envelope produced by Encrypt.
func (c *ChaCha20) Decrypt(reader io.Reader) ([]byte, error) {
	text, err := readAll(reader)
	if err != nil {
		return nil, err
	}

	envelope, err := ParseEnvelope(text, chacha20poly1305.NonceSize)
	if err != nil {
		return nil, err
	}

	if len(envelope.Ciphertext) < c.aead.Overhead() {
		return nil, fmt.Errorf("%w: ciphertext shorter than the authentication tag", ErrMalformedEnvelope)
	}

	plaintext, err := c.aead.Open(nil, envelope.Nonce, envelope.Ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthentication, err)
	}

	return plaintext, nil
}

func readAll(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	return data, nil
}
