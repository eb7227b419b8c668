package encryption

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"
)

// Record field numbers.
const (
	fieldCiphertext protowire.Number = 1
	fieldNonce      protowire.Number = 2
)

// Envelope carries a ciphertext together with the nonce it was sealed under.
type Envelope struct {
	Ciphertext []byte
	Nonce      []byte
}

// MarshalBinary encodes the envelope as a protobuf record.
func (e Envelope) MarshalBinary() ([]byte, error) {
	var b []byte

	b = protowire.AppendTag(b, fieldCiphertext, protowire.BytesType)
	b = protowire.AppendBytes(b, e.Ciphertext)
	b = protowire.AppendTag(b, fieldNonce, protowire.BytesType)
	b = protowire.AppendBytes(b, e.Nonce)

	return b, nil
}

// UnmarshalBinary decodes a protobuf record. Unknown fields are skipped.
func (e *Envelope) UnmarshalBinary(b []byte) error {
	var decoded Envelope

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %w", ErrMalformedEnvelope, protowire.ParseError(n))
		}

		b = b[n:]

		if (num == fieldCiphertext || num == fieldNonce) && typ == protowire.BytesType {
			value, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return fmt.Errorf("%w: field %d: %w", ErrMalformedEnvelope, num, protowire.ParseError(n))
			}

			if num == fieldCiphertext {
				decoded.Ciphertext = append([]byte{}, value...)
			} else {
				decoded.Nonce = append([]byte{}, value...)
			}

			b = b[n:]

			continue
		}

		n = protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return fmt.Errorf("%w: field %d: %w", ErrMalformedEnvelope, num, protowire.ParseError(n))
		}

		b = b[n:]
	}

	*e = decoded

	return nil
}

// String returns the text form of the envelope.
func (e Envelope) String() string {
	record, _ := e.MarshalBinary() //nolint:errcheck // encoding into a fresh slice cannot fail

	return base64.RawURLEncoding.EncodeToString(record)
}

// ParseEnvelope decodes the text form of an envelope and checks that the
// nonce is nonceSize bytes long. Surrounding whitespace is ignored.
func ParseEnvelope(text []byte, nonceSize int) (Envelope, error) {
	if !utf8.Valid(text) {
		return Envelope{}, fmt.Errorf("%w: not valid UTF-8 text", ErrMalformedEnvelope)
	}

	record, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(string(text)))
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: decoding base64: %w", ErrMalformedEnvelope, err)
	}

	var envelope Envelope
	if err := envelope.UnmarshalBinary(record); err != nil {
		return Envelope{}, err
	}

	if len(envelope.Nonce) != nonceSize {
		return Envelope{}, fmt.Errorf("%w: nonce must be %d bytes, got %d",
			ErrMalformedEnvelope, nonceSize, len(envelope.Nonce))
	}

	return envelope, nil
}
