package encryption

import (
	"bytes"
	"fmt"
	"io"

	"github.com/tink-crypto/tink-go/v2/aead"
	"github.com/tink-crypto/tink-go/v2/insecurecleartextkeyset"
	"github.com/tink-crypto/tink-go/v2/keyset"
	tinkpb "github.com/tink-crypto/tink-go/v2/proto/tink_go_proto"
	xchachapb "github.com/tink-crypto/tink-go/v2/proto/xchacha20_poly1305_go_proto"
	"github.com/tink-crypto/tink-go/v2/tink"

	"golang.org/x/crypto/chacha20poly1305"
	"google.golang.org/protobuf/proto"

	"github.com/idelchi/goseal/internal/keys"
)

// XNonceSize is the XChaCha20-Poly1305 nonce length.
const XNonceSize = 24

const xchachaTypeURL = "type.googleapis.com/google.crypto.tink.XChaCha20Poly1305Key"

// XChaCha20 is XChaCha20-Poly1305 backed by a Tink AEAD primitive.
// Tink samples the 192-bit nonce from crypto/rand on every call and prefixes
// it to the ciphertext, which is split off into the envelope. The nonce source
// cannot be replaced; use ChaCha20 with WithRand where a deterministic source
// is needed.
type XChaCha20 struct {
	aead tink.AEAD
}

// NewXChaCha20 returns an XChaCha20-Poly1305 cipher for key.
func NewXChaCha20(key keys.AEADKey) (*XChaCha20, error) {
	handle, err := newXChaCha20KeyHandle(key[:])
	if err != nil {
		return nil, err
	}

	primitive, err := aead.New(handle)
	if err != nil {
		return nil, fmt.Errorf("creating AEAD: %w", err)
	}

	return &XChaCha20{aead: primitive}, nil
}

// Encrypt seals the stream under a fresh nonce.
func (x *XChaCha20) Encrypt(reader io.Reader) ([]byte, error) {
	plaintext, err := readAll(reader)
	if err != nil {
		return nil, err
	}

	sealed, err := x.aead.Encrypt(plaintext, nil)
	if err != nil {
		return nil, fmt.Errorf("encrypting: %w", err)
	}

	envelope := Envelope{
		Nonce:      sealed[:XNonceSize],
		Ciphertext: sealed[XNonceSize:],
	}

	return []byte(envelope.String()), nil
}

// Decrypt opens a text envelope produced by Encrypt.
func (x *XChaCha20) Decrypt(reader io.Reader) ([]byte, error) {
	text, err := readAll(reader)
	if err != nil {
		return nil, err
	}

	envelope, err := ParseEnvelope(text, XNonceSize)
	if err != nil {
		return nil, err
	}

	if len(envelope.Ciphertext) < chacha20poly1305.Overhead {
		return nil, fmt.Errorf("%w: ciphertext shorter than the authentication tag", ErrMalformedEnvelope)
	}

	sealed := make([]byte, 0, len(envelope.Nonce)+len(envelope.Ciphertext))
	sealed = append(sealed, envelope.Nonce...)
	sealed = append(sealed, envelope.Ciphertext...)

	plaintext, err := x.aead.Decrypt(sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAuthentication, err)
	}

	return plaintext, nil
}

// newXChaCha20KeyHandle creates a Tink keyset handle for XChaCha20-Poly1305 from raw key bytes.
// The RAW output prefix keeps Tink from adding a key id in front of the nonce.
func newXChaCha20KeyHandle(key []byte) (*keyset.Handle, error) {
	serializedKey, err := proto.Marshal(&xchachapb.XChaCha20Poly1305Key{
		Version:  0,
		KeyValue: key,
	})
	if err != nil {
		return nil, fmt.Errorf("serializing XChaCha20Poly1305Key: %w", err)
	}

	keySet := &tinkpb.Keyset{
		PrimaryKeyId: 1,
		Key: []*tinkpb.Keyset_Key{
			{
				KeyData: &tinkpb.KeyData{
					TypeUrl:         xchachaTypeURL,
					Value:           serializedKey,
					KeyMaterialType: tinkpb.KeyData_SYMMETRIC,
				},
				Status:           tinkpb.KeyStatusType_ENABLED,
				KeyId:            1,
				OutputPrefixType: tinkpb.OutputPrefixType_RAW,
			},
		},
	}

	serializedKeyset, err := proto.Marshal(keySet)
	if err != nil {
		return nil, fmt.Errorf("serializing keyset: %w", err)
	}

	handle, err := insecurecleartextkeyset.Read(keyset.NewBinaryReader(bytes.NewReader(serializedKeyset)))
	if err != nil {
		return nil, fmt.Errorf("creating keyset handle: %w", err)
	}

	return handle, nil
}
