package signing_test

import (
	"bytes"
	"encoding/hex"
	"os"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/goseal/internal/keys"
	"github.com/idelchi/goseal/internal/signing"
)

// Vectors mirrors testdata/vectors.yml. All byte fields are hex encoded.
type Vectors struct {
	Blake3 []struct {
		Description string `yaml:"description"`
		Key         string `yaml:"key"`
		Message     string `yaml:"message"`
		Tag         string `yaml:"tag"`
	} `yaml:"blake3"`
	Ed25519 []struct {
		Description string `yaml:"description"`
		Seed        string `yaml:"seed"`
		Public      string `yaml:"public"`
		Message     string `yaml:"message"`
		Signature   string `yaml:"signature"`
	} `yaml:"ed25519"`
}

func loadVectors(t *testing.T) Vectors {
	t.Helper()

	data, err := os.ReadFile("testdata/vectors.yml")
	require.NoError(t, err)

	var vectors Vectors
	require.NoError(t, yaml.Unmarshal(data, &vectors))
	require.NotEmpty(t, vectors.Blake3)
	require.NotEmpty(t, vectors.Ed25519)

	return vectors
}

func unhex(t *testing.T, s string) []byte {
	t.Helper()

	b, err := hex.DecodeString(s)
	require.NoError(t, err)

	return b
}

func digestKey(t *testing.T, b []byte) keys.DigestKey {
	t.Helper()

	key, err := keys.NewDigestKey(b, true)
	require.NoError(t, err)

	return key
}

func TestBlake3Vectors(t *testing.T) {
	t.Parallel()

	for _, tc := range loadVectors(t).Blake3 {
		t.Run(tc.Description, func(t *testing.T) {
			t.Parallel()

			signer := signing.NewBlake3(digestKey(t, unhex(t, tc.Key)))
			message := unhex(t, tc.Message)

			tag, err := signer.Sign(bytes.NewReader(message))
			require.NoError(t, err)
			assert.Equal(t, tc.Tag, hex.EncodeToString(tag))

			ok, err := signer.Verify(bytes.NewReader(message), tag)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestBlake3Verify(t *testing.T) {
	t.Parallel()

	signer := signing.NewBlake3(digestKey(t, bytes.Repeat([]byte{0x01}, 32)))

	tag, err := signer.Sign(strings.NewReader("payload"))
	require.NoError(t, err)
	require.Len(t, tag, signing.DigestSize)

	t.Run("other message", func(t *testing.T) {
		t.Parallel()

		ok, err := signer.Verify(strings.NewReader("payload!"), tag)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("other key", func(t *testing.T) {
		t.Parallel()

		other := signing.NewBlake3(digestKey(t, bytes.Repeat([]byte{0x02}, 32)))

		ok, err := other.Verify(strings.NewReader("payload"), tag)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("truncated tag is a mismatch", func(t *testing.T) {
		t.Parallel()

		ok, err := signer.Verify(strings.NewReader("payload"), tag[:16])
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("read failure", func(t *testing.T) {
		t.Parallel()

		_, err := signer.Verify(iotest.ErrReader(assert.AnError), tag)
		require.ErrorIs(t, err, assert.AnError)
	})
}

func TestEd25519Vectors(t *testing.T) {
	t.Parallel()

	for _, tc := range loadVectors(t).Ed25519 {
		t.Run(tc.Description, func(t *testing.T) {
			t.Parallel()

			private, err := keys.NewSigningKey(unhex(t, tc.Seed))
			require.NoError(t, err)

			public, err := keys.NewVerifyingKey(unhex(t, tc.Public))
			require.NoError(t, err)

			message := unhex(t, tc.Message)

			sig, err := signing.NewEd25519Signer(private).Sign(bytes.NewReader(message))
			require.NoError(t, err)
			assert.Equal(t, tc.Signature, hex.EncodeToString(sig))

			ok, err := signing.NewEd25519Verifier(public).Verify(bytes.NewReader(message), sig)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestEd25519Verify(t *testing.T) {
	t.Parallel()

	pair, err := keys.Generator{}.GenerateSigning()
	require.NoError(t, err)

	private, err := keys.NewSigningKey(pair[0])
	require.NoError(t, err)

	verifier := signing.NewEd25519Verifier(private.Public())

	sig, err := signing.NewEd25519Signer(private).Sign(strings.NewReader(""))
	require.NoError(t, err)
	require.Len(t, sig, signing.SignatureSize)

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		ok, err := verifier.Verify(strings.NewReader(""), sig)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("other public key", func(t *testing.T) {
		t.Parallel()

		other, err := keys.Generator{}.GenerateSigning()
		require.NoError(t, err)

		public, err := keys.NewVerifyingKey(other[1])
		require.NoError(t, err)

		ok, err := signing.NewEd25519Verifier(public).Verify(strings.NewReader(""), sig)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("flipped bit", func(t *testing.T) {
		t.Parallel()

		bad := bytes.Clone(sig)
		bad[0] ^= 0x01

		ok, err := verifier.Verify(strings.NewReader(""), bad)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("wrong length", func(t *testing.T) {
		t.Parallel()

		_, err := verifier.Verify(strings.NewReader(""), sig[:63])
		require.ErrorIs(t, err, signing.ErrMalformedSignature)

		_, err = verifier.Verify(strings.NewReader(""), append(bytes.Clone(sig), 0))
		require.ErrorIs(t, err, signing.ErrMalformedSignature)
	})
}

func TestEd25519RejectsNonCanonicalS(t *testing.T) {
	t.Parallel()

	public, err := keys.NewVerifyingKey(unhex(t, "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a"))
	require.NoError(t, err)

	// RFC 8032 test 1 with S replaced by S + L.
	malleated := unhex(t, "e5564300c360ac729086e2cc806e828a84877f1eb8e5d974d873e06522490155"+
		"4c8c7872aa064e049dbb3013fbf29380d25bf5f0595bbe24655141438e7a101b")

	ok, err := signing.NewEd25519Verifier(public).Verify(strings.NewReader(""), malleated)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEd25519RejectsSmallOrderPoints(t *testing.T) {
	t.Parallel()

	identity := make([]byte, keys.Size)
	identity[0] = 0x01

	// R = identity, S = 0 satisfies the verification equation for the identity key and any message.
	forged := make([]byte, signing.SignatureSize)
	copy(forged, identity)

	var weak keys.VerifyingKey
	copy(weak[:], identity)

	for _, message := range []string{"", "anything", "transfer 1000000"} {
		ok, err := signing.NewEd25519Verifier(weak).Verify(strings.NewReader(message), forged)
		require.NoError(t, err)
		assert.False(t, ok, message)
	}

	public, err := keys.NewVerifyingKey(unhex(t, "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a"))
	require.NoError(t, err)

	ok, err := signing.NewEd25519Verifier(public).Verify(strings.NewReader(""), forged)
	require.NoError(t, err)
	assert.False(t, ok)
}
