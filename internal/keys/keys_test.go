package keys_test

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/goseal/internal/input"
	"github.com/idelchi/goseal/internal/keys"
)

// RFC 8032, section 7.1, test 1.
const (
	rfcSeed   = "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"
	rfcPublic = "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a"
)

func writeKey(t *testing.T, b []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(path, b, 0o600))

	return path
}

func TestNewDigestKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		length  int
		strict  bool
		wantErr bool
	}{
		{name: "exact", length: 32},
		{name: "longer truncates", length: 40},
		{name: "shorter fails", length: 31, wantErr: true},
		{name: "empty fails", length: 0, wantErr: true},
		{name: "strict exact", length: 32, strict: true},
		{name: "strict longer fails", length: 33, strict: true, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			src := make([]byte, tc.length)
			for i := range src {
				src[i] = byte(i)
			}

			key, err := keys.NewDigestKey(src, tc.strict)
			if tc.wantErr {
				require.ErrorIs(t, err, keys.ErrMalformedKey)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, src[:keys.Size], key[:])

			aead, err := keys.NewAEADKey(src, tc.strict)
			require.NoError(t, err)
			assert.Equal(t, src[:keys.Size], aead[:])
		})
	}
}

func TestSigningKey(t *testing.T) {
	t.Parallel()

	seed, _ := hex.DecodeString(rfcSeed)

	key, err := keys.NewSigningKey(seed)
	require.NoError(t, err)

	public := key.Public()
	assert.Equal(t, rfcPublic, hex.EncodeToString(public[:]))
	assert.Equal(t, seed, key.Seed())

	_, err = keys.NewSigningKey(append(seed, 0))
	require.ErrorIs(t, err, keys.ErrMalformedKey)

	_, err = keys.NewSigningKey(seed[:31])
	require.ErrorIs(t, err, keys.ErrMalformedKey)
}

func TestVerifyingKey(t *testing.T) {
	t.Parallel()

	raw, _ := hex.DecodeString(rfcPublic)

	key, err := keys.NewVerifyingKey(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, []byte(key.PublicKey()))

	_, err = keys.NewVerifyingKey(raw[:16])
	require.ErrorIs(t, err, keys.ErrMalformedKey)
}

func TestVerifyingKeyWeakPoints(t *testing.T) {
	t.Parallel()

	identity := make([]byte, keys.Size)
	identity[0] = 0x01

	// y = 2 has no matching x on the curve.
	offCurve := make([]byte, keys.Size)
	offCurve[0] = 0x02

	// y = 1 + p, the non-canonical twin of the identity.
	nonCanonical, _ := hex.DecodeString("eeffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f")

	// Order 8 point.
	orderEight, _ := hex.DecodeString("c7176a703d4dd84fba3c0b760d10670f2a2053fa2c39ccc64ec7fd7792ac037a")

	tests := map[string][]byte{
		"identity":      identity,
		"off curve":     offCurve,
		"non-canonical": nonCanonical,
		"order eight":   orderEight,
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := keys.NewVerifyingKey(raw)
			require.ErrorIs(t, err, keys.ErrMalformedKey)
			require.ErrorIs(t, err, keys.ErrWeakPoint)
		})
	}
}

func TestStoreLoad(t *testing.T) {
	t.Parallel()

	store := keys.Store{}

	t.Run("digest", func(t *testing.T) {
		t.Parallel()

		path := writeKey(t, bytes.Repeat([]byte{0x01}, 32))

		key, err := store.LoadDigest(path)
		require.NoError(t, err)
		assert.Equal(t, bytes.Repeat([]byte{0x01}, 32), key[:])
	})

	t.Run("short digest", func(t *testing.T) {
		t.Parallel()

		_, err := store.LoadDigest(writeKey(t, []byte("too short")))
		require.ErrorIs(t, err, keys.ErrMalformedKey)
	})

	t.Run("short aead", func(t *testing.T) {
		t.Parallel()

		_, err := store.LoadAEAD(writeKey(t, make([]byte, 16)))
		require.ErrorIs(t, err, keys.ErrMalformedKey)
	})

	t.Run("strict aead", func(t *testing.T) {
		t.Parallel()

		_, err := keys.Store{Strict: true}.LoadAEAD(writeKey(t, make([]byte, 33)))
		require.ErrorIs(t, err, keys.ErrMalformedKey)
	})

	t.Run("signing and verifying", func(t *testing.T) {
		t.Parallel()

		seed, _ := hex.DecodeString(rfcSeed)
		public, _ := hex.DecodeString(rfcPublic)

		signing, err := store.LoadSigning(writeKey(t, seed))
		require.NoError(t, err)

		verifying, err := store.LoadVerifying(writeKey(t, public))
		require.NoError(t, err)
		assert.Equal(t, verifying, signing.Public())
	})

	t.Run("hmac keeps long secrets whole", func(t *testing.T) {
		t.Parallel()

		secret := bytes.Repeat([]byte{0x05}, 48)

		key, err := store.LoadHMAC(writeKey(t, secret))
		require.NoError(t, err)
		assert.Equal(t, secret, []byte(key))

		_, err = store.LoadHMAC(writeKey(t, []byte("short secret")))
		require.ErrorIs(t, err, keys.ErrMalformedKey)
	})

	t.Run("missing file is not literal data", func(t *testing.T) {
		t.Parallel()

		// 32 characters, so a literal fallback would produce a valid key.
		_, err := store.LoadDigest(filepath.Join(t.TempDir(), "0123456789abcdef0123456789abcdef"))
		require.ErrorIs(t, err, input.ErrIO)
	})
}

func TestGenerator(t *testing.T) {
	t.Parallel()

	gen := keys.Generator{}

	t.Run("digest", func(t *testing.T) {
		t.Parallel()

		first, err := gen.Generate(keys.KindDigest)
		require.NoError(t, err)
		require.Len(t, first, 1)
		assert.Len(t, first[0], keys.Size)

		second, err := gen.Generate(keys.KindDigest)
		require.NoError(t, err)
		assert.NotEqual(t, first[0], second[0])

		_, err = keys.NewDigestKey(first[0], true)
		require.NoError(t, err)
	})

	t.Run("signing", func(t *testing.T) {
		t.Parallel()

		pair, err := gen.Generate(keys.KindSigning)
		require.NoError(t, err)
		require.Len(t, pair, 2)

		signing, err := keys.NewSigningKey(pair[0])
		require.NoError(t, err)

		public := signing.Public()
		assert.Equal(t, pair[1], public[:])
	})

	t.Run("deterministic source", func(t *testing.T) {
		t.Parallel()

		seed, _ := hex.DecodeString(rfcSeed)

		pair, err := keys.Generator{Rand: bytes.NewReader(seed)}.GenerateSigning()
		require.NoError(t, err)
		assert.Equal(t, rfcSeed, hex.EncodeToString(pair[0]))
		assert.Equal(t, rfcPublic, hex.EncodeToString(pair[1]))
	})

	t.Run("aead unsupported", func(t *testing.T) {
		t.Parallel()

		_, err := gen.Generate(keys.KindAEAD)
		require.ErrorIs(t, err, keys.ErrGenerateUnsupported)
	})
}
