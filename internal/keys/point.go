package keys

import (
	"bytes"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
)

// ErrWeakPoint is returned for Ed25519 points that must not be used in strict verification.
var ErrWeakPoint = errors.New("weak curve point")

// CheckPoint decodes an encoded Ed25519 point. Off-curve and non-canonical
// encodings are rejected, and so are points of small order.
func CheckPoint(b []byte) error {
	point, err := new(edwards25519.Point).SetBytes(b)
	if err != nil {
		return fmt.Errorf("%w: not a curve point: %w", ErrWeakPoint, err)
	}

	if !bytes.Equal(point.Bytes(), b) {
		return fmt.Errorf("%w: non-canonical encoding", ErrWeakPoint)
	}

	if new(edwards25519.Point).MultByCofactor(point).Equal(edwards25519.NewIdentityPoint()) == 1 {
		return fmt.Errorf("%w: small order", ErrWeakPoint)
	}

	return nil
}
