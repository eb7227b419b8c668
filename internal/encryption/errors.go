package encryption

import "errors"

var (
	// ErrMalformedEnvelope is returned when the text envelope cannot be decoded.
	ErrMalformedEnvelope = errors.New("malformed envelope")
	// ErrAuthentication is returned when the ciphertext fails its authentication check.
	ErrAuthentication = errors.New("authentication failed")
)
