package keys

import "errors"

var (
	// ErrMalformedKey is returned when key bytes have the wrong length or encoding.
	ErrMalformedKey = errors.New("malformed key")
	// ErrGenerateUnsupported is returned for key kinds that can only be loaded.
	ErrGenerateUnsupported = errors.New("key generation not supported")
)
