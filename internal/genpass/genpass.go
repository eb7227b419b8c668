// Package genpass generates printable random passwords.
package genpass

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

// Class selects a set of characters a password may contain.
type Class uint8

const (
	// Upper selects uppercase letters.
	Upper Class = 1 << iota
	// Lower selects lowercase letters.
	Lower
	// Number selects digits.
	Number
	// Symbol selects punctuation.
	Symbol

	// All selects every character class.
	All = Upper | Lower | Number | Symbol
)

// Look-alike characters (I, O, l, 0) are left out.
const (
	upper  = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	lower  = "abcdefghijkmnopqrstuvwxyz"
	number = "123456789"
	symbol = "!@#$%^&*_"
)

var (
	// ErrNoClass is returned when no character class was requested.
	ErrNoClass = errors.New("no character class selected")
	// ErrTooShort is returned when the length cannot hold one character of each class.
	ErrTooShort = errors.New("length too short for requested classes")
)

// Generate returns a password of exactly length characters drawn from the
// requested classes, with every class represented at least once.
// A nil rnd uses crypto/rand.
func Generate(length int, classes Class, rnd io.Reader) (string, error) {
	if rnd == nil {
		rnd = rand.Reader
	}

	var (
		charset  []byte
		password []byte
	)

	for _, set := range []struct {
		class Class
		chars string
	}{
		{Upper, upper},
		{Lower, lower},
		{Number, number},
		{Symbol, symbol},
	} {
		if classes&set.class == 0 {
			continue
		}

		c, err := pick(rnd, set.chars)
		if err != nil {
			return "", err
		}

		charset = append(charset, set.chars...)
		password = append(password, c)
	}

	if len(charset) == 0 {
		return "", ErrNoClass
	}

	if length < len(password) {
		return "", fmt.Errorf("%w: %d < %d", ErrTooShort, length, len(password))
	}

	for len(password) < length {
		c, err := pick(rnd, string(charset))
		if err != nil {
			return "", err
		}

		password = append(password, c)
	}

	if err := shuffle(rnd, password); err != nil {
		return "", err
	}

	return string(password), nil
}

func pick(rnd io.Reader, chars string) (byte, error) {
	idx, err := intn(rnd, len(chars))
	if err != nil {
		return 0, err
	}

	return chars[idx], nil
}

// shuffle is a Fisher-Yates shuffle.
func shuffle(rnd io.Reader, b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		j, err := intn(rnd, i+1)
		if err != nil {
			return err
		}

		b[i], b[j] = b[j], b[i]
	}

	return nil
}

func intn(rnd io.Reader, n int) (int, error) {
	v, err := rand.Int(rnd, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("reading randomness: %w", err)
	}

	return int(v.Int64()), nil
}
