package logic

import "errors"

var (
	// ErrVerificationFailed is returned by RunVerify on a mismatch when a non-zero exit was requested.
	ErrVerificationFailed = errors.New("verification failed")
	// ErrStdinReused is returned when more than one locator names standard input.
	ErrStdinReused = errors.New("standard input can only be read once")
)
