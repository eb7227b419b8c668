// Package token issues and checks HMAC-signed JSON Web Tokens that carry a
// subject, an audience and an expiry.
package token

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/idelchi/goseal/internal/keys"
)

var (
	// ErrExpiry is returned for a lifetime that is not a number followed by s, m, h or d.
	ErrExpiry = errors.New("invalid expiry")
	// ErrUnknownMethod is returned for a token algorithm other than hs256, hs384 or hs512.
	ErrUnknownMethod = errors.New("unknown token algorithm")
	// ErrInvalid is returned when a token does not verify.
	ErrInvalid = errors.New("invalid token")
)

// DefaultExpiry is the lifetime of a token when none is given.
const DefaultExpiry = "5m"

var expiryPattern = regexp.MustCompile(`^(\d+)([smhd])$`)

var units = map[string]time.Duration{
	"s": time.Second,
	"m": time.Minute,
	"h": time.Hour,
	"d": 24 * time.Hour,
}

// ParseExpiry parses lifetimes such as "60s", "20m", "2h" or "10d".
func ParseExpiry(s string) (time.Duration, error) {
	match := expiryPattern.FindStringSubmatch(s)
	if match == nil {
		return 0, fmt.Errorf("%w: %q, valid examples are 10d, 2h, 20m, 60s", ErrExpiry, s)
	}

	value, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrExpiry, s, err)
	}

	unit := units[match[2]]
	if value > math.MaxInt64/int64(unit) {
		return 0, fmt.Errorf("%w: %q is too long", ErrExpiry, s)
	}

	return time.Duration(value) * unit, nil
}

// Methods returns the accepted algorithm names.
func Methods() []string {
	return []string{"hs256", "hs384", "hs512"}
}

// ParseMethod returns the HMAC signing method for a case-insensitive name.
func ParseMethod(name string) (*jwt.SigningMethodHMAC, error) {
	switch strings.ToLower(name) {
	case "hs256":
		return jwt.SigningMethodHS256, nil
	case "hs384":
		return jwt.SigningMethodHS384, nil
	case "hs512":
		return jwt.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("%w: %q, supported: %s", ErrUnknownMethod, name, strings.Join(Methods(), ", "))
	}
}

// Claims is the token payload.
type Claims struct {
	Subject  string           `json:"sub"`
	Audience string           `json:"aud"`
	Expiry   *jwt.NumericDate `json:"exp"`
}

// GetExpirationTime implements jwt.Claims.
func (c Claims) GetExpirationTime() (*jwt.NumericDate, error) { return c.Expiry, nil }

// GetIssuedAt implements jwt.Claims.
func (c Claims) GetIssuedAt() (*jwt.NumericDate, error) { return nil, nil } //nolint:nilnil // claim not used

// GetNotBefore implements jwt.Claims.
func (c Claims) GetNotBefore() (*jwt.NumericDate, error) { return nil, nil } //nolint:nilnil // claim not used

// GetIssuer implements jwt.Claims.
func (c Claims) GetIssuer() (string, error) { return "", nil }

// GetSubject implements jwt.Claims.
func (c Claims) GetSubject() (string, error) { return c.Subject, nil }

// GetAudience implements jwt.Claims.
func (c Claims) GetAudience() (jwt.ClaimStrings, error) { return jwt.ClaimStrings{c.Audience}, nil }

// Issuer signs and checks tokens with a shared secret.
type Issuer struct {
	method *jwt.SigningMethodHMAC
	secret keys.HMACKey
	now    func() time.Time
}

// Option configures an Issuer.
type Option func(*Issuer)

// WithClock sets the time source used for expiry. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		i.now = now
	}
}

// New returns an Issuer for the method and secret.
func New(method *jwt.SigningMethodHMAC, secret keys.HMACKey, opts ...Option) *Issuer {
	issuer := &Issuer{method: method, secret: secret, now: time.Now}

	for _, opt := range opts {
		opt(issuer)
	}

	return issuer
}

// Sign returns a compact token for the subject and audience that expires after lifetime.
func (i *Issuer) Sign(subject, audience string, lifetime time.Duration) (string, error) {
	claims := Claims{
		Subject:  subject,
		Audience: audience,
		Expiry:   jwt.NewNumericDate(i.now().Add(lifetime)),
	}

	signed, err := jwt.NewWithClaims(i.method, claims).SignedString([]byte(i.secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}

// Verify checks the signature, algorithm and expiry of a compact token and returns its claims.
// The audience is returned as is and not matched against anything.
func (i *Issuer) Verify(text string) (Claims, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(
		strings.TrimSpace(text),
		&claims,
		func(*jwt.Token) (any, error) { return []byte(i.secret), nil },
		jwt.WithValidMethods([]string{i.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return claims, nil
}
