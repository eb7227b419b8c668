package logic

import (
	"fmt"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/idelchi/goseal/internal/config"
	"github.com/idelchi/goseal/internal/token"
)

// claimsView is the printed form of verified token claims.
type claimsView struct {
	Subject  string `yaml:"sub"`
	Audience string `yaml:"aud"`
	Expiry   int64  `yaml:"exp"`
	Expires  string `yaml:"expires"`
}

// Issuer loads the token secret and returns an issuer for the format.
func (e *Engine) Issuer(key, format string, opts ...token.Option) (*token.Issuer, error) {
	method, err := token.ParseMethod(format)
	if err != nil {
		return nil, err //nolint:wrapcheck // lists the supported names
	}

	secret, err := e.Keys.LoadHMAC(key)
	if err != nil {
		return nil, fmt.Errorf("loading %s key: %w", format, err)
	}

	return token.New(method, secret, opts...), nil
}

// RunJWTSign prints a signed token for the configured subject, audience and expiry.
func RunJWTSign(cfg *config.Config, streams Streams) error {
	lifetime, err := token.ParseExpiry(cfg.Expiry)
	if err != nil {
		return err //nolint:wrapcheck // names the bad value
	}

	engine := NewEngine(cfg, streams)

	issuer, err := engine.Issuer(cfg.Key, cfg.Format)
	if err != nil {
		return err
	}

	signed, err := issuer.Sign(cfg.Subject, cfg.Audience, lifetime)
	if err != nil {
		return err //nolint:wrapcheck // already wrapped by token
	}

	engine.Logger.Debug("signed token", "format", cfg.Format, "sub", cfg.Subject, "aud", cfg.Audience, "expiry", lifetime)

	if _, err := fmt.Fprintln(streams.Out, signed); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

// RunJWTVerify checks the configured token and prints its claims as YAML.
// The audience is shown but not checked.
func RunJWTVerify(cfg *config.Config, streams Streams) error {
	engine := NewEngine(cfg, streams)

	issuer, err := engine.Issuer(cfg.Key, cfg.Format)
	if err != nil {
		return err
	}

	claims, err := issuer.Verify(cfg.Token)
	if err != nil {
		return err //nolint:wrapcheck // already wrapped by token
	}

	view := claimsView{Subject: claims.Subject, Audience: claims.Audience}
	if claims.Expiry != nil {
		view.Expiry = claims.Expiry.Unix()
		view.Expires = claims.Expiry.UTC().Format(time.RFC3339)
	}

	out, err := yaml.Marshal(view)
	if err != nil {
		return fmt.Errorf("marshalling claims: %w", err)
	}

	if _, err := streams.Out.Write(out); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}
