package authcore

import (
	"errors"
	"fmt"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds every tunable of the auth core. Instances are configured
// during initialization and treated as immutable afterwards.
type Config struct {
	Token        TokenConfig
	Session      SessionConfig
	Verification VerificationConfig
	Store        StoreConfig
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig controls the signed-token codec and the credential pair
// lifetimes.
type TokenConfig struct {
	// Issuer is the fixed tag stamped into every token, distinguishing
	// tokens minted by this service from any other signed string.
	Issuer string
	// SigningKey is the symmetric HS256 key. Set once at startup, never
	// rotated at runtime.
	SigningKey []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig controls session-store key layout and the simple
// synthetic-session flow.
type SessionConfig struct {
	// KeyPrefix namespaces every token session key.
	KeyPrefix string
	// LoginSessionPrefix namespaces synthetic login-session keys.
	LoginSessionPrefix string
	// LoginSessionTTL bounds the synthetic login-session lifetime.
	LoginSessionTTL time.Duration
}

/*
====================================
VERIFICATION CONFIG
====================================
*/

// VerificationConfig controls one-time verification codes.
type VerificationConfig struct {
	// CodeLength is the number of characters in a generated code.
	CodeLength int
	// CodeTTL bounds how long an unconsumed code stays valid.
	CodeTTL time.Duration
	// TempPasswordLength sizes the temporary credential handed to the
	// account layer during password reset.
	TempPasswordLength int
}

/*
====================================
STORE CONFIG
====================================
*/

// StoreConfig controls the session-store client.
type StoreConfig struct {
	// OpTimeout bounds every individual store call.
	OpTimeout time.Duration
}

func defaultConfig() Config {
	return Config{
		Token: TokenConfig{
			Issuer:     "shorten-url",
			AccessTTL:  15 * time.Minute,
			RefreshTTL: 24 * time.Hour,
		},
		Session: SessionConfig{
			KeyPrefix:          "auth:token",
			LoginSessionPrefix: "auth:session",
			LoginSessionTTL:    30 * time.Minute,
		},
		Verification: VerificationConfig{
			CodeLength:         6,
			CodeTTL:            15 * time.Minute,
			TempPasswordLength: 10,
		},
		Store: StoreConfig{
			OpTimeout: 3 * time.Second,
		},
	}
}

// Validate checks the configuration for internal consistency. It is
// called by [Builder.Build]; direct callers only need it when they
// assemble a Config by hand.
func (c Config) Validate() error {
	if len(c.Token.SigningKey) == 0 {
		return errors.New("token signing key required")
	}
	if c.Token.Issuer == "" {
		return errors.New("token issuer required")
	}
	if c.Token.AccessTTL <= 0 {
		return errors.New("access token TTL must be positive")
	}
	if c.Token.RefreshTTL <= c.Token.AccessTTL {
		return errors.New("refresh token TTL must exceed access token TTL")
	}
	if c.Session.KeyPrefix == "" || c.Session.LoginSessionPrefix == "" {
		return errors.New("session key prefixes required")
	}
	if c.Session.KeyPrefix == c.Session.LoginSessionPrefix {
		return errors.New("session key prefixes must differ")
	}
	if c.Session.LoginSessionTTL <= 0 {
		return errors.New("login session TTL must be positive")
	}
	if c.Verification.CodeLength < 4 || c.Verification.CodeLength > 32 {
		return errors.New("verification code length out of range")
	}
	if c.Verification.CodeTTL <= 0 {
		return errors.New("verification code TTL must be positive")
	}
	if c.Verification.TempPasswordLength < 8 {
		return errors.New("temp password length must be at least 8")
	}
	if c.Store.OpTimeout <= 0 {
		return errors.New("store operation timeout must be positive")
	}
	return nil
}

// fileConfig mirrors Config for TOML decoding; durations are written as
// strings ("15m", "24h") and parsed with time.ParseDuration.
type fileConfig struct {
	Token struct {
		Issuer     string `toml:"issuer"`
		SigningKey string `toml:"signing_key"`
		AccessTTL  string `toml:"access_ttl"`
		RefreshTTL string `toml:"refresh_ttl"`
	} `toml:"token"`
	Session struct {
		KeyPrefix          string `toml:"key_prefix"`
		LoginSessionPrefix string `toml:"login_session_prefix"`
		LoginSessionTTL    string `toml:"login_session_ttl"`
	} `toml:"session"`
	Verification struct {
		CodeLength         int    `toml:"code_length"`
		CodeTTL            string `toml:"code_ttl"`
		TempPasswordLength int    `toml:"temp_password_length"`
	} `toml:"verification"`
	Store struct {
		OpTimeout string `toml:"op_timeout"`
	} `toml:"store"`
}

// LoadConfig reads a TOML file and overlays it onto the defaults.
// Fields absent from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if fc.Token.Issuer != "" {
		cfg.Token.Issuer = fc.Token.Issuer
	}
	if fc.Token.SigningKey != "" {
		cfg.Token.SigningKey = []byte(fc.Token.SigningKey)
	}
	if err := overlayDuration(&cfg.Token.AccessTTL, fc.Token.AccessTTL); err != nil {
		return cfg, err
	}
	if err := overlayDuration(&cfg.Token.RefreshTTL, fc.Token.RefreshTTL); err != nil {
		return cfg, err
	}
	if fc.Session.KeyPrefix != "" {
		cfg.Session.KeyPrefix = fc.Session.KeyPrefix
	}
	if fc.Session.LoginSessionPrefix != "" {
		cfg.Session.LoginSessionPrefix = fc.Session.LoginSessionPrefix
	}
	if err := overlayDuration(&cfg.Session.LoginSessionTTL, fc.Session.LoginSessionTTL); err != nil {
		return cfg, err
	}
	if fc.Verification.CodeLength > 0 {
		cfg.Verification.CodeLength = fc.Verification.CodeLength
	}
	if err := overlayDuration(&cfg.Verification.CodeTTL, fc.Verification.CodeTTL); err != nil {
		return cfg, err
	}
	if fc.Verification.TempPasswordLength > 0 {
		cfg.Verification.TempPasswordLength = fc.Verification.TempPasswordLength
	}
	if err := overlayDuration(&cfg.Store.OpTimeout, fc.Store.OpTimeout); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func overlayDuration(dst *time.Duration, raw string) error {
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse config duration %q: %w", raw, err)
	}
	*dst = d
	return nil
}
