package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Kind distinguishes the two credential roles minted by the codec.
type Kind int

const (
	// KindAccess is the short-lived credential presented on every request.
	KindAccess Kind = iota
	// KindRefresh is the long-lived credential used only to mint a new pair.
	KindRefresh
)

// Subject returns the JWT subject tag for the kind.
func (k Kind) Subject() string {
	switch k {
	case KindRefresh:
		return "refresh"
	default:
		return "access"
	}
}

// Status classifies the outcome of [Codec.Verify].
type Status int

const (
	// StatusValid means the signature, issuer, and expiration all check out.
	StatusValid Status = iota
	// StatusExpired means the token is authentic but its expiration has passed.
	StatusExpired
	// StatusInvalidSignature covers tampered, malformed, or foreign-key tokens.
	StatusInvalidSignature
	// StatusWrongIssuer means the token was signed by a different issuer.
	StatusWrongIssuer
)

// Claims are the subject claims embedded in every minted token.
type Claims struct {
	UserID    int64
	UserAgent string
	ClientIP  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Result is the verification verdict. Kind and Claims are populated for
// StatusValid and StatusExpired; for the other statuses the token bytes
// could not be trusted and both are zero.
type Result struct {
	Status Status
	Kind   Kind
	Claims Claims
}

// OK reports whether the token passed every check.
func (r Result) OK() bool {
	return r.Status == StatusValid
}

type tokenClaims struct {
	UserID    int64  `json:"uid"`
	UserAgent string `json:"ua"`
	ClientIP  string `json:"ip,omitempty"`
	jwt.RegisteredClaims
}

// Codec mints and verifies HS256-signed tokens. The signing key is set
// once at construction and never mutated, so a single Codec is safe to
// share across goroutines.
type Codec struct {
	key    []byte
	issuer string
}

// NewCodec returns a codec signing with the given symmetric key and
// stamping the given issuer tag into every token.
func NewCodec(key []byte, issuer string) (*Codec, error) {
	if len(key) == 0 {
		return nil, errors.New("signing key required")
	}
	if strings.TrimSpace(issuer) == "" {
		return nil, errors.New("issuer required")
	}
	return &Codec{key: key, issuer: issuer}, nil
}

// Mint serializes the claims plus issued-at/expiration computed from ttl,
// signs them, and returns the compact encoded string. No side effects.
func (c *Codec) Mint(kind Kind, claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()

	tc := tokenClaims{
		UserID:    claims.UserID,
		UserAgent: claims.UserAgent,
		ClientIP:  claims.ClientIP,
		RegisteredClaims: jwt.RegisteredClaims{
			// Registered timestamps carry second precision, so two mints in
			// the same second would otherwise produce identical tokens. The
			// jti keeps every issued token distinct.
			ID:        uuid.NewString(),
			Subject:   kind.Subject(),
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString(c.key)
}

// Verify decodes tokenStr and checks the signature, issuer tag, and
// expiration, in that order. Expiration is strict before-now: a token
// exactly at its expiration instant is already expired. Liveness in the
// session store is the caller's concern, not the codec's.
func (c *Codec) Verify(tokenStr string) Result {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var tc tokenClaims
	_, err := parser.ParseWithClaims(tokenStr, &tc, func(t *jwt.Token) (interface{}, error) {
		return c.key, nil
	})
	if err != nil {
		return Result{Status: StatusInvalidSignature}
	}

	if tc.Issuer != c.issuer {
		return Result{Status: StatusWrongIssuer}
	}
	if tc.ExpiresAt == nil {
		return Result{Status: StatusInvalidSignature}
	}

	kind := KindAccess
	switch tc.Subject {
	case KindAccess.Subject():
	case KindRefresh.Subject():
		kind = KindRefresh
	default:
		return Result{Status: StatusInvalidSignature}
	}

	out := Claims{
		UserID:    tc.UserID,
		UserAgent: tc.UserAgent,
		ClientIP:  tc.ClientIP,
		ExpiresAt: tc.ExpiresAt.Time,
	}
	if tc.IssuedAt != nil {
		out.IssuedAt = tc.IssuedAt.Time
	}

	if !tc.ExpiresAt.Time.After(time.Now()) {
		return Result{Status: StatusExpired, Kind: kind, Claims: out}
	}

	return Result{Status: StatusValid, Kind: kind, Claims: out}
}
