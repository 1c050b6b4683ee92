package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func newTestCodec(t *testing.T) *Codec {
	t.Helper()

	c, err := NewCodec(testKey, "shorten-url")
	if err != nil {
		t.Fatalf("NewCodec failed: %v", err)
	}
	return c
}

func TestNewCodecRejectsBadInput(t *testing.T) {
	if _, err := NewCodec(nil, "shorten-url"); err == nil {
		t.Fatal("expected error for empty key")
	}
	if _, err := NewCodec(testKey, "  "); err == nil {
		t.Fatal("expected error for blank issuer")
	}
}

func TestMintVerifyRoundTrip(t *testing.T) {
	c := newTestCodec(t)

	claims := Claims{UserID: 42, UserAgent: "chrome", ClientIP: "127.0.0.1"}
	tok, err := c.Mint(KindAccess, claims, 15*time.Minute)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	res := c.Verify(tok)
	if !res.OK() {
		t.Fatalf("expected valid token, got status %v", res.Status)
	}
	if res.Kind != KindAccess {
		t.Fatalf("expected access kind, got %v", res.Kind)
	}
	if res.Claims.UserID != 42 || res.Claims.UserAgent != "chrome" || res.Claims.ClientIP != "127.0.0.1" {
		t.Fatalf("claims not preserved: %+v", res.Claims)
	}
	if res.Claims.ExpiresAt.IsZero() || res.Claims.IssuedAt.IsZero() {
		t.Fatal("timestamps not populated")
	}
}

func TestMintDistinctTokens(t *testing.T) {
	c := newTestCodec(t)

	claims := Claims{UserID: 42, UserAgent: "chrome"}
	a, err := c.Mint(KindAccess, claims, 15*time.Minute)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}
	b, err := c.Mint(KindAccess, claims, 15*time.Minute)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}
	if a == b {
		t.Fatal("two mints with identical claims produced the same token")
	}
}

func TestVerifyRefreshKind(t *testing.T) {
	c := newTestCodec(t)

	tok, err := c.Mint(KindRefresh, Claims{UserID: 7, UserAgent: "firefox"}, time.Hour)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	res := c.Verify(tok)
	if !res.OK() || res.Kind != KindRefresh {
		t.Fatalf("expected valid refresh token, got %+v", res)
	}
}

func TestVerifyTamperedToken(t *testing.T) {
	c := newTestCodec(t)

	tok, err := c.Mint(KindAccess, Claims{UserID: 1, UserAgent: "ua"}, time.Minute)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	tampered := tok[:len(tok)-2] + "xx"
	if res := c.Verify(tampered); res.Status != StatusInvalidSignature {
		t.Fatalf("expected invalid signature, got %v", res.Status)
	}
}

func TestVerifyMalformedToken(t *testing.T) {
	c := newTestCodec(t)

	if res := c.Verify("not-a-token"); res.Status != StatusInvalidSignature {
		t.Fatalf("expected invalid signature, got %v", res.Status)
	}
	if res := c.Verify(""); res.Status != StatusInvalidSignature {
		t.Fatalf("expected invalid signature, got %v", res.Status)
	}
}

func TestVerifyForeignKey(t *testing.T) {
	c := newTestCodec(t)

	other, err := NewCodec([]byte("another-secret-key-entirely-0000"), "shorten-url")
	if err != nil {
		t.Fatalf("NewCodec failed: %v", err)
	}

	tok, err := other.Mint(KindAccess, Claims{UserID: 1, UserAgent: "ua"}, time.Minute)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	if res := c.Verify(tok); res.Status != StatusInvalidSignature {
		t.Fatalf("expected invalid signature, got %v", res.Status)
	}
}

func TestVerifyWrongIssuer(t *testing.T) {
	c := newTestCodec(t)

	other, err := NewCodec(testKey, "some-other-service")
	if err != nil {
		t.Fatalf("NewCodec failed: %v", err)
	}

	tok, err := other.Mint(KindAccess, Claims{UserID: 1, UserAgent: "ua"}, time.Minute)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	if res := c.Verify(tok); res.Status != StatusWrongIssuer {
		t.Fatalf("expected wrong issuer, got %v", res.Status)
	}
}

// A zero-ttl token carries exp == iat, so the strict before-now check must
// report it expired immediately even though it was minted this instant.
func TestVerifyExpirationBoundary(t *testing.T) {
	c := newTestCodec(t)

	tok, err := c.Mint(KindAccess, Claims{UserID: 5, UserAgent: "ua"}, 0)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	res := c.Verify(tok)
	if res.Status != StatusExpired {
		t.Fatalf("expected expired at exp instant, got %v", res.Status)
	}
	if res.Claims.UserID != 5 {
		t.Fatalf("expired result should still carry claims, got %+v", res.Claims)
	}
}

func TestVerifyPastExpiration(t *testing.T) {
	c := newTestCodec(t)

	tok, err := c.Mint(KindRefresh, Claims{UserID: 9, UserAgent: "ua"}, -time.Hour)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}

	res := c.Verify(tok)
	if res.Status != StatusExpired || res.Kind != KindRefresh {
		t.Fatalf("expected expired refresh, got %+v", res)
	}
}

func TestVerifyRejectsUnknownSubject(t *testing.T) {
	c := newTestCodec(t)

	tc := tokenClaims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "session",
			Issuer:    "shorten-url",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString(testKey)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if res := c.Verify(tok); res.Status != StatusInvalidSignature {
		t.Fatalf("expected invalid for unknown subject, got %v", res.Status)
	}
}

func TestVerifyRejectsMissingExpiration(t *testing.T) {
	c := newTestCodec(t)

	tc := tokenClaims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  "access",
			Issuer:   "shorten-url",
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString(testKey)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if res := c.Verify(tok); res.Status != StatusInvalidSignature {
		t.Fatalf("expected invalid for missing exp, got %v", res.Status)
	}
}
