package authcore

import (
	"path"
	"strings"
	"testing"
)

func TestSessionKeyShape(t *testing.T) {
	key := sessionKey("auth:token", 42, "some.jwt.token")

	if !strings.HasPrefix(key, "auth:token:42:") {
		t.Fatalf("unexpected key %q", key)
	}
	// The token digest must not reintroduce delimiter or glob characters.
	digest := strings.TrimPrefix(key, "auth:token:42:")
	if strings.ContainsAny(digest, ":*?[]") {
		t.Fatalf("digest %q carries reserved characters", digest)
	}
}

func TestSessionKeyDistinct(t *testing.T) {
	a := sessionKey("auth:token", 42, "token-a")
	b := sessionKey("auth:token", 42, "token-b")
	if a == b {
		t.Fatal("distinct tokens must map to distinct keys")
	}

	c := sessionKey("auth:token", 7, "token-a")
	if a == c {
		t.Fatal("distinct users must map to distinct keys")
	}
}

// userWildcard must cover exactly one user's keys: user 4's pattern must
// not match user 42's keys even though "4" prefixes "42".
func TestUserWildcardScope(t *testing.T) {
	key42 := sessionKey("auth:token", 42, "tok")
	key4 := sessionKey("auth:token", 4, "tok")

	pat42 := userWildcard("auth:token", 42)
	pat4 := userWildcard("auth:token", 4)

	if ok, _ := path.Match(pat42, key42); !ok {
		t.Fatalf("pattern %q must match %q", pat42, key42)
	}
	if ok, _ := path.Match(pat4, key42); ok {
		t.Fatalf("pattern %q must not match %q", pat4, key42)
	}
	if ok, _ := path.Match(pat42, key4); ok {
		t.Fatalf("pattern %q must not match %q", pat42, key4)
	}
}

func TestCodeKeyNamespaces(t *testing.T) {
	email := codeKey(PurposeEmailVerify, "user@example.com")
	reset := codeKey(PurposeResetPassword, "user@example.com")

	if email == reset {
		t.Fatal("purposes must not share a key")
	}
	if email != "auth:email:user@example.com" {
		t.Fatalf("unexpected key %q", email)
	}
	if reset != "auth:reset-password:user@example.com" {
		t.Fatalf("unexpected key %q", reset)
	}
}

func TestLoginSessionKeyOutsideTokenNamespace(t *testing.T) {
	cfg := defaultConfig()

	key := loginSessionKey(cfg.Session.LoginSessionPrefix, "abc-123")
	if key != "auth:session:abc-123" {
		t.Fatalf("unexpected key %q", key)
	}

	// A wildcard revoke over token sessions must never sweep login
	// sessions or verification codes.
	for _, pat := range []string{userWildcard(cfg.Session.KeyPrefix, 42), userWildcard(cfg.Session.KeyPrefix, 4)} {
		if ok, _ := path.Match(pat, key); ok {
			t.Fatalf("pattern %q must not match %q", pat, key)
		}
		if ok, _ := path.Match(pat, codeKey(PurposeEmailVerify, "42")); ok {
			t.Fatalf("pattern %q must not match code keys", pat)
		}
	}
}
