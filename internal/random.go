package internal

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"math/big"
	"strings"
)

// codeAlphabet matches the secret-code character set delivered to users:
// uppercase letters and digits only, so codes survive case-folding mail
// clients and are easy to read back.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// SecretCode returns a fixed-length random code drawn from the
// uppercase+digit alphabet using crypto/rand.
func SecretCode(length int) (string, error) {
	if length < 4 || length > 32 {
		return "", errors.New("invalid secret code length")
	}

	var b strings.Builder
	b.Grow(length)

	max := big.NewInt(int64(len(codeAlphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(codeAlphabet[n.Int64()])
	}

	return b.String(), nil
}

// TokenDigest returns a compact, fixed-length digest of an opaque token
// string, safe to embed in a colon-delimited store key. The first 16
// bytes of a SHA-256 are plenty for key uniqueness and keep keys short.
func TokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:16])
}
