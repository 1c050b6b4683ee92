package authcore

import (
	"strconv"

	"github.com/shortenurl/authcore/internal"
)

// Key derivation is deliberately concentrated here: the rotation path and
// the wildcard-revoke path only stay compatible if every key for a user
// shares the same "<prefix>:<userID>:" prefix. Opaque token material is
// digested before it enters a key so delimiter characters inside a token
// or user agent can never split a key into unintended segments.

// sessionKey locates the record pairing an access token with its refresh
// token: "<prefix>:<userID>:<digest(accessToken)>".
func sessionKey(prefix string, userID int64, accessToken string) string {
	return prefix + ":" + strconv.FormatInt(userID, 10) + ":" + internal.TokenDigest(accessToken)
}

// userWildcard matches every session key belonging to userID and nothing
// else; the trailing ":" before "*" keeps user 4 from matching user 42.
func userWildcard(prefix string, userID int64) string {
	return prefix + ":" + strconv.FormatInt(userID, 10) + ":*"
}

// loginSessionKey locates a synthetic login-session record.
func loginSessionKey(prefix, sessionID string) string {
	return prefix + ":" + sessionID
}

// codeKey locates the single outstanding verification code for a
// (purpose, recipient) pair.
func codeKey(purpose Purpose, recipient string) string {
	return "auth:" + string(purpose) + ":" + recipient
}
