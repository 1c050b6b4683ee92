package authcore

import "context"

// TokenPair is the credential pair returned by [Manager.Grant] and
// [Manager.Verify]: a short-lived access token and the longer-lived
// refresh token backing it.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Purpose namespaces one-time verification codes. At most one code is
// outstanding per (purpose, recipient) pair.
type Purpose string

const (
	// PurposeEmailVerify is a code confirming ownership of an address.
	PurposeEmailVerify Purpose = "email"
	// PurposeResetPassword is a code authorizing a password reset.
	PurposeResetPassword Purpose = "reset-password"
)

func (p Purpose) valid() bool {
	return p == PurposeEmailVerify || p == PurposeResetPassword
}

// Mailer is the outbound mail collaborator. The core writes the
// verification-code record first and then calls Send; a Send failure is
// logged and surfaced but never corrupts the already-written record, and
// the core never retries it.
type Mailer interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// PasswordEncoder is the password-hashing collaborator consumed by the
// account layer, declared here so both sides agree on the contract. The
// token core itself never hashes passwords.
type PasswordEncoder interface {
	Encode(raw string) (string, error)
	Matches(raw, encoded string) bool
}
