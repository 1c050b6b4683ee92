package authcore

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized covers every client-facing authentication failure:
	// bad signature, mismatched claims, revoked or missing session,
	// unrotatable expired pair, wrong one-time code. Never retried.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument signals a malformed key, value, or TTL. A
	// programmer error that fails fast rather than reaching the store.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInternal wraps session-store infrastructure failures (network,
	// timeout). Eligible for caller-side retry with backoff.
	ErrInternal = errors.New("internal error")
	// ErrCodePending is returned when a verification code is requested
	// while an earlier one for the same recipient is still outstanding.
	// Distinct from ErrUnauthorized so UIs can say "check your inbox".
	ErrCodePending = errors.New("verification code already pending")
	// ErrMailDelivery is returned when the mail collaborator fails after
	// the verification code record was written. The record stays intact.
	ErrMailDelivery = errors.New("failed to deliver verification mail")
)

// Specializations of ErrUnauthorized. Callers branch on the category via
// errors.Is(err, ErrUnauthorized); the narrower sentinels exist so tests
// and logs can tell the failure modes apart.
var (
	// ErrTokenNotFound means the token signature was fine but the
	// server-side session was revoked or never existed.
	ErrTokenNotFound = fmt.Errorf("%w: token not found in session storage", ErrUnauthorized)
	// ErrExpiredRefreshToken means both credentials in the pair are dead;
	// the caller must authenticate from scratch.
	ErrExpiredRefreshToken = fmt.Errorf("%w: expired refresh token", ErrUnauthorized)
	// ErrCodeNotFound means no verification code is outstanding for the
	// recipient (consumed, expired, or never sent).
	ErrCodeNotFound = fmt.Errorf("%w: verification code not found", ErrUnauthorized)
	// ErrCodeMismatch means a code is outstanding but the candidate did
	// not match it. The stored code remains pending.
	ErrCodeMismatch = fmt.Errorf("%w: invalid verification code", ErrUnauthorized)
)
