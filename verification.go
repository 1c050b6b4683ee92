package authcore

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/shortenurl/authcore/internal"
)

// SendVerificationCode generates a one-time code for (purpose, recipient),
// records it with a short TTL, and hands it to the mail collaborator.
//
// At most one code may be outstanding per (purpose, recipient): a request
// while one is pending fails with [ErrCodePending] instead of silently
// replacing it, which stops a user from invalidating an in-flight code by
// spamming resend and stops enumeration via forced regeneration.
//
// When no Mailer is configured the code is simply returned for the caller
// to deliver. A Mailer failure leaves the already-written record intact
// and surfaces as [ErrMailDelivery]; it is never retried here.
func (m *Manager) SendVerificationCode(ctx context.Context, purpose Purpose, recipient string) (string, error) {
	if !purpose.valid() {
		return "", fmt.Errorf("%w: unknown verification purpose %q", ErrInvalidArgument, purpose)
	}
	if strings.TrimSpace(recipient) == "" {
		return "", fmt.Errorf("%w: recipient required", ErrInvalidArgument)
	}

	key := codeKey(purpose, recipient)

	_, ok, err := m.store.Get(ctx, key)
	if err != nil {
		return "", m.storeFailure(err)
	}
	if ok {
		return "", ErrCodePending
	}

	code, err := internal.SecretCode(m.config.Verification.CodeLength)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if err := m.store.Set(ctx, key, code, m.config.Verification.CodeTTL); err != nil {
		return "", m.storeFailure(err)
	}

	if m.mailer != nil {
		subject, body := mailContent(purpose, code)
		if err := m.mailer.Send(ctx, recipient, subject, body); err != nil {
			m.log.Error().Err(err).Str("recipient", recipient).Str("purpose", string(purpose)).Msg("failed to send verification code")
			return "", fmt.Errorf("%w: %v", ErrMailDelivery, err)
		}
	}

	m.log.Info().Str("purpose", string(purpose)).Msg("issued verification code")
	return code, nil
}

// VerifyCode consumes the outstanding code for (purpose, recipient). A
// matching candidate deletes the record, since a code is single-use; a
// mismatch leaves it pending for another attempt until its TTL lapses.
func (m *Manager) VerifyCode(ctx context.Context, purpose Purpose, recipient, candidate string) error {
	if !purpose.valid() {
		return fmt.Errorf("%w: unknown verification purpose %q", ErrInvalidArgument, purpose)
	}
	if strings.TrimSpace(recipient) == "" || candidate == "" {
		return fmt.Errorf("%w: recipient and candidate required", ErrInvalidArgument)
	}

	key := codeKey(purpose, recipient)

	stored, ok, err := m.store.Get(ctx, key)
	if err != nil {
		return m.storeFailure(err)
	}
	if !ok {
		return ErrCodeNotFound
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) != 1 {
		return ErrCodeMismatch
	}

	if err := m.store.Delete(ctx, key); err != nil {
		return m.storeFailure(err)
	}

	m.log.Info().Str("purpose", string(purpose)).Msg("verification code consumed")
	return nil
}

// TempPassword returns a random temporary credential for the reset flow.
// The account layer is responsible for hashing and persisting it.
func (m *Manager) TempPassword() (string, error) {
	pw, err := internal.SecretCode(m.config.Verification.TempPasswordLength)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return pw, nil
}

func mailContent(purpose Purpose, code string) (subject, body string) {
	switch purpose {
	case PurposeResetPassword:
		return "[shorten-url] password reset", "<h3>Your password reset code</h3><br>" + code + "<br>"
	default:
		return "[shorten-url] email verification", "<h3>Your verification code</h3><br>" + code + "<br>"
	}
}
