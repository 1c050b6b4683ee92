package authcore

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// The login-session flow is the simple counterpart of the token pair: a
// synthetic session ID handed to the browser, with the user ID as the
// stored value. It backs flows that need server-side state but not a
// bearer credential, and shares the store's TTL liveness semantics.

// GrantLoginSession creates a login session for userID and returns its
// synthetic session ID.
func (m *Manager) GrantLoginSession(ctx context.Context, userID int64) (string, error) {
	sessionID := uuid.NewString()

	key := loginSessionKey(m.config.Session.LoginSessionPrefix, sessionID)
	if err := m.store.Set(ctx, key, strconv.FormatInt(userID, 10), m.config.Session.LoginSessionTTL); err != nil {
		return "", m.storeFailure(err)
	}

	m.log.Info().Int64("user_id", userID).Msg("granted login session")
	return sessionID, nil
}

// VerifyLoginSession checks that sessionID exists and belongs to userID.
func (m *Manager) VerifyLoginSession(ctx context.Context, sessionID string, userID int64) error {
	key := loginSessionKey(m.config.Session.LoginSessionPrefix, sessionID)

	stored, ok, err := m.store.Get(ctx, key)
	if err != nil {
		return m.storeFailure(err)
	}
	if !ok {
		return fmt.Errorf("%w: login session not found", ErrUnauthorized)
	}
	if stored != strconv.FormatInt(userID, 10) {
		return fmt.Errorf("%w: login session user mismatch", ErrUnauthorized)
	}
	return nil
}

// RevokeLoginSession deletes the login session after confirming it
// belongs to userID. Revoking a session that is absent or owned by
// another user fails with ErrUnauthorized.
func (m *Manager) RevokeLoginSession(ctx context.Context, sessionID string, userID int64) error {
	if err := m.VerifyLoginSession(ctx, sessionID, userID); err != nil {
		return err
	}

	key := loginSessionKey(m.config.Session.LoginSessionPrefix, sessionID)
	if err := m.store.Delete(ctx, key); err != nil {
		return m.storeFailure(err)
	}

	m.log.Info().Int64("user_id", userID).Msg("revoked login session")
	return nil
}
