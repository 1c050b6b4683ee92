package authcore

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/shortenurl/authcore/store"
	"github.com/shortenurl/authcore/token"
)

// Manager orchestrates the token lifecycle: granting credential pairs,
// verifying them under concurrent requests, rotating them transparently
// on expiry, and revoking them individually or in bulk.
//
// Manager holds no mutable state: the signing key is immutable after
// [Builder.Build] and every session lives in the shared store, so all
// methods are safe for concurrent use without locking.
type Manager struct {
	config Config
	codec  *token.Codec
	store  *store.Store
	mailer Mailer
	log    zerolog.Logger
}

// storeFailure converts store-layer errors into the public taxonomy:
// argument misuse stays InvalidArgument, everything else is a retryable
// internal error. Unauthorized conditions never originate here.
func (m *Manager) storeFailure(err error) error {
	if errors.Is(err, store.ErrInvalidArgument) {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return fmt.Errorf("%w: %v", ErrInternal, err)
}

// Grant mints an access/refresh pair carrying the subject claims and
// records the pair in the session store under a key derived from
// (userID, access token), with the refresh TTL as the liveness boundary.
// Exactly one store write. Empty userAgent or ipAddress fall back to the
// values attached to ctx by [WithUserAgent] and [WithClientIP].
func (m *Manager) Grant(ctx context.Context, userID int64, userAgent, ipAddress string) (TokenPair, error) {
	if userAgent == "" {
		userAgent = userAgentFromContext(ctx)
	}
	if ipAddress == "" {
		ipAddress = clientIPFromContext(ctx)
	}

	claims := token.Claims{UserID: userID, UserAgent: userAgent, ClientIP: ipAddress}

	access, err := m.codec.Mint(token.KindAccess, claims, m.config.Token.AccessTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	refresh, err := m.codec.Mint(token.KindRefresh, claims, m.config.Token.RefreshTTL)
	if err != nil {
		return TokenPair{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	key := sessionKey(m.config.Session.KeyPrefix, userID, access)
	if err := m.store.Set(ctx, key, refresh, m.config.Token.RefreshTTL); err != nil {
		return TokenPair{}, m.storeFailure(err)
	}

	m.log.Info().Int64("user_id", userID).Str("user_agent", userAgent).Msg("granted token pair")
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Verify checks an access token against the asserted identity.
//
// A token that is tampered, foreign-issued, or whose claims do not match
// the asserted identity fails with ErrUnauthorized before any store
// access. A valid matching token is confirmed live against the store and
// returned unchanged alongside its refresh token. An expired access token
// takes the rotation path: if its stored refresh token is still live the
// old session is revoked and a freshly minted pair is returned; otherwise
// both credentials are dead and the caller must re-authenticate.
//
// Within one call the liveness check always precedes any mutation, so a
// revoke racing this call is observed as "absent". Two concurrent
// rotations of the same expired token may each mint a distinct new pair;
// that race is accepted, since the old key's delete is idempotent and
// both pairs are valid.
func (m *Manager) Verify(ctx context.Context, accessToken string, userID int64, userAgent, ipAddress string) (TokenPair, error) {
	if userAgent == "" {
		userAgent = userAgentFromContext(ctx)
	}
	if ipAddress == "" {
		ipAddress = clientIPFromContext(ctx)
	}

	res := m.codec.Verify(accessToken)
	switch res.Status {
	case token.StatusValid:
		if res.Kind != token.KindAccess {
			return TokenPair{}, fmt.Errorf("%w: not an access token", ErrUnauthorized)
		}
		if !claimsMatch(res.Claims, userID, userAgent, ipAddress) {
			return TokenPair{}, fmt.Errorf("%w: token claims mismatch", ErrUnauthorized)
		}

		key := sessionKey(m.config.Session.KeyPrefix, userID, accessToken)
		refresh, ok, err := m.store.Get(ctx, key)
		if err != nil {
			return TokenPair{}, m.storeFailure(err)
		}
		if !ok {
			return TokenPair{}, ErrTokenNotFound
		}
		return TokenPair{AccessToken: accessToken, RefreshToken: refresh}, nil

	case token.StatusExpired:
		return m.rotate(ctx, accessToken, userID, userAgent, ipAddress)

	default:
		return TokenPair{}, fmt.Errorf("%w: invalid access token", ErrUnauthorized)
	}
}

// rotate replaces an expired pair with a fresh one, provided the stored
// refresh token is still live and matches the asserted identity. The only
// path that mutates two store entries in a single verify call: one
// delete, then the single set inside Grant.
func (m *Manager) rotate(ctx context.Context, accessToken string, userID int64, userAgent, ipAddress string) (TokenPair, error) {
	key := sessionKey(m.config.Session.KeyPrefix, userID, accessToken)

	refresh, ok, err := m.store.Get(ctx, key)
	if err != nil {
		return TokenPair{}, m.storeFailure(err)
	}
	if !ok {
		return TokenPair{}, ErrExpiredRefreshToken
	}

	res := m.codec.Verify(refresh)
	if !res.OK() || res.Kind != token.KindRefresh || !claimsMatch(res.Claims, userID, userAgent, ipAddress) {
		return TokenPair{}, ErrExpiredRefreshToken
	}

	if err := m.store.Delete(ctx, key); err != nil {
		return TokenPair{}, m.storeFailure(err)
	}

	pair, err := m.Grant(ctx, userID, userAgent, ipAddress)
	if err != nil {
		return TokenPair{}, err
	}

	m.log.Info().Int64("user_id", userID).Msg("rotated token pair for expired access token")
	return pair, nil
}

// Revoke deletes the session record backing accessToken. Revoking a
// token that has no live record fails with ErrUnauthorized rather than
// succeeding silently: callers use this to confirm logout actually
// invalidated something.
func (m *Manager) Revoke(ctx context.Context, userID int64, accessToken string) error {
	key := sessionKey(m.config.Session.KeyPrefix, userID, accessToken)

	_, ok, err := m.store.Get(ctx, key)
	if err != nil {
		return m.storeFailure(err)
	}
	if !ok {
		return ErrTokenNotFound
	}

	if err := m.store.Delete(ctx, key); err != nil {
		return m.storeFailure(err)
	}

	m.log.Info().Int64("user_id", userID).Msg("revoked token from session storage")
	return nil
}

// RevokeAll deletes every session record for userID in one wildcard
// sweep. This invalidates every device and session simultaneously and is
// irreversible; it is meant for account deletion, never ordinary logout.
// Individual key deletions are best-effort per batch.
func (m *Manager) RevokeAll(ctx context.Context, userID int64) error {
	deleted, err := m.store.DeleteByPattern(ctx, userWildcard(m.config.Session.KeyPrefix, userID))
	if err != nil {
		m.log.Error().Err(err).Int64("user_id", userID).Msg("failed to revoke all tokens for user")
		return m.storeFailure(err)
	}

	m.log.Info().Int64("user_id", userID).Int("revoked", deleted).Msg("revoked all tokens for user")
	return nil
}

// claimsMatch compares embedded claims with the identity the caller
// asserts. The IP is only compared when both sides supplied one, since
// not every flow captures a client address.
func claimsMatch(c token.Claims, userID int64, userAgent, ipAddress string) bool {
	if c.UserID != userID || c.UserAgent != userAgent {
		return false
	}
	if ipAddress != "" && c.ClientIP != "" && c.ClientIP != ipAddress {
		return false
	}
	return true
}
