// Package store wraps the shared Redis instance behind the narrow TTL
// key-value contract the auth core depends on: set-with-ttl, get,
// idempotent delete, and wildcard delete-by-pattern.
//
// Every call hits Redis directly, with no in-process cache, so a
// revoke performed on one service instance is immediately visible to all
// others. Each call carries a bounded timeout; infrastructure failures
// surface as [ErrUnavailable] and never hang the caller.
package store
