// Package authcore implements the authentication token lifecycle for the
// shorten-url service: JWT access tokens paired with longer-lived refresh
// tokens, Redis-backed session liveness, transparent rotation on expiry,
// and single-use verification codes for email confirmation and password
// reset.
//
// The package is designed for concurrent server workloads: Manager
// methods are safe to call from any number of goroutines after
// initialization through [Builder.Build]. All mutable state lives in the
// shared session store, never in process memory, so a revoke issued by
// one service instance is immediately visible to every other.
//
// # Architecture boundaries
//
// authcore is the public surface. It exposes [Manager], [Builder],
// [Config], and the collaborator interfaces ([Mailer],
// [PasswordEncoder]). Token encoding lives in the token subpackage and
// the store wrapper in store; neither is re-exported.
//
// HTTP routing, persistent entity storage, IP geolocation, and SMTP
// delivery are external collaborators. The core never sends email itself;
// it hands codes to the configured [Mailer].
package authcore
