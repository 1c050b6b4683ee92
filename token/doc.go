// Package token implements the signed-token codec used by the auth core:
// minting and verifying compact HS256-signed tokens carrying subject
// claims. Verification reports its outcome as a tagged [Result] rather
// than error control flow, so callers branch on data.
//
// The codec is pure: it never touches the session store, and a token's
// liveness (as opposed to signature validity) is not its concern.
package token
