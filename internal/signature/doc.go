// Package signature signs and verifies webhook deliveries.
//
// A delivery is authenticated by an HMAC-SHA256 of the raw request body keyed
// with the webhook secret, hex-encoded in lower case. Verification compares
// the hex strings in constant time, so a signature that differs only in letter
// case is rejected.
//
// Always verify against the exact bytes received. Re-encoding a decoded body
// changes key order and whitespace and breaks the signature.
package signature
