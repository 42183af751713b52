package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Size is the length of a hex-encoded signature.
const Size = sha256.Size * 2

// Sign returns the lower-case hex HMAC-SHA256 of payload under secret.
func Sign(payload, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether sig is the signature of payload under secret. An
// empty secret is used as the HMAC key like any other.
func Verify(payload, sig, secret []byte) bool {
	if len(sig) != Size {
		return false
	}
	expected := Sign(payload, secret)
	return hmac.Equal([]byte(expected), sig)
}
