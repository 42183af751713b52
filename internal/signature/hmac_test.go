package signature

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Known answer: HMAC-SHA256("key", "The quick brown fox jumps over the lazy dog").
const (
	foxPayload = "The quick brown fox jumps over the lazy dog"
	foxSig     = "f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8"
)

func TestSign(t *testing.T) {
	assert.Equal(t, foxSig, Sign([]byte(foxPayload), []byte("key")))
	assert.Len(t, Sign(nil, []byte("key")), Size)
}

func TestVerify(t *testing.T) {
	payload := []byte(`{"event":"transaction.created","data":{"id":"txn_1"}}`)
	secret := []byte("whsec_test")
	sig := []byte(Sign(payload, secret))

	assert.True(t, Verify(payload, sig, secret))
	assert.True(t, Verify([]byte(foxPayload), []byte(foxSig), []byte("key")))
	assert.True(t, Verify(payload, []byte(Sign(payload, nil)), nil))

	tests := []struct {
		name    string
		payload []byte
		sig     []byte
		secret  []byte
	}{
		{"signed with other secret, verified with empty", payload, sig, nil},
		{"empty signature", payload, nil, secret},
		{"truncated signature", payload, sig[:Size-1], secret},
		{"upper-case signature", payload, []byte(upper(string(sig))), secret},
		{"not hex", payload, []byte(string(make([]byte, Size))), secret},
		{"other secret", payload, sig, []byte("whsec_other")},
		{"body re-encoded", []byte(`{"data":{"id":"txn_1"},"event":"transaction.created"}`), sig, secret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, Verify(tt.payload, tt.sig, tt.secret))
		})
	}
}

func TestVerify_SingleCharacterFlip(t *testing.T) {
	payload := []byte(`{"event":"item.updated"}`)
	secret := []byte("s3cret")
	sig := []byte(Sign(payload, secret))

	for i := range payload {
		p := flip(payload, i)
		assert.False(t, Verify(p, sig, secret), "payload flip at %d", i)
	}
	for i := range sig {
		s := flip(sig, i)
		assert.False(t, Verify(payload, s, secret), "signature flip at %d", i)
	}
	for i := range secret {
		k := flip(secret, i)
		assert.False(t, Verify(payload, sig, k), "secret flip at %d", i)
	}
}

func flip(b []byte, i int) []byte {
	out := append([]byte(nil), b...)
	out[i] ^= 0x01
	return out
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'f' {
			b[i] = c - 32
		}
	}
	return string(b)
}
