package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// ComputeSignature returns the hex HMAC-SHA256 of body under secret. The
// bank signs the raw callback bytes with the shared webhook secret and sends
// the digest in a header.
func ComputeSignature(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a received hex signature against the raw body using
// a constant-time comparison. The hex digits are decoded first, so upper and
// lower case digests both verify.
func VerifySignature(secret string, body []byte, signature string) bool {
	received, err := hex.DecodeString(signature)
	if err != nil || len(received) == 0 {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(mac.Sum(nil), received)
}
