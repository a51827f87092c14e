package utils

import (
	"strings"
	"testing"
)

func TestVerifySignature(t *testing.T) {
	secret := "webhook-secret"
	body := []byte(`{"transaction_id":"T1","status":"completed","merchant_ref":"POS-KHQR-abc"}`)

	t.Run("Given the matching secret Then the signature verifies", func(t *testing.T) {
		sig := ComputeSignature(secret, body)
		if !VerifySignature(secret, body, sig) {
			t.Error("valid signature rejected")
		}
	})

	t.Run("Given a tampered body Then verification fails", func(t *testing.T) {
		sig := ComputeSignature(secret, body)
		tampered := []byte(`{"transaction_id":"T1","status":"completed","merchant_ref":"POS-KHQR-xyz"}`)
		if VerifySignature(secret, tampered, sig) {
			t.Error("tampered body accepted")
		}
	})

	t.Run("Given the wrong secret Then verification fails", func(t *testing.T) {
		sig := ComputeSignature("other-secret", body)
		if VerifySignature(secret, body, sig) {
			t.Error("signature under wrong secret accepted")
		}
	})

	t.Run("Given an uppercase hex digest Then it still verifies", func(t *testing.T) {
		sig := strings.ToUpper(ComputeSignature(secret, body))
		if !VerifySignature(secret, body, sig) {
			t.Error("uppercase hex signature rejected")
		}
	})

	t.Run("Given an empty or non-hex signature Then verification fails", func(t *testing.T) {
		if VerifySignature(secret, body, "") {
			t.Error("empty signature accepted")
		}
		if VerifySignature(secret, body, "not-hex!") {
			t.Error("non-hex signature accepted")
		}
	})
}
