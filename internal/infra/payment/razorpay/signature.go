package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// ComputeSignature returns the hex HMAC-SHA256 of "orderID|paymentID" keyed by secret,
// the value the checkout widget posts back as razorpay_signature.
func ComputeSignature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))

	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature compares in constant time.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	expected := ComputeSignature(secret, orderID, paymentID)

	return hmac.Equal([]byte(expected), []byte(signature))
}
