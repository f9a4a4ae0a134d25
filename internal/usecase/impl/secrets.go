package impl

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"io"
	"math/big"

	"lumera/internal/errors"
)

const (
	otpDigits       = 6
	receiptAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// hashSecret returns the hex SHA-256 of a token or one-time code. Only hashes are stored.
func hashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))

	return hex.EncodeToString(sum[:])
}

// secretMatches compares a presented secret against a stored hash in constant time.
func secretMatches(secret, storedHash string) bool {
	return subtle.ConstantTimeCompare([]byte(hashSecret(secret)), []byte(storedHash)) == 1
}

// newOTP returns a zero-padded six-digit code.
func newOTP(random io.Reader) (string, error) {
	return randomString(random, "0123456789", otpDigits)
}

func randomString(random io.Reader, alphabet string, length int) (string, error) {
	out := make([]byte, length)
	limit := big.NewInt(int64(len(alphabet)))

	for i := range out {
		n, err := rand.Int(random, limit)
		if err != nil {
			return "", errors.Wrap(err, "failed to read random bytes")
		}
		out[i] = alphabet[n.Int64()]
	}

	return string(out), nil
}
