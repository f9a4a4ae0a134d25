package entity

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"regexp"
	"time"

	"lumera/internal/errors"
)

const (
	orderNumberPrefix     = "LUM"
	orderNumberTokenChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	orderNumberTokenLen   = 6
)

// OrderNumberPattern matches every generated order number.
var OrderNumberPattern = regexp.MustCompile(`^LUM\d{4}[A-Z0-9]{6}$`)

// NewOrderNumber returns LUM + YY + MM + six upper-case base-36 characters,
// e.g. LUM2505AB3XQ9 for an order placed in May 2025.
func NewOrderNumber(now time.Time) (string, error) {
	return newOrderNumber(now, rand.Reader)
}

func newOrderNumber(now time.Time, random io.Reader) (string, error) {
	token := make([]byte, orderNumberTokenLen)
	limit := big.NewInt(int64(len(orderNumberTokenChars)))

	for i := range token {
		n, err := rand.Int(random, limit)
		if err != nil {
			return "", errors.Wrap(err, "failed to generate order number")
		}
		token[i] = orderNumberTokenChars[n.Int64()]
	}

	return fmt.Sprintf("%s%02d%02d%s", orderNumberPrefix, now.Year()%100, int(now.Month()), token), nil
}
