package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// OrderCodeLength is the fixed length of booking order codes.
const OrderCodeLength = 8

const orderCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateOrderCode returns a random order code drawn uniformly from [A-Z0-9].
// Collisions are improbable but not impossible; callers re-draw on a
// uniqueness violation.
func GenerateOrderCode() (string, error) {
	code := make([]byte, OrderCodeLength)
	max := big.NewInt(int64(len(orderCodeCharset)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate order code: %w", err)
		}
		code[i] = orderCodeCharset[n.Int64()]
	}
	return string(code), nil
}
