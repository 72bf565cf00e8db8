// Package common holds small helpers shared by the client and the reference
// server.
package common

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// RandomToken returns n characters drawn uniformly from [0-9a-z] using
// crypto/rand. n <= 0 yields an empty string.
func RandomToken(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	var sb strings.Builder
	sb.Grow(n)
	limit := big.NewInt(int64(len(base36)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		sb.WriteByte(base36[idx.Int64()])
	}
	return sb.String(), nil
}

// WipeByteArray overwrites b with zeros. Used for passwords read from the
// terminal. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
