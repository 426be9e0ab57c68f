// Package randid generates short random identifiers.
package randid

import "math/rand/v2"

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// New returns a random alphanumeric ID of length n.
func New(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}

// WithPrefix returns prefix + "-" + a random ID of length n.
func WithPrefix(prefix string, n int) string {
	return prefix + "-" + New(n)
}
