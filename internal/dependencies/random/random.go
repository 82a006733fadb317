// Package random provides randomness that can be mocked for testing.
// Room codes and race-text selection both draw from here.
package random

import (
	"crypto/rand"
	"math/big"
)

// Random is the source of randomness used by the engine
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// Code generates a random string of length n drawn from alphabet
	Code(n int, alphabet string) string
}

// Source implements Random on top of crypto/rand
type Source struct{}

// New creates a crypto/rand backed Source
func New() *Source {
	return &Source{}
}

// Intn returns a cryptographically random int in [0, n)
func (s *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails if the OS entropy source is broken
		return 0
	}
	return int(v.Int64())
}

// Code generates a random string of length n from alphabet
func (s *Source) Code(n int, alphabet string) string {
	if n <= 0 || len(alphabet) == 0 {
		return ""
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = alphabet[s.Intn(len(alphabet))]
	}
	return string(out)
}
