package random

import (
	crand "crypto/rand"
	"fmt"
)

// NewSeed generates a random epoch seed using crypto/rand.
func NewSeed() ([32]byte, error) {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		return [32]byte{}, fmt.Errorf("read random seed: %w", err)
	}
	return seed, nil
}
