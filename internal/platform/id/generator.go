package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const defaultSize = 16

// Generator creates opaque IDs used to correlate requests across logs and
// responses.
type Generator interface {
	NewID() (string, error)
}

type RandomGenerator struct {
	size int
}

// NewRandomGenerator returns a generator of hex IDs encoding size random
// bytes. Non-positive sizes fall back to 16.
func NewRandomGenerator(size int) *RandomGenerator {
	if size <= 0 {
		size = defaultSize
	}
	return &RandomGenerator{size: size}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, g.size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
