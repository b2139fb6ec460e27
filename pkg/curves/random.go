package curves

import (
	"crypto/rand"
	"io"
	"math/big"
)

// cryptoRandInt samples a uniform value in [0, max) from reader. When
// reader is nil the process-wide crypto/rand source is used. Each caller
// that needs a fresh scalar obtains its own draw here rather than sharing
// mutable RNG state across goroutines (§5: "each parallel worker obtains
// its own secure RNG instance").
func cryptoRandInt(reader io.Reader, max *big.Int) (*big.Int, error) {
	if reader == nil {
		reader = rand.Reader
	}
	return rand.Int(reader, max)
}
