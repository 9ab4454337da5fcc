package utils

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// MaxSeed is the largest seed NewSeed returns. Seeds up to 2^53-1 survive a
// round trip through a JSON or protobuf Struct number unchanged.
const MaxSeed = 1<<53 - 1

// NewSeed generates a random seed in [1, MaxSeed] using crypto/rand. The
// result is never zero, so it can always be told apart from an unset seed.
func NewSeed() (int64, error) {
	var b [8]byte
	for {
		if _, err := crand.Read(b[:]); err != nil {
			return 0, fmt.Errorf("read random seed: %w", err)
		}
		seed := int64(binary.LittleEndian.Uint64(b[:]) >> 11)
		if seed != 0 {
			return seed, nil
		}
	}
}

// NewPackID generates a random (version 4) UUID identifying a scenario pack
func NewPackID() (uuid.UUID, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return uuid.Nil, fmt.Errorf("generate pack id: %w", err)
	}
	return id, nil
}
