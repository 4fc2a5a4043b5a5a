// Package gameid generates time-sortable identifiers for recorded sessions.
// An ID is a UUIDv7 written as 26 characters of Crockford base32, the same
// shape TypeID uses.
package gameid

import (
	crand "crypto/rand"
	"fmt"
	rand "math/rand/v2"
	"strings"

	"github.com/coder/quartz"
)

const (
	alphabet = "0123456789abcdefghjkmnpqrstvwxyz"
	length   = 26
)

// Generator creates IDs from a clock and a random source.
type Generator struct {
	clock quartz.Clock
	rng   *rand.Rand
}

// NewGenerator returns a generator. A nil clock uses the wall clock and a
// nil rng uses crypto/rand, so only tests need to pass either.
func NewGenerator(clock quartz.Clock, rng *rand.Rand) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, rng: rng}
}

// Generate returns a new ID using the wall clock and crypto/rand.
func Generate() string {
	return NewGenerator(nil, nil).Generate()
}

// Generate returns the next ID.
func (g *Generator) Generate() string {
	var id [16]byte

	ms := uint64(g.clock.Now().UnixMilli())
	for i := range 6 {
		id[i] = byte(ms >> (40 - 8*i))
	}

	if g.rng != nil {
		for i := 6; i < len(id); i++ {
			id[i] = byte(g.rng.UintN(256))
		}
	} else if _, err := crand.Read(id[6:]); err != nil {
		panic("gameid: crypto/rand failed: " + err.Error())
	}

	id[6] = id[6]&0x0f | 0x70 // version 7
	id[8] = id[8]&0x3f | 0x80 // RFC 4122 variant

	return encode(id)
}

// encode writes the 128 bits right-aligned in 130, so the first character
// never exceeds '7'.
func encode(id [16]byte) string {
	var hi, lo uint64
	for i := range 8 {
		hi = hi<<8 | uint64(id[i])
		lo = lo<<8 | uint64(id[8+i])
	}

	out := make([]byte, length)
	for i := length - 1; i >= 0; i-- {
		out[i] = alphabet[lo&0x1f]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out)
}

// Validate reports whether id could have come from Generate.
func Validate(id string) error {
	if len(id) != length {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}
	for i, r := range id {
		if !strings.ContainsRune(alphabet, r) {
			return fmt.Errorf("invalid character %c at position %d", r, i)
		}
	}
	return nil
}
