package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"math/rand/v2"
	"sync"
)

// randomRoller implements Roller on a seeded PCG source
type randomRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomRoller creates a roller seeded from crypto/rand
func NewRandomRoller() Roller {
	var b [16]byte
	if _, err := crand.Read(b[:]); err != nil {
		// crypto/rand does not fail on supported platforms
		panic(err)
	}
	return newPCGRoller(binary.LittleEndian.Uint64(b[:8]), binary.LittleEndian.Uint64(b[8:]))
}

// NewSeededRoller creates a roller that replays the same sequence for the same seed
func NewSeededRoller(seed uint64) Roller {
	return newPCGRoller(seed, seed^0x9e3779b97f4a7c15)
}

func newPCGRoller(seed1, seed2 uint64) *randomRoller {
	return &randomRoller{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	if count < 1 {
		return nil, errors.New("invalid dice count")
	}
	if sides < 1 {
		return nil, errors.New("invalid dice size")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rolls := make([]int, count)
	for i := range rolls {
		rolls[i] = r.rng.IntN(sides) + 1
	}

	return newResult(rolls, sides, bonus), nil
}
