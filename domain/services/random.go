package services

import (
	cryptorand "crypto/rand"
	"math/rand/v2"
	"sync"

	"lotto/domain/interfaces"
)

// lockedRand makes a *rand.Rand safe for concurrent use
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSecureRandomSource returns a ChaCha8 generator seeded from crypto/rand
func NewSecureRandomSource() interfaces.RandomSource {
	var seed [32]byte
	_, _ = cryptorand.Read(seed[:])
	return &lockedRand{rng: rand.New(rand.NewChaCha8(seed))}
}

// NewSeededRandomSource returns a reproducible generator, used by tests and the shell's --seed flag
func NewSeededRandomSource(seed uint64) interfaces.RandomSource {
	return &lockedRand{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.IntN(n)
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Float64()
}
