package spinner

import (
	"math/rand/v2"
	"sync"
)

// Source draws uniformly distributed indexes.
//
// IntN returns a value in [0, n) for n > 0. [*rand.Rand] satisfies it.
type Source interface {
	IntN(n int) int
}

var _ Source = (*rand.Rand)(nil)

// NewSource returns a PCG-backed [Source] that yields the same draws for the same seed.
//
// The returned source is not safe for concurrent use; wrap it with [NewLockedSource] when sharing it.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// globalSource delegates to the top-level math/rand/v2 functions, which are safe for concurrent use.
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// DefaultSource returns the process-global, randomly seeded generator.
func DefaultSource() Source {
	return globalSource{}
}

// LockedSource serializes access to a wrapped [Source].
type LockedSource struct {
	mu  sync.Mutex
	src Source
}

// NewLockedSource wraps src so that it can be shared between goroutines.
func NewLockedSource(src Source) *LockedSource {
	return &LockedSource{src: src}
}

func (l *LockedSource) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.IntN(n)
}

// SourceFor returns a seeded source when seed is non-zero and the global source otherwise.
func SourceFor(seed uint64) Source {
	if seed == 0 {
		return DefaultSource()
	}
	return NewSource(seed)
}
