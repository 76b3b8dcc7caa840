package rand

import (
	"fmt"
	"hash/fnv"
	"math"

	"github.com/pkg/errors"
	"github.com/seehuhn/mt19937"
)

// A Generator is a Mersenne twister behind the parts of the math/rand method
// set we need. It is NOT safe for concurrent use: every chain owns exactly
// one Generator and draws from it alone, which is what makes runs
// reproducible whether chains execute sequentially or in parallel.
type Generator struct {
	mt *mt19937.MT19937

	// Cached second value from the last Marsaglia polar draw.
	haveNorm bool
	normVal  float64
}

// NewGenerator returns a generator seeded from a single int64.
func NewGenerator(seed int64) *Generator {
	mt := mt19937.New()
	mt.Seed(seed)
	return &Generator{mt: mt}
}

// NewGeneratorSlice returns a generator seeded from a key array, as in the
// mt19937 reference implementation.
func NewGeneratorSlice(keys []uint64) (*Generator, error) {
	if len(keys) < 1 {
		return nil, errors.Errorf("At least one seed key is required")
	}

	mt := mt19937.New()
	mt.SeedFromSlice(keys)
	return &Generator{mt: mt}, nil
}

// NewChainStream derives the independent substream for one chain from the
// master seed. The derivation depends only on (masterSeed, chain), so chain
// k sees the identical stream no matter how many chains run or in what
// order they are scheduled.
func NewChainStream(masterSeed int64, chain int) *Generator {
	return NewGenerator(masterSeed ^ fnv1a64(fmt.Sprintf("chain_%d", chain)))
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// Int63 provides the same interface as Go's math/rand.
func (g *Generator) Int63() int64 {
	return g.mt.Int63()
}

// Uint64 returns the raw next twister output.
func (g *Generator) Uint64() uint64 {
	return g.mt.Uint64()
}

// Int63n is a copy of the current Go code
func (g *Generator) Int63n(n int64) int64 {
	if n <= 0 {
		panic("invalid argument to Int63n")
	}

	if n&(n-1) == 0 { // n is power of two, can mask
		return g.Int63() & (n - 1)
	}

	max := int64((1 << 63) - 1 - (1<<63)%uint64(n))
	v := g.Int63()
	for v > max {
		v = g.Int63()
	}

	return v % n
}

// Float64 uses the commented, simpler implementation since we don't have the
// same support requirements for users
func (g *Generator) Float64() float64 {
	// See the Go lang comments for Rand Float64 implementation for details
	return float64(g.Int63n(1<<53)) / (1 << 53)
}

// NormFloat64 returns a standard normal variate via the Marsaglia polar
// method. Two variates are produced per rejection loop; the second is cached
// for the next call.
func (g *Generator) NormFloat64() float64 {
	if g.haveNorm {
		g.haveNorm = false
		return g.normVal
	}

	for {
		u := 2.0*g.Float64() - 1.0
		v := 2.0*g.Float64() - 1.0
		s := u*u + v*v
		if s >= 1.0 || s == 0.0 {
			continue
		}

		f := math.Sqrt(-2.0 * math.Log(s) / s)
		g.normVal = v * f
		g.haveNorm = true
		return u * f
	}
}
