package simulation

import (
	"math"

	"github.com/bits-and-blooms/bitset"
)

// Oracle decides whether two particles, identified by their index, are connected.
// Implementations must be pure: the same pair always yields the same answer.
type Oracle interface {
	Connected(i, j int) bool
}

// OracleFunc adapts a plain function to the Oracle interface.
type OracleFunc func(i, j int) bool

func (f OracleFunc) Connected(i, j int) bool { return f(i, j) }

// HashOracle is the trigonometric hash used to build the connectivity graph.
// It holds no state beyond its constants, so it can be called from anywhere in any order.
type HashOracle struct {
	K1, K2    float64
	Scale     float64
	Threshold float64
}

// NewHashOracle returns the oracle described by the hash fields of cfg.
func NewHashOracle(cfg *Config) HashOracle {
	return HashOracle{
		K1:        cfg.HashK1,
		K2:        cfg.HashK2,
		Scale:     cfg.HashScale,
		Threshold: cfg.ConnectionThreshold,
	}
}

// Hash maps a pair of indices to [0, 1).
func (h HashOracle) Hash(a, b int) float64 {
	return fract((1 + math.Sin(float64(a)*h.K1+float64(b)*h.K2)) * h.Scale)
}

func (h HashOracle) Connected(a, b int) bool {
	return h.Hash(a, b) < h.Threshold
}

var defaultOracle = NewHashOracle(DefaultConfig())

// Hash is HashOracle.Hash with the default constants K1 = 314159, K2 = 2653.
func Hash(a, b int) float64 { return defaultOracle.Hash(a, b) }

// Connected reports whether Hash(a, b) falls below the default threshold of 0.01.
func Connected(a, b int) bool { return defaultOracle.Connected(a, b) }

// Strength turns the connectivity test into the 0/1 multiplier used by the attraction term.
func Strength(o Oracle, i, j int) float64 {
	if o.Connected(i, j) {
		return 1
	}
	return 0
}

func fract(x float64) float64 {
	return x - math.Floor(x)
}

// Pair is an unordered pair of particle indices, stored with I < J.
type Pair struct {
	I, J int
}

// graph caches the oracle's answers for every pair i < j of a population.
// Bits are laid out row by row over the upper triangle.
type graph struct {
	n     int
	bits  *bitset.BitSet
	pairs []Pair
}

func newGraph(o Oracle, n int) *graph {
	if n < 0 {
		n = 0
	}
	g := &graph{
		n:    n,
		bits: bitset.New(uint(n * (n - 1) / 2)),
	}
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			if o.Connected(i, j) {
				g.bits.Set(g.index(i, j))
				g.pairs = append(g.pairs, Pair{I: i, J: j})
			}
		}
	}
	return g
}

// index returns the bit position of pair (i, j), i < j.
func (g *graph) index(i, j int) uint {
	// rows 0..i-1 hold (n-1) + (n-2) + ... + (n-i) bits
	row := i*g.n - i*(i+1)/2
	return uint(row + (j - i - 1))
}

func (g *graph) connected(i, j int) bool {
	if i > j {
		i, j = j, i
	}
	if i == j || i < 0 || j >= g.n {
		return false
	}
	return g.bits.Test(g.index(i, j))
}

func (g *graph) degree(i int) int {
	d := 0
	for k := 0; k < g.n; k++ {
		if k != i && g.connected(i, k) {
			d++
		}
	}
	return d
}

func (g *graph) count() int {
	return int(g.bits.Count())
}
