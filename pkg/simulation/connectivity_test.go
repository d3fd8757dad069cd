package simulation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_Formula(t *testing.T) {
	tests := []struct{ a, b int }{
		{0, 1}, {3, 7}, {12, 98}, {98, 99}, {5, 5}, {1000, 2},
	}
	for _, tt := range tests {
		raw := (1 + math.Sin(float64(tt.a)*314159+float64(tt.b)*2653)) * 200
		want := raw - math.Floor(raw)
		got := Hash(tt.a, tt.b)
		assert.InDelta(t, want, got, 1e-6, "Hash(%d, %d)", tt.a, tt.b)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.Less(t, got, 1.0)
	}
}

func TestConnected_Deterministic(t *testing.T) {
	const n = 100
	forward := make(map[Pair]bool)
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			forward[Pair{I: i, J: j}] = Connected(i, j)
		}
	}
	// same answers in reverse order and on repeated calls
	for i := n - 2; i >= 0; i-- {
		for j := n - 1; j > i; j-- {
			for k := 0; k < 3; k++ {
				if Connected(i, j) != forward[Pair{I: i, J: j}] {
					t.Fatalf("Connected(%d, %d) changed between calls", i, j)
				}
			}
		}
	}
}

func TestConnected_Density(t *testing.T) {
	count := 0
	for i := 0; i < 99; i++ {
		for j := i + 1; j < 100; j++ {
			if Connected(i, j) {
				count++
			}
		}
	}
	// about 1% of 4950 pairs
	assert.GreaterOrEqual(t, count, 20)
	assert.LessOrEqual(t, count, 100)
}

func TestHashOracle_Threshold(t *testing.T) {
	all := HashOracle{K1: 314159, K2: 2653, Scale: 200, Threshold: 1}
	none := HashOracle{K1: 314159, K2: 2653, Scale: 200, Threshold: 0}
	for i := 0; i < 10; i++ {
		assert.True(t, all.Connected(i, i+1))
		assert.False(t, none.Connected(i, i+1))
	}
}

func TestStrength(t *testing.T) {
	always := OracleFunc(func(i, j int) bool { return true })
	never := OracleFunc(func(i, j int) bool { return false })
	assert.Equal(t, 1.0, Strength(always, 0, 1))
	assert.Equal(t, 0.0, Strength(never, 0, 1))
}

func TestGraph_MatchesOracle(t *testing.T) {
	const n = 100
	g := newGraph(defaultOracle, n)

	expected := 0
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			want := Connected(i, j)
			if want {
				expected++
			}
			require.Equal(t, want, g.connected(i, j), "pair (%d, %d)", i, j)
			require.Equal(t, want, g.connected(j, i), "pair (%d, %d) reversed", j, i)
		}
	}
	assert.Equal(t, expected, g.count())
	assert.Len(t, g.pairs, expected)

	degrees := 0
	for i := 0; i < n; i++ {
		degrees += g.degree(i)
	}
	assert.Equal(t, 2*expected, degrees)
}

func TestGraph_IndexCoversTriangle(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want int
	}{
		{"empty", 0, 0},
		{"single", 1, 0},
		{"pair", 2, 1},
		{"seven", 7, 21},
		{"hundred", 100, 4950},
	}
	always := OracleFunc(func(i, j int) bool { return true })
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGraph(always, tt.n)
			assert.Equal(t, tt.want, g.count())
			assert.Len(t, g.pairs, tt.want)
		})
	}
}

func TestGraph_OutOfRange(t *testing.T) {
	g := newGraph(OracleFunc(func(i, j int) bool { return true }), 4)
	assert.False(t, g.connected(2, 2))
	assert.False(t, g.connected(-1, 2))
	assert.False(t, g.connected(1, 4))
}
