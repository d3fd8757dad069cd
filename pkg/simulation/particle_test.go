package simulation

import (
	"testing"

	"github.com/lao-tseu-is-alive/go-particle-graph/pkg/geometry"
	"github.com/stretchr/testify/assert"
)

func TestParticle_UpdatePhysics(t *testing.T) {
	p := &Particle{
		Pos: geometry.Vector2D{X: 0.5, Y: 0.25},
		Vel: geometry.Vector2D{X: 0.25, Y: -0.25},
	}
	p.UpdatePhysics()
	assert.Equal(t, geometry.Vector2D{X: 0.75, Y: 0}, p.Pos)
	assert.Equal(t, geometry.Vector2D{X: 0.25, Y: -0.25}, p.Vel)
}

func TestStore_EachPairVisitsEveryPairOnce(t *testing.T) {
	s := NewStore(5)
	for i := 0; i < 5; i++ {
		s.Append(Particle{Pos: geometry.Vector2D{X: float64(i)}})
	}

	var seen []Pair
	s.EachPair(func(i, j int, a, b *Particle) {
		assert.Equal(t, float64(i), a.Pos.X)
		assert.Equal(t, float64(j), b.Pos.X)
		seen = append(seen, Pair{I: i, J: j})
	})

	want := []Pair{
		{0, 1}, {0, 2}, {0, 3}, {0, 4},
		{1, 2}, {1, 3}, {1, 4},
		{2, 3}, {2, 4},
		{3, 4},
	}
	assert.Equal(t, want, seen)
}

func TestStore_EachMutatesInPlace(t *testing.T) {
	s := NewStore(3)
	for i := 0; i < 3; i++ {
		s.Append(Particle{})
	}
	s.Each(func(i int, p *Particle) { p.Vel.X = float64(i) })
	for i := 0; i < 3; i++ {
		assert.Equal(t, float64(i), s.At(i).Vel.X)
	}
}

func TestStore_ResetAndSnapshot(t *testing.T) {
	s := NewStore(-1)
	s.Append(Particle{Pos: geometry.Vector2D{X: 0.1, Y: 0.2}})
	s.Append(Particle{Pos: geometry.Vector2D{X: 0.3, Y: 0.4}})

	snap := s.Snapshot()
	snap[0].Pos.X = 9
	assert.Equal(t, 0.1, s.At(0).Pos.X, "snapshot is a copy")

	assert.Equal(t, []geometry.Vector2D{{X: 0.1, Y: 0.2}, {X: 0.3, Y: 0.4}}, s.Positions(nil))

	s.Reset()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Positions(nil))
}
