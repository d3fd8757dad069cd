package simulation

import "github.com/lao-tseu-is-alive/go-particle-graph/pkg/geometry"

// Particle is a point with a position and a velocity, both in normalized units:
// (0,0)-(1,1) spans the drawable area, velocity is distance per sub-step.
type Particle struct {
	Pos geometry.Vector2D
	Vel geometry.Vector2D
}

// UpdatePhysics applies the velocity to the Particle position
func (p *Particle) UpdatePhysics() {
	p.Pos = p.Pos.Add(p.Vel)
}

// DistanceTo gives the cartesian distance from this Particle and the other
func (p *Particle) DistanceTo(other *Particle) float64 {
	return p.Pos.DistanceTo(other.Pos)
}

// Store owns the particles of one simulation. The index of a particle is its identity:
// the connectivity graph is keyed by it, so particles are never reordered or removed.
type Store struct {
	items []Particle
}

// NewStore returns an empty store with room for capacity particles.
func NewStore(capacity int) *Store {
	if capacity < 0 {
		capacity = 0
	}
	return &Store{items: make([]Particle, 0, capacity)}
}

func (s *Store) Len() int { return len(s.items) }

// At returns the i-th particle. The pointer stays valid until the next Reset or Append.
func (s *Store) At(i int) *Particle { return &s.items[i] }

// Reset drops every particle but keeps the backing array.
func (s *Store) Reset() { s.items = s.items[:0] }

func (s *Store) Append(p Particle) { s.items = append(s.items, p) }

// Each calls fn for every particle in index order.
func (s *Store) Each(fn func(i int, p *Particle)) {
	for i := range s.items {
		fn(i, &s.items[i])
	}
}

// EachPair calls fn once for every pair i < j, in row order.
func (s *Store) EachPair(fn func(i, j int, a, b *Particle)) {
	for i := 0; i < len(s.items)-1; i++ {
		a := &s.items[i]
		for j := i + 1; j < len(s.items); j++ {
			fn(i, j, a, &s.items[j])
		}
	}
}

// Positions appends the position of every particle to dst and returns the extended slice.
func (s *Store) Positions(dst []geometry.Vector2D) []geometry.Vector2D {
	for i := range s.items {
		dst = append(dst, s.items[i].Pos)
	}
	return dst
}

// Snapshot returns a copy of the particles.
func (s *Store) Snapshot() []Particle {
	out := make([]Particle, len(s.items))
	copy(out, s.items)
	return out
}
