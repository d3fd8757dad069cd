package simulation

import (
	"math"

	"github.com/lao-tseu-is-alive/go-particle-graph/pkg/geometry"
)

// Center is the point particles are pulled back to.
var Center = geometry.Vector2D{X: 0.5, Y: 0.5}

// ForceModel holds the coefficients of the three force contributions.
// It is a value type: it keeps no state between calls and only mutates the particles it is given.
type ForceModel struct {
	CenteringFactor  float64
	AttractionFactor float64
	AttractionCap    float64
	RepulsionFactor  float64
	RepulsionCap     float64
	Damping          float64
}

// NewForceModel copies the force coefficients out of cfg.
func NewForceModel(cfg *Config) ForceModel {
	return ForceModel{
		CenteringFactor:  cfg.CenteringFactor,
		AttractionFactor: cfg.AttractionFactor,
		AttractionCap:    cfg.AttractionCap,
		RepulsionFactor:  cfg.RepulsionFactor,
		RepulsionCap:     cfg.RepulsionCap,
		Damping:          cfg.Damping,
	}
}

// ForceTowards adds a push of magnitude a toward target to the velocity of p, then damps it.
// A negative a pushes away from target. When p sits exactly on target there is no direction,
// so only the damping is applied.
func (m ForceModel) ForceTowards(p *Particle, target geometry.Vector2D, a float64) {
	if dir, _, ok := target.Sub(p.Pos).Unit(); ok {
		p.Vel = p.Vel.Add(dir.Mul(a))
	}
	p.Vel = p.Vel.Mul(m.Damping)
}

// KeepNearOrigin pulls p toward Center with a magnitude growing as the fourth power of the distance.
func (m ForceModel) KeepNearOrigin(p *Particle) {
	r := p.Pos.DistanceTo(Center)
	m.ForceTowards(p, Center, r*r*r*r*m.CenteringFactor)
}

// PairForce returns the signed magnitude exchanged by two particles r apart.
// Positive values attract, negative values repel. c is the connection strength (0 or 1).
func (m ForceModel) PairForce(r, c float64) float64 {
	attraction := math.Min(r, m.AttractionCap) * c * m.AttractionFactor
	// r == 0 gives +Inf here, which the cap absorbs
	repulsion := math.Min(m.RepulsionCap, m.RepulsionFactor/(r*r))
	return attraction - repulsion
}

// KeepApart applies PairForce to both particles, each toward the other.
// Both directions are computed from the positions before either velocity changes.
func (m ForceModel) KeepApart(a, b *Particle, c float64) {
	f := m.PairForce(a.DistanceTo(b), c)
	m.ForceTowards(a, b.Pos, f)
	m.ForceTowards(b, a.Pos, f)
}
