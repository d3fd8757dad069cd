package simulation

import (
	"math/rand/v2"
	"time"

	"github.com/lao-tseu-is-alive/go-particle-graph/pkg/geometry"
)

// Link is a connected pair together with the positions of both particles
// at the moment the connection was observed.
type Link struct {
	Pair
	From, To geometry.Vector2D
}

// Engine advances one population of particles. It is not safe for concurrent use:
// EngineActor is the way to share one between goroutines.
type Engine struct {
	cfg    Config
	forces ForceModel
	oracle Oracle
	custom bool // oracle was supplied with WithOracle
	rng    *rand.Rand

	store *Store
	graph *graph

	links   []Link // first sub-step of the last frame
	scratch []Link
	frame   uint64
}

type Option func(*Engine)

// WithOracle replaces the hash oracle built from the config.
func WithOracle(o Oracle) Option {
	return func(e *Engine) {
		e.oracle = o
		e.custom = true
	}
}

// WithRand sets the random source used by Initialize.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// NewEngine builds an engine from cfg (DefaultConfig when nil) and seeds it with cfg.Population particles.
func NewEngine(cfg *Config, opts ...Option) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	e := &Engine{
		cfg:    *cfg,
		forces: NewForceModel(cfg),
		oracle: NewHashOracle(cfg),
		store:  NewStore(cfg.Population),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = newRand(cfg.Seed)
	}
	e.Initialize(cfg.Population)
	return e
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Initialize discards every particle and creates count new ones, uniformly placed in [0,1)²
// and drifting with each velocity component in [-InitialSpeed, InitialSpeed).
func (e *Engine) Initialize(count int) {
	if count < 0 {
		count = 0
	}
	e.store.Reset()
	for i := 0; i < count; i++ {
		e.store.Append(Particle{
			Pos: geometry.Vector2D{X: e.rng.Float64(), Y: e.rng.Float64()},
			Vel: geometry.Vector2D{
				X: (e.rng.Float64()*2 - 1) * e.cfg.InitialSpeed,
				Y: (e.rng.Float64()*2 - 1) * e.cfg.InitialSpeed,
			},
		})
	}
	e.links = e.links[:0]
	e.frame = 0
	e.graph = newGraph(e.oracle, count)
}

// Advance runs one displayed frame: SubSteps sub-steps. It returns the links seen during the
// first sub-step only; the same slice is kept for ConnectedPairs until the next call.
func (e *Engine) Advance() []Link {
	e.links = e.step(e.links[:0])
	for s := 1; s < e.cfg.SubSteps; s++ {
		e.scratch = e.step(e.scratch[:0])
	}
	e.frame++
	return e.links
}

// Step runs a single sub-step and returns the links seen during it.
// It does not change what ConnectedPairs reports.
func (e *Engine) Step() []Link {
	return e.step(nil)
}

// step applies the centering force and integrates every particle, then applies the pairwise
// force to every pair. Connected pairs are appended to links.
func (e *Engine) step(links []Link) []Link {
	e.store.Each(func(_ int, p *Particle) {
		e.forces.KeepNearOrigin(p)
		p.UpdatePhysics()
	})
	e.store.EachPair(func(i, j int, a, b *Particle) {
		c := 0.0
		if e.graph.connected(i, j) {
			c = 1
			links = append(links, Link{Pair: Pair{I: i, J: j}, From: a.Pos, To: b.Pos})
		}
		e.forces.KeepApart(a, b, c)
	})
	return links
}

func (e *Engine) Len() int { return e.store.Len() }

// Particles returns a copy of every particle in index order.
func (e *Engine) Particles() []Particle { return e.store.Snapshot() }

// Positions appends the current positions to dst.
func (e *Engine) Positions(dst []geometry.Vector2D) []geometry.Vector2D {
	return e.store.Positions(dst)
}

// Particle returns a copy of the i-th particle.
func (e *Engine) Particle(i int) Particle { return *e.store.At(i) }

// SetParticle overwrites the state of the i-th particle.
func (e *Engine) SetParticle(i int, p Particle) { *e.store.At(i) = p }

// ConnectedPairs returns the links reported by the last Advance.
func (e *Engine) ConnectedPairs() []Link { return e.links }

// Graph returns every connected pair of the current population.
func (e *Engine) Graph() []Pair {
	out := make([]Pair, len(e.graph.pairs))
	copy(out, e.graph.pairs)
	return out
}

// Degree returns the number of particles connected to particle i.
func (e *Engine) Degree(i int) int { return e.graph.degree(i) }

// Frame returns the number of frames advanced since the last Initialize.
func (e *Engine) Frame() uint64 { return e.frame }

func (e *Engine) Config() Config { return e.cfg }

// Reconfigure swaps the coefficients used by the next sub-step. Particles are kept;
// the connectivity graph is rebuilt only when the hash constants changed.
func (e *Engine) Reconfigure(cfg *Config) {
	rehash := NewHashOracle(cfg) != NewHashOracle(&e.cfg)
	e.cfg = *cfg
	e.forces = NewForceModel(cfg)
	if rehash && !e.custom {
		e.oracle = NewHashOracle(cfg)
		e.graph = newGraph(e.oracle, e.store.Len())
	}
}
