package simulation

import (
	"fmt"
	"time"

	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// EngineActor owns an Engine and serializes every access to it.
// The renderer drives it with Tick messages and reads Snapshots from a channel.
type EngineActor struct {
	engine     *Engine
	snapshotCh chan<- *Snapshot

	// --- Benchmark Stats ---
	framesCount  int
	droppedCount int
	lastLogTime  time.Time
}

var _ actor.Actor = (*EngineActor)(nil)

// NewEngineActor creates the actor around a fresh engine built from cfg.
func NewEngineActor(snapshotCh chan<- *Snapshot, cfg *Config, opts ...Option) *EngineActor {
	return &EngineActor{
		engine:      NewEngine(cfg, opts...),
		snapshotCh:  snapshotCh,
		lastLogTime: time.Now(),
	}
}

func (a *EngineActor) PreStart(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("Engine starting with %d particles", a.engine.Len())
	return nil
}

func (a *EngineActor) Receive(ctx *actor.ReceiveContext) {
	if _, ok := ctx.Message().(*goaktpb.PostStart); ok {
		ctx.Logger().Infof("Engine started: %d connected pairs", a.engine.graph.count())
		a.pushSnapshot()
		return
	}
	if !a.handle(ctx.Logger(), ctx.Message()) {
		ctx.Unhandled()
	}
}

// handle processes one message and reports whether it was understood.
func (a *EngineActor) handle(logger log.Logger, message proto.Message) bool {
	switch msg := message.(type) {
	case *emptypb.Empty:
		a.logBenchmarks(logger)
		a.engine.Advance()
		a.framesCount++
		a.pushSnapshot()

	case *wrapperspb.UInt32Value:
		a.engine.Initialize(int(msg.GetValue()))
		logger.Infof("Engine reset: %d particles, %d connected pairs", a.engine.Len(), a.engine.graph.count())
		a.pushSnapshot()

	case *structpb.Struct:
		if err := a.applyTuning(msg); err != nil {
			logger.Warnf("tuning rejected: %v", err)
			return true
		}
		logger.Debugf("tuning applied: %v", msg.AsMap())

	default:
		return false
	}
	return true
}

func (a *EngineActor) applyTuning(msg *structpb.Struct) error {
	patch, err := protojson.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode tuning: %w", err)
	}
	current := a.engine.Config()
	merged, err := current.Merge(patch)
	if err != nil {
		return err
	}
	a.engine.Reconfigure(merged)
	return nil
}

func (a *EngineActor) logBenchmarks(logger log.Logger) {
	if time.Since(a.lastLogTime) >= time.Second {
		logger.Infof("📊 FRAME RATE: %d/sec (dropped snapshots: %d) | Particles: %d | Frame: %d",
			a.framesCount, a.droppedCount, a.engine.Len(), a.engine.Frame())
		a.framesCount = 0
		a.droppedCount = 0
		a.lastLogTime = time.Now()
	}
}

func (a *EngineActor) pushSnapshot() {
	if a.snapshotCh == nil {
		return
	}
	select {
	case a.snapshotCh <- a.buildSnapshot():
	default:
		// UI busy, skip frame
		a.droppedCount++
	}
}

func (a *EngineActor) buildSnapshot() *Snapshot {
	links := a.engine.ConnectedPairs()
	snap := &Snapshot{
		Frame:           a.engine.Frame(),
		Population:      a.engine.Len(),
		Positions:       a.engine.Positions(nil),
		Links:           make([]Link, len(links)),
		ConnectionCount: a.engine.graph.count(),
	}
	copy(snap.Links, links)
	return snap
}

func (a *EngineActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Info("Engine is shutdown...")
	return nil
}
