package render

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-particle-graph/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-particle-graph/pkg/ui"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/proto"
)

var (
	backgroundColor = color.Black
	particleColor   = color.White
	linkColor       = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// Game is the ebiten front end. It never touches the engine directly:
// it sends messages to the engine actor and draws the latest snapshot it received.
type Game struct {
	ctx        context.Context
	System     actor.ActorSystem
	enginePID  *actor.PID
	snapshotCh chan *simulation.Snapshot
	lastState  *simulation.Snapshot
	logger     log.Logger
	paused     bool

	panel *ui.Panel

	widgetCentering   *ui.Slider
	widgetAttraction  *ui.Slider
	widgetRepulsion   *ui.Slider
	widgetDamping     *ui.Slider
	widgetSubSteps    *ui.Slider
	widgetPopulation  *ui.Slider
	widgetConnections *ui.Checkbox

	cfg *simulation.Config

	// Timing instrumentation
	lastUpdateDuration time.Duration
	lastDrawDuration   time.Duration
	updateAvg          float64 // Rolling average in ms
	drawAvg            float64 // Rolling average in ms
}

// GetNewGame spawns the engine actor in system and builds the UI around it.
func GetNewGame(ctx context.Context, cfg *simulation.Config, system actor.ActorSystem) (*Game, error) {
	snapshotCh := make(chan *simulation.Snapshot, 10) // Buffer to avoid blocking

	engineActor := simulation.NewEngineActor(snapshotCh, cfg)
	enginePID, err := system.Spawn(ctx, "engine", engineActor)
	if err != nil {
		return nil, fmt.Errorf("failed to spawn engine: %w", err)
	}

	g := &Game{
		ctx:        ctx,
		System:     system,
		enginePID:  enginePID,
		snapshotCh: snapshotCh,
		lastState:  &simulation.Snapshot{}, // Avoid nil pointer
		logger:     system.Logger(),
		cfg:        cfg,
	}

	panel := ui.NewPanel(5, 5, 170, "Tuning [H]")
	panel.AddSection("Forces")
	g.widgetCentering = panel.AddSlider("Centering", 0, 0.005, cfg.CenteringFactor)
	g.widgetAttraction = panel.AddSlider("Attraction", 0, 0.001, cfg.AttractionFactor)
	g.widgetRepulsion = panel.AddSlider("Repulsion", 0, 1e-6, cfg.RepulsionFactor)
	g.widgetDamping = panel.AddSlider("Damping", 0.99, 1, cfg.Damping)
	g.widgetSubSteps = panel.AddSlider("Sub-steps", 1, 20, float64(cfg.SubSteps))
	g.widgetSubSteps.Format = "%.0f"

	panel.AddSection("Population")
	g.widgetPopulation = panel.AddSlider("Particles", 2, 500, float64(cfg.Population))
	g.widgetPopulation.Format = "%.0f"
	panel.AddButton("Restart [R]", g.restart)

	panel.AddSection("Display")
	g.widgetConnections = panel.AddCheckbox("Connections", cfg.ShowConnections)
	panel.Visible = false
	g.panel = panel

	return g, nil
}

func (g *Game) tell(msg proto.Message) {
	if err := actor.Tell(g.ctx, g.enginePID, msg); err != nil {
		g.logger.Errorf("failed to send %T to engine: %v", msg, err)
	}
}

func (g *Game) restart() {
	g.cfg.Population = int(math.Round(g.widgetPopulation.Value))
	g.tell(simulation.NewReset(g.cfg.Population))
}

// sendTuning forwards the sliders that moved since the last frame.
func (g *Game) sendTuning() {
	values := map[string]interface{}{}
	if g.widgetCentering.Changed() {
		values["centeringFactor"] = g.widgetCentering.Value
	}
	if g.widgetAttraction.Changed() {
		values["attractionFactor"] = g.widgetAttraction.Value
	}
	if g.widgetRepulsion.Changed() {
		values["repulsionFactor"] = g.widgetRepulsion.Value
	}
	if g.widgetDamping.Changed() {
		values["damping"] = g.widgetDamping.Value
	}
	if g.widgetSubSteps.Changed() {
		values["subSteps"] = math.Round(g.widgetSubSteps.Value)
	}
	if len(values) == 0 {
		return
	}
	msg, err := simulation.NewTuning(values)
	if err != nil {
		g.logger.Errorf("failed to build tuning: %v", err)
		return
	}
	g.tell(msg)
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.lastUpdateDuration = time.Since(start)
		// Rolling average (exponential moving average)
		g.updateAvg = g.updateAvg*0.95 + float64(g.lastUpdateDuration.Microseconds())/1000.0*0.05
	}()

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.panel.Visible = !g.panel.Visible
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.restart()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.paused = !g.paused
	}

	g.panel.Update()
	g.sendTuning()

	// keep only the freshest snapshot
Loop:
	for {
		select {
		case snap := <-g.snapshotCh:
			g.lastState = snap
		default:
			break Loop
		}
	}

	if !g.paused {
		g.tell(simulation.NewTick())
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.lastDrawDuration = time.Since(start)
		g.drawAvg = g.drawAvg*0.95 + float64(g.lastDrawDuration.Microseconds())/1000.0*0.05
	}()

	screen.Fill(backgroundColor)
	scale := float32(g.cfg.CanvasSize)

	for _, p := range g.lastState.Positions {
		vector.FillCircle(screen, float32(p.X)*scale, float32(p.Y)*scale, float32(g.cfg.ParticleRadius), particleColor, true)
	}

	if g.widgetConnections.Value {
		for _, l := range g.lastState.Links {
			vector.StrokeLine(screen,
				float32(l.From.X)*scale, float32(l.From.Y)*scale,
				float32(l.To.X)*scale, float32(l.To.Y)*scale,
				1, linkColor, true)
		}
	}

	g.panel.Draw(screen)

	status := ""
	if g.paused {
		status = " PAUSED"
	}
	msg := fmt.Sprintf("FPS: %.1f TPS: %.1f%s\nFrame: %d  Particles: %d  Links: %d\nUpdate: %.2fms Draw: %.2fms",
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		status,
		g.lastState.Frame,
		g.lastState.Population,
		len(g.lastState.Links),
		g.updateAvg,
		g.drawAvg)
	ebitenutil.DebugPrintAt(screen, msg, 5, g.cfg.CanvasSize-50)
}

func (g *Game) Layout(w, h int) (int, int) { return g.cfg.CanvasSize, g.cfg.CanvasSize }
