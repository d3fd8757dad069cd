package main

import (
	"context"
	"flag"
	stdlog "log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-particle-graph/internal/render"
	"github.com/lao-tseu-is-alive/go-particle-graph/pkg/simulation"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
)

const windowScale = 2

func main() {
	configFile := flag.String("config", "", "JSON configuration file (defaults are used when empty)")
	verbose := flag.Bool("v", false, "log tuning updates")
	quiet := flag.Bool("quiet", false, "disable logging")
	flag.Parse()

	cfg := simulation.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = simulation.LoadConfig(*configFile); err != nil {
			stdlog.Fatal(err)
		}
	}

	var logger golog.Logger = golog.New(golog.InfoLevel, os.Stdout)
	switch {
	case *quiet:
		logger = golog.DiscardLogger
	case *verbose:
		logger = golog.New(golog.DebugLevel, os.Stdout)
	}

	ctx := context.Background()
	system, err := actor.NewActorSystem("ParticleGraph",
		actor.WithLogger(logger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		stdlog.Fatal(err)
	}
	if err := system.Start(ctx); err != nil {
		stdlog.Fatal(err)
	}
	defer system.Stop(ctx)

	game, err := render.GetNewGame(ctx, cfg, system)
	if err != nil {
		stdlog.Fatal(err)
	}

	ebiten.SetWindowSize(cfg.CanvasSize*windowScale, cfg.CanvasSize*windowScale)
	ebiten.SetWindowTitle("Particle Graph")
	if err := ebiten.RunGame(game); err != nil {
		stdlog.Fatal(err)
	}
}
