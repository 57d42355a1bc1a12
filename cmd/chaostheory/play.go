// cmd/chaostheory/play.go
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-chaostheory/pkg/audio"
	"github.com/opd-ai/go-chaostheory/pkg/config"
	"github.com/opd-ai/go-chaostheory/pkg/engine"
	"github.com/opd-ai/go-chaostheory/pkg/event"
	"github.com/opd-ai/go-chaostheory/pkg/logging"
	"github.com/opd-ai/go-chaostheory/pkg/render"
	engorender "github.com/opd-ai/go-chaostheory/pkg/render/engo"
	"github.com/opd-ai/go-chaostheory/pkg/render/terminal"
)

func runPlay(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	var o options
	o.register(fs, a.env)
	renderer := fs.String("renderer", a.env.Renderer, "Host to play in: terminal, engo or null")
	mute := fs.Bool("mute", !a.env.Audio, "Disable sound cues")
	fullscreen := fs.Bool("fullscreen", false, "Open the engo window fullscreen")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger, closeLog, err := a.openLogger(*renderer != config.RendererTerminal)
	if err != nil {
		return err
	}
	defer closeLog()

	catalog, err := loadCatalog(o.levelsPath)
	if err != nil {
		return err
	}
	sim, err := o.simulationConfig(a.env)
	if err != nil {
		return err
	}
	if err := sim.Validate(); err != nil {
		return err
	}
	rnd, seed := newRandom(o.seed)

	ctx = logging.WithRunID(ctx, "")
	bus := event.NewEventBus()
	campaign := engine.NewCampaign(catalog, sim, bus, logger, rnd)
	if err := campaign.Restart(o.startID(catalog)); err != nil {
		return err
	}

	if !*mute {
		player := audio.NewPlayer(logger)
		if err := player.Init(); err != nil {
			logger.Warn(ctx, "audio unavailable, playing without sound", "error", err.Error())
		} else {
			player.Attach(bus)
			defer player.Close()
		}
	}

	logger.Info(ctx, "starting campaign",
		"renderer", *renderer,
		"level", string(campaign.Level().ID),
		"levels", catalog.Len(),
		"seed", seed,
	)

	switch *renderer {
	case config.RendererTerminal:
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to open terminal: %w", err)
		}
		return terminal.NewHost(screen, campaign, logger, a.env.FPS).Run(ctx)
	case config.RendererEngo:
		engorender.Run(engorender.RunOptions{
			Title:      "Chaos Theory",
			Width:      a.env.WindowWidth,
			Height:     a.env.WindowHeight,
			FPS:        a.env.FPS,
			Fullscreen: *fullscreen,
		}, campaign, logger)
		return nil
	case config.RendererNull:
		return playHeadless(ctx, campaign, a.env.TickInterval(), logger)
	default:
		return fmt.Errorf("unknown renderer %q", *renderer)
	}
}

// playHeadless runs the active level in real time against the null
// renderer until it is won or ctx is cancelled
func playHeadless(ctx context.Context, campaign *engine.Campaign, interval time.Duration, logger *logging.Logger) error {
	r := render.NewNullRenderer(logger)
	s := campaign.Session()
	s.ToggleRun()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	dt := interval.Seconds()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "headless play stopped", "ticks", s.Ticks(), "frames", r.Frames())
			return nil
		case <-ticker.C:
			s.Tick(dt)
			if err := render.Draw(r, s.View()); err != nil {
				return err
			}
			if win := s.WinStatus(); win.Won {
				logger.Info(ctx, "headless play won", "ticks", s.Ticks(), "bonus", win.Bonus)
				return nil
			}
		}
	}
}
