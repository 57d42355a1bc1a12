// cmd/chaostheory/simulate.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/opd-ai/go-chaostheory/pkg/config"
	"github.com/opd-ai/go-chaostheory/pkg/engine"
	"github.com/opd-ai/go-chaostheory/pkg/level"
	"github.com/opd-ai/go-chaostheory/pkg/logging"
	"github.com/opd-ai/go-chaostheory/pkg/physics"
)

// fixedStep is the simulated frame period of headless runs
const fixedStep = 1.0 / 60

var errNoPlacement = errors.New("placement rejected")

// runOptions are the flags of a headless run
type runOptions struct {
	options
	links    string
	attempts int
	ticks    int
}

func (o *runOptions) register(fs *flag.FlagSet, env *config.EnvironmentConfig) {
	o.options.register(fs, env)
	fs.StringVar(&o.links, "links", "", `Points to append to the chain before running, as "x,y x,y ..."`)
	fs.IntVar(&o.attempts, "attempts", 10, "Soft retries before giving up")
	fs.IntVar(&o.ticks, "ticks", 600, "Ticks per attempt")
}

// attempt is the outcome of one run from the snapshot
type attempt struct {
	Number  int
	Ticks   int
	Won     bool
	Bonus   int
	Touches []int
}

func (a attempt) winStatus() engine.WinStatus {
	return engine.WinStatus{Won: a.Won, Bonus: a.Bonus}
}

// simulation is the outcome of a headless run
type simulation struct {
	Level    level.ID
	Seed     uint64
	Links    int
	Attempts []attempt
	View     engine.View
}

// Won reports whether any attempt won the level
func (r simulation) Won() bool {
	return len(r.Attempts) > 0 && r.Attempts[len(r.Attempts)-1].Won
}

// parsePoints reads a space separated list of "x,y" pairs
func parsePoints(s string) ([]physics.Vector2D, error) {
	var points []physics.Vector2D
	for _, field := range strings.Fields(s) {
		xs, ys, ok := strings.Cut(field, ",")
		if !ok {
			return nil, fmt.Errorf("point %q: want x,y", field)
		}
		x, err := strconv.ParseFloat(xs, 64)
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", field, err)
		}
		y, err := strconv.ParseFloat(ys, 64)
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", field, err)
		}
		points = append(points, physics.Vec(x, y))
	}
	return points, nil
}

// placeLinks drags a new link from the tail to each point in turn, the
// way a player would
func placeLinks(s *engine.Session, points []physics.Vector2D) error {
	for i, p := range points {
		if !s.Handle(engine.PlaceBegin{Pos: s.View().Tail()}) {
			return fmt.Errorf("link %d: %w", i, errNoPlacement)
		}
		if !s.Handle(engine.PlaceCommit{Pos: p}) {
			return fmt.Errorf("link %d: %w", i, errNoPlacement)
		}
	}
	return nil
}

// simulate starts the run and soft retries until the level is won or
// the attempts run out
func simulate(s *engine.Session, attempts, ticks int, dt float64) []attempt {
	s.ToggleRun()
	var results []attempt
	for i := 1; i <= attempts; i++ {
		if i > 1 {
			s.SoftReset()
		}
		n := s.Advance(ticks, dt)
		win := s.WinStatus()
		results = append(results, attempt{
			Number:  i,
			Ticks:   n,
			Won:     win.Won,
			Bonus:   win.Bonus,
			Touches: s.TouchLevels(),
		})
		if win.Won {
			break
		}
	}
	return results
}

// headlessRun builds a session from the flags, places the extra links
// and simulates it
func headlessRun(ctx context.Context, env *config.EnvironmentConfig, o *runOptions, logger *logging.Logger) (simulation, error) {
	if o.attempts < 1 || o.ticks < 1 {
		return simulation{}, fmt.Errorf("attempts and ticks must be positive")
	}
	points, err := parsePoints(o.links)
	if err != nil {
		return simulation{}, err
	}
	catalog, err := loadCatalog(o.levelsPath)
	if err != nil {
		return simulation{}, err
	}
	lvl, err := catalog.Get(o.startID(catalog))
	if err != nil {
		return simulation{}, err
	}
	sim, err := o.simulationConfig(env)
	if err != nil {
		return simulation{}, err
	}
	if err := sim.Validate(); err != nil {
		return simulation{}, err
	}
	rnd, seed := newRandom(o.seed)

	s := engine.NewSession(lvl, sim)
	s.Logger = logger
	s.Random = rnd
	if err := placeLinks(s, points); err != nil {
		return simulation{}, err
	}

	logger.Info(ctx, "simulating level",
		"level", string(lvl.ID),
		"links", len(points),
		"attempts", o.attempts,
		"ticks", o.ticks,
		"seed", seed,
	)
	results := simulate(s, o.attempts, o.ticks, fixedStep)
	return simulation{
		Level:    lvl.ID,
		Seed:     seed,
		Links:    len(s.Points()) - 1,
		Attempts: results,
		View:     s.View(),
	}, nil
}

func runSimulate(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	var o runOptions
	o.register(fs, a.env)
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger, closeLog, err := a.openLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	result, err := headlessRun(ctx, a.env, &o, logger)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, renderReport(result))
	return nil
}
