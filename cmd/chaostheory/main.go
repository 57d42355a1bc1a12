// cmd/chaostheory/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opd-ai/go-chaostheory/pkg/config"
	"github.com/opd-ai/go-chaostheory/pkg/level"
	"github.com/opd-ai/go-chaostheory/pkg/logging"
)

const usage = `Chaos Theory: build a rope, let it swing, touch every target.

Usage:
  chaostheory [command] [flags]

Commands:
  play         play the campaign interactively (default)
  simulate     run a level headless and print a report
  export       run a level headless and write the final scene as PNG
  levels       list the levels of a catalog
  init-levels  write the built-in levels (and optionally the tuning) to JSON
  help         show this message

Run "chaostheory <command> -h" for the flags of a command.
`

// command runs one subcommand with its own flag arguments
type command func(ctx context.Context, a *app, args []string) error

var commands = map[string]command{
	"play":        runPlay,
	"simulate":    runSimulate,
	"export":      runExport,
	"levels":      runLevels,
	"init-levels": runInitLevels,
}

// app carries the process wide settings shared by every subcommand
type app struct {
	env    *config.EnvironmentConfig
	stdout io.Writer
	stderr io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	name := "play"
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		name, args = args[0], args[1:]
	}
	if name == "help" {
		fmt.Fprint(stdout, usage)
		return 0
	}
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", name, usage)
		return 2
	}

	env, err := config.LoadConfigFromEnv()
	if err == nil {
		err = env.Validate()
	}
	if err != nil {
		fmt.Fprintf(stderr, "invalid environment configuration: %v\n", err)
		return 1
	}

	a := &app{env: env, stdout: stdout, stderr: stderr}
	if err := cmd(ctx, a, args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return 1
	}
	return 0
}

// openLogger builds the logger for a subcommand. Interactive terminal
// play owns the screen, so it logs only to CHAOS_LOG_FILE.
func (a *app) openLogger(allowStderr bool) (*logging.Logger, func(), error) {
	lvl := logging.ParseLevel(a.env.LogLevel)
	if a.env.LogFile != "" {
		f, err := os.OpenFile(a.env.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return logging.NewLoggerTo(f, lvl), func() { f.Close() }, nil
	}
	if !allowStderr {
		return logging.Discard(), func() {}, nil
	}
	return logging.NewLoggerTo(a.stderr, lvl), func() {}, nil
}

// options are the flags shared by every command that builds a session
type options struct {
	configPath string
	levelsPath string
	startLevel string
	seed       uint64
}

func (o *options) register(fs *flag.FlagSet, env *config.EnvironmentConfig) {
	fs.StringVar(&o.configPath, "config", "", "Path to a simulation tuning JSON file")
	fs.StringVar(&o.levelsPath, "levels", env.LevelsFile, "Path to a level catalog JSON file (built-in levels when empty)")
	fs.StringVar(&o.startLevel, "level", env.StartLevel, "Level to start on (first level when empty)")
	fs.Uint64Var(&o.seed, "seed", env.Seed, "Seed of the jiggle random source (0 picks one from the clock)")
}

// simulationConfig returns the tuning from -config, or the environment's
func (o *options) simulationConfig(env *config.EnvironmentConfig) (config.SimulationConfig, error) {
	if o.configPath == "" {
		return env.Simulation, nil
	}
	return config.LoadSimulationConfig(o.configPath)
}

// startID returns the level to begin on
func (o *options) startID(catalog *level.Catalog) level.ID {
	if o.startLevel == "" {
		return catalog.First().ID
	}
	return level.ID(o.startLevel)
}

func loadCatalog(path string) (*level.Catalog, error) {
	if path == "" {
		return level.Builtin(), nil
	}
	return level.LoadFile(path)
}

func newRandom(seed uint64) (*rand.Rand, uint64) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed)), seed
}
