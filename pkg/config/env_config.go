// pkg/config/env_config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Renderer names accepted by CHAOS_RENDERER
const (
	RendererTerminal = "terminal"
	RendererEngo     = "engo"
	RendererNull     = "null"
)

// EnvironmentConfig holds host settings read from CHAOS_* variables
type EnvironmentConfig struct {
	LogLevel     string
	LogFile      string
	Renderer     string
	LevelsFile   string
	StartLevel   string
	FPS          int
	WindowWidth  int
	WindowHeight int
	Audio        bool
	// Seed feeds the jiggle random source; zero picks a time based seed
	Seed       uint64
	Simulation SimulationConfig
}

// LoadConfigFromEnv reads an optional .env file and then the CHAOS_*
// environment variables, falling back to defaults for unset ones.
func LoadConfigFromEnv() (*EnvironmentConfig, error) {
	// a missing .env is normal
	_ = godotenv.Load()

	var err error
	cfg := &EnvironmentConfig{
		LogLevel:   getEnv("CHAOS_LOG_LEVEL", "INFO"),
		LogFile:    getEnv("CHAOS_LOG_FILE", ""),
		Renderer:   strings.ToLower(getEnv("CHAOS_RENDERER", RendererTerminal)),
		LevelsFile: getEnv("CHAOS_LEVELS_FILE", ""),
		StartLevel: getEnv("CHAOS_START_LEVEL", ""),
		Simulation: DefaultSimulationConfig(),
	}

	if cfg.FPS, err = getEnvInt("CHAOS_FPS", 60); err != nil {
		return nil, err
	}
	if cfg.WindowWidth, err = getEnvInt("CHAOS_WINDOW_WIDTH", 1280); err != nil {
		return nil, err
	}
	if cfg.WindowHeight, err = getEnvInt("CHAOS_WINDOW_HEIGHT", 800); err != nil {
		return nil, err
	}
	if cfg.Audio, err = getEnvBool("CHAOS_AUDIO", true); err != nil {
		return nil, err
	}
	if cfg.Seed, err = getEnvUint("CHAOS_SEED", 0); err != nil {
		return nil, err
	}

	sim := &cfg.Simulation
	if sim.Iterations, err = getEnvInt("CHAOS_ITERATIONS", sim.Iterations); err != nil {
		return nil, err
	}
	maxDelta, err := getEnvDuration("CHAOS_MAX_DELTA", time.Duration(sim.MaxDeltaTime*float64(time.Second)))
	if err != nil {
		return nil, err
	}
	sim.MaxDeltaTime = maxDelta.Seconds()
	if sim.TrailCapacity, err = getEnvInt("CHAOS_TRAIL_CAPACITY", sim.TrailCapacity); err != nil {
		return nil, err
	}
	if sim.HistoryCapacity, err = getEnvInt("CHAOS_HISTORY_CAPACITY", sim.HistoryCapacity); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks host settings and the embedded simulation config
func (c *EnvironmentConfig) Validate() error {
	switch c.Renderer {
	case RendererTerminal, RendererEngo, RendererNull:
	default:
		return &ValidationError{Field: "Renderer", Value: c.Renderer, Message: "must be terminal, engo or null"}
	}
	if c.FPS < 1 || c.FPS > 240 {
		return &ValidationError{Field: "FPS", Value: c.FPS, Message: "must be between 1 and 240"}
	}
	if c.WindowWidth < 320 || c.WindowWidth > 7680 {
		return &ValidationError{Field: "WindowWidth", Value: c.WindowWidth, Message: "must be between 320 and 7680"}
	}
	if c.WindowHeight < 240 || c.WindowHeight > 4320 {
		return &ValidationError{Field: "WindowHeight", Value: c.WindowHeight, Message: "must be between 240 and 4320"}
	}
	return c.Simulation.Validate()
}

// TickInterval returns the frame period for the configured FPS
func (c *EnvironmentConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvUint(key string, fallback uint64) (uint64, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
