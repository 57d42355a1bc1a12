// pkg/render/engo/scene.go
package engo

import (
	"context"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-chaostheory/pkg/engine"
	"github.com/opd-ai/go-chaostheory/pkg/logging"
	"github.com/opd-ai/go-chaostheory/pkg/render"
)

// SceneType is the engo scene name
const SceneType = "ChaosTheory"

// GameScene plays a campaign in an engo window
type GameScene struct {
	campaign *engine.Campaign
	logger   *logging.Logger

	world    *ecs.World
	assets   *AssetManager
	renderer *EngoRenderer
}

// NewGameScene creates a new game scene
func NewGameScene(campaign *engine.Campaign, logger *logging.Logger) *GameScene {
	if logger == nil {
		logger = logging.Discard()
	}
	return &GameScene{
		campaign: campaign,
		logger:   logger,
		assets:   NewAssetManager(),
	}
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return SceneType
}

// Preload is called before the scene starts (required by Engo)
func (scene *GameScene) Preload() {
	if err := scene.assets.LoadAssets(); err != nil {
		scene.logger.Error(context.Background(), "failed to load assets, text disabled", err)
	}
}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	world, _ := u.(*ecs.World)
	scene.world = world

	common.SetBackground(render.Background)
	SetupInputBindings()

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	scene.renderer = NewEngoRenderer(renderSystem, scene.assets)
	world.AddSystem(NewInputSystem(scene.campaign, scene.renderer, scene.logger))
	world.AddSystem(NewSimulationSystem(scene.campaign, scene.renderer, scene.logger))
	world.AddSystem(NewHUDSystem(scene.campaign, scene.assets))

	scene.logger.Info(context.Background(), "engo scene started",
		"level", string(scene.campaign.Level().ID),
		"width", engo.GameWidth(),
		"height", engo.GameHeight(),
	)
}

// Hide is called when the window loses focus; a running session pauses
func (scene *GameScene) Hide() {
	scene.campaign.Session().Pause()
}

// Exit is called when the window closes
func (scene *GameScene) Exit() {
	scene.logger.Info(context.Background(), "engo scene exiting")
}

// SimulationSystem ticks the active session with the frame time and
// redraws it
type SimulationSystem struct {
	campaign *engine.Campaign
	renderer render.Renderer
	logger   *logging.Logger
}

// NewSimulationSystem creates a system driving the campaign's session
func NewSimulationSystem(campaign *engine.Campaign, renderer render.Renderer, logger *logging.Logger) *SimulationSystem {
	if logger == nil {
		logger = logging.Discard()
	}
	return &SimulationSystem{campaign: campaign, renderer: renderer, logger: logger}
}

// Remove satisfies the ecs.System interface
func (ss *SimulationSystem) Remove(basic ecs.BasicEntity) {}

// Update advances one frame
func (ss *SimulationSystem) Update(dt float32) {
	s := ss.campaign.Session()
	s.Tick(float64(dt))
	if err := render.Draw(ss.renderer, s.View()); err != nil {
		ss.logger.Error(context.Background(), "failed to draw frame", err)
	}
}

// RunOptions configures the window
type RunOptions struct {
	Title      string
	Width      int
	Height     int
	FPS        int
	Fullscreen bool
}

// Run opens a window and blocks until it is closed
func Run(opts RunOptions, campaign *engine.Campaign, logger *logging.Logger) {
	engo.Run(engo.RunOptions{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Fullscreen: opts.Fullscreen,
		FPSLimit:   opts.FPS,
		VSync:      true,
	}, NewGameScene(campaign, logger))
}
