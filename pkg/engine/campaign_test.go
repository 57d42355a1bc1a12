// pkg/engine/campaign_test.go
package engine

import (
	"errors"
	"testing"

	"github.com/opd-ai/go-chaostheory/pkg/config"
	"github.com/opd-ai/go-chaostheory/pkg/event"
	"github.com/opd-ai/go-chaostheory/pkg/level"
)

func TestNewCampaign_StartsOnFirstLevel(t *testing.T) {
	c := NewCampaign(level.Builtin(), config.DefaultSimulationConfig(), nil, nil, nil)

	if c.Level().ID != "tutorial" {
		t.Errorf("Level() = %q, expected tutorial", c.Level().ID)
	}
	if c.Session().EventBus != c.EventBus {
		t.Error("session should share the campaign event bus")
	}
	if c.Session().Phase() != PhaseSetup {
		t.Errorf("Phase() = %v, expected setup", c.Session().Phase())
	}
}

func TestCampaign_Next(t *testing.T) {
	bus := event.NewEventBus()
	var changes []*event.LevelEvent
	bus.Subscribe(event.LevelChanged, func(e event.Event) {
		changes = append(changes, e.(*event.LevelEvent))
	})

	c := NewCampaign(level.Builtin(), config.DefaultSimulationConfig(), bus, nil, fixedRandom(0.5))

	for i := 0; i < 5; i++ {
		if err := c.Next(); err != nil {
			t.Fatalf("Next() #%d error = %v", i, err)
		}
	}
	if c.Level().ID != "sixth" {
		t.Errorf("Level() = %q, expected sixth", c.Level().ID)
	}
	if err := c.Next(); !errors.Is(err, ErrLastLevel) {
		t.Errorf("Next() on the last level = %v, expected ErrLastLevel", err)
	}

	if len(changes) != 5 || changes[0].From != "tutorial" || changes[0].To != "second" {
		t.Errorf("unexpected level events: %+v", changes)
	}
	if c.Session().Random != fixedRandom(0.5) {
		t.Error("new sessions should use the campaign random source")
	}
}

func TestCampaign_Restart(t *testing.T) {
	c := NewCampaign(level.Builtin(), config.DefaultSimulationConfig(), nil, nil, nil)
	c.Session().ToggleRun()
	c.Session().Tick(frame)

	if err := c.Restart("fourth"); err != nil {
		t.Fatalf("Restart() error = %v", err)
	}
	if c.Level().ID != "fourth" || c.Session().Phase() != PhaseSetup {
		t.Errorf("expected a fresh fourth level, got %q in %v", c.Level().ID, c.Session().Phase())
	}
	if len(c.Session().View().RedZones) != 4 {
		t.Error("fourth level should expose its red zones")
	}

	if err := c.Restart("missing"); !errors.Is(err, level.ErrUnknownLevel) {
		t.Errorf("Restart(missing) = %v, expected ErrUnknownLevel", err)
	}
	if c.Level().ID != "fourth" {
		t.Error("failed restart should keep the current level")
	}
}
