// pkg/engine/campaign.go
package engine

import (
	"context"
	"errors"

	"github.com/opd-ai/go-chaostheory/pkg/config"
	"github.com/opd-ai/go-chaostheory/pkg/event"
	"github.com/opd-ai/go-chaostheory/pkg/level"
	"github.com/opd-ai/go-chaostheory/pkg/logging"
	"github.com/opd-ai/go-chaostheory/pkg/physics"
)

// ErrLastLevel is returned by Next on the final level
var ErrLastLevel = errors.New("no level after the current one")

// Campaign walks through a level catalog, owning the active session.
// Every session it creates shares the campaign's bus, logger and random source.
type Campaign struct {
	Catalog  *level.Catalog
	Config   config.SimulationConfig
	EventBus *event.Bus
	Logger   *logging.Logger
	Random   physics.RandomSource

	session *Session
}

// NewCampaign creates a campaign positioned on the first level. Nil
// collaborators are replaced with a fresh bus, a discarding logger and
// the global random source.
func NewCampaign(catalog *level.Catalog, cfg config.SimulationConfig, bus *event.Bus, logger *logging.Logger, rnd physics.RandomSource) *Campaign {
	if bus == nil {
		bus = event.NewEventBus()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	if rnd == nil {
		rnd = globalRandom{}
	}
	c := &Campaign{
		Catalog:  catalog,
		Config:   cfg,
		EventBus: bus,
		Logger:   logger,
		Random:   rnd,
	}
	c.session = c.newSession(catalog.First())
	return c
}

// Session returns the active session
func (c *Campaign) Session() *Session {
	return c.session
}

// Level returns the active level
func (c *Campaign) Level() *level.Level {
	return c.session.Level
}

// Restart switches to the given level, starting it from scratch
func (c *Campaign) Restart(id level.ID) error {
	lvl, err := c.Catalog.Get(id)
	if err != nil {
		return err
	}
	c.switchTo(lvl)
	return nil
}

// Next switches to the successor of the active level
func (c *Campaign) Next() error {
	lvl, ok, err := c.Catalog.Next(c.session.Level.ID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrLastLevel
	}
	c.switchTo(lvl)
	return nil
}

func (c *Campaign) switchTo(lvl *level.Level) {
	from := c.session.Level.ID
	c.session = c.newSession(lvl)
	c.Logger.Info(context.Background(), "level changed", "from", string(from), "to", string(lvl.ID))
	c.EventBus.Publish(event.NewLevelEvent(c, string(from), string(lvl.ID)))
}

func (c *Campaign) newSession(lvl *level.Level) *Session {
	s := NewSession(lvl, c.Config)
	s.EventBus = c.EventBus
	s.Logger = c.Logger
	s.Random = c.Random
	return s
}
