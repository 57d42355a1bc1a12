// pkg/level/level.go
package level

import (
	"errors"
	"fmt"

	"github.com/opd-ai/go-chaostheory/pkg/physics"
)

// Validation errors returned by Build
var (
	ErrNoTargets      = errors.New("level has no targets")
	ErrInvalidRadius  = errors.New("zone radius must be positive")
	ErrNegativeMargin = errors.New("closed margin must not be negative")
	ErrMissingID      = errors.New("level id is empty")
	ErrRedZoneOverlap = errors.New("red zone overlaps a target")
)

// ID identifies a level within a catalog
type ID string

// Target is a scoring zone. Closed is the extra margin around it in
// which the player may not place points.
type Target struct {
	Zone   physics.Zone `json:"zone"`
	Closed float64      `json:"closed"`
}

// ClosedZone returns the placement exclusion zone around the target
func (t Target) ClosedZone() physics.Zone {
	return t.Zone.Extend(t.Closed)
}

// TargetDefinition is the file form of a target
type TargetDefinition struct {
	Center physics.Vector2D `json:"center"`
	Radius float64          `json:"radius"`
	Closed float64          `json:"closed"`
}

// Definition is the pure-data description of a level
type Definition struct {
	ID       ID                 `json:"id"`
	Text     string             `json:"text,omitempty"`
	Root     physics.Vector2D   `json:"root"`
	Links    []physics.Vector2D `json:"links"`
	Gravity  physics.Vector2D   `json:"gravity"`
	Targets  []TargetDefinition `json:"targets"`
	RedZones []physics.Zone     `json:"redZones,omitempty"`
	Next     ID                 `json:"next,omitempty"`
}

// Level is a validated, immutable level. Targets and red zones are
// only handed out as copies.
type Level struct {
	ID      ID
	Text    string
	Gravity physics.Vector2D
	Next    ID

	targets  []Target
	redZones []physics.Zone
	initial  *physics.Chain
}

// Build validates the definition and constructs the level
func (d Definition) Build() (*Level, error) {
	if d.ID == "" {
		return nil, ErrMissingID
	}
	if len(d.Targets) == 0 {
		return nil, fmt.Errorf("level %q: %w", d.ID, ErrNoTargets)
	}

	lvl := &Level{
		ID:      d.ID,
		Text:    d.Text,
		Gravity: d.Gravity,
		Next:    d.Next,
		initial: physics.NewChain(d.Root),
	}

	for i, td := range d.Targets {
		if td.Radius <= 0 {
			return nil, fmt.Errorf("level %q target %d: %w", d.ID, i, ErrInvalidRadius)
		}
		if td.Closed < 0 {
			return nil, fmt.Errorf("level %q target %d: %w", d.ID, i, ErrNegativeMargin)
		}
		lvl.targets = append(lvl.targets, Target{
			Zone:   physics.Zone{Center: td.Center, Radius: td.Radius},
			Closed: td.Closed,
		})
	}

	for i, z := range d.RedZones {
		if z.Radius <= 0 {
			return nil, fmt.Errorf("level %q red zone %d: %w", d.ID, i, ErrInvalidRadius)
		}
		for j, t := range lvl.targets {
			if z.Overlaps(t.Zone) {
				return nil, fmt.Errorf("level %q red zone %d, target %d: %w", d.ID, i, j, ErrRedZoneOverlap)
			}
		}
		lvl.redZones = append(lvl.redZones, z)
	}

	for _, p := range d.Links {
		lvl.initial.Add(p)
	}

	return lvl, nil
}

// MustBuild is like Build but panics on invalid data. It is meant for
// static level tables.
func (d Definition) MustBuild() *Level {
	lvl, err := d.Build()
	if err != nil {
		panic(err)
	}
	return lvl
}

// Targets returns a copy of the level's targets
func (l *Level) Targets() []Target {
	return append([]Target(nil), l.targets...)
}

// RedZones returns a copy of the level's red zones
func (l *Level) RedZones() []physics.Zone {
	return append([]physics.Zone(nil), l.redZones...)
}

// InitialChain returns a fresh copy of the level's starting chain
func (l *Level) InitialChain() *physics.Chain {
	return l.initial.Clone()
}

// Definition converts the level back to its data form
func (l *Level) Definition() Definition {
	positions := l.initial.Positions()
	d := Definition{
		ID:       l.ID,
		Text:     l.Text,
		Root:     positions[0],
		Links:    append([]physics.Vector2D(nil), positions[1:]...),
		Gravity:  l.Gravity,
		RedZones: l.RedZones(),
		Next:     l.Next,
	}
	for _, t := range l.targets {
		d.Targets = append(d.Targets, TargetDefinition{
			Center: t.Zone.Center,
			Radius: t.Zone.Radius,
			Closed: t.Closed,
		})
	}
	return d
}
