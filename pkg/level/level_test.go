// pkg/level/level_test.go
package level

import (
	"errors"
	"testing"

	"github.com/opd-ai/go-chaostheory/pkg/physics"
)

func validDefinition() Definition {
	return Definition{
		ID:      "test",
		Root:    physics.Vec(0, 0),
		Links:   []physics.Vector2D{physics.Vec(0, -300), physics.Vec(10, 300)},
		Gravity: physics.Vec(0, 1000),
		Targets: []TargetDefinition{{Center: physics.Vec(0, 0), Radius: 50, Closed: 250}},
	}
}

func TestDefinition_Build(t *testing.T) {
	lvl, err := validDefinition().Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	targets := lvl.Targets()
	if len(targets) != 1 {
		t.Fatalf("expected 1 target, got %d", len(targets))
	}
	if targets[0].ClosedZone().Radius != 300 {
		t.Errorf("closed zone radius = %v, expected 300", targets[0].ClosedZone().Radius)
	}

	chain := lvl.InitialChain()
	if chain.Len() != 2 {
		t.Errorf("initial chain has %d links, expected 2", chain.Len())
	}
	if chain.Tail() != physics.Vec(10, 300) {
		t.Errorf("initial tail = %v, expected (10, 300)", chain.Tail())
	}
}

func TestDefinition_BuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *Definition)
		wantErr error
	}{
		{
			name:    "missing_id",
			mutate:  func(d *Definition) { d.ID = "" },
			wantErr: ErrMissingID,
		},
		{
			name:    "no_targets",
			mutate:  func(d *Definition) { d.Targets = nil },
			wantErr: ErrNoTargets,
		},
		{
			name:    "zero_target_radius",
			mutate:  func(d *Definition) { d.Targets[0].Radius = 0 },
			wantErr: ErrInvalidRadius,
		},
		{
			name:    "negative_margin",
			mutate:  func(d *Definition) { d.Targets[0].Closed = -1 },
			wantErr: ErrNegativeMargin,
		},
		{
			name: "negative_red_zone_radius",
			mutate: func(d *Definition) {
				d.RedZones = []physics.Zone{{Center: physics.Vec(1, 1), Radius: -5}}
			},
			wantErr: ErrInvalidRadius,
		},
		{
			name: "red_zone_over_target",
			mutate: func(d *Definition) {
				d.RedZones = []physics.Zone{{Center: physics.Vec(0, 100), Radius: 60}}
			},
			wantErr: ErrRedZoneOverlap,
		},
		{
			name: "red_zone_touching_target",
			mutate: func(d *Definition) {
				d.RedZones = []physics.Zone{{Center: physics.Vec(80, 0), Radius: 30}}
			},
			wantErr: ErrRedZoneOverlap,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDefinition()
			tt.mutate(&d)

			_, err := d.Build()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Build() error = %v, expected %v", err, tt.wantErr)
			}
		})
	}
}

func TestLevel_InitialChainIsCopy(t *testing.T) {
	lvl := validDefinition().MustBuild()

	first := lvl.InitialChain()
	first.Add(physics.Vec(99, 99))
	first.Simulate(lvl.Gravity, 1.0/60, physics.DefaultIterations)

	second := lvl.InitialChain()
	if second.Len() != 2 {
		t.Errorf("mutating a returned chain changed the level: %d links", second.Len())
	}
	if second.Tail() != physics.Vec(10, 300) {
		t.Errorf("initial tail = %v, expected (10, 300)", second.Tail())
	}
}

func TestDefinition_BuildAllowsRedZoneInClosedMargin(t *testing.T) {
	d := validDefinition()
	// inside the 300 closed margin but clear of the 50 target
	d.RedZones = []physics.Zone{{Center: physics.Vec(0, 150), Radius: 50}}
	if _, err := d.Build(); err != nil {
		t.Errorf("Build() error = %v", err)
	}
}

func TestLevel_ZonesAreCopies(t *testing.T) {
	d := validDefinition()
	d.RedZones = []physics.Zone{{Center: physics.Vec(-550, -500), Radius: 300}}
	lvl := d.MustBuild()

	targets := lvl.Targets()
	targets[0].Zone.Radius = 1
	zones := lvl.RedZones()
	zones[0].Radius = 1

	if got := lvl.Targets(); len(got) != 1 || got[0].Zone.Radius != 50 {
		t.Errorf("Targets() = %v after mutating a copy", got)
	}
	if got := lvl.RedZones(); got[0].Radius != 300 {
		t.Errorf("RedZones() = %v after mutating a copy", got)
	}
}

func TestLevel_DefinitionRoundTrip(t *testing.T) {
	d := validDefinition()
	d.RedZones = []physics.Zone{{Center: physics.Vec(-550, -500), Radius: 300}}
	d.Next = "other"

	back := d.MustBuild().Definition()

	if back.ID != d.ID || back.Next != d.Next || back.Root != d.Root {
		t.Errorf("identity fields changed: %+v", back)
	}
	if len(back.Links) != len(d.Links) || back.Links[1] != d.Links[1] {
		t.Errorf("links = %v, expected %v", back.Links, d.Links)
	}
	if len(back.Targets) != 1 || back.Targets[0] != d.Targets[0] {
		t.Errorf("targets = %v, expected %v", back.Targets, d.Targets)
	}
	if len(back.RedZones) != 1 || back.RedZones[0] != d.RedZones[0] {
		t.Errorf("red zones = %v, expected %v", back.RedZones, d.RedZones)
	}
}
