// pkg/level/builtin.go
package level

import (
	"math"

	"github.com/opd-ai/go-chaostheory/pkg/physics"
)

var standardGravity = physics.Vec(0, 1000)

func target(x, y, radius, closed float64) TargetDefinition {
	return TargetDefinition{Center: physics.Vec(x, y), Radius: radius, Closed: closed}
}

func redZone(x, y, radius float64) physics.Zone {
	return physics.Zone{Center: physics.Vec(x, y), Radius: radius}
}

// BuiltinDefinitions returns the stock level layouts in play order
func BuiltinDefinitions() []Definition {
	return []Definition{
		{
			ID:      "tutorial",
			Links:   []physics.Vector2D{physics.Vec(0, -300)},
			Gravity: standardGravity,
			Targets: []TargetDefinition{target(0, 0, 50, 250)},
			Next:    "second",
		},
		{
			ID:      "second",
			Text:    "you're not limited to two sticks",
			Links:   []physics.Vector2D{physics.Vec(0, -300), physics.Vec(10, 300)},
			Gravity: standardGravity,
			Targets: []TargetDefinition{target(0, 0, 50, 250)},
			Next:    "third",
		},
		{
			ID:      "third",
			Text:    "soft retries with 'r' lead to win more often than you'd think",
			Links:   []physics.Vector2D{physics.Vec(0, -300)},
			Gravity: standardGravity,
			Targets: []TargetDefinition{
				target(0, 0, 50, 250),
				target(550, 0, 100, 100),
			},
			Next: "fourth",
		},
		{
			ID:      "fourth",
			Text:    "you can skip this easy level with 'n'",
			Links:   []physics.Vector2D{physics.Vec(0, -300)},
			Gravity: standardGravity,
			Targets: []TargetDefinition{
				target(-550, 0, 100, 100),
				target(550, 0, 100, 100),
			},
			RedZones: []physics.Zone{
				redZone(-550, -500, 300),
				redZone(550, -500, 300),
				redZone(-550, 500, 300),
				redZone(550, 500, 300),
			},
			Next: "fifth",
		},
		{
			ID:      "fifth",
			Links:   []physics.Vector2D{physics.Vec(0, -200)},
			Gravity: standardGravity,
			Targets: []TargetDefinition{
				target(400, -350, 50, 40),
				target(-400, 350, 50, 40),
				target(500, 450, 50, 40),
			},
			RedZones: []physics.Zone{redZone(-500, -450, 90)},
			Next:     "sixth",
		},
		{
			ID:      "sixth",
			Text:    "watch your step, gravity is weird",
			Links:   []physics.Vector2D{physics.Vec(0, -200)},
			Gravity: physics.Vec(1000/math.Sqrt2, 1000/math.Sqrt2),
			Targets: []TargetDefinition{target(-350, -350, 50, 250)},
		},
	}
}

// Builtin returns the stock catalog
func Builtin() *Catalog {
	c, err := NewCatalog(BuiltinDefinitions())
	if err != nil {
		panic(err)
	}
	return c
}
