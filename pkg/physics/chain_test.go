// pkg/physics/chain_test.go
package physics

import (
	"math"
	"testing"
)

// fixedRandom returns the same value forever
type fixedRandom float64

func (f fixedRandom) Float64() float64 { return float64(f) }

// sequenceRandom cycles through a list of values
type sequenceRandom struct {
	values []float64
	next   int
}

func (s *sequenceRandom) Float64() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func TestPointMass_Step(t *testing.T) {
	t.Run("inertia_and_acceleration", func(t *testing.T) {
		p := PointMass{Position: Vec(10, 0), Previous: Vec(8, 0)}
		p.Step(Vec(0, 1))

		if p.Position != Vec(12, 1) {
			t.Errorf("Position = %v, expected (12, 1)", p.Position)
		}
		if p.Previous != Vec(10, 0) {
			t.Errorf("Previous = %v, expected (10, 0)", p.Previous)
		}
	})

	t.Run("locked_point_does_not_move", func(t *testing.T) {
		p := PointMass{Position: Vec(10, 0), Previous: Vec(8, 0), Locked: true}
		p.Step(Vec(0, 1))

		if p.Position != Vec(10, 0) || p.Previous != Vec(8, 0) {
			t.Errorf("locked point moved: %+v", p)
		}
	})

	t.Run("zero_acceleration_keeps_velocity", func(t *testing.T) {
		p := NewPointMass(Vec(0, 0), false)
		p.Previous = Vec(-1, -1)
		for i := 0; i < 3; i++ {
			p.Step(Vector2D{})
		}
		if p.Position != Vec(3, 3) {
			t.Errorf("Position = %v, expected (3, 3)", p.Position)
		}
		if p.Velocity() != Vec(1, 1) {
			t.Errorf("Velocity = %v, expected (1, 1)", p.Velocity())
		}
	})
}

func TestChain_Add(t *testing.T) {
	chain := NewChain(Vec(0, 0))
	if chain.Tail() != chain.Root() {
		t.Fatalf("empty chain tail = %v, expected root", chain.Tail())
	}

	chain.Add(Vec(0, -300))
	chain.Add(Vec(40, -330))

	if chain.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", chain.Len())
	}
	if chain.Tail() != Vec(40, -330) {
		t.Errorf("Tail() = %v, expected (40, -330)", chain.Tail())
	}

	cons := chain.Constraints()
	if cons[0].Length != 300 || cons[1].Length != 50 {
		t.Errorf("lengths = %v, %v; expected 300, 50", cons[0].Length, cons[1].Length)
	}
	if cons[0].B != cons[1].A {
		t.Errorf("consecutive links must share a point: %+v", cons)
	}

	points := chain.Points()
	if !points[0].Locked {
		t.Error("root should be locked")
	}
	for _, p := range points[1:] {
		if p.Locked {
			t.Error("added points should be free")
		}
	}
}

func TestChain_RelaxReachesRestLength(t *testing.T) {
	t.Run("both_free", func(t *testing.T) {
		chain := NewChain(Vec(0, 0))
		chain.Add(Vec(100, 0))
		chain.points[0].Locked = false
		chain.points[1].Position = Vec(160, 0)

		chain.relax(chain.constraints[0])

		if d := chain.points[0].Position.Distance(chain.points[1].Position); math.Abs(d-100) > 1e-9 {
			t.Errorf("distance after relax = %v, expected 100", d)
		}
		if chain.points[0].Position != Vec(30, 0) {
			t.Errorf("A moved to %v, expected (30, 0)", chain.points[0].Position)
		}
	})

	t.Run("locked_root_converges", func(t *testing.T) {
		chain := NewChain(Vec(0, 0))
		chain.Add(Vec(0, 100))
		chain.points[1].Position = Vec(0, 180)

		chain.Simulate(Vector2D{}, 0, 40)

		if chain.Root() != Vec(0, 0) {
			t.Errorf("root moved to %v", chain.Root())
		}
		if d := chain.Tail().Length(); math.Abs(d-100) > 1e-6 {
			t.Errorf("distance after relaxation = %v, expected 100", d)
		}
	})

	t.Run("both_locked_noop", func(t *testing.T) {
		chain := NewChain(Vec(0, 0))
		chain.Add(Vec(100, 0))
		chain.points[1].Locked = true
		chain.points[1].Position = Vec(160, 0)

		chain.relax(chain.constraints[0])

		if chain.points[1].Position != Vec(160, 0) {
			t.Errorf("locked endpoint moved to %v", chain.points[1].Position)
		}
	})

	t.Run("coincident_points_skipped", func(t *testing.T) {
		chain := NewChain(Vec(0, 0))
		chain.Add(Vec(10, 0))
		chain.points[1].Position = Vec(0, 0)

		chain.relax(chain.constraints[0])

		p := chain.points[1].Position
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || p != Vec(0, 0) {
			t.Errorf("coincident endpoint moved to %v", p)
		}
	})
}

func TestChain_SimulateKeepsRootFixed(t *testing.T) {
	root := Vec(12.5, -7.25)
	chain := NewChain(root)
	chain.Add(Vec(0, -300))
	chain.Add(Vec(10, 300))
	chain.Jiggle(fixedRandom(0.9))

	for i := 0; i < 500; i++ {
		chain.Simulate(Vec(0, 1000), 1.0/60, DefaultIterations)
	}

	if chain.Root() != root {
		t.Errorf("root = %v, expected exactly %v", chain.Root(), root)
	}
	if chain.Positions()[0] != root {
		t.Errorf("arena root = %v, expected exactly %v", chain.Positions()[0], root)
	}
}

func TestChain_SimulateFallsUnderGravity(t *testing.T) {
	chain := NewChain(Vec(0, 0))
	chain.Add(Vec(300, 0))

	for i := 0; i < 10; i++ {
		chain.Simulate(Vec(0, 1000), 1.0/60, DefaultIterations)
	}

	tail := chain.Tail()
	if tail.Y <= 0 {
		t.Errorf("tail should swing down (positive Y), got %v", tail)
	}
	if d := tail.Length(); math.Abs(d-300) > 1 {
		t.Errorf("link length drifted to %v", d)
	}
}

func TestChain_Jiggle(t *testing.T) {
	chain := NewChain(Vec(0, 0))
	chain.Add(Vec(0, -100))
	chain.Add(Vec(0, -200))
	before := chain.Points()

	chain.Jiggle(&sequenceRandom{values: []float64{0, 0.999, 0.25, 0.75}})

	after := chain.Points()
	if after[0] != before[0] {
		t.Error("jiggle must not touch the root")
	}
	for i := 1; i < len(after); i++ {
		delta := after[i].Position.Sub(before[i].Position)
		if math.Abs(delta.X) > 0.5 || math.Abs(delta.Y) > 0.5 {
			t.Errorf("point %d moved by %v, expected at most 0.5 per axis", i, delta)
		}
		if after[i].Previous != before[i].Previous {
			t.Errorf("point %d previous position changed", i)
		}
	}
	first := after[1].Position.Sub(before[1].Position)
	if first.X != -0.5 || math.Abs(first.Y-0.499) > 1e-9 {
		t.Errorf("first jiggle offset = %v, expected (-0.5, 0.499)", first)
	}
}

func TestChain_CloneIsIndependent(t *testing.T) {
	original := NewChain(Vec(0, 0))
	original.Add(Vec(0, -300))
	original.Add(Vec(10, 300))
	want := original.Positions()

	clone := original.Clone()
	clone.Add(Vec(50, 50))
	clone.Jiggle(fixedRandom(0.9))
	for i := 0; i < 30; i++ {
		clone.Simulate(Vec(0, 1000), 1.0/60, DefaultIterations)
	}

	got := original.Positions()
	if len(got) != len(want) || original.Len() != 2 {
		t.Fatalf("original changed size: %d points", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("original point %d = %v, expected %v", i, got[i], want[i])
		}
	}
}
