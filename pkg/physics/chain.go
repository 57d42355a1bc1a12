// pkg/physics/chain.go
package physics

// DefaultIterations is the number of relaxation passes per tick
const DefaultIterations = 15

// RandomSource yields uniformly distributed values in [0, 1).
// *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	Float64() float64
}

// PointMass is a Verlet particle. Velocity is implicit in the
// difference between Position and Previous.
type PointMass struct {
	Position Vector2D
	Previous Vector2D
	Locked   bool
}

// NewPointMass creates a resting point at pos
func NewPointMass(pos Vector2D, locked bool) PointMass {
	return PointMass{Position: pos, Previous: pos, Locked: locked}
}

// Velocity returns the displacement covered during the last step
func (p PointMass) Velocity() Vector2D {
	return p.Position.Sub(p.Previous)
}

// Step advances the point by one Verlet step. accel must already be
// scaled by the squared time step. Locked points never move.
func (p *PointMass) Step(accel Vector2D) {
	if p.Locked {
		return
	}
	next := p.Position.Add(p.Velocity()).Add(accel)
	p.Previous = p.Position
	p.Position = next
}

// Constraint keeps points A and B (indices into the chain arena) at a
// fixed distance.
type Constraint struct {
	A      int
	B      int
	Length float64
}

// Chain is a rope of point masses hanging from a locked root. Points
// live in a flat arena; constraint i joins points i and i+1.
type Chain struct {
	points      []PointMass
	constraints []Constraint
}

// NewChain creates a chain holding only its locked root
func NewChain(root Vector2D) *Chain {
	return &Chain{
		points: []PointMass{NewPointMass(root, true)},
	}
}

// Root returns the position of the anchor point
func (c *Chain) Root() Vector2D {
	return c.points[0].Position
}

// Tail returns the free end of the chain, or the root if it has no links
func (c *Chain) Tail() Vector2D {
	return c.points[c.tailIndex()].Position
}

func (c *Chain) tailIndex() int {
	if len(c.constraints) == 0 {
		return 0
	}
	return c.constraints[len(c.constraints)-1].B
}

// Len returns the number of links
func (c *Chain) Len() int {
	return len(c.constraints)
}

// Add appends a link from the current tail to a new free point at pos.
// The rest length is the distance at insertion time.
func (c *Chain) Add(pos Vector2D) {
	from := c.tailIndex()
	c.points = append(c.points, NewPointMass(pos, false))
	c.constraints = append(c.constraints, Constraint{
		A:      from,
		B:      len(c.points) - 1,
		Length: c.points[from].Position.Distance(pos),
	})
}

// Points returns a copy of every point mass, root first
func (c *Chain) Points() []PointMass {
	out := make([]PointMass, len(c.points))
	copy(out, c.points)
	return out
}

// Positions returns the position of every point, root first
func (c *Chain) Positions() []Vector2D {
	out := make([]Vector2D, len(c.points))
	for i, p := range c.points {
		out[i] = p.Position
	}
	return out
}

// Constraints returns a copy of the links
func (c *Chain) Constraints() []Constraint {
	out := make([]Constraint, len(c.constraints))
	copy(out, c.constraints)
	return out
}

// Jiggle nudges the B endpoint of every link by up to half a unit on
// each axis. Only positions change, so the nudge also seeds a tiny velocity.
func (c *Chain) Jiggle(rnd RandomSource) {
	for _, con := range c.constraints {
		offset := Vector2D{X: rnd.Float64() - 0.5, Y: rnd.Float64() - 0.5}
		c.points[con.B].Position = c.points[con.B].Position.Add(offset)
	}
}

// Simulate advances the chain by dt seconds: one Verlet step per point
// followed by the given number of sequential relaxation passes.
func (c *Chain) Simulate(gravity Vector2D, dt float64, iterations int) {
	accel := gravity.Scale(dt * dt)
	for i := range c.points {
		c.points[i].Step(accel)
	}
	for n := 0; n < iterations; n++ {
		for _, con := range c.constraints {
			c.relax(con)
		}
	}
}

// relax moves both endpoints halfway towards the rest length.
// Coincident endpoints have no direction to push along and are left alone.
func (c *Chain) relax(con Constraint) {
	a, b := &c.points[con.A], &c.points[con.B]
	diff := a.Position.Sub(b.Position)
	dist := diff.Length()
	if dist == 0 {
		return
	}
	correction := diff.Scale((dist - con.Length) / dist / 2)
	if !a.Locked {
		a.Position = a.Position.Sub(correction)
	}
	if !b.Locked {
		b.Position = b.Position.Add(correction)
	}
}

// Clone returns a deep copy that shares no state with c
func (c *Chain) Clone() *Chain {
	clone := &Chain{
		points:      make([]PointMass, len(c.points)),
		constraints: make([]Constraint, len(c.constraints)),
	}
	copy(clone.points, c.points)
	copy(clone.constraints, c.constraints)
	return clone
}
